// Package engine owns all client-side workout state and is the single
// entry point for the presentation layer. An Engine is constructed once
// per process and passed by reference.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/liftlog/internal/challenge"
	"github.com/abhisek/liftlog/internal/metrics"
	"github.com/abhisek/liftlog/internal/progression"
	"github.com/abhisek/liftlog/internal/reconcile"
	"github.com/abhisek/liftlog/internal/remote"
	"github.com/abhisek/liftlog/internal/session"
	"github.com/abhisek/liftlog/internal/settings"
	"github.com/abhisek/liftlog/internal/stats"
	"github.com/abhisek/liftlog/internal/store"
	"github.com/abhisek/liftlog/internal/workout"
)

var (
	ErrOffline          = errors.New("no remote configured")
	ErrNotAuthenticated = errors.New("not logged in")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrUnknownExercise  = errors.New("unknown exercise")
)

// Default XP rewards.
const (
	DefaultWorkoutXP   = 100
	DefaultManualLogXP = 50
)

// RemoteAPI is the remote contract the engine uses. *remote.Client
// implements it.
type RemoteAPI interface {
	reconcile.Remote
	UpdateWorkout(ctx context.Context, w workout.Workout) error
	DeleteWorkout(ctx context.Context, id string) error
	ListChallenges(ctx context.Context) ([]challenge.Challenge, error)
	LogChallenge(ctx context.Context, id string, value float64) (challenge.Log, error)
	Leaderboard(ctx context.Context, id string) ([]challenge.Standing, error)
	ChallengeLogs(ctx context.Context, id string) ([]challenge.Log, error)
	DeleteChallenge(ctx context.Context, id string) error
}

var _ RemoteAPI = (*remote.Client)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithRemote talks to the remote API at baseURL, authenticating with the
// engine's current token.
func WithRemote(baseURL string, opts ...remote.Option) Option {
	return func(e *Engine) {
		if baseURL == "" {
			return
		}
		opts = append(opts, remote.WithToken(e.Token))
		e.remote = remote.NewClient(baseURL, opts...)
	}
}

// WithRemoteAPI uses api directly.
func WithRemoteAPI(api RemoteAPI) Option {
	return func(e *Engine) { e.remote = api }
}

// WithPersister persists state after every mutation.
func WithPersister(p *store.Persister) Option {
	return func(e *Engine) { e.persister = p }
}

// WithMetrics records activity on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger sets the log entry.
func WithLogger(log *logrus.Entry) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides how workout ids are generated.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// WithLocation sets the time zone used for calendar days.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.agg.Location = loc }
}

// WithXP overrides the XP granted for finished and manually logged
// workouts.
func WithXP(workoutXP, manualLogXP int) Option {
	return func(e *Engine) {
		e.workoutXP = workoutXP
		e.manualLogXP = manualLogXP
	}
}

// WithLibrary replaces the built-in exercise library.
func WithLibrary(lib *workout.Library) Option {
	return func(e *Engine) { e.library = lib }
}

// WithAchievements replaces the built-in achievements.
func WithAchievements(defs []progression.Achievement) Option {
	return func(e *Engine) { e.tracker = progression.NewTracker(defs) }
}

// Engine is the client-side domain engine. All state mutations are
// serialized by mu; network calls run outside the lock and their results
// are applied idempotently.
type Engine struct {
	mu sync.Mutex

	ctrl       *session.Controller
	library    *workout.Library
	custom     []workout.Exercise
	history    []workout.Workout
	stats      stats.WorkoutStats
	agg        stats.Aggregator
	level      progression.Level
	tracker    *progression.Tracker
	settings   settings.Settings
	challenges []challenge.Challenge
	membership *challenge.Membership
	auth       store.AuthState
	outbox     reconcile.Outbox

	remote     RemoteAPI
	reconciler *reconcile.Reconciler
	persister  *store.Persister
	metrics    *metrics.Manager
	log        *logrus.Entry

	now         func() time.Time
	newID       func() string
	workoutXP   int
	manualLogXP int

	// background uploads
	wg     sync.WaitGroup
	bg     context.Context
	cancel context.CancelFunc
}

// New creates an Engine and restores persisted state, if a persister is
// configured.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	e := &Engine{
		library:     workout.DefaultLibrary(),
		level:       progression.NewLevel(),
		settings:    settings.Default(),
		membership:  challenge.NewMembership(nil),
		log:         logrus.WithField("component", "engine"),
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
		workoutXP:   DefaultWorkoutXP,
		manualLogXP: DefaultManualLogXP,
	}
	for _, o := range opts {
		o(e)
	}
	if e.tracker == nil {
		e.tracker = progression.NewTracker(nil)
	}
	e.ctrl = session.NewController(session.WithClock(e.now), session.WithIDGenerator(e.newID))
	e.bg, e.cancel = context.WithCancel(context.Background())

	if e.remote != nil {
		e.reconciler = reconcile.New(e.remote, syncLocal{e},
			reconcile.WithLogger(e.log.WithField("component", "reconcile")),
			reconcile.WithMetrics(e.metrics),
		)
	}

	if err := e.restore(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Close drains background uploads and writes a final snapshot.
func (e *Engine) Close(ctx context.Context) error {
	e.wg.Wait()
	e.cancel()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveLocked(ctx)
}

// Wait blocks until every background upload has finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

func (e *Engine) restore(ctx context.Context) error {
	if e.persister == nil {
		e.recomputeLocked()
		return nil
	}

	auth, err := e.persister.LoadAuth(ctx)
	if err != nil {
		return fmt.Errorf("load auth state: %w", err)
	}
	if auth != nil {
		e.auth = *auth
	}

	st, err := e.persister.LoadApp(ctx)
	if err != nil {
		return fmt.Errorf("load app state: %w", err)
	}
	if st == nil {
		e.recomputeLocked()
		return nil
	}

	for _, ex := range st.Exercises {
		if err := e.library.Add(ex); err == nil {
			e.custom = append(e.custom, ex)
		}
	}

	e.history = workout.CloneHistory(st.WorkoutHistory)
	for i := range e.history {
		e.history[i].Normalize()
	}
	workout.SortNewestFirst(e.history)

	e.settings = st.Settings.Normalize()
	e.level = st.UserLevel
	e.level.Normalize()
	e.tracker.Restore(st.Achievements, st.UnlockedAchievements)
	e.challenges = st.Challenges
	e.membership = challenge.NewMembership(st.JoinedChallengeIDs)
	e.ctrl.Restore(st.CurrentWorkout, st.Cursor)
	e.outbox = st.Outbox.Clone()

	// Body weight logs are the only part of stats not derived from history.
	e.stats = st.Stats
	e.recomputeLocked()

	e.log.WithFields(logrus.Fields{
		"workouts": len(e.history),
		"level":    e.level.Level,
	}).Debug("restored state")
	return nil
}

func (e *Engine) saveLocked(ctx context.Context) error {
	if e.persister == nil {
		return nil
	}
	st := store.AppState{
		WorkoutHistory:       workout.CloneHistory(e.history),
		Exercises:            e.custom,
		Settings:             e.settings,
		Stats:                e.stats,
		Achievements:         e.tracker.Achievements(),
		UserLevel:            e.level,
		Challenges:           e.challenges,
		UnlockedAchievements: e.tracker.UnlockedIDs(),
		JoinedChallengeIDs:   e.membership.IDs(),
		CurrentWorkout:       e.ctrl.Current(),
		Cursor:               e.ctrl.Cursor(),
		Outbox:               e.outbox.Clone(),
	}
	if err := e.persister.SaveApp(ctx, st); err != nil {
		e.log.WithError(err).Error("saving app state failed")
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (e *Engine) recomputeLocked() {
	e.stats = e.agg.Recompute(e.history, e.library, e.stats)
	if e.metrics != nil {
		e.metrics.GaugeHistorySize.Set(float64(len(e.history)))
	}
}
