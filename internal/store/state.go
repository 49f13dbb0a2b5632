package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/liftlog/internal/challenge"
	"github.com/abhisek/liftlog/internal/progression"
	"github.com/abhisek/liftlog/internal/reconcile"
	"github.com/abhisek/liftlog/internal/session"
	"github.com/abhisek/liftlog/internal/settings"
	"github.com/abhisek/liftlog/internal/stats"
	"github.com/abhisek/liftlog/internal/workout"
)

// CurrentVersion is written into every app snapshot.
const CurrentVersion = 1

// User identifies the signed-in account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// AuthState is the "auth" namespace.
type AuthState struct {
	User            *User  `json:"user"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// AppState is the "app" namespace.
type AppState struct {
	Version              int                       `json:"version"`
	WorkoutHistory       []workout.Workout         `json:"workoutHistory"`
	Exercises            []workout.Exercise        `json:"exercises"` // custom exercises only
	Settings             settings.Settings         `json:"settings"`
	Stats                stats.WorkoutStats        `json:"stats"`
	Achievements         []progression.Achievement `json:"achievements"`
	UserLevel            progression.Level         `json:"userLevel"`
	Challenges           []challenge.Challenge     `json:"challenges"`
	UnlockedAchievements []string                  `json:"unlockedAchievements"`
	JoinedChallengeIDs   []string                  `json:"joinedChallengeIds"`
	CurrentWorkout       *workout.Workout          `json:"currentWorkout,omitempty"`
	Cursor               session.Cursor            `json:"cursor"`
	Outbox               reconcile.Outbox          `json:"outbox"`
}

// Persister saves and loads the two namespaces, keeping a bounded history
// of snapshots per namespace.
type Persister struct {
	repo SnapshotRepo
	keep int
	now  func() time.Time
}

// NewPersister creates a Persister that keeps the keep most recent
// snapshots per namespace.
func NewPersister(repo SnapshotRepo, keep int) *Persister {
	if keep < 1 {
		keep = 1
	}
	return &Persister{repo: repo, keep: keep, now: time.Now}
}

// SaveApp writes an app snapshot and prunes older ones.
func (p *Persister) SaveApp(ctx context.Context, st AppState) error {
	st.Version = CurrentVersion
	return p.save(ctx, NamespaceApp, st)
}

// LoadApp returns the latest app snapshot, or nil if none exists.
func (p *Persister) LoadApp(ctx context.Context) (*AppState, error) {
	var st AppState
	ok, err := p.load(ctx, NamespaceApp, &st)
	if err != nil || !ok {
		return nil, err
	}
	return &st, nil
}

// SaveAuth writes an auth snapshot and prunes older ones.
func (p *Persister) SaveAuth(ctx context.Context, st AuthState) error {
	return p.save(ctx, NamespaceAuth, st)
}

// LoadAuth returns the latest auth snapshot, or nil if none exists.
func (p *Persister) LoadAuth(ctx context.Context) (*AuthState, error) {
	var st AuthState
	ok, err := p.load(ctx, NamespaceAuth, &st)
	if err != nil || !ok {
		return nil, err
	}
	return &st, nil
}

func (p *Persister) save(ctx context.Context, namespace string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", namespace, err)
	}
	snap := &Snapshot{Namespace: namespace, Timestamp: p.now().UTC(), Data: data}
	if err := p.repo.Save(ctx, snap); err != nil {
		return err
	}
	return p.repo.Prune(ctx, namespace, p.keep)
}

func (p *Persister) load(ctx context.Context, namespace string, v any) (bool, error) {
	snap, err := p.repo.Latest(ctx, namespace)
	if err != nil {
		return false, err
	}
	if snap == nil {
		return false, nil
	}
	if err := json.Unmarshal(snap.Data, v); err != nil {
		return false, fmt.Errorf("unmarshal %s snapshot: %w", namespace, err)
	}
	return true, nil
}
