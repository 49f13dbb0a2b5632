package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/abhisek/liftlog/internal/metrics"
	"github.com/abhisek/liftlog/internal/remote"
	"github.com/abhisek/liftlog/internal/settings"
	"github.com/abhisek/liftlog/internal/workout"
)

// ErrSyncInProgress is returned when Sync is called while another pass
// is still running.
var ErrSyncInProgress = errors.New("sync already in progress")

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=reconcile_test

// Remote is the part of the remote API a sync pass uses.
type Remote interface {
	ListWorkouts(ctx context.Context) ([]workout.Workout, error)
	CreateWorkout(ctx context.Context, w workout.Workout) (workout.Workout, error)
	UpdateWorkout(ctx context.Context, w workout.Workout) error
	DeleteWorkout(ctx context.Context, id string) error
	GetSettings(ctx context.Context) (*settings.Settings, error)
	PutSettings(ctx context.Context, s settings.Settings) error
}

// Local is the engine side of a sync pass.
type Local interface {
	// History returns a copy of the local workout history.
	History() []workout.Workout
	// ApplyMerge applies m and returns how many workouts changed.
	ApplyMerge(m Merge) int
	// Settings returns the local settings.
	Settings() settings.Settings
	// ApplySettings replaces the local settings, reporting whether they
	// differed.
	ApplySettings(s settings.Settings) bool
	// Outbox returns a copy of the pending remote deletes and updates.
	Outbox() Outbox
	// ClearOutbox drops the entries the remote has acknowledged.
	ClearOutbox(done Outbox)
	// ForceLogout drops credentials after the remote rejected them.
	ForceLogout()
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the log entry used for warnings.
func WithLogger(log *logrus.Entry) Option {
	return func(r *Reconciler) { r.log = log }
}

// WithMetrics records sync activity on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(r *Reconciler) { r.metrics = m }
}

// Reconciler merges local workouts and settings with the remote store.
// At most one pass runs at a time.
type Reconciler struct {
	remote  Remote
	local   Local
	log     *logrus.Entry
	metrics *metrics.Manager

	running atomic.Bool
}

// New creates a Reconciler.
func New(rem Remote, local Local, opts ...Option) *Reconciler {
	r := &Reconciler{
		remote: rem,
		local:  local,
		log:    logrus.WithField("component", "reconcile"),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Running reports whether a pass is in flight.
func (r *Reconciler) Running() bool {
	return r.running.Load()
}

// Sync runs one reconciliation pass. Pending local deletes and edits are
// replayed first. A 401 from any call forces a local logout and aborts
// the pass. Other failures abort only the phase they
// occur in; per-workout upload failures are collected and the remaining
// uploads still run. Unsynced workouts are retried on the next pass.
func (r *Reconciler) Sync(ctx context.Context) (Result, error) {
	if !r.running.CompareAndSwap(false, true) {
		return Result{}, ErrSyncInProgress
	}
	defer r.running.Store(false)

	start := time.Now()
	var res Result

	werr := r.syncWorkouts(ctx, &res)
	if errors.Is(werr, remote.ErrUnauthorized) {
		r.logout()
		r.observe(start, metrics.SyncUnauthorized)
		return res, werr
	}

	serr := r.syncSettings(ctx, &res)
	if errors.Is(serr, remote.ErrUnauthorized) {
		r.logout()
		r.observe(start, metrics.SyncUnauthorized)
		return res, multierr.Append(werr, serr)
	}

	err := multierr.Append(werr, serr)
	switch {
	case err == nil:
		r.observe(start, metrics.SyncOK)
	case res.Mutations() > 0:
		r.observe(start, metrics.SyncPartial)
	default:
		r.observe(start, metrics.SyncFailed)
	}
	return res, err
}

func (r *Reconciler) syncWorkouts(ctx context.Context, res *Result) error {
	pending, flushErr := r.flushOutbox(ctx, res)
	if errors.Is(flushErr, remote.ErrUnauthorized) {
		return flushErr
	}

	remoteList, err := r.remote.ListWorkouts(ctx)
	if err != nil {
		return multierr.Append(flushErr, fmt.Errorf("list remote workouts: %w", err))
	}
	remoteIDs := make(map[string]bool, len(remoteList))
	for _, w := range remoteList {
		remoteIDs[w.ID] = true
	}

	local := r.local.History()
	localIDs := make(map[string]bool, len(local))

	var (
		m       Merge
		uploads []workout.Workout
	)
	for _, w := range local {
		localIDs[w.ID] = true
		switch {
		case remoteIDs[w.ID]:
			if !w.Synced {
				m.ConfirmSynced = append(m.ConfirmSynced, w.ID)
			}
		case w.Synced:
			m.Removed = append(m.Removed, w.ID)
		default:
			uploads = append(uploads, w)
		}
	}

	uploadErr := flushErr
	for _, w := range uploads {
		if _, err := r.remote.CreateWorkout(ctx, w); err != nil {
			if errors.Is(err, remote.ErrUnauthorized) {
				return fmt.Errorf("upload workout %s: %w", w.ID, err)
			}
			r.log.WithError(err).WithField("workout_id", w.ID).Warn("upload failed, will retry on next sync")
			uploadErr = multierr.Append(uploadErr, fmt.Errorf("upload workout %s: %w", w.ID, err))
			res.UploadFailed++
			r.count(func(mm *metrics.Manager) { mm.CounterUploadFailures.Inc() })
			continue
		}
		m.ConfirmSynced = append(m.ConfirmSynced, w.ID)
		res.Uploaded++
		r.count(func(mm *metrics.Manager) { mm.CounterWorkoutsUploaded.Inc() })
	}

	for _, w := range remoteList {
		if !localIDs[w.ID] && w.ID != "" && !pending.Tombstoned(w.ID) {
			w.Synced = true
			m.Added = append(m.Added, w)
		}
	}

	if !m.Empty() {
		res.Changes = r.local.ApplyMerge(m)
	}
	res.Confirmed = len(m.ConfirmSynced) - res.Uploaded
	res.Pulled = len(m.Added)
	res.Dropped = len(m.Removed)
	r.count(func(mm *metrics.Manager) {
		mm.CounterWorkoutsPulled.Add(float64(res.Pulled))
		mm.CounterWorkoutsDropped.Add(float64(res.Dropped))
	})
	return uploadErr
}

// flushOutbox sends pending deletes and updates. A 404 counts as done:
// the remote no longer holds the workout. It returns what is still
// pending afterwards.
func (r *Reconciler) flushOutbox(ctx context.Context, res *Result) (Outbox, error) {
	ob := r.local.Outbox()
	if ob.Empty() {
		return ob, nil
	}
	history := r.local.History()

	var (
		done Outbox
		errs error
	)
	finish := func() (Outbox, error) {
		if !done.Empty() {
			r.local.ClearOutbox(done)
		}
		left := ob.Clone()
		left.Clear(done)
		return left, errs
	}

	for _, id := range ob.Deletes {
		err := r.remote.DeleteWorkout(ctx, id)
		switch {
		case err == nil || remote.IsNotFound(err):
			done.Deletes = append(done.Deletes, id)
			res.Deleted++
		case errors.Is(err, remote.ErrUnauthorized):
			errs = fmt.Errorf("delete workout %s: %w", id, err)
			return finish()
		default:
			r.log.WithError(err).WithField("workout_id", id).Warn("delete failed, will retry on next sync")
			errs = multierr.Append(errs, fmt.Errorf("delete workout %s: %w", id, err))
		}
	}

	for _, id := range ob.UpdateIDs() {
		i := workout.IndexOf(history, id)
		if done.Updates == nil {
			done.Updates = make(map[string]uint64)
		}
		if i < 0 {
			done.Updates[id] = ob.Updates[id]
			continue
		}
		err := r.remote.UpdateWorkout(ctx, history[i])
		switch {
		case err == nil:
			done.Updates[id] = ob.Updates[id]
			res.Updated++
		case remote.IsNotFound(err):
			// Never uploaded, or deleted remotely; the partition below
			// decides which.
			done.Updates[id] = ob.Updates[id]
		case errors.Is(err, remote.ErrUnauthorized):
			errs = fmt.Errorf("update workout %s: %w", id, err)
			return finish()
		default:
			r.log.WithError(err).WithField("workout_id", id).Warn("update failed, will retry on next sync")
			errs = multierr.Append(errs, fmt.Errorf("update workout %s: %w", id, err))
		}
	}
	return finish()
}

func (r *Reconciler) syncSettings(ctx context.Context, res *Result) error {
	rs, err := r.remote.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("fetch remote settings: %w", err)
	}
	if rs != nil {
		res.SettingsPulled = r.local.ApplySettings(rs.Normalize())
		return nil
	}
	if err := r.remote.PutSettings(ctx, r.local.Settings()); err != nil {
		return fmt.Errorf("push settings: %w", err)
	}
	res.SettingsPushed = true
	return nil
}

func (r *Reconciler) logout() {
	r.log.Warn("remote rejected credentials, logging out")
	r.local.ForceLogout()
	r.count(func(mm *metrics.Manager) { mm.CounterForcedLogouts.Inc() })
}

func (r *Reconciler) observe(start time.Time, result string) {
	r.count(func(mm *metrics.Manager) {
		mm.CounterSyncRuns.WithLabelValues(result).Inc()
		mm.HistSyncDuration.Observe(time.Since(start).Seconds())
	})
}

func (r *Reconciler) count(fn func(*metrics.Manager)) {
	if r.metrics != nil {
		fn(r.metrics)
	}
}
