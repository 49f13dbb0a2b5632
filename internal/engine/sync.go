package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/liftlog/internal/reconcile"
	"github.com/abhisek/liftlog/internal/remote"
	"github.com/abhisek/liftlog/internal/settings"
	"github.com/abhisek/liftlog/internal/workout"
)

// Sync runs one reconciliation pass against the remote.
func (e *Engine) Sync(ctx context.Context) (reconcile.Result, error) {
	if err := e.requireOnline(); err != nil {
		return reconcile.Result{}, err
	}
	return e.reconciler.Sync(ctx)
}

// Syncing reports whether a sync pass is running.
func (e *Engine) Syncing() bool {
	return e.reconciler != nil && e.reconciler.Running()
}

// uploadAsync sends w to the remote in the background. On success the
// local copy is marked synced; on failure it stays unsynced and is
// retried by the next Sync.
func (e *Engine) uploadAsync(w workout.Workout) {
	e.background("upload workout", w.ID, func(ctx context.Context) error {
		if _, err := e.remote.CreateWorkout(ctx, w); err != nil {
			if e.metrics != nil {
				e.metrics.CounterUploadFailures.Inc()
			}
			return err
		}
		if e.metrics != nil {
			e.metrics.CounterWorkoutsUploaded.Inc()
		}
		syncLocal{e}.ApplyMerge(reconcile.Merge{ConfirmSynced: []string{w.ID}})
		return nil
	})
}

// background runs fn on its own goroutine, tracked by e.wg. Failures are
// logged; a 401 forces a logout.
func (e *Engine) background(op, id string, fn func(ctx context.Context) error) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		err := fn(e.bg)
		switch {
		case err == nil:
		case errors.Is(err, remote.ErrUnauthorized):
			e.ForceLogout()
		case errors.Is(err, context.Canceled):
		default:
			e.log.WithError(err).WithField("id", id).Warn(op + " failed")
		}
	}()
}

// syncLocal exposes the engine to the reconciler.
type syncLocal struct{ e *Engine }

var _ reconcile.Local = syncLocal{}

func (l syncLocal) History() []workout.Workout {
	l.e.mu.Lock()
	defer l.e.mu.Unlock()
	return workout.CloneHistory(l.e.history)
}

func (l syncLocal) ApplyMerge(m reconcile.Merge) int {
	e := l.e
	e.mu.Lock()
	defer e.mu.Unlock()

	// A confirmed upload that is no longer in history was deleted while
	// the request was in flight; the remote copy needs a delete too.
	tombstoned := 0
	for _, id := range m.ConfirmSynced {
		if workout.IndexOf(e.history, id) < 0 && !e.outbox.Tombstoned(id) {
			e.outbox.AddDelete(id)
			tombstoned++
		}
	}
	m.Added = slices.DeleteFunc(slices.Clone(m.Added), func(w workout.Workout) bool {
		return e.outbox.Tombstoned(w.ID)
	})

	history, changed := m.Apply(e.history)
	if changed > 0 {
		e.history = history
		e.recomputeLocked()
		// Pulled workouts can cross achievement thresholds but never grant XP.
		e.tracker.Check(e.stats, e.now())
	}
	if changed > 0 || tombstoned > 0 {
		if err := e.saveLocked(e.bg); err != nil {
			e.log.WithError(err).Warn("saving merged history failed")
		}
	}
	return changed
}

func (l syncLocal) Outbox() reconcile.Outbox {
	l.e.mu.Lock()
	defer l.e.mu.Unlock()
	return l.e.outbox.Clone()
}

func (l syncLocal) ClearOutbox(done reconcile.Outbox) {
	l.e.clearOutbox(done)
}

func (l syncLocal) Settings() settings.Settings {
	l.e.mu.Lock()
	defer l.e.mu.Unlock()
	return l.e.settings
}

func (l syncLocal) ApplySettings(s settings.Settings) bool {
	e := l.e
	e.mu.Lock()
	defer e.mu.Unlock()

	if s == e.settings {
		return false
	}
	e.settings = s
	if err := e.saveLocked(e.bg); err != nil {
		e.log.WithError(err).Warn("saving remote settings failed")
	}
	return true
}

// ForceLogout is called by the reconciler, which records the metric
// itself.
func (l syncLocal) ForceLogout() {
	l.e.dropCredentials()
}

// clearOutbox drops acknowledged deletes and updates and saves.
func (e *Engine) clearOutbox(done reconcile.Outbox) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.outbox.Clear(done)
	if err := e.saveLocked(e.bg); err != nil {
		e.log.WithError(err).Warn("saving outbox failed")
	}
}

// PendingRemoteChanges returns the deletes and edits not yet acknowledged
// by the remote.
func (e *Engine) PendingRemoteChanges() reconcile.Outbox {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.outbox.Clone()
}

func (e *Engine) remoteCall(ctx context.Context, op string, fn func(ctx context.Context, api RemoteAPI) error) error {
	if err := e.requireOnline(); err != nil {
		return err
	}
	err := fn(ctx, e.remote)
	if errors.Is(err, remote.ErrUnauthorized) {
		e.ForceLogout()
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
