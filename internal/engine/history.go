package engine

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/liftlog/internal/progression"
	"github.com/abhisek/liftlog/internal/reconcile"
	"github.com/abhisek/liftlog/internal/remote"
	"github.com/abhisek/liftlog/internal/settings"
	"github.com/abhisek/liftlog/internal/stats"
	"github.com/abhisek/liftlog/internal/workout"
)

// History returns a copy of the workout history, newest first.
func (e *Engine) History() []workout.Workout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return workout.CloneHistory(e.history)
}

// Workout returns one workout from history.
func (e *Engine) Workout(id string) (workout.Workout, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := workout.IndexOf(e.history, id)
	if i < 0 {
		return workout.Workout{}, fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	return e.history[i].Clone(), nil
}

// DeleteWorkout removes a workout from history. A synced workout is
// tombstoned until the remote acknowledges the delete, so a sync never
// pulls it back; the delete is sent in the background when online and
// replayed by Sync otherwise.
func (e *Engine) DeleteWorkout(ctx context.Context, id string) error {
	e.mu.Lock()
	i := workout.IndexOf(e.history, id)
	if i < 0 {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	synced := e.history[i].Synced
	e.history = slices.Delete(e.history, i, i+1)
	if synced {
		e.outbox.AddDelete(id)
	} else {
		delete(e.outbox.Updates, id)
	}
	e.recomputeLocked()
	// Dropping an isolated recent workout can lengthen the streak.
	e.tracker.Check(e.stats, e.now())
	err := e.saveLocked(ctx)
	online := e.onlineLocked()
	e.mu.Unlock()

	if synced && online {
		e.background("delete workout", id, func(ctx context.Context) error {
			if err := e.remote.DeleteWorkout(ctx, id); err != nil && !remote.IsNotFound(err) {
				return err
			}
			e.clearOutbox(reconcile.Outbox{Deletes: []string{id}})
			return nil
		})
	}
	return err
}

// UpdateWorkout replaces a workout in history, keeping its synced flag.
// The edit stays pending until the remote accepts it: synced workouts are
// PUT in the background when online, and Sync replays whatever is left.
func (e *Engine) UpdateWorkout(ctx context.Context, w workout.Workout) error {
	w = w.Clone()
	w.Normalize()

	e.mu.Lock()
	i := workout.IndexOf(e.history, w.ID)
	if i < 0 {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrWorkoutNotFound, w.ID)
	}
	w.Synced = e.history[i].Synced
	e.history[i] = w
	rev := e.outbox.AddUpdate(w.ID)
	workout.SortNewestFirst(e.history)
	e.recomputeLocked()
	e.tracker.Check(e.stats, e.now())
	err := e.saveLocked(ctx)
	online := e.onlineLocked()
	e.mu.Unlock()

	if w.Synced && online {
		e.background("update workout", w.ID, func(ctx context.Context) error {
			if err := e.remote.UpdateWorkout(ctx, w); err != nil {
				return err
			}
			e.clearOutbox(reconcile.Outbox{Updates: map[string]uint64{w.ID: rev}})
			return nil
		})
	}
	return err
}

// Stats returns a copy of the aggregated statistics.
func (e *Engine) Stats() stats.WorkoutStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats.Clone()
}

// AddBodyWeight records a body weight measurement. A zero at means now.
func (e *Engine) AddBodyWeight(ctx context.Context, weight float64, at time.Time) error {
	if weight <= 0 {
		return fmt.Errorf("body weight must be positive, got %v", weight)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if at.IsZero() {
		at = e.now()
	}
	e.stats.BodyWeightLogs = append(e.stats.BodyWeightLogs, stats.BodyWeightLog{Date: at, Weight: weight})
	slices.SortStableFunc(e.stats.BodyWeightLogs, func(a, b stats.BodyWeightLog) int {
		return a.Date.Compare(b.Date)
	})
	return e.saveLocked(ctx)
}

// Level returns the user's level.
func (e *Engine) Level() progression.Level {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level
}

// Achievements returns every achievement with its unlock state.
func (e *Engine) Achievements() []progression.Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Achievements()
}

// PendingAchievement returns the most recent unlock notification.
func (e *Engine) PendingAchievement() (progression.Achievement, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Pending()
}

// DismissAchievement clears the unlock notification.
func (e *Engine) DismissAchievement() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.Dismiss()
}

// Library returns all exercises, built-in then custom.
func (e *Engine) Library() []workout.Exercise {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.library.All()
}

// AddCustomExercise registers a user-defined exercise.
func (e *Engine) AddCustomExercise(ctx context.Context, ex workout.Exercise) error {
	if !ex.Category.Valid() {
		return fmt.Errorf("invalid category %q", ex.Category)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.library.Add(ex); err != nil {
		return err
	}
	e.custom = append(e.custom, ex)
	return e.saveLocked(ctx)
}

// Settings returns the user's preferences.
func (e *Engine) Settings() settings.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// UpdateSettings validates and stores s, pushing it to the remote in the
// background.
func (e *Engine) UpdateSettings(ctx context.Context, s settings.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.settings = s
	err := e.saveLocked(ctx)
	online := e.onlineLocked()
	e.mu.Unlock()

	if online {
		e.background("push settings", "settings", func(ctx context.Context) error {
			return e.remote.PutSettings(ctx, s)
		})
	}
	return err
}
