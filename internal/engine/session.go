package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/liftlog/internal/metrics"
	"github.com/abhisek/liftlog/internal/progression"
	"github.com/abhisek/liftlog/internal/session"
	"github.com/abhisek/liftlog/internal/workout"
)

// FinishResult describes what adding a workout to history produced.
type FinishResult struct {
	Workout      workout.Workout
	XPGranted    int
	LevelsGained int
	Unlocked     []progression.Achievement
}

// SessionState returns the controller state, a copy of the current
// workout and the cursor.
func (e *Engine) SessionState() (session.State, *workout.Workout, session.Cursor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.State(), e.ctrl.Current(), e.ctrl.Cursor()
}

// StartSession begins a new workout.
func (e *Engine) StartSession(ctx context.Context, name string) (*workout.Workout, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	w, err := e.ctrl.Start(name)
	if err != nil {
		return nil, err
	}
	return w, e.saveLocked(ctx)
}

// AddExercise appends a library exercise to the current workout.
func (e *Engine) AddExercise(ctx context.Context, exerciseID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ex, ok := e.library.Get(exerciseID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExercise, exerciseID)
	}
	return e.mutateSessionLocked(ctx, func(c *session.Controller) { c.AddExercise(ex) })
}

// RemoveExercise removes the first entry for exerciseID.
func (e *Engine) RemoveExercise(ctx context.Context, exerciseID string) error {
	return e.mutateSession(ctx, func(c *session.Controller) { c.RemoveExercise(exerciseID) })
}

// RecordSet partially updates one set.
func (e *Engine) RecordSet(ctx context.Context, exerciseIndex, setIndex int, upd session.SetUpdate) error {
	return e.mutateSession(ctx, func(c *session.Controller) { c.RecordSet(exerciseIndex, setIndex, upd) })
}

// AddSet appends an empty set to an exercise.
func (e *Engine) AddSet(ctx context.Context, exerciseIndex int) error {
	return e.mutateSession(ctx, func(c *session.Controller) { c.AddSet(exerciseIndex) })
}

// RemoveSet deletes one set.
func (e *Engine) RemoveSet(ctx context.Context, exerciseIndex, setIndex int) error {
	return e.mutateSession(ctx, func(c *session.Controller) { c.RemoveSet(exerciseIndex, setIndex) })
}

// NextExercise advances the cursor.
func (e *Engine) NextExercise(ctx context.Context) error {
	return e.mutateSession(ctx, (*session.Controller).NextExercise)
}

// PrevExercise moves the cursor back.
func (e *Engine) PrevExercise(ctx context.Context) error {
	return e.mutateSession(ctx, (*session.Controller).PrevExercise)
}

// CancelSession discards the current workout without side effects.
func (e *Engine) CancelSession(ctx context.Context) error {
	return e.mutateSession(ctx, (*session.Controller).Cancel)
}

// FinishSession freezes the current workout, prepends it to history,
// recomputes stats, grants XP if any set was completed, evaluates
// achievements and uploads the workout in the background.
func (e *Engine) FinishSession(ctx context.Context) (FinishResult, error) {
	e.mu.Lock()
	w, err := e.ctrl.Finish()
	if err != nil {
		e.mu.Unlock()
		return FinishResult{}, err
	}

	xp := 0
	if w.HasCompletedSet() {
		xp = e.workoutXP
	}
	res := e.addToHistoryLocked(w, xp, metrics.SourceSession)
	saveErr := e.saveLocked(ctx)
	online := e.onlineLocked()
	e.mu.Unlock()

	if online {
		e.uploadAsync(res.Workout)
	}
	return res, saveErr
}

// LogWorkout adds a fully formed workout directly to history, skipping
// the active session. Missing id and start time are filled in.
func (e *Engine) LogWorkout(ctx context.Context, w workout.Workout) (FinishResult, error) {
	w = w.Clone()
	w.Normalize()
	w.Synced = false

	e.mu.Lock()
	if w.ID == "" {
		w.ID = e.newID()
	}
	if w.StartTime.IsZero() {
		w.StartTime = e.now()
	}
	if w.EndTime == nil {
		end := w.StartTime
		if w.Duration != nil {
			end = end.Add(minutes(*w.Duration))
		}
		w.EndTime = &end
	}
	if workout.IndexOf(e.history, w.ID) >= 0 {
		e.mu.Unlock()
		return FinishResult{}, fmt.Errorf("workout %s already exists", w.ID)
	}

	res := e.addToHistoryLocked(w, e.manualLogXP, metrics.SourceManual)
	saveErr := e.saveLocked(ctx)
	online := e.onlineLocked()
	e.mu.Unlock()

	if online {
		e.uploadAsync(res.Workout)
	}
	return res, saveErr
}

func (e *Engine) addToHistoryLocked(w workout.Workout, xp int, source string) FinishResult {
	e.history = append([]workout.Workout{w}, e.history...)
	workout.SortNewestFirst(e.history)
	e.recomputeLocked()

	res := FinishResult{Workout: w.Clone(), XPGranted: max(xp, 0)}
	res.LevelsGained = e.level.AddXP(xp)
	res.Unlocked = e.tracker.Check(e.stats, e.now())

	if e.metrics != nil {
		e.metrics.CounterWorkoutsRecorded.WithLabelValues(source).Inc()
		e.metrics.CounterXPGranted.Add(float64(res.XPGranted))
		e.metrics.CounterLevelUps.Add(float64(res.LevelsGained))
		e.metrics.CounterAchievementsUnlocked.Add(float64(len(res.Unlocked)))
	}

	log := e.log.WithFields(logrus.Fields{
		"workout_id": w.ID,
		"source":     source,
		"xp":         res.XPGranted,
	})
	for _, a := range res.Unlocked {
		log = log.WithField("unlocked_"+a.ID, true)
	}
	log.Info("workout added to history")
	return res
}

func (e *Engine) mutateSession(ctx context.Context, fn func(*session.Controller)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mutateSessionLocked(ctx, fn)
}

// mutateSessionLocked runs fn and persists the in-progress workout. Calls
// without an active session are silent no-ops.
func (e *Engine) mutateSessionLocked(ctx context.Context, fn func(*session.Controller)) error {
	if e.ctrl.State() != session.StateActive {
		return nil
	}
	fn(e.ctrl)
	return e.saveLocked(ctx)
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
