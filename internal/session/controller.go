package session

import (
	"math"

	"github.com/abhisek/liftlog/internal/workout"
)

// Start begins a new session. Callers must finish or cancel an active
// session first; it is never cancelled implicitly.
func (c *Controller) Start(name string) (*workout.Workout, error) {
	if c.current != nil {
		return nil, ErrSessionActive
	}
	c.current = &workout.Workout{
		ID:        c.newID(),
		Name:      name,
		Exercises: []workout.Entry{},
		StartTime: c.now(),
	}
	c.cursor = Cursor{}
	return c.Current(), nil
}

// AddExercise appends an entry with one empty set.
func (c *Controller) AddExercise(ex workout.Exercise) {
	if c.current == nil {
		return
	}
	c.current.Exercises = append(c.current.Exercises, workout.Entry{
		ExerciseID: ex.ID,
		Sets:       []workout.Set{{}},
	})
}

// RemoveExercise removes the first entry referencing exerciseID.
func (c *Controller) RemoveExercise(exerciseID string) {
	if c.current == nil {
		return
	}
	for i, e := range c.current.Exercises {
		if e.ExerciseID == exerciseID {
			c.current.Exercises = append(c.current.Exercises[:i], c.current.Exercises[i+1:]...)
			break
		}
	}
	c.clampCursor()
}

// RecordSet partially updates one set in place. Invalid indices are ignored.
func (c *Controller) RecordSet(exerciseIndex, setIndex int, upd SetUpdate) {
	s := c.set(exerciseIndex, setIndex)
	if s == nil {
		return
	}
	if upd.Reps != nil {
		s.Reps = max(*upd.Reps, 0)
	}
	if upd.Weight != nil {
		w := math.Max(*upd.Weight, 0)
		s.Weight = &w
	}
	if upd.Completed != nil {
		s.Completed = *upd.Completed
	}
}

// AddSet appends an empty set to an entry.
func (c *Controller) AddSet(exerciseIndex int) {
	if !c.validExercise(exerciseIndex) {
		return
	}
	e := &c.current.Exercises[exerciseIndex]
	e.Sets = append(e.Sets, workout.Set{})
}

// RemoveSet deletes one set from an entry.
func (c *Controller) RemoveSet(exerciseIndex, setIndex int) {
	if c.set(exerciseIndex, setIndex) == nil {
		return
	}
	e := &c.current.Exercises[exerciseIndex]
	e.Sets = append(e.Sets[:setIndex], e.Sets[setIndex+1:]...)
	if c.cursor.Exercise == exerciseIndex && c.cursor.Set >= len(e.Sets) {
		c.cursor.Set = max(len(e.Sets)-1, 0)
	}
}

// NextExercise moves the cursor forward by one exercise.
func (c *Controller) NextExercise() {
	if c.current == nil {
		return
	}
	if c.cursor.Exercise < len(c.current.Exercises)-1 {
		c.cursor.Exercise++
	}
	c.cursor.Set = 0
}

// PrevExercise moves the cursor back by one exercise.
func (c *Controller) PrevExercise() {
	if c.current == nil {
		return
	}
	if c.cursor.Exercise > 0 {
		c.cursor.Exercise--
	}
	c.cursor.Set = 0
}

// Finish stamps the end time and duration and returns the frozen workout.
// The controller goes back to idle.
func (c *Controller) Finish() (workout.Workout, error) {
	if c.current == nil {
		return workout.Workout{}, ErrNoActiveSession
	}
	end := c.now()
	minutes := int(math.Round(end.Sub(c.current.StartTime).Minutes()))
	c.current.EndTime = &end
	c.current.Duration = &minutes

	done := c.current.Clone()
	c.current = nil
	c.cursor = Cursor{}
	return done, nil
}

// Cancel discards the current session without side effects.
func (c *Controller) Cancel() {
	c.current = nil
	c.cursor = Cursor{}
}

func (c *Controller) validExercise(i int) bool {
	return c.current != nil && i >= 0 && i < len(c.current.Exercises)
}

func (c *Controller) set(exerciseIndex, setIndex int) *workout.Set {
	if !c.validExercise(exerciseIndex) {
		return nil
	}
	sets := c.current.Exercises[exerciseIndex].Sets
	if setIndex < 0 || setIndex >= len(sets) {
		return nil
	}
	return &c.current.Exercises[exerciseIndex].Sets[setIndex]
}

func (c *Controller) clampCursor() {
	n := len(c.current.Exercises)
	c.cursor.Exercise = min(c.cursor.Exercise, n-1)
	if c.cursor.Exercise < 0 {
		c.cursor.Exercise = 0
	}
	sets := 0
	if n > 0 {
		sets = len(c.current.Exercises[c.cursor.Exercise].Sets)
	}
	if c.cursor.Set >= sets || c.cursor.Set < 0 {
		c.cursor.Set = max(sets-1, 0)
	}
}
