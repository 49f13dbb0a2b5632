package workout

import (
	"slices"
	"time"
)

// Set is one performed unit of an exercise.
type Set struct {
	Reps      int      `json:"reps"`
	Weight    *float64 `json:"weight,omitempty"`
	Duration  *int     `json:"duration,omitempty"` // seconds
	RestTime  *int     `json:"restTime,omitempty"` // seconds
	Completed bool     `json:"completed"`
}

// WeightOrZero returns the set weight, treating a missing weight as zero.
func (s Set) WeightOrZero() float64 {
	if s.Weight == nil || *s.Weight < 0 {
		return 0
	}
	return *s.Weight
}

// RepsOrZero returns the rep count, treating negative values as zero.
func (s Set) RepsOrZero() int {
	if s.Reps < 0 {
		return 0
	}
	return s.Reps
}

// Volume is weight times reps.
func (s Set) Volume() float64 {
	return s.WeightOrZero() * float64(s.RepsOrZero())
}

// Entry is an exercise reference plus its ordered sets.
type Entry struct {
	ExerciseID string `json:"exerciseId"`
	Sets       []Set  `json:"sets"`
	Notes      string `json:"notes,omitempty"`
}

// Workout is one exercise session. It is only mutated while it is the
// current session; once finished it is immutable history.
type Workout struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Exercises []Entry    `json:"exercises"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  *int       `json:"duration,omitempty"` // minutes
	Mood      *int       `json:"mood,omitempty"`
	Energy    *int       `json:"energy,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Synced    bool       `json:"synced"`
}

// HasCompletedSet reports whether any set in the workout is completed.
func (w *Workout) HasCompletedSet() bool {
	for _, e := range w.Exercises {
		for _, s := range e.Sets {
			if s.Completed {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of w.
func (w Workout) Clone() Workout {
	out := w
	out.Exercises = make([]Entry, len(w.Exercises))
	for i, e := range w.Exercises {
		e.Sets = cloneSets(e.Sets)
		out.Exercises[i] = e
	}
	out.EndTime = clonePtr(w.EndTime)
	out.Duration = clonePtr(w.Duration)
	out.Mood = clonePtr(w.Mood)
	out.Energy = clonePtr(w.Energy)
	return out
}

// Normalize defaults malformed numeric fields instead of rejecting them:
// negative reps, weights and durations become zero.
func (w *Workout) Normalize() {
	for i := range w.Exercises {
		for j := range w.Exercises[i].Sets {
			s := &w.Exercises[i].Sets[j]
			if s.Reps < 0 {
				s.Reps = 0
			}
			if s.Weight != nil && *s.Weight < 0 {
				zero := 0.0
				s.Weight = &zero
			}
			if s.Duration != nil && *s.Duration < 0 {
				zero := 0
				s.Duration = &zero
			}
			if s.RestTime != nil && *s.RestTime < 0 {
				zero := 0
				s.RestTime = &zero
			}
		}
	}
	if w.Duration != nil && *w.Duration < 0 {
		zero := 0
		w.Duration = &zero
	}
}

// CloneHistory deep-copies a workout slice.
func CloneHistory(history []Workout) []Workout {
	if history == nil {
		return nil
	}
	out := make([]Workout, len(history))
	for i, w := range history {
		out[i] = w.Clone()
	}
	return out
}

// SortNewestFirst sorts history in place by descending StartTime.
// Equal start times keep their relative order.
func SortNewestFirst(history []Workout) {
	slices.SortStableFunc(history, func(a, b Workout) int {
		return b.StartTime.Compare(a.StartTime)
	})
}

// IndexOf returns the position of the workout with the given ID, or -1.
func IndexOf(history []Workout, id string) int {
	for i := range history {
		if history[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneSets(sets []Set) []Set {
	if sets == nil {
		return nil
	}
	out := make([]Set, len(sets))
	for i, s := range sets {
		s.Weight = clonePtr(s.Weight)
		s.Duration = clonePtr(s.Duration)
		s.RestTime = clonePtr(s.RestTime)
		out[i] = s
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
