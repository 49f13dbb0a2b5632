package workout

import (
	"fmt"
	"slices"
)

// Exercise is immutable reference data. Workouts refer to it by ID only.
type Exercise struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	MuscleGroups []string `json:"muscleGroups"`
	Icon         string   `json:"icon,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// Library is the ordered exercise registry. Insertion order is the
// library's natural ordering and is used for deterministic tie-breaks.
type Library struct {
	exercises []Exercise
	index     map[string]int
}

// NewLibrary builds a library from exercises, keeping the first occurrence
// of any duplicated ID.
func NewLibrary(exercises []Exercise) *Library {
	lib := &Library{index: make(map[string]int, len(exercises))}
	for _, ex := range exercises {
		_ = lib.Add(ex)
	}
	return lib
}

// DefaultLibrary returns a library seeded with the built-in exercises.
func DefaultLibrary() *Library {
	return NewLibrary(seedExercises())
}

// Add appends a custom exercise. IDs must be unique.
func (l *Library) Add(ex Exercise) error {
	if ex.ID == "" {
		return fmt.Errorf("exercise id is required")
	}
	if _, exists := l.index[ex.ID]; exists {
		return fmt.Errorf("exercise %q already exists", ex.ID)
	}
	ex.MuscleGroups = slices.Clone(ex.MuscleGroups)
	l.index[ex.ID] = len(l.exercises)
	l.exercises = append(l.exercises, ex)
	return nil
}

// Get returns the exercise with the given ID.
func (l *Library) Get(id string) (Exercise, bool) {
	i, ok := l.index[id]
	if !ok {
		return Exercise{}, false
	}
	return l.exercises[i], true
}

// Index returns the natural position of id, or -1 if unknown.
func (l *Library) Index(id string) int {
	if l == nil {
		return -1
	}
	i, ok := l.index[id]
	if !ok {
		return -1
	}
	return i
}

// All returns a copy of all exercises in natural order.
func (l *Library) All() []Exercise {
	return slices.Clone(l.exercises)
}

// ByCategory returns the exercises of one category in natural order.
func (l *Library) ByCategory(c Category) []Exercise {
	var out []Exercise
	for _, ex := range l.exercises {
		if ex.Category == c {
			out = append(out, ex)
		}
	}
	return out
}

// Len returns the number of exercises.
func (l *Library) Len() int {
	return len(l.exercises)
}
