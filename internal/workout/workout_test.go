package workout

import (
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func TestSet_Volume(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want float64
	}{
		{"weighted", Set{Reps: 10, Weight: ptr(20.0)}, 200},
		{"bodyweight", Set{Reps: 10}, 0},
		{"negative reps", Set{Reps: -3, Weight: ptr(20.0)}, 0},
		{"negative weight", Set{Reps: 3, Weight: ptr(-5.0)}, 0},
	}
	for _, tt := range tests {
		if got := tt.set.Volume(); got != tt.want {
			t.Errorf("%s: Volume() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWorkout_CloneIsDeep(t *testing.T) {
	end := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	w := Workout{
		ID:        "w1",
		EndTime:   &end,
		Exercises: []Entry{{ExerciseID: "squat", Sets: []Set{{Reps: 5, Weight: ptr(100.0)}}}},
	}

	c := w.Clone()
	c.Exercises[0].Sets[0].Reps = 8
	*c.Exercises[0].Sets[0].Weight = 120
	*c.EndTime = end.Add(time.Hour)

	if w.Exercises[0].Sets[0].Reps != 5 {
		t.Errorf("original reps mutated to %d", w.Exercises[0].Sets[0].Reps)
	}
	if *w.Exercises[0].Sets[0].Weight != 100 {
		t.Errorf("original weight mutated to %v", *w.Exercises[0].Sets[0].Weight)
	}
	if !w.EndTime.Equal(end) {
		t.Errorf("original end time mutated to %v", *w.EndTime)
	}
}

func TestWorkout_Normalize(t *testing.T) {
	w := Workout{
		Duration:  ptr(-1),
		Exercises: []Entry{{Sets: []Set{{Reps: -2, Weight: ptr(-10.0), RestTime: ptr(-30)}}}},
	}
	w.Normalize()

	s := w.Exercises[0].Sets[0]
	if s.Reps != 0 || *s.Weight != 0 || *s.RestTime != 0 {
		t.Errorf("set not normalized: %+v", s)
	}
	if *w.Duration != 0 {
		t.Errorf("duration = %d, want 0", *w.Duration)
	}
}

func TestWorkout_HasCompletedSet(t *testing.T) {
	w := Workout{Exercises: []Entry{{Sets: []Set{{Reps: 5}}}}}
	if w.HasCompletedSet() {
		t.Error("expected no completed set")
	}
	w.Exercises[0].Sets = append(w.Exercises[0].Sets, Set{Reps: 5, Completed: true})
	if !w.HasCompletedSet() {
		t.Error("expected a completed set")
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	history := []Workout{
		{ID: "old", StartTime: base},
		{ID: "new", StartTime: base.Add(48 * time.Hour)},
		{ID: "mid", StartTime: base.Add(24 * time.Hour)},
	}
	SortNewestFirst(history)

	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if history[i].ID != id {
			t.Errorf("history[%d] = %q, want %q", i, history[i].ID, id)
		}
	}
	if IndexOf(history, "old") != 2 || IndexOf(history, "none") != -1 {
		t.Error("IndexOf returned unexpected position")
	}
}
