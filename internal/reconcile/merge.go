package reconcile

import (
	"slices"

	"github.com/abhisek/liftlog/internal/workout"
)

// Merge is the set of local changes one sync pass produces. Applying a
// Merge twice has the same effect as applying it once.
type Merge struct {
	// ConfirmSynced lists local workout ids the remote now holds.
	ConfirmSynced []string
	// Removed lists synced local workout ids the remote no longer holds.
	Removed []string
	// Added holds remote-only workouts, already marked synced.
	Added []workout.Workout
}

// Empty reports whether m carries no changes.
func (m Merge) Empty() bool {
	return len(m.ConfirmSynced) == 0 && len(m.Removed) == 0 && len(m.Added) == 0
}

// Apply returns history with m applied and the number of workouts that
// actually changed. history is not modified. Each change is checked
// against the current history, so a Merge computed from an older copy
// never duplicates or resurrects workouts.
func (m Merge) Apply(history []workout.Workout) ([]workout.Workout, int) {
	out := workout.CloneHistory(history)
	changed := 0

	for _, id := range m.ConfirmSynced {
		if i := workout.IndexOf(out, id); i >= 0 && !out[i].Synced {
			out[i].Synced = true
			changed++
		}
	}

	for _, id := range m.Removed {
		i := workout.IndexOf(out, id)
		if i < 0 || !out[i].Synced {
			// Unsynced copies are local edits that must survive.
			continue
		}
		out = slices.Delete(out, i, i+1)
		changed++
	}

	for _, w := range m.Added {
		if workout.IndexOf(out, w.ID) >= 0 {
			continue
		}
		w = w.Clone()
		w.Synced = true
		w.Normalize()
		out = append(out, w)
		changed++
	}

	if changed > 0 {
		workout.SortNewestFirst(out)
	}
	return out, changed
}
