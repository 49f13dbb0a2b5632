package progression

import (
	"slices"
	"time"

	"github.com/abhisek/liftlog/internal/stats"
)

// Tracker owns achievement unlock state and the single "recently
// unlocked" notification slot.
//
// The slot holds one achievement. When several achievements unlock in the
// same Check, each overwrites the previous one, so only the last is shown.
type Tracker struct {
	achievements []Achievement
	index        map[string]int
	unlocked     []string

	pending *Achievement
	visible bool
}

// NewTracker creates a tracker over defs, evaluated in the given order.
// A nil defs uses DefaultAchievements.
func NewTracker(defs []Achievement) *Tracker {
	if defs == nil {
		defs = DefaultAchievements()
	}
	t := &Tracker{index: make(map[string]int, len(defs))}
	for _, a := range defs {
		if _, dup := t.index[a.ID]; dup {
			continue
		}
		a = a.clone()
		t.index[a.ID] = len(t.achievements)
		t.achievements = append(t.achievements, a)
		if a.Unlocked {
			t.unlocked = append(t.unlocked, a.ID)
		}
	}
	return t
}

// Restore applies persisted unlock state. Definitions stay as constructed;
// only Unlocked and UnlockedAt are taken from saved. IDs in unlockedIDs
// that have no definition are kept so they survive the next save.
func (t *Tracker) Restore(saved []Achievement, unlockedIDs []string) {
	for _, s := range saved {
		i, ok := t.index[s.ID]
		if !ok || !s.Unlocked || t.achievements[i].Unlocked {
			continue
		}
		s = s.clone()
		t.achievements[i].Unlocked = true
		t.achievements[i].UnlockedAt = s.UnlockedAt
	}
	for _, id := range unlockedIDs {
		if i, ok := t.index[id]; ok {
			t.achievements[i].Unlocked = true
		}
	}

	t.unlocked = t.unlocked[:0]
	for _, id := range unlockedIDs {
		if !slices.Contains(t.unlocked, id) {
			t.unlocked = append(t.unlocked, id)
		}
	}
	for _, a := range t.achievements {
		if a.Unlocked && !slices.Contains(t.unlocked, a.ID) {
			t.unlocked = append(t.unlocked, a.ID)
		}
	}
}

// Check unlocks every locked achievement whose requirement s meets, in
// declaration order, and returns the newly unlocked ones.
func (t *Tracker) Check(s stats.WorkoutStats, now time.Time) []Achievement {
	var newly []Achievement
	for _, a := range t.achievements {
		if a.Unlocked || !a.Requirement.Met(s) {
			continue
		}
		if t.Unlock(a.ID, now) {
			newly = append(newly, t.achievements[t.index[a.ID]].clone())
		}
	}
	return newly
}

// Unlock marks id unlocked at now and fills the notification slot. It is a
// no-op returning false if id is unknown or already unlocked.
func (t *Tracker) Unlock(id string, now time.Time) bool {
	i, ok := t.index[id]
	if !ok || t.achievements[i].Unlocked {
		return false
	}
	at := now
	a := &t.achievements[i]
	a.Unlocked = true
	a.UnlockedAt = &at
	if !slices.Contains(t.unlocked, id) {
		t.unlocked = append(t.unlocked, id)
	}

	shown := a.clone()
	t.pending = &shown
	t.visible = true
	return true
}

// IsUnlocked reports whether id has been unlocked.
func (t *Tracker) IsUnlocked(id string) bool {
	i, ok := t.index[id]
	return ok && t.achievements[i].Unlocked
}

// Pending returns the achievement in the notification slot, if visible.
func (t *Tracker) Pending() (Achievement, bool) {
	if t.pending == nil || !t.visible {
		return Achievement{}, false
	}
	return t.pending.clone(), true
}

// Dismiss hides and clears the notification slot.
func (t *Tracker) Dismiss() {
	t.visible = false
	t.pending = nil
}

// Achievements returns a copy of all achievements in declaration order.
func (t *Tracker) Achievements() []Achievement {
	out := make([]Achievement, len(t.achievements))
	for i, a := range t.achievements {
		out[i] = a.clone()
	}
	return out
}

// UnlockedIDs returns unlocked achievement ids in unlock order.
func (t *Tracker) UnlockedIDs() []string {
	return slices.Clone(t.unlocked)
}
