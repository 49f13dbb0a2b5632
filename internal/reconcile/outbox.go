package reconcile

import (
	"maps"
	"slices"
)

// Outbox holds local workout changes the remote has not acknowledged yet.
// Deletes are tombstones: a tombstoned id is never pulled back from the
// remote. Updates maps a workout id to the local edit revision that still
// needs a PUT. Revisions come from Rev and are never reused.
type Outbox struct {
	Deletes []string          `json:"deletes,omitempty"`
	Updates map[string]uint64 `json:"updates,omitempty"`
	Rev     uint64            `json:"rev,omitempty"`
}

// Empty reports whether nothing is pending.
func (o Outbox) Empty() bool {
	return len(o.Deletes) == 0 && len(o.Updates) == 0
}

// Clone returns a deep copy of o.
func (o Outbox) Clone() Outbox {
	return Outbox{
		Deletes: slices.Clone(o.Deletes),
		Updates: maps.Clone(o.Updates),
		Rev:     o.Rev,
	}
}

// Tombstoned reports whether id has a pending remote delete.
func (o Outbox) Tombstoned(id string) bool {
	return slices.Contains(o.Deletes, id)
}

// AddDelete tombstones id and drops any pending update for it.
func (o *Outbox) AddDelete(id string) {
	delete(o.Updates, id)
	if !o.Tombstoned(id) {
		o.Deletes = append(o.Deletes, id)
	}
}

// AddUpdate records a new local edit of id and returns its revision.
func (o *Outbox) AddUpdate(id string) uint64 {
	if o.Updates == nil {
		o.Updates = make(map[string]uint64)
	}
	o.Rev++
	o.Updates[id] = o.Rev
	return o.Rev
}

// Clear removes the entries of done from o. An update is only cleared
// when no newer edit has been recorded since done was taken.
func (o *Outbox) Clear(done Outbox) {
	o.Deletes = slices.DeleteFunc(o.Deletes, func(id string) bool {
		return slices.Contains(done.Deletes, id)
	})
	for id, rev := range done.Updates {
		if o.Updates[id] == rev {
			delete(o.Updates, id)
		}
	}
	if len(o.Deletes) == 0 {
		o.Deletes = nil
	}
	if len(o.Updates) == 0 {
		o.Updates = nil
	}
}

// UpdateIDs returns the ids with pending updates in sorted order.
func (o Outbox) UpdateIDs() []string {
	return slices.Sorted(maps.Keys(o.Updates))
}
