package challenge

import "slices"

// Membership tracks which challenges the local user has joined.
type Membership struct {
	joined []string
}

// NewMembership restores membership from persisted ids.
func NewMembership(ids []string) *Membership {
	m := &Membership{}
	for _, id := range ids {
		m.Join(id)
	}
	return m
}

// Join adds id. It reports false if already joined.
func (m *Membership) Join(id string) bool {
	if id == "" || slices.Contains(m.joined, id) {
		return false
	}
	m.joined = append(m.joined, id)
	return true
}

// Leave removes id. It reports false if not joined.
func (m *Membership) Leave(id string) bool {
	i := slices.Index(m.joined, id)
	if i < 0 {
		return false
	}
	m.joined = slices.Delete(m.joined, i, i+1)
	return true
}

// Joined reports whether id has been joined.
func (m *Membership) Joined(id string) bool {
	return slices.Contains(m.joined, id)
}

// IDs returns joined ids in join order.
func (m *Membership) IDs() []string {
	return slices.Clone(m.joined)
}
