package challenge

import (
	"errors"
	"slices"
	"time"
)

var (
	// ErrCreatorCannotLeave is returned when the creator tries to leave
	// their own challenge. Creators delete instead.
	ErrCreatorCannotLeave = errors.New("challenge creator cannot leave")

	// ErrNotCreator is returned when a non-creator tries to delete.
	ErrNotCreator = errors.New("only the challenge creator can delete it")

	// ErrUnknownChallenge is returned for ids that are not loaded locally.
	ErrUnknownChallenge = errors.New("unknown challenge")
)

// Log is one progress entry posted by a participant.
type Log struct {
	UserID   string    `json:"userId"`
	Value    float64   `json:"value"`
	LoggedAt time.Time `json:"loggedAt"`
}

// Challenge is a shared goal. A user's progress is the sum of their logs.
type Challenge struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	CreatorID    string    `json:"creatorId"`
	Target       float64   `json:"target"`
	Unit         string    `json:"unit,omitempty"`
	Public       bool      `json:"isPublic"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Participants []string  `json:"participants"`
	Logs         []Log     `json:"logs,omitempty"`
}

// Standing is one row of a leaderboard.
type Standing struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username,omitempty"`
	Total    float64 `json:"total"`
}

// Progress returns the sum of userID's logged values.
func (c Challenge) Progress(userID string) float64 {
	var total float64
	for _, l := range c.Logs {
		if l.UserID == userID {
			total += l.Value
		}
	}
	return total
}

// Completed reports whether userID reached the target.
func (c Challenge) Completed(userID string) bool {
	return c.Target > 0 && c.Progress(userID) >= c.Target
}

// IsParticipant reports whether userID has joined.
func (c Challenge) IsParticipant(userID string) bool {
	return slices.Contains(c.Participants, userID)
}

// Active reports whether now falls within the challenge window. A zero
// end date means open-ended.
func (c Challenge) Active(now time.Time) bool {
	if !c.StartDate.IsZero() && now.Before(c.StartDate) {
		return false
	}
	return c.EndDate.IsZero() || !now.After(c.EndDate)
}

// CanLeave checks that userID may leave c.
func (c Challenge) CanLeave(userID string) error {
	if c.CreatorID == userID {
		return ErrCreatorCannotLeave
	}
	return nil
}

// CanDelete checks that userID may delete c.
func (c Challenge) CanDelete(userID string) error {
	if c.CreatorID != userID {
		return ErrNotCreator
	}
	return nil
}

// Clone returns a deep copy of c.
func (c Challenge) Clone() Challenge {
	c.Participants = slices.Clone(c.Participants)
	c.Logs = slices.Clone(c.Logs)
	return c
}

// Leaderboard ranks participants by progress, highest first. Ties keep
// participant order.
func Leaderboard(c Challenge) []Standing {
	out := make([]Standing, 0, len(c.Participants))
	for _, p := range c.Participants {
		out = append(out, Standing{UserID: p, Total: c.Progress(p)})
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		switch {
		case a.Total > b.Total:
			return -1
		case a.Total < b.Total:
			return 1
		default:
			return 0
		}
	})
	return out
}
