package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/liftlog/internal/workout"
)

var (
	ErrSessionActive   = errors.New("a workout session is already active")
	ErrNoActiveSession = errors.New("no active workout session")
)

// State is the controller's lifecycle state. Finished and cancelled
// sessions return straight to StateIdle.
type State int

const (
	StateIdle   State = iota // No current workout
	StateActive              // A workout is being recorded
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "idle"
}

// Cursor is the active exercise/set position within the current workout.
type Cursor struct {
	Exercise int `json:"exercise"`
	Set      int `json:"set"`
}

// SetUpdate carries a partial update for a single set. Nil fields are left
// untouched.
type SetUpdate struct {
	Reps      *int
	Weight    *float64
	Completed *bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides how workout IDs are generated.
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) { c.newID = gen }
}

// Controller owns the single in-progress workout.
type Controller struct {
	current *workout.Workout
	cursor  Cursor

	now   func() time.Time
	newID func() string
}

// NewController creates an idle controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	if c.current == nil {
		return StateIdle
	}
	return StateActive
}

// Current returns a copy of the in-progress workout, or nil when idle.
func (c *Controller) Current() *workout.Workout {
	if c.current == nil {
		return nil
	}
	w := c.current.Clone()
	return &w
}

// Cursor returns the active exercise/set position.
func (c *Controller) Cursor() Cursor {
	return c.cursor
}

// Restore reloads an in-progress workout, e.g. from a persisted snapshot.
// The cursor is clamped into the workout's bounds.
func (c *Controller) Restore(w *workout.Workout, cur Cursor) {
	if w == nil {
		c.current = nil
		c.cursor = Cursor{}
		return
	}
	cp := w.Clone()
	c.current = &cp
	c.cursor = cur
	c.clampCursor()
}
