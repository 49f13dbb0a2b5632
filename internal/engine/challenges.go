package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/liftlog/internal/challenge"
)

// RefreshChallenges replaces the local challenge list with the remote one.
func (e *Engine) RefreshChallenges(ctx context.Context) ([]challenge.Challenge, error) {
	var list []challenge.Challenge
	err := e.remoteCall(ctx, "list challenges", func(ctx context.Context, api RemoteAPI) error {
		var err error
		list, err = api.ListChallenges(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.challenges = cloneChallenges(list)
	return cloneChallenges(list), e.saveLocked(ctx)
}

// Challenges returns the locally known challenges.
func (e *Engine) Challenges() []challenge.Challenge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneChallenges(e.challenges)
}

// JoinedChallenges returns the challenges the user joined, in join order.
func (e *Engine) JoinedChallenges() []challenge.Challenge {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []challenge.Challenge
	for _, id := range e.membership.IDs() {
		if i := e.challengeIndexLocked(id); i >= 0 {
			out = append(out, e.challenges[i].Clone())
		}
	}
	return out
}

// JoinChallenge records membership locally.
func (e *Engine) JoinChallenge(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.challengeIndexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", challenge.ErrUnknownChallenge, id)
	}
	if !e.membership.Join(id) {
		return nil
	}
	if uid := e.userIDLocked(); uid != "" && !e.challenges[i].IsParticipant(uid) {
		e.challenges[i].Participants = append(e.challenges[i].Participants, uid)
	}
	return e.saveLocked(ctx)
}

// LeaveChallenge drops membership. The creator cannot leave.
func (e *Engine) LeaveChallenge(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.challengeIndexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", challenge.ErrUnknownChallenge, id)
	}
	uid := e.userIDLocked()
	if err := e.challenges[i].CanLeave(uid); err != nil {
		return err
	}
	if !e.membership.Leave(id) {
		return nil
	}
	c := &e.challenges[i]
	if j := slices.Index(c.Participants, uid); uid != "" && j >= 0 {
		c.Participants = slices.Delete(c.Participants, j, j+1)
	}
	return e.saveLocked(ctx)
}

// DeleteChallenge deletes a challenge the user created, remotely first.
func (e *Engine) DeleteChallenge(ctx context.Context, id string) error {
	e.mu.Lock()
	i := e.challengeIndexLocked(id)
	if i < 0 {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", challenge.ErrUnknownChallenge, id)
	}
	err := e.challenges[i].CanDelete(e.userIDLocked())
	e.mu.Unlock()
	if err != nil {
		return err
	}

	err = e.remoteCall(ctx, "delete challenge", func(ctx context.Context, api RemoteAPI) error {
		return api.DeleteChallenge(ctx, id)
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.challengeIndexLocked(id); i >= 0 {
		e.challenges = slices.Delete(e.challenges, i, i+1)
	}
	e.membership.Leave(id)
	return e.saveLocked(ctx)
}

// LogChallengeProgress posts value to the remote and appends the returned
// log locally on success.
func (e *Engine) LogChallengeProgress(ctx context.Context, id string, value float64) (challenge.Log, error) {
	if value <= 0 {
		return challenge.Log{}, fmt.Errorf("progress value must be positive, got %v", value)
	}
	e.mu.Lock()
	known := e.challengeIndexLocked(id) >= 0
	uid := e.userIDLocked()
	e.mu.Unlock()
	if !known {
		return challenge.Log{}, fmt.Errorf("%w: %s", challenge.ErrUnknownChallenge, id)
	}

	var l challenge.Log
	err := e.remoteCall(ctx, "log challenge progress", func(ctx context.Context, api RemoteAPI) error {
		var err error
		l, err = api.LogChallenge(ctx, id, value)
		return err
	})
	if err != nil {
		return challenge.Log{}, err
	}
	if l.UserID == "" {
		l.UserID = uid
	}
	if l.Value == 0 {
		l.Value = value
	}
	if l.LoggedAt.IsZero() {
		l.LoggedAt = e.now()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.challengeIndexLocked(id); i >= 0 {
		e.challenges[i].Logs = append(e.challenges[i].Logs, l)
	}
	return l, e.saveLocked(ctx)
}

// Leaderboard fetches standings from the remote. Offline, it is computed
// from the locally cached logs.
func (e *Engine) Leaderboard(ctx context.Context, id string) ([]challenge.Standing, error) {
	if e.requireOnline() != nil {
		e.mu.Lock()
		defer e.mu.Unlock()
		i := e.challengeIndexLocked(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", challenge.ErrUnknownChallenge, id)
		}
		return challenge.Leaderboard(e.challenges[i]), nil
	}

	var out []challenge.Standing
	err := e.remoteCall(ctx, "fetch leaderboard", func(ctx context.Context, api RemoteAPI) error {
		var err error
		out, err = api.Leaderboard(ctx, id)
		return err
	})
	return out, err
}

// ChallengeLogs fetches every log of a challenge and caches them locally.
func (e *Engine) ChallengeLogs(ctx context.Context, id string) ([]challenge.Log, error) {
	var logs []challenge.Log
	err := e.remoteCall(ctx, "fetch challenge logs", func(ctx context.Context, api RemoteAPI) error {
		var err error
		logs, err = api.ChallengeLogs(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.challengeIndexLocked(id); i >= 0 {
		e.challenges[i].Logs = slices.Clone(logs)
	}
	return logs, e.saveLocked(ctx)
}

func (e *Engine) challengeIndexLocked(id string) int {
	return slices.IndexFunc(e.challenges, func(c challenge.Challenge) bool { return c.ID == id })
}

func (e *Engine) userIDLocked() string {
	if e.auth.User == nil {
		return ""
	}
	return e.auth.User.ID
}

func cloneChallenges(in []challenge.Challenge) []challenge.Challenge {
	if in == nil {
		return nil
	}
	out := make([]challenge.Challenge, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
