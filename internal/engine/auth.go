package engine

import (
	"context"
	"fmt"

	"github.com/abhisek/liftlog/internal/store"
)

// SetCredentials stores an already issued token for user.
func (e *Engine) SetCredentials(ctx context.Context, user store.User, token string) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	u := user
	e.auth = store.AuthState{User: &u, Token: token, IsAuthenticated: true}
	return e.saveAuthLocked(ctx)
}

// Logout clears credentials. Local workout data is kept.
func (e *Engine) Logout(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.auth = store.AuthState{}
	return e.saveAuthLocked(ctx)
}

// ForceLogout clears credentials after the remote rejected them.
func (e *Engine) ForceLogout() {
	e.log.Warn("credentials rejected by remote, logging out")
	if e.metrics != nil {
		e.metrics.CounterForcedLogouts.Inc()
	}
	e.dropCredentials()
}

func (e *Engine) dropCredentials() {
	if err := e.Logout(e.bg); err != nil {
		e.log.WithError(err).Warn("persisting logout failed")
	}
}

// Token returns the bearer token, or "" when logged out.
func (e *Engine) Token() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.auth.Token
}

// Authenticated reports whether credentials are present.
func (e *Engine) Authenticated() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.auth.IsAuthenticated
}

// User returns the signed-in user.
func (e *Engine) User() (store.User, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.auth.User == nil || !e.auth.IsAuthenticated {
		return store.User{}, false
	}
	return *e.auth.User, true
}

func (e *Engine) saveAuthLocked(ctx context.Context) error {
	if e.persister == nil {
		return nil
	}
	if err := e.persister.SaveAuth(ctx, e.auth); err != nil {
		e.log.WithError(err).Error("saving auth state failed")
		return fmt.Errorf("save auth: %w", err)
	}
	return nil
}

// onlineLocked reports whether remote calls can be made. Callers hold e.mu.
func (e *Engine) onlineLocked() bool {
	return e.remote != nil && e.auth.IsAuthenticated
}

func (e *Engine) requireOnline() error {
	if e.remote == nil {
		return ErrOffline
	}
	if !e.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}
