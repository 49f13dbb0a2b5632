package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abhisek/liftlog/internal/challenge"
	"github.com/abhisek/liftlog/internal/settings"
	"github.com/abhisek/liftlog/internal/workout"
)

const maxErrorBody = 512

// TokenFunc returns the bearer token for the next request. An empty token
// sends no Authorization header.
type TokenFunc func() string

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithToken sets the bearer token source.
func WithToken(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

// Client talks to the remote workout API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenFunc
}

// NewClient creates a client targeting baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		token:      func() string { return "" },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ListWorkouts returns every workout the remote store holds for the user.
func (c *Client) ListWorkouts(ctx context.Context) ([]workout.Workout, error) {
	var out []workout.Workout
	if err := c.do(ctx, http.MethodGet, "/workouts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWorkout uploads w. The server's copy is returned when it sends
// one; otherwise w is returned unchanged.
func (c *Client) CreateWorkout(ctx context.Context, w workout.Workout) (workout.Workout, error) {
	var created *workout.Workout
	if err := c.do(ctx, http.MethodPost, "/workouts", w, &created); err != nil {
		return workout.Workout{}, err
	}
	if created == nil || created.ID == "" {
		return w, nil
	}
	return *created, nil
}

// UpdateWorkout replaces the remote copy of w.
func (c *Client) UpdateWorkout(ctx context.Context, w workout.Workout) error {
	return c.do(ctx, http.MethodPut, "/workouts/"+url.PathEscape(w.ID), w, nil)
}

// DeleteWorkout removes a workout from the remote store.
func (c *Client) DeleteWorkout(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/workouts/"+url.PathEscape(id), nil, nil)
}

// GetSettings returns the stored settings, or nil when the server has
// none (404 or a null body).
func (c *Client) GetSettings(ctx context.Context) (*settings.Settings, error) {
	var s *settings.Settings
	err := c.do(ctx, http.MethodGet, "/settings", nil, &s)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// PutSettings stores s remotely.
func (c *Client) PutSettings(ctx context.Context, s settings.Settings) error {
	return c.do(ctx, http.MethodPut, "/settings", s, nil)
}

// ListChallenges returns challenges visible to the user.
func (c *Client) ListChallenges(ctx context.Context) ([]challenge.Challenge, error) {
	var out []challenge.Challenge
	if err := c.do(ctx, http.MethodGet, "/challenges", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type logRequest struct {
	Value float64 `json:"value"`
}

// LogChallenge posts progress to a challenge and returns the stored log.
func (c *Client) LogChallenge(ctx context.Context, id string, value float64) (challenge.Log, error) {
	var l challenge.Log
	if err := c.do(ctx, http.MethodPost, challengePath(id, "log"), logRequest{Value: value}, &l); err != nil {
		return challenge.Log{}, err
	}
	if l.Value == 0 {
		l.Value = value
	}
	return l, nil
}

// Leaderboard returns the server-ranked standings of a challenge.
func (c *Client) Leaderboard(ctx context.Context, id string) ([]challenge.Standing, error) {
	var out []challenge.Standing
	if err := c.do(ctx, http.MethodGet, challengePath(id, "leaderboard"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChallengeLogs returns every log entry of a challenge.
func (c *Client) ChallengeLogs(ctx context.Context, id string) ([]challenge.Log, error) {
	var out []challenge.Log
	if err := c.do(ctx, http.MethodGet, challengePath(id, "logs"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteChallenge removes a challenge. Only its creator may do so.
func (c *Client) DeleteChallenge(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, challengePath(id, ""), nil, nil)
}

func challengePath(id, sub string) string {
	p := "/challenges/" + url.PathEscape(id)
	if sub != "" {
		p += "/" + sub
	}
	return p
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remote: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("remote: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := truncateBody(strings.TrimSpace(string(data)), maxErrorBody)
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: msg}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("remote: decode %s %s: %w", method, path, err)
	}
	return nil
}

// truncateBody cuts s to at most n bytes without splitting a rune.
func truncateBody(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
