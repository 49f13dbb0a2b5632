// Package remotetest provides an in-memory implementation of the remote
// workout API for tests.
package remotetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abhisek/liftlog/internal/challenge"
	"github.com/abhisek/liftlog/internal/settings"
	"github.com/abhisek/liftlog/internal/workout"
)

// Server is a fake remote backed by memory. It is safe for concurrent use.
type Server struct {
	*httptest.Server

	Token  string
	UserID string

	mu         sync.Mutex
	workouts   []workout.Workout
	settings   *settings.Settings
	challenges []challenge.Challenge
	failCreate map[string]bool
	failAll    bool
	revoked    bool
	calls      map[string]int
}

// NewServer starts a server accepting token and closes it when t ends.
func NewServer(t testing.TB, token string) *Server {
	t.Helper()
	s := &Server{
		Token:      token,
		UserID:     "user-1",
		failCreate: make(map[string]bool),
		calls:      make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(s.count)
	r.Use(s.auth)
	r.Get("/workouts", s.listWorkouts)
	r.Post("/workouts", s.createWorkout)
	r.Put("/workouts/{id}", s.updateWorkout)
	r.Delete("/workouts/{id}", s.deleteWorkout)
	r.Get("/settings", s.getSettings)
	r.Put("/settings", s.putSettings)
	r.Get("/challenges", s.listChallenges)
	r.Delete("/challenges/{id}", s.deleteChallenge)
	r.Post("/challenges/{id}/log", s.logChallenge)
	r.Get("/challenges/{id}/leaderboard", s.leaderboard)
	r.Get("/challenges/{id}/logs", s.challengeLogs)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// SeedWorkouts stores workouts as if another device had uploaded them.
func (s *Server) SeedWorkouts(ws ...workout.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range ws {
		s.putWorkout(w.Clone())
	}
}

// Workouts returns a copy of the stored workouts.
func (s *Server) Workouts() []workout.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return workout.CloneHistory(s.workouts)
}

// RemoveWorkout deletes a workout as if another device had done so.
func (s *Server) RemoveWorkout(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workouts = slices.DeleteFunc(s.workouts, func(w workout.Workout) bool { return w.ID == id })
}

// SetSettings replaces the stored settings; nil means none stored.
func (s *Server) SetSettings(st *settings.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st == nil {
		s.settings = nil
		return
	}
	cp := *st
	s.settings = &cp
}

// Settings returns the stored settings, if any.
func (s *Server) Settings() *settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return nil
	}
	cp := *s.settings
	return &cp
}

// SeedChallenges stores challenges.
func (s *Server) SeedChallenges(cs ...challenge.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cs {
		s.challenges = append(s.challenges, c.Clone())
	}
}

// Challenge returns a stored challenge.
func (s *Server) Challenge(id string) (challenge.Challenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.challengeIndex(id)
	if i < 0 {
		return challenge.Challenge{}, false
	}
	return s.challenges[i].Clone(), true
}

// FailCreate makes uploads of workout id fail with 500.
func (s *Server) FailCreate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCreate[id] = true
}

// AllowCreate undoes FailCreate for id.
func (s *Server) AllowCreate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failCreate, id)
}

// FailAll makes every request fail with 503 until called with false.
func (s *Server) FailAll(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = fail
}

// RevokeToken makes every subsequent request fail with 401.
func (s *Server) RevokeToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = true
}

// Calls returns how many requests hit method and path.
func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+path]
}

// TotalCalls returns the number of requests received.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// Mutations returns the number of write requests received.
func (s *Server) Mutations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, c := range s.calls {
		if len(k) < 4 || k[:4] != "GET " {
			n += c
		}
	}
	return n
}

// ResetCalls clears the request counters.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.calls)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.Method+" "+r.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		revoked, failAll := s.revoked, s.failAll
		s.mu.Unlock()

		if revoked || r.Header.Get("Authorization") != "Bearer "+s.Token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if failAll {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listWorkouts(w http.ResponseWriter, _ *http.Request) {
	out := s.Workouts()
	if out == nil {
		out = []workout.Workout{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createWorkout(w http.ResponseWriter, r *http.Request) {
	var in workout.Workout
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if s.failCreate[in.ID] {
		s.mu.Unlock()
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	in.Synced = true
	s.putWorkout(in)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) updateWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in workout.Workout
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in.ID = id
	in.Synced = true

	s.mu.Lock()
	defer s.mu.Unlock()
	if workout.IndexOf(s.workouts, id) < 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	s.putWorkout(in)
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) deleteWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	s.workouts = slices.DeleteFunc(s.workouts, func(x workout.Workout) bool { return x.ID == id })
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSettings(w http.ResponseWriter, _ *http.Request) {
	st := s.Settings()
	if st == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	var in settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.SetSettings(&in)
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) listChallenges(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]challenge.Challenge, len(s.challenges))
	for i, c := range s.challenges {
		out[i] = c.Clone()
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteChallenge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.challengeIndex(id)
	if i < 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err := s.challenges[i].CanDelete(s.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	s.challenges = slices.Delete(s.challenges, i, i+1)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) logChallenge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	i := s.challengeIndex(id)
	if i < 0 {
		s.mu.Unlock()
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	l := challenge.Log{UserID: s.UserID, Value: in.Value, LoggedAt: time.Now().UTC()}
	s.challenges[i].Logs = append(s.challenges[i].Logs, l)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	c, ok := s.Challenge(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, challenge.Leaderboard(c))
}

func (s *Server) challengeLogs(w http.ResponseWriter, r *http.Request) {
	c, ok := s.Challenge(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, c.Logs)
}

// putWorkout inserts or replaces by id. Callers hold s.mu.
func (s *Server) putWorkout(w workout.Workout) {
	if i := workout.IndexOf(s.workouts, w.ID); i >= 0 {
		s.workouts[i] = w
		return
	}
	s.workouts = append(s.workouts, w)
}

func (s *Server) challengeIndex(id string) int {
	return slices.IndexFunc(s.challenges, func(c challenge.Challenge) bool { return c.ID == id })
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
