package engine_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/abhisek/liftlog/internal/challenge"
	"github.com/abhisek/liftlog/internal/engine"
	"github.com/abhisek/liftlog/internal/metrics"
	"github.com/abhisek/liftlog/internal/progression"
	"github.com/abhisek/liftlog/internal/remote"
	"github.com/abhisek/liftlog/internal/remote/remotetest"
	"github.com/abhisek/liftlog/internal/session"
	"github.com/abhisek/liftlog/internal/settings"
	"github.com/abhisek/liftlog/internal/store"
	"github.com/abhisek/liftlog/internal/workout"
)

// TestMain will run goleak after all tests have been run in the package
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

const token = "secret-token"

var base = time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

type clock struct{ t atomic.Int64 }

func newClock() *clock {
	c := &clock{}
	c.t.Store(base.UnixNano())
	return c
}

func (c *clock) Now() time.Time          { return time.Unix(0, c.t.Load()).UTC() }
func (c *clock) Advance(d time.Duration) { c.t.Add(int64(d)) }

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("w-%d", n.Add(1)) }
}

func newEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()
	clk := newClock()
	all := append([]engine.Option{
		engine.WithClock(clk.Now),
		engine.WithIDGenerator(sequentialIDs()),
		engine.WithLocation(time.UTC),
	}, opts...)
	e, err := engine.New(context.Background(), all...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close(context.Background()) })
	return e
}

func openPersister(t *testing.T, path string) *store.Persister {
	t.Helper()
	s, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return store.NewPersister(s.SnapshotRepo(), 5)
}

func login(t *testing.T, e *engine.Engine) {
	t.Helper()
	require.NoError(t, e.SetCredentials(context.Background(), store.User{ID: "user-1", Username: "lifter"}, token))
}

func ptr[T any](v T) *T { return &v }

func recordOneSet(t *testing.T, e *engine.Engine) engine.FinishResult {
	t.Helper()
	ctx := context.Background()
	_, err := e.StartSession(ctx, "Push day")
	require.NoError(t, err)
	require.NoError(t, e.AddExercise(ctx, "bench-press"))
	require.NoError(t, e.RecordSet(ctx, 0, 0, session.SetUpdate{
		Reps:      ptr(10),
		Weight:    ptr(20.0),
		Completed: ptr(true),
	}))
	res, err := e.FinishSession(ctx)
	require.NoError(t, err)
	return res
}

func TestEndToEndScenario(t *testing.T) {
	m := metrics.NewTestManager()
	e := newEngine(t, engine.WithMetrics(m))

	res := recordOneSet(t, e)

	assert.Len(t, e.History(), 1)
	st := e.Stats()
	assert.Equal(t, 1, st.TotalWorkouts)
	assert.Equal(t, 10, st.TotalReps)
	assert.Equal(t, 200.0, st.TotalWeight)
	assert.Equal(t, 200.0, st.TotalVolume)
	assert.Equal(t, 1, st.Streak)

	assert.Equal(t, 100, res.XPGranted)
	assert.Equal(t, 100, e.Level().TotalXP)
	require.NotEmpty(t, res.Unlocked)
	assert.Equal(t, "first-workout", res.Unlocked[0].ID)

	pending, ok := e.PendingAchievement()
	require.True(t, ok)
	assert.Equal(t, "first-workout", pending.ID)
	e.DismissAchievement()
	_, ok = e.PendingAchievement()
	assert.False(t, ok)

	state, cur, _ := e.SessionState()
	assert.Equal(t, session.StateIdle, state)
	assert.Nil(t, cur)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterWorkoutsRecorded.WithLabelValues(metrics.SourceSession)))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.CounterXPGranted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GaugeHistorySize))
}

func TestFinishWithoutCompletedSetGrantsNoXP(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	_, err := e.StartSession(ctx, "Quick")
	require.NoError(t, err)
	require.NoError(t, e.AddExercise(ctx, "squat"))
	res, err := e.FinishSession(ctx)
	require.NoError(t, err)

	assert.Zero(t, res.XPGranted)
	assert.Zero(t, e.Level().TotalXP)
	// The workout still counts towards totals.
	assert.Equal(t, 1, e.Stats().TotalWorkouts)
}

func TestSessionErrors(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	_, err := e.FinishSession(ctx)
	assert.ErrorIs(t, err, session.ErrNoActiveSession)

	// Mutations without a session are no-ops.
	assert.NoError(t, e.AddSet(ctx, 0))
	assert.NoError(t, e.NextExercise(ctx))

	_, err = e.StartSession(ctx, "A")
	require.NoError(t, err)
	_, err = e.StartSession(ctx, "B")
	assert.ErrorIs(t, err, session.ErrSessionActive)

	assert.ErrorIs(t, e.AddExercise(ctx, "no-such-exercise"), engine.ErrUnknownExercise)

	require.NoError(t, e.CancelSession(ctx))
	state, _, _ := e.SessionState()
	assert.Equal(t, session.StateIdle, state)
	assert.Empty(t, e.History())
}

func TestLogWorkout(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	res, err := e.LogWorkout(ctx, workout.Workout{
		Name:     "Morning run",
		Duration: ptr(30),
		Exercises: []workout.Entry{{
			ExerciseID: "squat",
			Sets:       []workout.Set{{Reps: -5, Completed: true}},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, 50, res.XPGranted)
	assert.NotEmpty(t, res.Workout.ID)
	assert.Equal(t, base, res.Workout.StartTime)
	require.NotNil(t, res.Workout.EndTime)
	assert.Equal(t, base.Add(30*time.Minute), *res.Workout.EndTime)
	assert.Zero(t, res.Workout.Exercises[0].Sets[0].Reps)

	_, err = e.LogWorkout(ctx, res.Workout)
	assert.Error(t, err)
}

func TestDeleteAndUpdateWorkout(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	first := recordOneSet(t, e).Workout

	updated := first.Clone()
	updated.Notes = "felt strong"
	updated.Exercises[0].Sets[0].Reps = 12
	require.NoError(t, e.UpdateWorkout(ctx, updated))

	got, err := e.Workout(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "felt strong", got.Notes)
	assert.Equal(t, 12, e.Stats().TotalReps)

	require.NoError(t, e.DeleteWorkout(ctx, first.ID))
	assert.Empty(t, e.History())
	assert.Zero(t, e.Stats().TotalWorkouts)

	assert.ErrorIs(t, e.DeleteWorkout(ctx, first.ID), engine.ErrWorkoutNotFound)
	assert.ErrorIs(t, e.UpdateWorkout(ctx, updated), engine.ErrWorkoutNotFound)
	// Level is never taken back.
	assert.Equal(t, 100, e.Level().TotalXP)
}

func achievement(t *testing.T, e *engine.Engine, id string) progression.Achievement {
	t.Helper()
	for _, a := range e.Achievements() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %s not found", id)
	return progression.Achievement{}
}

func TestDeleteCanUnlockStreak(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	// The isolated most recent day first, so the older run never counts.
	for i, daysAgo := range []int{0, 10, 11, 12} {
		_, err := e.LogWorkout(ctx, workout.Workout{
			ID:        fmt.Sprintf("day-%d", i),
			Name:      "Full body",
			StartTime: base.AddDate(0, 0, -daysAgo),
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, e.Stats().Streak)
	assert.False(t, achievement(t, e, "streak-3").Unlocked)

	require.NoError(t, e.DeleteWorkout(ctx, "day-0"))

	assert.Equal(t, 3, e.Stats().Streak)
	assert.True(t, achievement(t, e, "streak-3").Unlocked)
}

func TestOnlineEditsReachRemote(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	e := newEngine(t, engine.WithRemote(srv.URL))
	login(t, e)
	ctx := context.Background()

	first := recordOneSet(t, e).Workout
	e.Wait()
	require.Len(t, srv.Workouts(), 1)

	updated := first.Clone()
	updated.Notes = "new bench PR"
	require.NoError(t, e.UpdateWorkout(ctx, updated))
	e.Wait()
	require.Len(t, srv.Workouts(), 1)
	assert.Equal(t, "new bench PR", srv.Workouts()[0].Notes)
	assert.True(t, e.PendingRemoteChanges().Empty())

	require.NoError(t, e.DeleteWorkout(ctx, first.ID))
	e.Wait()
	assert.Empty(t, srv.Workouts())
	assert.True(t, e.PendingRemoteChanges().Empty())
}

func TestDeleteWhileRemoteDownIsReplayedBySync(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	m := metrics.NewTestManager()
	e := newEngine(t, engine.WithRemote(srv.URL), engine.WithMetrics(m))
	login(t, e)
	ctx := context.Background()

	first := recordOneSet(t, e).Workout
	e.Wait()
	require.Len(t, srv.Workouts(), 1)

	srv.FailAll(true)
	require.NoError(t, e.DeleteWorkout(ctx, first.ID))
	e.Wait()
	assert.Equal(t, []string{first.ID}, e.PendingRemoteChanges().Deletes)
	srv.FailAll(false)

	res, err := e.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)
	assert.Zero(t, res.Pulled)
	assert.Empty(t, e.History())
	assert.Zero(t, e.Stats().TotalWorkouts)
	assert.Empty(t, srv.Workouts())
	assert.True(t, e.PendingRemoteChanges().Empty())

	again, err := e.Sync(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Mutations())
	assert.Empty(t, e.History())
}

func TestDeleteTombstoneSurvivesRestart(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	path := filepath.Join(t.TempDir(), "liftlog.db")
	ctx := context.Background()

	e := newEngine(t, engine.WithRemote(srv.URL), engine.WithPersister(openPersister(t, path)))
	login(t, e)
	first := recordOneSet(t, e).Workout
	e.Wait()

	srv.FailAll(true)
	require.NoError(t, e.DeleteWorkout(ctx, first.ID))
	require.NoError(t, e.Close(ctx))
	srv.FailAll(false)

	restarted := newEngine(t, engine.WithRemote(srv.URL), engine.WithPersister(openPersister(t, path)))
	assert.Equal(t, []string{first.ID}, restarted.PendingRemoteChanges().Deletes)

	_, err := restarted.Sync(ctx)
	require.NoError(t, err)
	assert.Empty(t, restarted.History())
	assert.Empty(t, srv.Workouts())
}

func TestUpdateWhileRemoteDownIsReplayedBySync(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	e := newEngine(t, engine.WithRemote(srv.URL))
	login(t, e)
	ctx := context.Background()

	first := recordOneSet(t, e).Workout
	e.Wait()

	srv.FailAll(true)
	updated := first.Clone()
	updated.Notes = "edited offline"
	require.NoError(t, e.UpdateWorkout(ctx, updated))
	e.Wait()
	assert.Equal(t, []string{first.ID}, e.PendingRemoteChanges().UpdateIDs())
	srv.FailAll(false)

	res, err := e.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, srv.Workouts(), 1)
	assert.Equal(t, "edited offline", srv.Workouts()[0].Notes)
	assert.True(t, e.PendingRemoteChanges().Empty())

	_, err = e.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, "edited offline", srv.Workouts()[0].Notes)
	got, err := e.Workout(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited offline", got.Notes)
	assert.True(t, got.Synced)
}

// gatedRemote holds workout uploads until released.
type gatedRemote struct {
	*remote.Client
	entered chan struct{}
	release chan struct{}
}

func (g *gatedRemote) CreateWorkout(ctx context.Context, w workout.Workout) (workout.Workout, error) {
	close(g.entered)
	<-g.release
	return g.Client.CreateWorkout(ctx, w)
}

func TestDeleteDuringUploadIsPropagated(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	gate := &gatedRemote{
		Client:  remote.NewClient(srv.URL, remote.WithToken(func() string { return token })),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	e := newEngine(t, engine.WithRemoteAPI(gate))
	login(t, e)
	ctx := context.Background()

	first := recordOneSet(t, e).Workout
	<-gate.entered
	require.NoError(t, e.DeleteWorkout(ctx, first.ID))
	close(gate.release)
	e.Wait()

	// The upload landed after the local delete.
	require.Len(t, srv.Workouts(), 1)
	assert.Equal(t, []string{first.ID}, e.PendingRemoteChanges().Deletes)

	res, err := e.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)
	assert.Empty(t, e.History())
	assert.Empty(t, srv.Workouts())
}

func TestBodyWeightSurvivesRecompute(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	require.NoError(t, e.AddBodyWeight(ctx, 82.5, base.Add(-24*time.Hour)))
	require.NoError(t, e.AddBodyWeight(ctx, 82.0, time.Time{}))
	assert.Error(t, e.AddBodyWeight(ctx, 0, time.Time{}))

	recordOneSet(t, e)

	logs := e.Stats().BodyWeightLogs
	require.Len(t, logs, 2)
	assert.Equal(t, 82.5, logs[0].Weight)
	assert.Equal(t, 82.0, logs[1].Weight)
}

func TestCustomExercise(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	ex := workout.Exercise{ID: "sled-push", Name: "Sled push", Category: workout.AllCategories()[0]}
	require.NoError(t, e.AddCustomExercise(ctx, ex))
	assert.Error(t, e.AddCustomExercise(ctx, ex))

	_, err := e.StartSession(ctx, "Conditioning")
	require.NoError(t, err)
	assert.NoError(t, e.AddExercise(ctx, "sled-push"))
}

func TestUpdateSettingsValidates(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	assert.Equal(t, settings.Default(), e.Settings())
	assert.Error(t, e.UpdateSettings(ctx, settings.Settings{WeightUnit: "stone"}))

	want := settings.Settings{WeightUnit: settings.Pounds, DistanceUnit: settings.Miles, Theme: settings.ThemeDark}
	require.NoError(t, e.UpdateSettings(ctx, want))
	assert.Equal(t, want, e.Settings())
}

func TestPersistenceRestoresState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "liftlog.db")
	ctx := context.Background()

	e := newEngine(t, engine.WithPersister(openPersister(t, path)))
	recordOneSet(t, e)
	require.NoError(t, e.AddBodyWeight(ctx, 80, base))
	require.NoError(t, e.SetCredentials(ctx, store.User{ID: "u", Username: "lifter"}, token))

	// Leave a session in progress.
	_, err := e.StartSession(ctx, "Unfinished")
	require.NoError(t, err)
	require.NoError(t, e.AddExercise(ctx, "deadlift"))
	require.NoError(t, e.AddExercise(ctx, "squat"))
	require.NoError(t, e.NextExercise(ctx))
	require.NoError(t, e.Close(ctx))

	restored := newEngine(t, engine.WithPersister(openPersister(t, path)))

	assert.Equal(t, e.History(), restored.History())
	assert.Equal(t, e.Stats(), restored.Stats())
	assert.Equal(t, e.Level(), restored.Level())
	assert.Equal(t, e.Achievements(), restored.Achievements())
	assert.Equal(t, token, restored.Token())

	user, ok := restored.User()
	require.True(t, ok)
	assert.Equal(t, "lifter", user.Username)

	state, cur, cursor := restored.SessionState()
	assert.Equal(t, session.StateActive, state)
	require.NotNil(t, cur)
	assert.Len(t, cur.Exercises, 2)
	assert.Equal(t, 1, cursor.Exercise)
}

func TestFinishUploadsInBackground(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	e := newEngine(t, engine.WithRemote(srv.URL))
	login(t, e)

	w := recordOneSet(t, e).Workout
	e.Wait()

	require.Len(t, srv.Workouts(), 1)
	assert.Equal(t, w.ID, srv.Workouts()[0].ID)

	got, err := e.Workout(w.ID)
	require.NoError(t, err)
	assert.True(t, got.Synced)
}

func TestFailedUploadIsRetriedBySync(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	e := newEngine(t, engine.WithRemote(srv.URL))
	login(t, e)

	srv.FailCreate("w-1")
	recordOneSet(t, e)
	e.Wait()

	got, err := e.Workout("w-1")
	require.NoError(t, err)
	assert.False(t, got.Synced)

	srv.AllowCreate("w-1")

	res, err := e.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Uploaded)

	got, err = e.Workout("w-1")
	require.NoError(t, err)
	assert.True(t, got.Synced)
}

func TestSyncPullsRemoteAndIsIdempotent(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	end := base.Add(-23 * time.Hour)
	srv.SeedWorkouts(workout.Workout{
		ID:        "from-phone",
		Name:      "Legs",
		StartTime: base.Add(-24 * time.Hour),
		EndTime:   &end,
		Exercises: []workout.Entry{{
			ExerciseID: "squat",
			Sets:       []workout.Set{{Reps: 5, Weight: ptr(100.0), Completed: true}},
		}},
	})
	remoteSettings := settings.Settings{WeightUnit: settings.Pounds, DistanceUnit: settings.Miles, Theme: settings.ThemeDark}
	srv.SetSettings(&remoteSettings)

	e := newEngine(t, engine.WithRemote(srv.URL))
	login(t, e)
	ctx := context.Background()

	res, err := e.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pulled)
	assert.True(t, res.SettingsPulled)

	require.Len(t, e.History(), 1)
	assert.True(t, e.History()[0].Synced)
	assert.Equal(t, 5, e.Stats().TotalReps)
	assert.Equal(t, remoteSettings, e.Settings())
	// Pulled workouts unlock achievements but grant no XP.
	assert.Zero(t, e.Level().TotalXP)
	pending, ok := e.PendingAchievement()
	require.True(t, ok)
	assert.Equal(t, "first-workout", pending.ID)

	srv.ResetCalls()
	again, err := e.Sync(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Mutations())
	assert.Zero(t, srv.Mutations())
	assert.Len(t, e.History(), 1)
}

func TestSyncPushesSettingsWhenRemoteHasNone(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	e := newEngine(t, engine.WithRemote(srv.URL))
	login(t, e)

	res, err := e.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, res.SettingsPushed)
	require.NotNil(t, srv.Settings())
	assert.Equal(t, settings.Default(), *srv.Settings())
}

func TestSyncRemovesRemotelyDeletedWorkouts(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	e := newEngine(t, engine.WithRemote(srv.URL))
	login(t, e)

	w := recordOneSet(t, e).Workout
	e.Wait()
	srv.RemoveWorkout(w.ID)

	res, err := e.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Dropped)
	assert.Empty(t, e.History())
}

func TestSyncRequiresRemoteAndLogin(t *testing.T) {
	offline := newEngine(t)
	_, err := offline.Sync(context.Background())
	assert.ErrorIs(t, err, engine.ErrOffline)

	srv := remotetest.NewServer(t, token)
	e := newEngine(t, engine.WithRemote(srv.URL))
	_, err = e.Sync(context.Background())
	assert.ErrorIs(t, err, engine.ErrNotAuthenticated)

	// Nothing is uploaded while logged out.
	recordOneSet(t, e)
	e.Wait()
	assert.Zero(t, srv.TotalCalls())
}

func TestRevokedTokenForcesLogout(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	m := metrics.NewTestManager()
	e := newEngine(t, engine.WithRemote(srv.URL), engine.WithMetrics(m))
	login(t, e)

	srv.RevokeToken()
	_, err := e.Sync(context.Background())
	assert.ErrorIs(t, err, remote.ErrUnauthorized)
	assert.False(t, e.Authenticated())
	assert.Empty(t, e.Token())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterForcedLogouts))
}

func TestRevokedTokenDuringUploadForcesLogout(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	e := newEngine(t, engine.WithRemote(srv.URL))
	login(t, e)

	srv.RevokeToken()
	recordOneSet(t, e)
	e.Wait()

	assert.False(t, e.Authenticated())
	// Local data is kept.
	require.Len(t, e.History(), 1)
	assert.False(t, e.History()[0].Synced)
}

func TestLogoutKeepsData(t *testing.T) {
	e := newEngine(t)
	login(t, e)
	recordOneSet(t, e)

	require.NoError(t, e.Logout(context.Background()))
	assert.False(t, e.Authenticated())
	_, ok := e.User()
	assert.False(t, ok)
	assert.Len(t, e.History(), 1)
}

func TestChallenges(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	srv.SeedChallenges(
		challenge.Challenge{ID: "mine", Title: "100 pushups", CreatorID: "user-1", Target: 100, Participants: []string{"user-1"}},
		challenge.Challenge{ID: "theirs", Title: "5k", CreatorID: "user-2", Target: 5, Participants: []string{"user-2", "user-1"}},
	)
	e := newEngine(t, engine.WithRemote(srv.URL))
	login(t, e)
	ctx := context.Background()

	list, err := e.RefreshChallenges(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, e.JoinChallenge(ctx, "theirs"))
	require.NoError(t, e.JoinChallenge(ctx, "theirs"))
	joined := e.JoinedChallenges()
	require.Len(t, joined, 1)
	assert.True(t, joined[0].IsParticipant("user-1"))

	l, err := e.LogChallengeProgress(ctx, "theirs", 2.5)
	require.NoError(t, err)
	assert.Equal(t, "user-1", l.UserID)
	_, err = e.LogChallengeProgress(ctx, "theirs", 1)
	require.NoError(t, err)

	board, err := e.Leaderboard(ctx, "theirs")
	require.NoError(t, err)
	require.NotEmpty(t, board)
	assert.Equal(t, "user-1", board[0].UserID)
	assert.Equal(t, 3.5, board[0].Total)

	logs, err := e.ChallengeLogs(ctx, "theirs")
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	require.NoError(t, e.LeaveChallenge(ctx, "theirs"))
	assert.Empty(t, e.JoinedChallenges())

	assert.ErrorIs(t, e.LeaveChallenge(ctx, "mine"), challenge.ErrCreatorCannotLeave)
	assert.ErrorIs(t, e.DeleteChallenge(ctx, "theirs"), challenge.ErrNotCreator)
	assert.ErrorIs(t, e.JoinChallenge(ctx, "missing"), challenge.ErrUnknownChallenge)

	require.NoError(t, e.DeleteChallenge(ctx, "mine"))
	_, ok := srv.Challenge("mine")
	assert.False(t, ok)
	assert.Len(t, e.Challenges(), 1)
}

func TestLeaderboardOffline(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	srv.SeedChallenges(challenge.Challenge{
		ID: "c", CreatorID: "user-2", Participants: []string{"user-1", "user-2"},
		Logs: []challenge.Log{{UserID: "user-2", Value: 3}, {UserID: "user-1", Value: 1}},
	})
	e := newEngine(t, engine.WithRemote(srv.URL))
	login(t, e)
	_, err := e.RefreshChallenges(context.Background())
	require.NoError(t, err)
	require.NoError(t, e.Logout(context.Background()))

	board, err := e.Leaderboard(context.Background(), "c")
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "user-2", board[0].UserID)

	_, err = e.LogChallengeProgress(context.Background(), "c", 1)
	assert.ErrorIs(t, err, engine.ErrNotAuthenticated)
}

func TestConcurrentUse(t *testing.T) {
	srv := remotetest.NewServer(t, token)
	e := newEngine(t, engine.WithRemote(srv.URL))
	login(t, e)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 5 {
			_, _ = e.Sync(ctx)
		}
	}()
	for i := range 5 {
		_, err := e.LogWorkout(ctx, workout.Workout{ID: fmt.Sprintf("manual-%d", i), StartTime: base.Add(-time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}
	<-done
	e.Wait()

	_, err := e.Sync(ctx)
	require.NoError(t, err)
	assert.Len(t, e.History(), 5)
	assert.Len(t, srv.Workouts(), 5)
	for _, w := range e.History() {
		assert.True(t, w.Synced, w.ID)
	}
}
