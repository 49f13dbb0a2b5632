package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/abhisek/liftlog/internal/workout"
)

const dateLayout = "2006-01-02"

// Aggregator recomputes WorkoutStats from scratch. Calendar days are taken
// in Location; a nil Location means time.Local.
type Aggregator struct {
	Location *time.Location
}

// Recompute derives stats using the local time zone.
func Recompute(history []workout.Workout, lib *workout.Library, previous WorkoutStats) WorkoutStats {
	return Aggregator{}.Recompute(history, lib, previous)
}

// Recompute derives a fresh WorkoutStats. It never fails and does not
// modify its inputs; identical inputs produce identical output.
func (a Aggregator) Recompute(history []workout.Workout, lib *workout.Library, previous WorkoutStats) WorkoutStats {
	loc := a.Location
	if loc == nil {
		loc = time.Local
	}

	sorted := slices.Clone(history)
	workout.SortNewestFirst(sorted)

	out := WorkoutStats{
		TotalWorkouts:     len(sorted),
		BodyWeightLogs:    slices.Clone(previous.BodyWeightLogs),
		FavoriteExercises: []Favorite{},
		PerformanceLog:    []DayPerformance{},
	}

	days := make(map[string]*DayPerformance)
	for _, w := range sorted {
		key := w.StartTime.In(loc).Format(dateLayout)
		day, ok := days[key]
		if !ok {
			day = &DayPerformance{Date: key}
			days[key] = day
		}
		day.Workouts++

		for _, e := range w.Exercises {
			out.TotalExercises++
			for _, s := range e.Sets {
				if !s.Completed {
					continue
				}
				reps := s.RepsOrZero()
				vol := s.Volume()
				out.TotalSets++
				out.TotalReps += reps
				out.TotalVolume += vol
				out.TotalWeight += vol
				day.Reps += reps
				day.Volume += vol
			}
		}
	}

	for _, d := range days {
		out.PerformanceLog = append(out.PerformanceLog, *d)
	}
	slices.SortFunc(out.PerformanceLog, func(x, y DayPerformance) int {
		return strings.Compare(x.Date, y.Date)
	})

	out.Streak = Streak(sorted, loc)
	out.FavoriteExercises = Favorites(sorted, lib, FavoriteLimit)

	if len(sorted) > 0 {
		last := sorted[0].StartTime
		out.LastWorkoutDate = &last
	}
	return out
}

// Streak counts consecutive calendar days, ending at the most recent
// finished workout, that contain at least one finished workout. Workouts
// without an end time are ignored.
func Streak(history []workout.Workout, loc *time.Location) int {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, w := range history {
		if w.EndTime == nil {
			continue
		}
		d := civilDate(*w.EndTime, loc)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return 0
	}
	slices.SortFunc(dates, func(x, y time.Time) int { return y.Compare(x) })

	streak := 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].Sub(dates[i]) != 24*time.Hour {
			break
		}
		streak++
	}
	return streak
}

// Favorites ranks exercises by the number of workout entries referencing
// them. Ties go to the library's natural order; IDs unknown to the library
// rank after all known ones, in first-encountered order.
func Favorites(history []workout.Workout, lib *workout.Library, limit int) []Favorite {
	counts := make(map[string]int)
	var order []string
	for _, w := range history {
		for _, e := range w.Exercises {
			if _, ok := counts[e.ExerciseID]; !ok {
				order = append(order, e.ExerciseID)
			}
			counts[e.ExerciseID]++
		}
	}

	rank := make(map[string]int, len(order))
	libLen := 0
	if lib != nil {
		libLen = lib.Len()
	}
	for i, id := range order {
		if idx := lib.Index(id); idx >= 0 {
			rank[id] = idx
		} else {
			rank[id] = libLen + i
		}
	}

	slices.SortStableFunc(order, func(x, y string) int {
		if counts[x] != counts[y] {
			return counts[y] - counts[x]
		}
		return rank[x] - rank[y]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	favs := make([]Favorite, 0, len(order))
	for _, id := range order {
		name := id
		if lib != nil {
			if ex, ok := lib.Get(id); ok {
				name = ex.Name
			}
		}
		favs = append(favs, Favorite{ExerciseID: id, Name: name, Count: counts[id]})
	}
	return favs
}

// civilDate truncates t to midnight UTC of its calendar date in loc, so
// that day arithmetic is unaffected by DST transitions.
func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
