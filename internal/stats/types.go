package stats

import (
	"slices"
	"time"
)

// FavoriteLimit is the number of favorite exercises kept in WorkoutStats.
const FavoriteLimit = 5

// Favorite is an exercise ranked by how many workouts included it.
type Favorite struct {
	ExerciseID string `json:"exerciseId"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// DayPerformance aggregates one calendar day of training.
type DayPerformance struct {
	Date     string  `json:"date"` // YYYY-MM-DD in the aggregator's location
	Volume   float64 `json:"volume"`
	Reps     int     `json:"reps"`
	Workouts int     `json:"workouts"`
}

// BodyWeightLog is a user-entered body weight measurement. It cannot be
// derived from workout history and is carried across recomputations.
type BodyWeightLog struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

// WorkoutStats is fully derived from the workout history, the exercise
// library and the previously recorded body weight logs.
type WorkoutStats struct {
	TotalWorkouts     int              `json:"totalWorkouts"`
	TotalExercises    int              `json:"totalExercises"`
	TotalSets         int              `json:"totalSets"`
	TotalReps         int              `json:"totalReps"`
	TotalVolume       float64          `json:"totalVolume"`
	TotalWeight       float64          `json:"totalWeight"`
	Streak            int              `json:"streak"`
	FavoriteExercises []Favorite       `json:"favoriteExercises"`
	PerformanceLog    []DayPerformance `json:"performanceLog"`
	BodyWeightLogs    []BodyWeightLog  `json:"bodyWeightLogs"`
	LastWorkoutDate   *time.Time       `json:"lastWorkoutDate,omitempty"`
}

// Clone returns a deep copy of s.
func (s WorkoutStats) Clone() WorkoutStats {
	out := s
	out.FavoriteExercises = slices.Clone(s.FavoriteExercises)
	out.PerformanceLog = slices.Clone(s.PerformanceLog)
	out.BodyWeightLogs = slices.Clone(s.BodyWeightLogs)
	if s.LastWorkoutDate != nil {
		t := *s.LastWorkoutDate
		out.LastWorkoutDate = &t
	}
	return out
}
