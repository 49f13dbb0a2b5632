package progression

import (
	"fmt"
	"time"

	"github.com/abhisek/liftlog/internal/stats"
)

// RequirementKind names the statistic an achievement is tied to.
type RequirementKind string

const (
	KindTotalWorkouts RequirementKind = "totalWorkouts"
	KindStreak        RequirementKind = "streak"
	KindTotalReps     RequirementKind = "totalReps"
	KindTotalWeight   RequirementKind = "totalWeight"
)

// DisplayName returns a human-readable label for the requirement kind.
func (k RequirementKind) DisplayName() string {
	switch k {
	case KindTotalWorkouts:
		return "Workouts"
	case KindStreak:
		return "Day streak"
	case KindTotalReps:
		return "Total reps"
	case KindTotalWeight:
		return "Total weight"
	default:
		return string(k)
	}
}

// Requirement is a fixed threshold on one statistic.
type Requirement struct {
	Kind      RequirementKind `json:"type"`
	Threshold float64         `json:"value"`
}

// Value extracts the statistic the requirement is measured against.
// Unknown kinds yield 0 so they can never be met.
func (r Requirement) Value(s stats.WorkoutStats) float64 {
	switch r.Kind {
	case KindTotalWorkouts:
		return float64(s.TotalWorkouts)
	case KindStreak:
		return float64(s.Streak)
	case KindTotalReps:
		return float64(s.TotalReps)
	case KindTotalWeight:
		return s.TotalWeight
	default:
		return 0
	}
}

// Met reports whether the stats reach the threshold.
func (r Requirement) Met(s stats.WorkoutStats) bool {
	switch r.Kind {
	case KindTotalWorkouts, KindStreak, KindTotalReps, KindTotalWeight:
		return r.Value(s) >= r.Threshold
	default:
		return false
	}
}

// Achievement is a one-time milestone.
type Achievement struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon,omitempty"`
	Rarity      Rarity      `json:"rarity"`
	Requirement Requirement `json:"requirement"`
	XPReward    int         `json:"xpReward"`
	Unlocked    bool        `json:"unlocked"`
	UnlockedAt  *time.Time  `json:"unlockedAt,omitempty"`
}

func (a Achievement) clone() Achievement {
	if a.UnlockedAt != nil {
		t := *a.UnlockedAt
		a.UnlockedAt = &t
	}
	return a
}

// String renders the achievement for logs and the CLI.
func (a Achievement) String() string {
	return fmt.Sprintf("%s %s (%s)", a.Rarity.Icon(), a.Name, a.Description)
}

// DefaultAchievements returns the built-in achievements in evaluation order.
func DefaultAchievements() []Achievement {
	return []Achievement{
		workouts("first-workout", "First Steps", 1, 50, RarityCommon),
		workouts("workouts-10", "Getting Serious", 10, 100, RarityCommon),
		workouts("workouts-50", "Dedicated", 50, 250, RarityRare),
		workouts("workouts-100", "Centurion", 100, 500, RarityEpic),
		streak("streak-3", "On a Roll", 3, 75, RarityCommon),
		streak("streak-7", "Week Warrior", 7, 150, RarityRare),
		streak("streak-30", "Unstoppable", 30, 1000, RarityLegendary),
		reps("reps-1000", "Rep Machine", 1000, 100, RarityCommon),
		reps("reps-10000", "Ten Thousand", 10000, 500, RarityEpic),
		weight("weight-10000", "Heavy Lifter", 10000, 200, RarityRare),
		weight("weight-100000", "Titan", 100000, 1000, RarityLegendary),
	}
}

func workouts(id, name string, n float64, xp int, r Rarity) Achievement {
	desc := fmt.Sprintf("Complete %.0f workouts", n)
	if n == 1 {
		desc = "Complete your first workout"
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: "🏋️", Rarity: r,
		Requirement: Requirement{Kind: KindTotalWorkouts, Threshold: n}, XPReward: xp}
}

func streak(id, name string, n float64, xp int, r Rarity) Achievement {
	return Achievement{ID: id, Name: name, Description: fmt.Sprintf("Train %.0f days in a row", n), Icon: "🔥", Rarity: r,
		Requirement: Requirement{Kind: KindStreak, Threshold: n}, XPReward: xp}
}

func reps(id, name string, n float64, xp int, r Rarity) Achievement {
	return Achievement{ID: id, Name: name, Description: fmt.Sprintf("Log %.0f total reps", n), Icon: "💪", Rarity: r,
		Requirement: Requirement{Kind: KindTotalReps, Threshold: n}, XPReward: xp}
}

func weight(id, name string, n float64, xp int, r Rarity) Achievement {
	return Achievement{ID: id, Name: name, Description: fmt.Sprintf("Move %.0f total weight", n), Icon: "⚡", Rarity: r,
		Requirement: Requirement{Kind: KindTotalWeight, Threshold: n}, XPReward: xp}
}
