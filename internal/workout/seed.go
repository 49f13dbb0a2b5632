package workout

func seedExercises() []Exercise {
	return []Exercise{
		{ID: "bench-press", Name: "Bench Press", Category: CategoryStrength, MuscleGroups: []string{"chest", "triceps", "shoulders"}, Icon: "🏋️"},
		{ID: "squat", Name: "Back Squat", Category: CategoryStrength, MuscleGroups: []string{"quadriceps", "glutes", "hamstrings"}, Icon: "🏋️"},
		{ID: "deadlift", Name: "Deadlift", Category: CategoryStrength, MuscleGroups: []string{"back", "glutes", "hamstrings"}, Icon: "🏋️"},
		{ID: "overhead-press", Name: "Overhead Press", Category: CategoryStrength, MuscleGroups: []string{"shoulders", "triceps"}, Icon: "🏋️"},
		{ID: "barbell-row", Name: "Barbell Row", Category: CategoryStrength, MuscleGroups: []string{"back", "biceps"}, Icon: "🏋️"},
		{ID: "pull-up", Name: "Pull-up", Category: CategoryStrength, MuscleGroups: []string{"back", "biceps"}, Icon: "💪"},
		{ID: "push-up", Name: "Push-up", Category: CategoryStrength, MuscleGroups: []string{"chest", "triceps"}, Icon: "💪"},
		{ID: "lunge", Name: "Walking Lunge", Category: CategoryFunctional, MuscleGroups: []string{"quadriceps", "glutes"}},
		{ID: "kettlebell-swing", Name: "Kettlebell Swing", Category: CategoryFunctional, MuscleGroups: []string{"glutes", "hamstrings", "core"}},
		{ID: "running", Name: "Running", Category: CategoryCardio, MuscleGroups: []string{"legs"}, Icon: "🏃"},
		{ID: "cycling", Name: "Cycling", Category: CategoryCardio, MuscleGroups: []string{"legs"}, Icon: "🚴"},
		{ID: "rowing", Name: "Rowing Machine", Category: CategoryCardio, MuscleGroups: []string{"back", "legs"}},
		{ID: "plank", Name: "Plank", Category: CategoryCore, MuscleGroups: []string{"core"}, Instructions: "Hold a straight line from head to heels."},
		{ID: "crunch", Name: "Crunch", Category: CategoryCore, MuscleGroups: []string{"abs"}},
		{ID: "hamstring-stretch", Name: "Hamstring Stretch", Category: CategoryFlexibility, MuscleGroups: []string{"hamstrings"}},
		{ID: "yoga-flow", Name: "Yoga Flow", Category: CategoryFlexibility, MuscleGroups: []string{"full-body"}},
		{ID: "single-leg-stand", Name: "Single-leg Stand", Category: CategoryBalance, MuscleGroups: []string{"ankles", "core"}},
		{ID: "basketball", Name: "Basketball", Category: CategorySports, MuscleGroups: []string{"full-body"}},
	}
}
