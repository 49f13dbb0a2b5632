package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/liftlog/internal/engine"
	"github.com/abhisek/liftlog/internal/workout"
)

const dateLayout = "2006-01-02"

var logCmd = &cobra.Command{
	Use:   "log <name>",
	Short: "Log a completed workout without running a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := workout.Workout{Name: args[0]}

		if d, _ := cmd.Flags().GetInt("duration"); d > 0 {
			w.Duration = &d
		}
		if date, _ := cmd.Flags().GetString("date"); date != "" {
			t, err := time.ParseInLocation(dateLayout, date, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", date, err)
			}
			w.StartTime = t
		}
		w.Notes, _ = cmd.Flags().GetString("notes")

		exercises, _ := cmd.Flags().GetStringSlice("exercise")
		sets, _ := cmd.Flags().GetInt("sets")
		reps, _ := cmd.Flags().GetInt("reps")
		weight, _ := cmd.Flags().GetFloat64("weight")
		for _, id := range exercises {
			entry := workout.Entry{ExerciseID: id}
			for range max(sets, 1) {
				s := workout.Set{Reps: reps, Completed: true}
				if weight > 0 {
					wt := weight
					s.Weight = &wt
				}
				entry.Sets = append(entry.Sets, s)
			}
			w.Exercises = append(w.Exercises, entry)
		}

		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			res, err := e.LogWorkout(ctx, w)
			if err != nil {
				return err
			}
			printFinish(cmd.OutOrStdout(), res, e)
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished workouts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			out := cmd.OutOrStdout()
			history := e.History()
			if len(history) == 0 {
				fmt.Fprintln(out, "No workouts yet.")
				return nil
			}
			if limit > 0 && len(history) > limit {
				history = history[:limit]
			}

			fmt.Fprintf(out, "%-36s  %-10s  %-24s  %9s  %s\n", "ID", "Date", "Name", "Exercises", "Synced")
			fmt.Fprintln(out, strings.Repeat("─", 92))
			for _, w := range history {
				synced := "no"
				if w.Synced {
					synced = "yes"
				}
				fmt.Fprintf(out, "%-36s  %-10s  %-24s  %9d  %s\n",
					w.ID, w.StartTime.Local().Format(dateLayout), truncate(w.Name, 24), len(w.Exercises), synced)
			}
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <workout-id>",
	Short: "Delete a workout from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			if err := e.DeleteWorkout(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted", args[0])
			return nil
		})
	},
}

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the exercise library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			out := cmd.OutOrStdout()
			for _, ex := range e.Library() {
				if category != "" && string(ex.Category) != category {
					continue
				}
				fmt.Fprintf(out, "%-22s  %-26s  %s\n", ex.ID, ex.Name, ex.Category.DisplayName())
			}
			return nil
		})
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <id> <name>",
	Short: "Add a custom exercise",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		muscles, _ := cmd.Flags().GetStringSlice("muscle")
		ex := workout.Exercise{
			ID:           args[0],
			Name:         args[1],
			Category:     workout.Category(category),
			MuscleGroups: muscles,
		}
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			if err := e.AddCustomExercise(ctx, ex); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", ex.Name)
			return nil
		})
	},
}

var bodyweightCmd = &cobra.Command{
	Use:   "bodyweight <weight>",
	Short: "Record a body weight measurement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var weight float64
		if _, err := fmt.Sscanf(args[0], "%g", &weight); err != nil {
			return fmt.Errorf("invalid weight %q: %w", args[0], err)
		}
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			if err := e.AddBodyWeight(ctx, weight, time.Time{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s\n", e.Settings().FormatWeight(weight))
			return nil
		})
	},
}

func init() {
	logCmd.Flags().Int("duration", 0, "Duration in minutes")
	logCmd.Flags().String("date", "", "Date of the workout (YYYY-MM-DD, default today)")
	logCmd.Flags().String("notes", "", "Free-form notes")
	logCmd.Flags().StringSlice("exercise", nil, "Exercise id (repeatable)")
	logCmd.Flags().Int("sets", 1, "Completed sets per exercise")
	logCmd.Flags().Int("reps", 0, "Reps per set")
	logCmd.Flags().Float64("weight", 0, "Weight per set")

	historyCmd.Flags().Int("limit", 20, "Maximum number of workouts to show (0 for all)")

	exercisesCmd.Flags().String("category", "", "Only show one category")
	exerciseAddCmd.Flags().String("category", "strength", "Exercise category")
	exerciseAddCmd.Flags().StringSlice("muscle", nil, "Muscle group (repeatable)")
	exercisesCmd.AddCommand(exerciseAddCmd)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
