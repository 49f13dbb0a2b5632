package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/liftlog/internal/engine"
	"github.com/abhisek/liftlog/internal/session"
	"github.com/abhisek/liftlog/internal/ui/theme"
	"github.com/abhisek/liftlog/internal/workout"
)

var startCmd = &cobra.Command{
	Use:   "start [name]",
	Short: "Start a workout session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "Workout"
		if len(args) == 1 {
			name = args[0]
		}
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			w, err := e.StartSession(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started %q (%s)\n", w.Name, w.ID)
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add <exercise-id>",
	Short: "Add an exercise to the current session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateSession(cmd, func(ctx context.Context, e *engine.Engine) error {
			return e.AddExercise(ctx, args[0])
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <exercise-id>",
	Short: "Remove an exercise from the current session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateSession(cmd, func(ctx context.Context, e *engine.Engine) error {
			return e.RemoveExercise(ctx, args[0])
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set <exercise#> <set#>",
	Short: "Record reps, weight or completion for one set",
	Long:  "Record reps, weight or completion for one set. Exercise and set numbers start at 1.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, set, err := parsePosition(args[0], args[1])
		if err != nil {
			return err
		}
		var upd session.SetUpdate
		if cmd.Flags().Changed("reps") {
			v, _ := cmd.Flags().GetInt("reps")
			upd.Reps = &v
		}
		if cmd.Flags().Changed("weight") {
			v, _ := cmd.Flags().GetFloat64("weight")
			upd.Weight = &v
		}
		if cmd.Flags().Changed("done") {
			v, _ := cmd.Flags().GetBool("done")
			upd.Completed = &v
		}
		return mutateSession(cmd, func(ctx context.Context, e *engine.Engine) error {
			return e.RecordSet(ctx, ex, set, upd)
		})
	},
}

var setAddCmd = &cobra.Command{
	Use:   "add <exercise#>",
	Short: "Append an empty set to an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		return mutateSession(cmd, func(ctx context.Context, e *engine.Engine) error {
			return e.AddSet(ctx, ex)
		})
	},
}

var setRemoveCmd = &cobra.Command{
	Use:   "rm <exercise#> <set#>",
	Short: "Remove one set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, set, err := parsePosition(args[0], args[1])
		if err != nil {
			return err
		}
		return mutateSession(cmd, func(ctx context.Context, e *engine.Engine) error {
			return e.RemoveSet(ctx, ex, set)
		})
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Move to the next exercise",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateSession(cmd, func(ctx context.Context, e *engine.Engine) error {
			return e.NextExercise(ctx)
		})
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Move to the previous exercise",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateSession(cmd, func(ctx context.Context, e *engine.Engine) error {
			return e.PrevExercise(ctx)
		})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			if err := e.CancelSession(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session discarded.")
			return nil
		})
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the current session and add it to history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			res, err := e.FinishSession(ctx)
			if err != nil {
				return err
			}
			printFinish(cmd.OutOrStdout(), res, e)
			return nil
		})
	},
}

func init() {
	setCmd.Flags().Int("reps", 0, "Repetitions performed")
	setCmd.Flags().Float64("weight", 0, "Weight used")
	setCmd.Flags().Bool("done", false, "Mark the set completed")
	setCmd.AddCommand(setAddCmd)
	setCmd.AddCommand(setRemoveCmd)
}

// mutateSession applies fn and prints the resulting session.
func mutateSession(cmd *cobra.Command, fn func(ctx context.Context, e *engine.Engine) error) error {
	return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
		if state, _, _ := e.SessionState(); state != session.StateActive {
			return session.ErrNoActiveSession
		}
		if err := fn(ctx, e); err != nil {
			return err
		}
		return showStatus(ctx, cmd, e)
	})
}

func showStatus(_ context.Context, cmd *cobra.Command, e *engine.Engine) error {
	out := cmd.OutOrStdout()
	lvl := e.Level()
	lipgloss.Fprintf(out, "%s  %s\n",
		theme.Title.Render(fmt.Sprintf("Level %d %s", lvl.Level, lvl.Title)),
		theme.Dim.Render(fmt.Sprintf("(%d/%d XP)", lvl.CurrentXP, lvl.XPToNext)))

	state, w, cursor := e.SessionState()
	if state != session.StateActive || w == nil {
		lipgloss.Fprintln(out, theme.Hint.Render("No active session. Run `liftlog start` to begin."))
		return nil
	}

	lib := workout.NewLibrary(e.Library())
	prefs := e.Settings()
	lipgloss.Fprintf(out, "\n%s  %s\n", theme.Title.Render(w.Name), theme.Dim.Render("started "+w.StartTime.Local().Format("15:04")))
	lipgloss.Fprintln(out, theme.Dim.Render(strings.Repeat("─", 48)))
	for i, entry := range w.Exercises {
		line := fmt.Sprintf("  %d. %s", i+1, exerciseName(lib, entry.ExerciseID))
		if i == cursor.Exercise {
			line = theme.Selected.Render("> " + line[2:])
		}
		lipgloss.Fprintln(out, line)
		for j, s := range entry.Sets {
			mark := "[ ]"
			if s.Completed {
				mark = theme.Done.Render("[x]")
			}
			lipgloss.Fprintf(out, "     %s set %d: %d reps @ %s\n", mark, j+1, s.Reps, prefs.FormatWeight(s.WeightOrZero()))
		}
	}
	return nil
}

func printFinish(out io.Writer, res engine.FinishResult, e *engine.Engine) {
	lipgloss.Fprintf(out, "Saved %q: %d exercises, %s\n",
		res.Workout.Name, len(res.Workout.Exercises), theme.Done.Render(fmt.Sprintf("+%d XP", res.XPGranted)))
	if res.LevelsGained > 0 {
		lvl := e.Level()
		lipgloss.Fprintln(out, theme.Title.Render(fmt.Sprintf("Level up! Now level %d (%s)", lvl.Level, lvl.Title)))
	}
	for _, a := range res.Unlocked {
		lipgloss.Fprintf(out, "Achievement unlocked: %s\n", theme.Rarity(a.Rarity).Render(a.String()))
	}
}

func exerciseName(lib *workout.Library, id string) string {
	if ex, ok := lib.Get(id); ok {
		return ex.Name
	}
	return id
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: must be a number starting at 1", s)
	}
	return n - 1, nil
}

func parsePosition(exercise, set string) (int, int, error) {
	ex, err := parseIndex(exercise)
	if err != nil {
		return 0, 0, err
	}
	s, err := parseIndex(set)
	if err != nil {
		return 0, 0, err
	}
	return ex, s, nil
}
