package cmd

import (
	"context"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/liftlog/internal/engine"
	"github.com/abhisek/liftlog/internal/ui/components"
	"github.com/abhisek/liftlog/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			out := cmd.OutOrStdout()
			st := e.Stats()
			prefs := e.Settings()

			fmt.Fprintf(out, "Workouts:    %d\n", st.TotalWorkouts)
			fmt.Fprintf(out, "Exercises:   %d\n", st.TotalExercises)
			fmt.Fprintf(out, "Sets:        %d\n", st.TotalSets)
			fmt.Fprintf(out, "Reps:        %d\n", st.TotalReps)
			fmt.Fprintf(out, "Volume:      %s\n", prefs.FormatWeight(st.TotalVolume))
			fmt.Fprintf(out, "Streak:      %d day(s)\n", st.Streak)
			if st.LastWorkoutDate != nil {
				fmt.Fprintf(out, "Last:        %s\n", st.LastWorkoutDate.Local().Format(dateLayout))
			}

			if len(st.FavoriteExercises) > 0 {
				fmt.Fprintln(out)
				lipgloss.Fprintln(out, theme.Title.Render("Favorite exercises"))
				lipgloss.Fprintln(out, theme.Dim.Render(strings.Repeat("─", 40)))
				for _, f := range st.FavoriteExercises {
					fmt.Fprintf(out, "%-30s  %6d\n", truncate(f.Name, 30), f.Count)
				}
			}

			if n := len(st.BodyWeightLogs); n > 0 {
				last := st.BodyWeightLogs[n-1]
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Body weight: %s (%s)\n", prefs.FormatWeight(last.Weight), last.Date.Local().Format(dateLayout))
			}
			return nil
		})
	},
}

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Show level and XP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			lvl := e.Level()
			out := cmd.OutOrStdout()
			bar := components.NewProgressBar("", lvl.Progress(), true, 30)
			lipgloss.Fprintln(out, theme.Title.Render(fmt.Sprintf("Level %d  %s", lvl.Level, lvl.Title)))
			lipgloss.Fprintf(out, "%s  %d/%d XP (total %d)\n", bar.View(), lvl.CurrentXP, lvl.XPToNext, lvl.TotalXP)
			return nil
		})
	},
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			out := cmd.OutOrStdout()
			if a, ok := e.PendingAchievement(); ok {
				lipgloss.Fprintf(out, "%s %s\n\n", theme.Title.Render("New:"), theme.Rarity(a.Rarity).Render(a.String()))
				e.DismissAchievement()
			}
			for _, a := range e.Achievements() {
				status := theme.Dim.Render("locked")
				if a.Unlocked && a.UnlockedAt != nil {
					status = theme.Done.Render("unlocked " + a.UnlockedAt.Local().Format(dateLayout))
				}
				lipgloss.Fprintf(out, "%s %-18s  %s  %-42s  %s\n",
					a.Rarity.Icon(), a.Name, theme.Rarity(a.Rarity).Render(fmt.Sprintf("%-10s", a.Rarity.DisplayName())), a.Description, status)
			}
			return nil
		})
	},
}
