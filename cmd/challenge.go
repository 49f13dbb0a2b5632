package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/liftlog/internal/challenge"
	"github.com/abhisek/liftlog/internal/engine"
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Browse and take part in shared challenges",
}

var challengeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List challenges, refreshing from the remote when logged in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			list, err := e.RefreshChallenges(ctx)
			if err != nil {
				// Fall back to the cached list.
				list = e.Challenges()
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No challenges.")
				return nil
			}

			user, _ := e.User()
			joined := make(map[string]bool)
			for _, c := range e.JoinedChallenges() {
				joined[c.ID] = true
			}

			fmt.Fprintf(out, "%-20s  %-28s  %12s  %s\n", "ID", "Title", "Progress", "")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, c := range list {
				flags := ""
				if joined[c.ID] {
					flags = "joined"
				}
				if c.Completed(user.ID) {
					flags += " done"
				}
				fmt.Fprintf(out, "%-20s  %-28s  %5.0f/%-6.0f  %s\n",
					truncate(c.ID, 20), truncate(c.Title, 28), c.Progress(user.ID), c.Target, strings.TrimSpace(flags))
			}
			return nil
		})
	},
}

var challengeJoinCmd = &cobra.Command{
	Use:   "join <id>",
	Short: "Join a challenge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return challengeAction(cmd, "Joined", func(ctx context.Context, e *engine.Engine) error {
			return e.JoinChallenge(ctx, args[0])
		})
	},
}

var challengeLeaveCmd = &cobra.Command{
	Use:   "leave <id>",
	Short: "Leave a challenge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return challengeAction(cmd, "Left", func(ctx context.Context, e *engine.Engine) error {
			return e.LeaveChallenge(ctx, args[0])
		})
	},
}

var challengeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a challenge you created",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return challengeAction(cmd, "Deleted", func(ctx context.Context, e *engine.Engine) error {
			return e.DeleteChallenge(ctx, args[0])
		})
	},
}

var challengeLogCmd = &cobra.Command{
	Use:   "log <id> <value>",
	Short: "Log progress towards a challenge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value float64
		if _, err := fmt.Sscanf(args[1], "%g", &value); err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			l, err := e.LogChallengeProgress(ctx, args[0], value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %g at %s\n", l.Value, l.LoggedAt.Local().Format("2006-01-02 15:04"))
			return nil
		})
	},
}

var challengeLeaderboardCmd = &cobra.Command{
	Use:   "leaderboard <id>",
	Short: "Show a challenge leaderboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			board, err := e.Leaderboard(ctx, args[0])
			if err != nil {
				return err
			}
			printLeaderboard(cmd, board)
			return nil
		})
	},
}

func init() {
	challengeCmd.AddCommand(challengeListCmd)
	challengeCmd.AddCommand(challengeJoinCmd)
	challengeCmd.AddCommand(challengeLeaveCmd)
	challengeCmd.AddCommand(challengeDeleteCmd)
	challengeCmd.AddCommand(challengeLogCmd)
	challengeCmd.AddCommand(challengeLeaderboardCmd)
}

func challengeAction(cmd *cobra.Command, verb string, fn func(ctx context.Context, e *engine.Engine) error) error {
	return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
		if err := fn(ctx, e); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), verb, cmd.Flags().Arg(0))
		return nil
	})
}

func printLeaderboard(cmd *cobra.Command, board []challenge.Standing) {
	out := cmd.OutOrStdout()
	for i, s := range board {
		name := s.Username
		if name == "" {
			name = s.UserID
		}
		fmt.Fprintf(out, "%3d. %-24s  %8.1f\n", i+1, truncate(name, 24), s.Total)
	}
}
