package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/liftlog/internal/engine"
	"github.com/abhisek/liftlog/internal/remote"
	"github.com/abhisek/liftlog/internal/settings"
	"github.com/abhisek/liftlog/internal/store"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store credentials for the remote workout store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user := store.User{}
		user.ID, _ = cmd.Flags().GetString("user-id")
		user.Username, _ = cmd.Flags().GetString("username")
		user.Email, _ = cmd.Flags().GetString("email")
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			token = os.Getenv("LIFTLOG_TOKEN")
		}
		if token == "" {
			return errors.New("a token is required (--token or LIFTLOG_TOKEN)")
		}

		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			if err := e.SetCredentials(ctx, user, token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", displayName(user))
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget stored credentials; local data is kept",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			if err := e.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		})
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile workouts and settings with the remote store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			out := cmd.OutOrStdout()
			res, err := e.Sync(ctx)
			switch {
			case errors.Is(err, engine.ErrOffline):
				return errors.New("no remote configured (set remote.url or LIFTLOG_REMOTE_URL)")
			case errors.Is(err, engine.ErrNotAuthenticated):
				return errors.New("not logged in, run `liftlog login` first")
			case errors.Is(err, remote.ErrUnauthorized):
				fmt.Fprintln(out, "The remote rejected your credentials; you have been logged out.")
				return err
			}
			fmt.Fprintln(out, "Sync:", res)
			if err != nil {
				fmt.Fprintln(out, "Some changes could not be synced and will be retried next time.")
			}
			return err
		})
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error {
			s := e.Settings()
			changed := false
			if v, _ := cmd.Flags().GetString("weight-unit"); v != "" {
				s.WeightUnit = settings.WeightUnit(v)
				changed = true
			}
			if v, _ := cmd.Flags().GetString("distance-unit"); v != "" {
				s.DistanceUnit = settings.DistanceUnit(v)
				changed = true
			}
			if v, _ := cmd.Flags().GetString("theme"); v != "" {
				s.Theme = settings.Theme(v)
				changed = true
			}
			if changed {
				if err := e.UpdateSettings(ctx, s); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "weight unit:   %s\n", s.WeightUnit)
			fmt.Fprintf(out, "distance unit: %s\n", s.DistanceUnit)
			fmt.Fprintf(out, "theme:         %s\n", s.Theme)
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().String("token", "", "Bearer token (default $LIFTLOG_TOKEN)")
	loginCmd.Flags().String("user-id", "", "Remote user id")
	loginCmd.Flags().String("username", "", "Display name")
	loginCmd.Flags().String("email", "", "Email address")

	settingsCmd.Flags().String("weight-unit", "", "kg or lbs")
	settingsCmd.Flags().String("distance-unit", "", "km or miles")
	settingsCmd.Flags().String("theme", "", "light, dark or system")
}

func displayName(u store.User) string {
	switch {
	case u.Username != "":
		return u.Username
	case u.Email != "":
		return u.Email
	case u.ID != "":
		return u.ID
	default:
		return "anonymous"
	}
}
