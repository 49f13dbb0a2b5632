package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/liftlog/internal/store"
)

// version is set via -ldflags at build time. Without it the module
// version recorded in the binary is used.
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the liftlog build and snapshot format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if short, _ := cmd.Flags().GetBool("short"); short {
			_, err := fmt.Fprintln(out, buildVersion())
			return err
		}
		_, err := fmt.Fprintf(out, "liftlog %s\n  go:       %s %s/%s\n  snapshot: v%d\n",
			buildVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH, store.CurrentVersion)
		return err
	},
}

func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print only the version")
}
