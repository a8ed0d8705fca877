package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version, Commit and BuildDate are stamped via ldflags at release time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hearthbreaker %s (commit %s, built %s, %s/%s)\n",
			Version, Commit, BuildDate, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
