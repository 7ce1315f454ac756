// Package cli implements the bomreport command tree. Commands operate on
// the package-level service instances wired in by the App at startup.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "bomreport",
	Short: "Work BOM report generator",
	Long: `bomreport maintains a local draft of a daily work report (Work BOM id,
project name, task entries, problem notes), renders it into a fixed text
format, and copies the result to the clipboard.

The draft is persisted on every change, and each generated report is kept
in a bounded local history for later recall.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bomreport %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
