package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warit-s/bomreport/internal/observability"
)

var (
	resetTasksOnly bool
	resetAllData   bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the draft",
	Long: `Clear the current draft back to a single blank task.

By default every field is cleared. With --tasks-only the Work BOM and
project name are kept and only the task entries and problem notes are
cleared. With --all the stored history is removed as well; the theme
preference always survives.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil || Store == nil {
			return fmt.Errorf("report services not initialized")
		}
		if resetTasksOnly && resetAllData {
			return fmt.Errorf("--tasks-only and --all are mutually exclusive")
		}

		switch {
		case resetTasksOnly:
			Reports.ClearTasksOnly()
			fmt.Println("Cleared task entries and problem notes.")
		case resetAllData:
			Reports.ResetAll()
			if !Store.ClearAll() {
				return fmt.Errorf("clearing stored data failed")
			}
			logEvent(observability.EventDataCleared, nil)
			fmt.Println("Cleared draft, history, and stored data.")
		default:
			Reports.ResetAll()
			fmt.Println("Cleared draft.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetTasksOnly, "tasks-only", false, "Keep the Work BOM and project name")
	resetCmd.Flags().BoolVar(&resetAllData, "all", false, "Also delete the stored history")

	rootCmd.AddCommand(resetCmd)
}
