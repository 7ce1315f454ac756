package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warit-s/bomreport/internal/core"
	"github.com/warit-s/bomreport/pkg/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the draft's tasks by status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		summary := core.SummarizeStatuses(Reports.Tasks())
		if summary.Total == 0 {
			fmt.Println("No tasks with details yet.")
			return nil
		}
		for _, status := range models.AllStatuses {
			count := summary.ByStatus[status]
			if count == 0 {
				continue
			}
			fmt.Printf("  %-12s %d\n", status, count)
		}
		fmt.Printf("\n  Total: %d, done: %.0f%%\n", summary.Total, summary.DoneRatio()*100)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
