package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/warit-s/bomreport/internal/core"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and restore past reports",
	Long: `Browse the bounded history of generated reports.

Entries are listed most recent first; position 1 is the newest. Restoring an
entry replaces the current draft with the stored snapshot.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List history entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("store not initialized")
		}
		history := Store.LoadHistory()
		if len(history) == 0 {
			fmt.Println("History is empty.")
			return nil
		}
		for i, entry := range history {
			label := entry.Data.WorkBOM
			if label == "" {
				label = entry.Data.ProjectName
			}
			if label == "" {
				label = fmt.Sprintf("%d task(s)", len(entry.Data.Tasks))
			}
			fmt.Printf("%2d. %-22s %s\n", i+1, entry.Timestamp, label)
		}
		return nil
	},
}

// historyEntryAt resolves a 1-based position argument against the history.
func historyEntryAt(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 1 {
		return 0, fmt.Errorf("invalid position %q", arg)
	}
	return pos - 1, nil
}

var historyShowCmd = &cobra.Command{
	Use:   "show <position>",
	Short: "Render a history entry's report text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("store not initialized")
		}
		index, err := historyEntryAt(args[0])
		if err != nil {
			return err
		}
		history := Store.LoadHistory()
		if index >= len(history) {
			return fmt.Errorf("no history entry at position %s", args[0])
		}
		entry := history[index]
		fmt.Printf("Saved: %s\n\n", entry.Timestamp)
		fmt.Println(core.SerializeReport(entry.Data, time.Now()))
		return nil
	},
}

var historyRestoreCmd = &cobra.Command{
	Use:   "restore <position>",
	Short: "Replace the current draft with a history entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil || Reports == nil {
			return fmt.Errorf("report services not initialized")
		}
		index, err := historyEntryAt(args[0])
		if err != nil {
			return err
		}
		history := Store.LoadHistory()
		if index >= len(history) {
			return fmt.Errorf("no history entry at position %s", args[0])
		}
		Reports.Restore(history[index].Data)
		fmt.Printf("Restored draft from %s\n", history[index].Timestamp)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("store not initialized")
		}
		if !Store.ClearHistory() {
			return fmt.Errorf("clearing history failed")
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRestoreCmd)
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
}
