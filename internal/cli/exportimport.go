package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/warit-s/bomreport/internal/observability"
	"github.com/warit-s/bomreport/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the current draft to a versioned JSON file",
	Long: `Export the current draft inside a versioned envelope. With no file
argument the JSON is written to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		out, err := storage.ExportSnapshot(Reports.BuildSnapshot(), time.Now())
		if err != nil {
			return fmt.Errorf("exporting draft: %w", err)
		}
		if len(args) == 0 {
			fmt.Println(string(out))
			return nil
		}
		if err := os.WriteFile(args[0], out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", args[0], err)
		}
		fmt.Printf("Exported draft to %s\n", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the current draft from an exported JSON file",
	Long: `Import a previously exported draft. The current draft is replaced only
after the file parses successfully; a malformed file leaves it untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		snapshot, err := storage.ImportSnapshot(raw)
		if err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}
		Reports.Restore(snapshot)
		logEvent(observability.EventDraftImported, map[string]any{"file": args[0]})
		fmt.Printf("Imported draft from %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
