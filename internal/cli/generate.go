package cli

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/warit-s/bomreport/internal/core"
	"github.com/warit-s/bomreport/internal/observability"
)

var (
	generateNoClipboard bool
	generateNotify      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the draft into the report text and copy it to the clipboard",
	Long: `Validate the current draft, render it into the canonical report text,
copy the text to the clipboard, and record a snapshot in the history.

Validation problems are reported as warnings; they never block generation.
Use --no-clipboard to print the report only, and --notify to additionally
post it to the configured webhook.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil || Store == nil {
			return fmt.Errorf("report services not initialized")
		}

		if result := Reports.Validate(); !result.Valid {
			for _, e := range result.Errors {
				if e.Index >= 0 {
					fmt.Printf("warning: task %d: %s\n", e.Index+1, e.Message)
				} else {
					fmt.Printf("warning: %s: %s\n", e.Field, e.Message)
				}
			}
		}

		now := time.Now()
		snapshot := Reports.BuildSnapshot()
		text := core.SerializeReport(snapshot, now)
		fmt.Println(text)

		if !generateNoClipboard {
			if err := clipboard.WriteAll(text); err != nil {
				fmt.Printf("warning: clipboard copy failed: %v\n", err)
			} else {
				fmt.Println("\nCopied to clipboard.")
			}
		}

		if Store.AppendHistory(snapshot, now) {
			logEvent(observability.EventReportGenerated, map[string]any{
				"tasks": len(snapshot.Tasks),
			})
		}

		if generateNotify {
			if Notifier == nil {
				fmt.Println("warning: no webhook configured (set webhook_url in .bomreportrc)")
			} else if err := Notifier.NotifyReport("Work Report", text); err != nil {
				fmt.Printf("warning: webhook notify failed: %v\n", err)
			}
		}

		return nil
	},
}

// logEvent writes to the event log when it is enabled.
func logEvent(eventType string, data map[string]any) {
	if EventLog == nil {
		return
	}
	_ = EventLog.Write(observability.Event{
		Time: time.Now().UTC(),
		Type: eventType,
		Data: data,
	})
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the draft against the field format rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		result := Reports.Validate()
		if result.Valid {
			fmt.Println("Draft is valid.")
			return nil
		}
		for _, e := range result.Errors {
			if e.Index >= 0 {
				fmt.Printf("task %d %s: %s\n", e.Index+1, e.Field, e.Message)
			} else {
				fmt.Printf("%s: %s\n", e.Field, e.Message)
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&generateNoClipboard, "no-clipboard", false, "Print the report without copying it to the clipboard")
	generateCmd.Flags().BoolVar(&generateNotify, "notify", false, "Post the report to the configured webhook")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
}
