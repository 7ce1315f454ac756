package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/warit-s/bomreport/internal/core"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a scalar field of the draft (bom, project, problems)",
}

// newSetFieldCmd builds a subcommand that sets one scalar field. The value
// is validated advisorily: an invalid value is still stored, with a warning,
// matching the non-blocking validation model.
func newSetFieldCmd(use, short, field string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <value>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if Reports == nil {
				return fmt.Errorf("report manager not initialized")
			}
			if !Reports.SetField(field, args[0]) {
				return fmt.Errorf("unknown field %s", field)
			}
			if result := Reports.Validate(); !result.Valid {
				for _, e := range result.Errors {
					if e.Field == field {
						fmt.Printf("warning: %s\n", e.Message)
					}
				}
			}
			return nil
		},
	}
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current draft and a report preview",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		snapshot := Reports.BuildSnapshot()
		fmt.Printf("Work BOM : %s\n", orDash(snapshot.WorkBOM))
		fmt.Printf("Project  : %s\n", orDash(snapshot.ProjectName))
		fmt.Printf("Tasks    : %d\n", len(snapshot.Tasks))
		fmt.Printf("Problems : %s\n", orDash(snapshot.Problems))
		fmt.Println()
		fmt.Println(core.SerializeReport(snapshot, time.Now()))
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	setCmd.AddCommand(newSetFieldCmd("bom", "Set the Work BOM identifier", core.FieldWorkBOM))
	setCmd.AddCommand(newSetFieldCmd("project", "Set the project name", core.FieldProjectName))
	setCmd.AddCommand(newSetFieldCmd("problems", "Set the problem notes", core.FieldProblems))

	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(showCmd)
}
