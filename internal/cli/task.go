package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/warit-s/bomreport/internal/core"
	"github.com/warit-s/bomreport/pkg/models"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the report's task entries (add, update, remove, up, down, clear, list)",
	Long: `Manage the ordered task entries of the current draft.

Entries are addressed by their 1-based position as shown by "task list".
Every change is persisted immediately.`,
}

var (
	taskDetailFlag string
	taskStatusFlag string
	taskRemarkFlag string
)

// patchFromFlags builds a TaskPatch from whichever flags were set on cmd.
func patchFromFlags(cmd *cobra.Command) core.TaskPatch {
	var patch core.TaskPatch
	if cmd.Flags().Changed("detail") {
		patch.Detail = &taskDetailFlag
	}
	if cmd.Flags().Changed("status") {
		status := models.NormalizeStatus(taskStatusFlag)
		patch.Status = &status
	}
	if cmd.Flags().Changed("remark") {
		patch.Remark = &taskRemarkFlag
	}
	return patch
}

// parseIndex converts a 1-based position argument to a 0-based index.
func parseIndex(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: expected a number", arg)
	}
	return pos - 1, nil
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a task entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		index := Reports.AddTask(patchFromFlags(cmd))
		fmt.Printf("Added task at position %d\n", index+1)
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <position>",
	Short: "Update fields of the task entry at a position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if !Reports.UpdateTask(index, patchFromFlags(cmd)) {
			return fmt.Errorf("no task at position %s", args[0])
		}
		fmt.Printf("Updated task %s\n", args[0])
		return nil
	},
}

var taskRemoveCmd = &cobra.Command{
	Use:   "remove <position>",
	Short: "Remove the task entry at a position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if !Reports.RemoveTask(index) {
			return fmt.Errorf("no task at position %s", args[0])
		}
		fmt.Printf("Removed task %s\n", args[0])
		return nil
	},
}

var taskUpCmd = &cobra.Command{
	Use:   "up <position>",
	Short: "Move the task entry one position up",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if !Reports.MoveTaskUp(index) {
			return fmt.Errorf("cannot move task %s up", args[0])
		}
		fmt.Printf("Moved task %s up\n", args[0])
		return nil
	},
}

var taskDownCmd = &cobra.Command{
	Use:   "down <position>",
	Short: "Move the task entry one position down",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if !Reports.MoveTaskDown(index) {
			return fmt.Errorf("cannot move task %s down", args[0])
		}
		fmt.Printf("Moved task %s down\n", args[0])
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the task entries of the current draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		tasks := Reports.Tasks()
		if len(tasks) == 0 {
			fmt.Println("No task entries.")
			return nil
		}
		for i, t := range tasks {
			detail := t.Detail
			if strings.TrimSpace(detail) == "" {
				detail = "(blank)"
			}
			fmt.Printf("%2d. %-10s %s\n", i+1, "["+string(t.Status)+"]", detail)
			if strings.TrimSpace(t.Remark) != "" {
				fmt.Printf("    remark: %s\n", t.Remark)
			}
		}
		return nil
	},
}

var taskClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all task entries, leaving one blank task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		Reports.ClearTasks()
		fmt.Println("Cleared task entries.")
		return nil
	},
}

// completeStatuses returns valid status values for shell completion.
func completeStatuses(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, len(models.AllStatuses))
	for i, s := range models.AllStatuses {
		out[i] = string(s)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	for _, cmd := range []*cobra.Command{taskAddCmd, taskUpdateCmd} {
		cmd.Flags().StringVar(&taskDetailFlag, "detail", "", "Task detail text")
		cmd.Flags().StringVar(&taskStatusFlag, "status", "", "Task status (OK, Pending, In Progress, Waiting, NG, None)")
		cmd.Flags().StringVar(&taskRemarkFlag, "remark", "", "Task remark text")
		_ = cmd.RegisterFlagCompletionFunc("status", completeStatuses)
	}

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskRemoveCmd)
	taskCmd.AddCommand(taskUpCmd)
	taskCmd.AddCommand(taskDownCmd)
	taskCmd.AddCommand(taskClearCmd)
	taskCmd.AddCommand(taskListCmd)

	rootCmd.AddCommand(taskCmd)
}
