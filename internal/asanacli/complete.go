package asanacli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/asana"
)

func newCompleteCmd(globals *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task as complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(cmd, globals)
			if err != nil {
				return err
			}

			done := true
			task, err := client.UpdateTask(cmd.Context(), args[0], asana.UpdateTaskRequest{Completed: &done})
			if err != nil {
				return fmt.Errorf("complete task: %w", err)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s Completed: %s\n", markDone, task.Name); err != nil {
				return fmt.Errorf("write confirmation: %w", err)
			}
			return nil
		},
	}
}
