package asanacli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/asana"
	"github.com/yourorg/pmctl/internal/datespec"
)

const dateHelp = `DATE can be:
  - YYYY-MM-DD (e.g. 2025-11-10)
  - today or tomorrow
  - +Nd or +Nw for N days or weeks from today (e.g. +3d, +1w)`

func newRescheduleCmd(globals *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule <task-id> <date>",
		Short: "Change the due date of a task",
		Long:  "Change the due date of a task.\n\n" + dateHelp,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := datespec.Parse(args[1], globals.clock())
			if err != nil {
				return fmt.Errorf("parse date: %w", err)
			}

			client, _, err := buildClient(cmd, globals)
			if err != nil {
				return err
			}

			dueOn := due.String()
			task, err := client.UpdateTask(cmd.Context(), args[0], asana.UpdateTaskRequest{DueOn: &dueOn})
			if err != nil {
				return fmt.Errorf("reschedule task: %w", err)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s Rescheduled '%s' to %s\n", markDone, task.Name, dueOn); err != nil {
				return fmt.Errorf("write confirmation: %w", err)
			}
			return nil
		},
	}
}
