package asanacli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/asana"
)

type updateOptions struct {
	notes       string
	appendNotes string
}

func newUpdateCmd(globals *globalOptions) *cobra.Command {
	opts := &updateOptions{}

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Replace or extend a task's notes",
		Args:  cobra.ExactArgs(1),
		RunE:  opts.run(globals),
	}

	cmd.Flags().StringVar(&opts.notes, "notes", "", "Replace the task notes")
	cmd.Flags().StringVar(&opts.appendNotes, "append-notes", "", "Append a line to the existing notes")
	cmd.MarkFlagsMutuallyExclusive("notes", "append-notes")

	return cmd
}

func (opts *updateOptions) run(globals *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		replace := cmd.Flags().Changed("notes")
		if !replace && opts.appendNotes == "" {
			return errors.New("must specify either --notes or --append-notes")
		}

		client, _, err := buildClient(cmd, globals)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		taskID := args[0]

		notes := opts.notes
		if !replace {
			current, err := client.GetTask(ctx, taskID, "name", "notes")
			if err != nil {
				return fmt.Errorf("fetch task %s: %w", taskID, err)
			}
			notes = appendLine(current.Notes, opts.appendNotes)
		}

		task, err := client.UpdateTask(ctx, taskID, asana.UpdateTaskRequest{Notes: &notes})
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s Updated: %s\n", markDone, task.Name); err != nil {
			return fmt.Errorf("write confirmation: %w", err)
		}
		return nil
	}
}

func appendLine(existing, line string) string {
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}
