package asanacli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/asana"
	"github.com/yourorg/pmctl/internal/render"
)

type addSubtaskOptions struct {
	due   string
	notes string
}

func newAddSubtaskCmd(globals *globalOptions) *cobra.Command {
	opts := &addSubtaskOptions{}

	cmd := &cobra.Command{
		Use:   "add-subtask <parent-task-id> <name>",
		Short: "Add a subtask to an existing task",
		Args:  cobra.ExactArgs(2),
		RunE:  opts.run(globals),
	}

	cmd.Flags().StringVar(&opts.due, "due", "", "Due date (YYYY-MM-DD, today, tomorrow, +3d, +1w)")
	cmd.Flags().StringVar(&opts.notes, "notes", "", "Subtask notes")

	return cmd
}

func (opts *addSubtaskOptions) run(globals *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		parentID, name := args[0], args[1]

		due, err := parseDue(opts.due, globals)
		if err != nil {
			return err
		}

		client, cfg, err := buildClient(cmd, globals)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		parent, err := client.GetTask(ctx, parentID, "name", "workspace.gid")
		if err != nil {
			return fmt.Errorf("could not find parent task %s: %w", parentID, err)
		}

		workspace := cfg.Workspace
		if parent.Workspace != nil && parent.Workspace.GID != "" {
			workspace = parent.Workspace.GID
		}

		subtask, err := client.CreateTask(ctx, asana.CreateTaskRequest{
			Name:      name,
			Parent:    parentID,
			Workspace: workspace,
			Assignee:  cfg.Assignee,
			Notes:     opts.notes,
			DueOn:     due,
		})
		if err != nil {
			return fmt.Errorf("create subtask: %w", err)
		}

		p := render.NewPrinter(cmd.OutOrStdout())
		p.Linef("%s Created subtask under '%s':", markDone, parent.Name)
		p.Linef("  %s", subtask.Name)
		p.Linef("  ID: %s", subtask.GID)
		p.Linef("  URL: %s", render.OrDefault(subtask.PermalinkURL, notAvailable))
		return p.Err()
	}
}
