package asanacli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/asana"
	"github.com/yourorg/pmctl/internal/config"
	"github.com/yourorg/pmctl/internal/datespec"
	"github.com/yourorg/pmctl/internal/render"
)

type addOptions struct {
	due          string
	notes        string
	workspace    string
	projectIndex int
}

func newAddCmd(globals *globalOptions) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new task",
		Long:  "Add a new task assigned to the configured assignee.\n\n--due accepts the same values as reschedule.\n" + dateHelp,
		Args:  cobra.ExactArgs(1),
		RunE:  opts.run(globals),
	}

	cmd.Flags().StringVar(&opts.due, "due", "", "Due date (YYYY-MM-DD, today, tomorrow, +3d, +1w)")
	cmd.Flags().StringVar(&opts.notes, "notes", "", "Task notes")
	cmd.Flags().IntVar(&opts.projectIndex, "project-index", 0, "Add to the Nth configured project (0-indexed)")
	cmd.Flags().StringVar(&opts.workspace, "workspace", "", "Workspace ID (defaults to asana.workspace from config)")

	return cmd
}

func (opts *addOptions) run(globals *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		due, err := parseDue(opts.due, globals)
		if err != nil {
			return err
		}

		client, cfg, err := buildClient(cmd, globals)
		if err != nil {
			return err
		}

		req := asana.CreateTaskRequest{
			Name:      args[0],
			Workspace: firstNonEmpty(opts.workspace, cfg.Workspace),
			Assignee:  cfg.Assignee,
			Notes:     opts.notes,
			DueOn:     due,
		}
		if req.Workspace == "" {
			return errors.New("workspace required: pass --workspace or set asana.workspace in the config file")
		}
		if cmd.Flags().Changed("project-index") {
			projectID, err := projectAt(cfg, opts.projectIndex)
			if err != nil {
				return err
			}
			req.Projects = []string{projectID}
		}

		task, err := client.CreateTask(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("create task: %w", err)
		}

		p := render.NewPrinter(cmd.OutOrStdout())
		p.Linef("%s Created task: %s", markDone, task.Name)
		p.Linef("  ID: %s", task.GID)
		p.Linef("  URL: %s", render.OrDefault(task.PermalinkURL, notAvailable))
		return p.Err()
	}
}

func projectAt(cfg config.Asana, index int) (string, error) {
	if index < 0 || index >= len(cfg.ProjectIDs) {
		return "", fmt.Errorf("invalid project index %d: %d project(s) configured", index, len(cfg.ProjectIDs))
	}
	return cfg.ProjectIDs[index], nil
}

// parseDue returns "" for an empty expression.
func parseDue(expr string, globals *globalOptions) (string, error) {
	if expr == "" {
		return "", nil
	}
	d, err := datespec.Parse(expr, globals.clock())
	if err != nil {
		return "", fmt.Errorf("parse due date: %w", err)
	}
	return d.String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
