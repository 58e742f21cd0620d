package asanacli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/asana"
	"github.com/yourorg/pmctl/internal/config"
	"github.com/yourorg/pmctl/internal/datespec"
	"github.com/yourorg/pmctl/internal/render"
)

type listOptions struct {
	filter       string
	format       string
	concurrency  int
	completed    bool
	showSubtasks bool
}

func newListCmd(globals *globalOptions) *cobra.Command {
	opts := &listOptions{
		filter:      string(asana.FilterAll),
		format:      render.FormatText,
		concurrency: asana.DefaultConcurrency,
	}

	cmd := &cobra.Command{
		Use:   "list [task-id]",
		Short: "List your tasks, or the subtasks of one task",
		Args:  cobra.MaximumNArgs(1),
		RunE:  opts.run(globals),
	}

	cmd.Flags().StringVar(&opts.filter, "filter", opts.filter, "Filter by due date: all|today|week|overdue")
	cmd.Flags().BoolVar(&opts.completed, "completed", false, "Show completed tasks instead of open ones")
	cmd.Flags().BoolVar(&opts.showSubtasks, "show-subtasks", false, "Include subtasks under each task")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", opts.concurrency, "Parallel subtask requests with --show-subtasks")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format: text|json")

	return cmd
}

func (opts *listOptions) run(globals *globalOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		filter, err := asana.ParseFilter(opts.filter)
		if err != nil {
			return err
		}
		if opts.format != render.FormatText && opts.format != render.FormatJSON {
			return fmt.Errorf("unknown format %q (expected text or json)", opts.format)
		}

		client, cfg, err := buildClient(cmd, globals)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if len(args) == 1 {
			return opts.listSubtasks(ctx, cmd, client, args[0])
		}

		tasks, err := collectProjectTasks(ctx, client, cfg.ProjectIDs)
		if err != nil {
			return err
		}

		today := datespec.DateOf(globals.clock())
		tasks = asana.Apply(tasks, filter, opts.completed, today)

		var subtasks map[string][]asana.Task
		if opts.showSubtasks && len(tasks) > 0 {
			subtasks, err = asana.FetchSubtasks(ctx, client, tasks, opts.concurrency, globals.logger(cmd))
			if err != nil {
				return fmt.Errorf("fetch subtasks: %w", err)
			}
		}

		if opts.format == render.FormatJSON {
			return render.JSON(cmd.OutOrStdout(), taskViews(tasks, subtasks))
		}
		return renderTaskList(cmd, filter, today, cfg, tasks, subtasks)
	}
}

// collectProjectTasks gathers tasks from each configured project in order.
// Section names missing from task memberships are filled in from the
// project's section list.
func collectProjectTasks(ctx context.Context, client *asana.Client, projectIDs []string) ([]asana.Task, error) {
	var all []asana.Task
	for _, projectID := range projectIDs {
		sections, err := client.ListProjectSections(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("list sections for project %s: %w", projectID, err)
		}
		tasks, err := client.ListProjectTasks(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("list tasks for project %s: %w", projectID, err)
		}
		asana.NameSections(tasks, sections)
		all = append(all, tasks...)
	}
	return all, nil
}

func renderTaskList(
	cmd *cobra.Command,
	filter asana.Filter,
	today datespec.Date,
	cfg config.Asana,
	tasks []asana.Task,
	subtasks map[string][]asana.Task,
) error {
	p := render.NewPrinter(cmd.OutOrStdout())
	if len(tasks) == 0 {
		p.Linef("No tasks found.")
		return p.Err()
	}

	if filter != asana.FilterAll {
		switch filter {
		case asana.FilterToday:
			p.Linef("Tasks due today (%s):", today)
		case asana.FilterWeek:
			p.Linef("Tasks due this week (through %s):", today.AddDays(7))
		case asana.FilterOverdue:
			p.Linef("Overdue tasks:")
		}
		p.Blank()
		for _, task := range tasks {
			printTask(p, "", task, subtasks[task.GID])
		}
		return p.Err()
	}

	groups := asana.GroupBySection(tasks, cfg.ProjectIDs)
	if groups == nil {
		groups = asana.GroupByDue(tasks, today)
	}
	for _, group := range groups {
		p.Linef("%s (%d):", group.Title, len(group.Tasks))
		p.Blank()
		for _, task := range group.Tasks {
			printTask(p, "  ", task, subtasks[task.GID])
		}
	}
	return p.Err()
}

func (opts *listOptions) listSubtasks(ctx context.Context, cmd *cobra.Command, client *asana.Client, taskID string) error {
	parent, err := client.GetTask(ctx, taskID, asana.TaskNameFields...)
	if err != nil {
		return fmt.Errorf("fetch task %s: %w", taskID, err)
	}
	subtasks, err := client.ListSubtasks(ctx, taskID)
	if err != nil {
		return fmt.Errorf("fetch subtasks of %s: %w", taskID, err)
	}

	if opts.format == render.FormatJSON {
		return render.JSON(cmd.OutOrStdout(), struct {
			Parent   asana.Task   `json:"parent"`
			Subtasks []asana.Task `json:"subtasks"`
		}{Parent: parent, Subtasks: subtasks})
	}

	p := render.NewPrinter(cmd.OutOrStdout())
	if len(subtasks) == 0 {
		p.Linef("No subtasks found for '%s'", parent.Name)
		return p.Err()
	}
	p.Linef("Subtasks for '%s':", parent.Name)
	p.Blank()
	for _, sub := range subtasks {
		printTask(p, "  ", sub, nil)
	}
	return p.Err()
}
