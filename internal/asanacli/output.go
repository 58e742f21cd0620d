package asanacli

import (
	"github.com/yourorg/pmctl/internal/asana"
	"github.com/yourorg/pmctl/internal/render"
)

const (
	notesPreviewLen    = 100
	subtaskPreviewLen  = 80
	markDone           = "✓"
	markOpen           = "○"
	noDueDate          = "No due date"
	notAvailable       = "N/A"
	subtaskArrowPrefix = "↳ "
)

func statusMark(task asana.Task) string {
	if task.Completed {
		return markDone
	}
	return markOpen
}

// printTask writes a task block followed by its subtasks and a blank line.
func printTask(p *render.Printer, indent string, task asana.Task, subtasks []asana.Task) {
	p.Linef("%s%s [%s] %s", indent, statusMark(task), task.GID, task.Name)
	p.Linef("%s  Due: %s", indent, render.OrDefault(task.DueOn, noDueDate))
	if task.Notes != "" {
		p.Linef("%s  Notes: %s", indent, render.Truncate(task.Notes, notesPreviewLen))
	}
	p.Linef("%s  URL: %s", indent, render.OrDefault(task.PermalinkURL, notAvailable))

	for _, sub := range subtasks {
		p.Linef("%s    %s%s [%s] %s", indent, subtaskArrowPrefix, statusMark(sub), sub.GID, sub.Name)
		p.Linef("%s      Due: %s", indent, render.OrDefault(sub.DueOn, noDueDate))
		if sub.Notes != "" {
			p.Linef("%s      Notes: %s", indent, render.Truncate(sub.Notes, subtaskPreviewLen))
		}
	}
	p.Blank()
}

// taskView is the JSON shape of a listed task.
type taskView struct {
	asana.Task
	Subtasks []asana.Task `json:"subtasks,omitempty"`
}

func taskViews(tasks []asana.Task, subtasks map[string][]asana.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, taskView{Task: task, Subtasks: subtasks[task.GID]})
	}
	return views
}
