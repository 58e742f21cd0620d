package asana

import (
	"github.com/yourorg/pmctl/internal/datespec"
)

// Reference is a compact pointer to another Asana object.
type Reference struct {
	GID  string `json:"gid"`
	Name string `json:"name,omitempty"`
}

// Section is a column or heading inside a project.
type Section = Reference

// Membership places a task in a project and, optionally, one of its sections.
type Membership struct {
	Project *Reference `json:"project,omitempty"`
	Section *Reference `json:"section,omitempty"`
}

// Task is an Asana task or subtask.
type Task struct {
	Workspace    *Reference   `json:"workspace,omitempty"`
	GID          string       `json:"gid"`
	Name         string       `json:"name"`
	Notes        string       `json:"notes,omitempty"`
	DueOn        string       `json:"due_on,omitempty"`
	PermalinkURL string       `json:"permalink_url,omitempty"`
	Memberships  []Membership `json:"memberships,omitempty"`
	Completed    bool         `json:"completed"`
}

// Due returns the parsed due date. ok is false when the task has none or the
// value is not a calendar date.
func (t Task) Due() (datespec.Date, bool) {
	if t.DueOn == "" {
		return datespec.Date{}, false
	}
	d, err := datespec.ParseISO(t.DueOn)
	if err != nil {
		return datespec.Date{}, false
	}
	return d, true
}

// SectionIn returns the name of the task's section within one of projectIDs.
func (t Task) SectionIn(projectIDs []string) string {
	for _, m := range t.Memberships {
		if m.Project == nil || m.Section == nil || m.Section.Name == "" {
			continue
		}
		for _, id := range projectIDs {
			if m.Project.GID == id {
				return m.Section.Name
			}
		}
	}
	return ""
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Name      string   `json:"name"`
	Workspace string   `json:"workspace,omitempty"`
	Parent    string   `json:"parent,omitempty"`
	Assignee  string   `json:"assignee,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	DueOn     string   `json:"due_on,omitempty"`
	Projects  []string `json:"projects,omitempty"`
}

// UpdateTaskRequest is the body of PUT /tasks/{gid}. Nil fields are left
// untouched.
type UpdateTaskRequest struct {
	Completed *bool   `json:"completed,omitempty"`
	DueOn     *string `json:"due_on,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Name      *string `json:"name,omitempty"`
}

type nextPage struct {
	Offset string `json:"offset"`
}

type envelope[T any] struct {
	Data     T         `json:"data"`
	NextPage *nextPage `json:"next_page,omitempty"`
}

type requestEnvelope struct {
	Data any `json:"data"`
}

// NameSections fills empty section names in task memberships from sections,
// matched by GID.
func NameSections(tasks []Task, sections []Section) {
	names := make(map[string]string, len(sections))
	for _, s := range sections {
		names[s.GID] = s.Name
	}
	for i := range tasks {
		for _, m := range tasks[i].Memberships {
			if m.Section != nil && m.Section.Name == "" {
				m.Section.Name = names[m.Section.GID]
			}
		}
	}
}
