package asana

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/yourorg/pmctl/internal/paginate"
)

const projectTasksPageSize = 100

// Field selections for opt_fields.
var (
	TaskNameFields = []string{"name"}
	TaskFields     = []string{"name", "completed", "due_on", "notes", "gid", "permalink_url"}
	TaskListFields = append(append([]string{}, TaskFields...),
		"memberships.project.gid", "memberships.section.name", "memberships.section.gid")
	SectionFields = []string{"name", "gid"}
)

func fieldsQuery(fields []string) url.Values {
	q := url.Values{}
	if len(fields) > 0 {
		q.Set("opt_fields", strings.Join(fields, ","))
	}
	return q
}

// GetTask fetches one task with the requested fields.
func (c *Client) GetTask(ctx context.Context, gid string, fields ...string) (Task, error) {
	if gid == "" {
		return Task{}, errors.New("task ID cannot be empty")
	}
	var task Task
	if _, err := c.do(ctx, http.MethodGet, path.Join("tasks", gid), fieldsQuery(fields), nil, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// ListSubtasks returns the direct subtasks of a task.
func (c *Client) ListSubtasks(ctx context.Context, gid string) ([]Task, error) {
	if gid == "" {
		return nil, errors.New("task ID cannot be empty")
	}
	var tasks []Task
	endpoint := path.Join("tasks", gid, "subtasks")
	if _, err := c.do(ctx, http.MethodGet, endpoint, fieldsQuery(TaskFields), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListProjectSections returns a project's sections.
func (c *Client) ListProjectSections(ctx context.Context, projectID string) ([]Section, error) {
	if projectID == "" {
		return nil, errors.New("project ID cannot be empty")
	}
	var sections []Section
	endpoint := path.Join("projects", projectID, "sections")
	if _, err := c.do(ctx, http.MethodGet, endpoint, fieldsQuery(SectionFields), nil, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// ListProjectTasks returns every task in a project, following offsets.
func (c *Client) ListProjectTasks(ctx context.Context, projectID string) ([]Task, error) {
	if projectID == "" {
		return nil, errors.New("project ID cannot be empty")
	}
	endpoint := path.Join("projects", projectID, "tasks")

	return paginate.All[Task](ctx, func(ctx context.Context, offset string) (paginate.Page[Task], error) {
		q := fieldsQuery(TaskListFields)
		q.Set("limit", strconv.Itoa(projectTasksPageSize))
		if offset != "" {
			q.Set("offset", offset)
		}
		var tasks []Task
		next, err := c.do(ctx, http.MethodGet, endpoint, q, nil, &tasks)
		if err != nil {
			return paginate.Page[Task]{}, err
		}
		return paginate.Page[Task]{Items: tasks, NextToken: next}, nil
	})
}

// UpdateTask applies req and returns the task's name and ID.
func (c *Client) UpdateTask(ctx context.Context, gid string, req UpdateTaskRequest) (Task, error) {
	if gid == "" {
		return Task{}, errors.New("task ID cannot be empty")
	}
	var task Task
	endpoint := path.Join("tasks", gid)
	if _, err := c.do(ctx, http.MethodPut, endpoint, fieldsQuery(TaskNameFields), req, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// CreateTask creates a task or, when req.Parent is set, a subtask.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error) {
	if strings.TrimSpace(req.Name) == "" {
		return Task{}, errors.New("task name cannot be empty")
	}
	var task Task
	if _, err := c.do(ctx, http.MethodPost, "tasks", fieldsQuery(TaskFields), req, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}
