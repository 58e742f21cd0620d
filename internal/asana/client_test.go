package asana_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"

	"github.com/yourorg/pmctl/internal/apiclient"
	"github.com/yourorg/pmctl/internal/asana"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *asana.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := asana.NewClient(asana.ClientConfig{
		Token:   "asana-token",
		BaseURL: server.URL,
		Limiter: rate.NewLimiter(rate.Inf, 0),
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(body)); err != nil {
		t.Fatalf("write response: %v", err)
	}
}

func TestGetTaskUnwrapsData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/42" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("opt_fields"); got != "name,notes" {
			t.Fatalf("opt_fields = %q", got)
		}
		writeJSON(t, w, `{"data":{"gid":"42","name":"Write report","notes":"draft","due_on":null}}`)
	})

	task, err := client.GetTask(context.Background(), "42", "name", "notes")
	if err != nil {
		t.Fatalf("GetTask returned error: %v", err)
	}
	if task.GID != "42" || task.Name != "Write report" || task.Notes != "draft" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if _, ok := task.Due(); ok {
		t.Fatalf("null due_on should report no due date")
	}
}

func TestListProjectTasksFollowsOffsets(t *testing.T) {
	var offsets []string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "100" {
			t.Fatalf("limit = %q", q.Get("limit"))
		}
		offsets = append(offsets, q.Get("offset"))
		switch q.Get("offset") {
		case "":
			writeJSON(t, w, `{"data":[{"gid":"1","name":"a"},{"gid":"2","name":"b"}],"next_page":{"offset":"tok2"}}`)
		case "tok2":
			writeJSON(t, w, `{"data":[{"gid":"3","name":"c"}],"next_page":null}`)
		default:
			t.Fatalf("unexpected offset %q", q.Get("offset"))
		}
	})

	tasks, err := client.ListProjectTasks(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListProjectTasks returned error: %v", err)
	}
	if len(tasks) != 3 || tasks[2].GID != "3" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if fmt.Sprint(offsets) != "[ tok2]" {
		t.Fatalf("offsets = %q", offsets)
	}
}

func TestUpdateTaskWrapsBody(t *testing.T) {
	var body map[string]map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		writeJSON(t, w, `{"data":{"gid":"7","name":"Ship it"}}`)
	})

	done := true
	task, err := client.UpdateTask(context.Background(), "7", asana.UpdateTaskRequest{Completed: &done})
	if err != nil {
		t.Fatalf("UpdateTask returned error: %v", err)
	}
	if task.Name != "Ship it" {
		t.Fatalf("Name = %q", task.Name)
	}
	if body["data"]["completed"] != true {
		t.Fatalf("unexpected body: %#v", body)
	}
	if _, ok := body["data"]["due_on"]; ok {
		t.Fatalf("unset fields must be omitted: %#v", body)
	}
}

func TestCreateTaskRejectsEmptyName(t *testing.T) {
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Fatalf("no request expected")
	})
	if _, err := client.CreateTask(context.Background(), asana.CreateTaskRequest{Name: "  "}); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestErrorsJoinMessages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(t, w, `{"errors":[{"message":"due_on: invalid"},{"message":"name: missing"}]}`)
	})

	_, err := client.GetTask(context.Background(), "1")
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apiclient.Error, got %v", err)
	}
	if apiErr.Message != "due_on: invalid; name: missing" {
		t.Fatalf("Message = %q", apiErr.Message)
	}
	if !strings.Contains(err.Error(), "asana api error (status 400)") {
		t.Fatalf("Error() = %q", err.Error())
	}
}
