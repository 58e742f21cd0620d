package codacli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zalando/go-keyring"
	"golang.org/x/time/rate"

	"github.com/yourorg/pmctl/internal/export"
	"github.com/yourorg/pmctl/internal/lookup"
)

type fakeCoda struct {
	t        *testing.T
	mux      *http.ServeMux
	server   *httptest.Server
	requests []string
	bodies   []map[string]any
}

func newFakeCoda(t *testing.T) *fakeCoda {
	t.Helper()

	f := &fakeCoda{t: t, mux: http.NewServeMux()}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		if r.ContentLength > 0 {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				f.bodies = append(f.bodies, body)
			}
		}
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCoda) handle(pattern, body string) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(body)); err != nil {
			f.t.Fatalf("write response: %v", err)
		}
	})
}

func (f *fakeCoda) count(prefix string) int {
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

const pagesBody = `{"items":[
	{"id":"canvas-1","name":"Roadmap","browserLink":"https://coda.io/d/_ddoc1/Roadmap"},
	{"id":"canvas-2","name":"Meeting Notes"}
]}`

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, f *fakeCoda, stdin string, args ...string) result {
	t.Helper()
	keyring.MockInit()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"coda": {"api_token": "tok"}}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	globals := &globalOptions{
		limiter:    rate.NewLimiter(rate.Inf, 0),
		configPath: path,
		baseURL:    f.server.URL,
		poller: &export.Poller{
			MaxAttempts: 60,
			Sleep:       func(context.Context, time.Duration) error { return nil },
		},
	}

	root := newRootCmd(globals)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestListDocsText(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs", `{"items":[{"id":"d1","name":"Roadmap","folder":{"id":"f","name":"Team"},"createdAt":"2025-01-01T00:00:00Z"}]}`)

	res := execute(t, f, "", "list", "--query", "road")
	if res.err != nil {
		t.Fatalf("list returned error: %v", res.err)
	}
	want := "Found 1 doc(s):\n\nName: Roadmap\nID: d1\nURL: N/A\nFolder: Team\nCreated: 2025-01-01T00:00:00Z\nUpdated: N/A\n\n"
	if res.stdout != want {
		t.Fatalf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestListDocsTable(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs", `{"items":[{"id":"d1","name":"Roadmap"}]}`)

	res := execute(t, f, "", "list", "--format", "table")
	if res.err != nil {
		t.Fatalf("list returned error: %v", res.err)
	}
	if !strings.HasPrefix(res.stdout, "ID  Name     Folder  Updated\nd1  Roadmap") {
		t.Fatalf("unexpected table:\n%s", res.stdout)
	}
}

func TestGetDocExtractsIDFromURL(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs/doc1", `{"id":"doc1","name":"Plans","owner":"me@example.com"}`)
	f.handle("GET /docs/doc1/pages", pagesBody)
	f.handle("GET /docs/doc1/tables", `{"items":[]}`)

	res := execute(t, f, "", "get-doc", "https://coda.io/d/Plans_ddoc1")
	if res.err != nil {
		t.Fatalf("get-doc returned error: %v", res.err)
	}
	for _, want := range []string{
		"Fetching doc: doc1\n",
		"Owner: me@example.com\n",
		"Published: false\n",
		"--- Pages ---\n  - Roadmap (ID: canvas-1)\n  - Meeting Notes (ID: canvas-2)\n",
		"--- Tables ---\n  No tables found.\n",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Fatalf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestGetPageNotFoundListsAlternatives(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs/doc1/pages", pagesBody)

	res := execute(t, f, "", "get-page", "doc1", "Budget")
	var notFound *lookup.NotFoundError
	if !errors.As(res.err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", res.err)
	}
	msg := res.err.Error()
	if !strings.Contains(msg, "Roadmap (ID: canvas-1)") || !strings.Contains(msg, "Meeting Notes (ID: canvas-2)") {
		t.Fatalf("error does not list pages: %s", msg)
	}
	if f.count("GET /docs/doc1/pages/") != 0 {
		t.Fatalf("unexpected page fetch: %v", f.requests)
	}
}

func TestGetPageByName(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs/doc1/pages", pagesBody)
	f.handle("GET /docs/doc1/pages/canvas-2", `{"id":"canvas-2","name":"Meeting Notes","contentType":"canvas"}`)

	res := execute(t, f, "", "get-page", "doc1", "meeting notes")
	if res.err != nil {
		t.Fatalf("get-page returned error: %v", res.err)
	}
	if !strings.HasPrefix(res.stdout, "Page: Meeting Notes\nID: canvas-2\nURL: N/A\n\nContent Type: canvas\n") {
		t.Fatalf("unexpected output:\n%s", res.stdout)
	}
}

func TestGetTableOrdersValuesByColumn(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs/doc1/tables", `{"items":[{"id":"grid-1","name":"Tasks"}]}`)
	f.handle("GET /docs/doc1/tables/grid-1/columns", `{"items":[{"id":"c-1","name":"Title"},{"id":"c-2","name":"Owner"}]}`)
	f.handle("GET /docs/doc1/tables/grid-1/rows", `{"items":[{"id":"i-1","values":{"Owner":"ana","Title":"Ship","Points":3}}]}`)

	res := execute(t, f, "", "get-table", "doc1", "tasks", "--limit", "5")
	if res.err != nil {
		t.Fatalf("get-table returned error: %v", res.err)
	}
	want := "Table: Tasks\nID: grid-1\n\nColumns:\n  - Title\n  - Owner\n\nRows (showing 1):\n\nRow ID: i-1\n  Title: Ship\n  Owner: ana\n  Points: 3\n"
	if res.stdout != want {
		t.Fatalf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestWhoAmI(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /whoami", `{"name":"Ana","loginId":"ana@example.com","type":"user","workspace":{"id":"ws","name":"Acme"}}`)

	res := execute(t, f, "", "whoami")
	if res.err != nil {
		t.Fatalf("whoami returned error: %v", res.err)
	}
	if res.stdout != "Name: Ana\nLogin ID: ana@example.com\nType: user\nWorkspace: Acme\n" {
		t.Fatalf("unexpected output %q", res.stdout)
	}
}

func TestGetPageContentImmediateLink(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs/doc1/pages", pagesBody)
	f.mux.HandleFunc("POST /docs/doc1/pages/canvas-1/export", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := `{"id":"job-1","status":"complete","downloadLink":"` + f.server.URL + `/download"}`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write response: %v", err)
		}
	})
	f.mux.HandleFunc("GET /download", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Fatalf("download carried Authorization header")
		}
		if _, err := w.Write([]byte("# Roadmap")); err != nil {
			t.Fatalf("write response: %v", err)
		}
	})

	res := execute(t, f, "", "get-page-content", "doc1", "Roadmap")
	if res.err != nil {
		t.Fatalf("get-page-content returned error: %v", res.err)
	}
	if res.stdout != "# Roadmap\n" {
		t.Fatalf("stdout = %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "Exporting page 'Roadmap' as markdown...") {
		t.Fatalf("stderr = %q", res.stderr)
	}
	if f.count("GET /docs/doc1/pages/canvas-1/export/") != 0 {
		t.Fatalf("status polled despite immediate link: %v", f.requests)
	}
}

func TestGetPageContentTimeout(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs/doc1/pages", pagesBody)
	f.handle("POST /docs/doc1/pages/canvas-1/export", `{"id":"job-1","status":"inProgress"}`)
	f.handle("GET /docs/doc1/pages/canvas-1/export/job-1", `{"id":"job-1","status":"inProgress"}`)

	res := execute(t, f, "", "get-page-content", "doc1", "canvas-1", "--format", "html")
	if !errors.Is(res.err, export.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", res.err)
	}
	if got := f.count("GET /docs/doc1/pages/canvas-1/export/job-1"); got != 60 {
		t.Fatalf("status queries = %d, want 60", got)
	}
	if res.stdout != "" {
		t.Fatalf("stdout = %q", res.stdout)
	}
}

func TestCreatePageFromStdinWithParent(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs/doc1/pages", pagesBody)
	f.handle("POST /docs/doc1/pages", `{"requestId":"r-1","id":"canvas-9"}`)

	res := execute(t, f, "# Hello\n", "create-page", "_ddoc1", "Child", "--content", "-", "--parent", "roadmap")
	if res.err != nil {
		t.Fatalf("create-page returned error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Page created successfully!\nName: Child\nID: canvas-9\n") {
		t.Fatalf("unexpected output:\n%s", res.stdout)
	}

	body := f.bodies[0]
	if body["parentPageId"] != "canvas-1" {
		t.Fatalf("parentPageId = %v", body["parentPageId"])
	}
	canvas := body["pageContent"].(map[string]any)["canvasContent"].(map[string]any)
	if canvas["content"] != "# Hello\n" || canvas["format"] != "markdown" {
		t.Fatalf("unexpected canvas %#v", canvas)
	}
}

func TestUpdatePageDeclined(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs/doc1/pages", pagesBody)

	res := execute(t, f, "n\n", "update-page", "doc1", "Roadmap", "--name", "Plan")
	if !errors.Is(res.err, ErrUpdateCancelled) {
		t.Fatalf("expected ErrUpdateCancelled, got %v", res.err)
	}
	if !strings.Contains(res.stdout, "  - Rename to: Plan\n") {
		t.Fatalf("changes not described:\n%s", res.stdout)
	}
	if f.count("PUT ") != 0 {
		t.Fatalf("update sent despite refusal: %v", f.requests)
	}
}

func TestUpdatePageAppendConfirmed(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs/doc1/pages", pagesBody)
	f.handle("PUT /docs/doc1/pages/canvas-1", `{"requestId":"r-2","id":"canvas-1"}`)

	res := execute(t, f, "", "update-page", "doc1", "canvas-1",
		"--content", "More", "--mode", "append", "--subtitle", "", "--yes")
	if res.err != nil {
		t.Fatalf("update-page returned error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "  - Append to content (4 chars): More\n") {
		t.Fatalf("unexpected output:\n%s", res.stdout)
	}

	body := f.bodies[0]
	if sub, ok := body["subtitle"]; !ok || sub != "" {
		t.Fatalf("subtitle not cleared: %#v", body)
	}
	update := body["contentUpdate"].(map[string]any)
	if update["insertionMode"] != "append" {
		t.Fatalf("insertionMode = %v", update["insertionMode"])
	}
}

func TestUpdatePageRequiresChanges(t *testing.T) {
	f := newFakeCoda(t)
	f.handle("GET /docs/doc1/pages", pagesBody)

	res := execute(t, f, "", "update-page", "doc1", "Roadmap", "--yes")
	if res.err == nil || !strings.Contains(res.err.Error(), "no updates specified") {
		t.Fatalf("expected no updates error, got %v", res.err)
	}
}

func TestInvalidFormatMakesNoRequest(t *testing.T) {
	f := newFakeCoda(t)

	res := execute(t, f, "", "get-page-content", "doc1", "Roadmap", "--format", "pdf")
	if res.err == nil {
		t.Fatalf("expected format error")
	}
	if len(f.requests) != 0 {
		t.Fatalf("unexpected requests %v", f.requests)
	}
}
