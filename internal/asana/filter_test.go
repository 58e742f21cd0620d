package asana_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yourorg/pmctl/internal/asana"
	"github.com/yourorg/pmctl/internal/datespec"
)

var today = datespec.Date{Year: 2025, Month: 11, Day: 10}

func gids(tasks []asana.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.GID)
	}
	return out
}

func titles(groups []asana.Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Title)
	}
	return out
}

func sampleTasks() []asana.Task {
	return []asana.Task{
		{GID: "overdue", DueOn: "2025-11-01"},
		{GID: "today", DueOn: "2025-11-10"},
		{GID: "soon", DueOn: "2025-11-17"},
		{GID: "next", DueOn: "2025-11-24"},
		{GID: "later", DueOn: "2026-01-05"},
		{GID: "none"},
		{GID: "done", DueOn: "2025-11-10", Completed: true},
	}
}

func TestParseFilter(t *testing.T) {
	f, err := asana.ParseFilter(" Week ")
	if err != nil || f != asana.FilterWeek {
		t.Fatalf("ParseFilter(Week) = %q, %v", f, err)
	}
	if _, err := asana.ParseFilter("month"); err == nil {
		t.Fatalf("ParseFilter(month) expected error")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		filter    asana.Filter
		completed bool
		want      []string
	}{
		{name: "all", filter: asana.FilterAll, want: []string{"overdue", "today", "soon", "next", "later", "none"}},
		{name: "today", filter: asana.FilterToday, want: []string{"today"}},
		{name: "week includes overdue", filter: asana.FilterWeek, want: []string{"overdue", "today", "soon"}},
		{name: "overdue", filter: asana.FilterOverdue, want: []string{"overdue"}},
		{name: "completed", filter: asana.FilterAll, completed: true, want: []string{"done"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := gids(asana.Apply(sampleTasks(), tc.filter, tc.completed, today))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Apply mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupByDue(t *testing.T) {
	groups := asana.GroupByDue(asana.Apply(sampleTasks(), asana.FilterAll, false, today), today)

	want := []string{"OVERDUE", "TODAY", "THIS WEEK", "NEXT WEEK", "LATER", "NO DUE DATE"}
	if diff := cmp.Diff(want, titles(groups)); diff != "" {
		t.Fatalf("bucket titles mismatch (-want +got):\n%s", diff)
	}
	for _, g := range groups {
		if len(g.Tasks) != 1 {
			t.Fatalf("%s has %d tasks, want 1", g.Title, len(g.Tasks))
		}
	}
}

func TestGroupBySection(t *testing.T) {
	project := &asana.Reference{GID: "p1"}
	other := &asana.Reference{GID: "p9"}
	tasks := []asana.Task{
		{GID: "a", Memberships: []asana.Membership{{Project: project, Section: &asana.Reference{Name: "Doing"}}}},
		{GID: "b", Memberships: []asana.Membership{{Project: other, Section: &asana.Reference{Name: "Elsewhere"}}}},
		{GID: "c", Memberships: []asana.Membership{{Project: project, Section: &asana.Reference{Name: "Backlog"}}}},
	}

	groups := asana.GroupBySection(tasks, []string{"p1"})
	want := []string{"BACKLOG", "DOING", asana.NoSectionTitle}
	if diff := cmp.Diff(want, titles(groups)); diff != "" {
		t.Fatalf("section titles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, gids(groups[2].Tasks)); diff != "" {
		t.Fatalf("unsectioned tasks mismatch (-want +got):\n%s", diff)
	}

	if got := asana.GroupBySection(tasks, []string{"p2"}); got != nil {
		t.Fatalf("expected nil groups without sections, got %v", titles(got))
	}
}

func TestNameSections(t *testing.T) {
	tasks := []asana.Task{
		{GID: "a", Memberships: []asana.Membership{{Project: &asana.Reference{GID: "p1"}, Section: &asana.Reference{GID: "s1"}}}},
		{GID: "b", Memberships: []asana.Membership{{Project: &asana.Reference{GID: "p1"}, Section: &asana.Reference{GID: "s2", Name: "Kept"}}}},
	}

	asana.NameSections(tasks, []asana.Section{{GID: "s1", Name: "Doing"}, {GID: "s2", Name: "Other"}})

	if got := tasks[0].SectionIn([]string{"p1"}); got != "Doing" {
		t.Fatalf("filled section = %q, want Doing", got)
	}
	if got := tasks[1].SectionIn([]string{"p1"}); got != "Kept" {
		t.Fatalf("named section = %q, want Kept", got)
	}
}
