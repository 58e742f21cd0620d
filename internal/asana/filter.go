package asana

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yourorg/pmctl/internal/datespec"
)

// Filter selects tasks by due date relative to today.
type Filter string

// Supported filters.
const (
	FilterAll     Filter = "all"
	FilterToday   Filter = "today"
	FilterWeek    Filter = "week"
	FilterOverdue Filter = "overdue"
)

const (
	weekDays = 7

	// NoSectionTitle heads tasks without a section in a configured project.
	NoSectionTitle = "NO SECTION"
)

// Filters lists the accepted filter names in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterToday, FilterWeek, FilterOverdue}
}

// ParseFilter validates a filter name.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Filters() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q (want all, today, week or overdue)", s)
}

// Apply keeps tasks whose completion state equals completed and whose due
// date satisfies f. The week filter includes overdue tasks.
func Apply(tasks []Task, f Filter, completed bool, today datespec.Date) []Task {
	out := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Completed != completed {
			continue
		}
		if !f.matches(task, today) {
			continue
		}
		out = append(out, task)
	}
	return out
}

func (f Filter) matches(task Task, today datespec.Date) bool {
	if f == FilterAll || f == "" {
		return true
	}
	due, ok := task.Due()
	if !ok {
		return false
	}
	switch f {
	case FilterToday:
		return due == today
	case FilterWeek:
		return !due.After(today.AddDays(weekDays))
	case FilterOverdue:
		return due.Before(today)
	default:
		return false
	}
}

// Group is a titled run of tasks in display order.
type Group struct {
	Title string
	Tasks []Task
}

// GroupBySection buckets tasks by their section in one of projectIDs, sorted
// by section name, with unsectioned tasks last. It returns nil when no task
// has a section so callers can fall back to GroupByDue.
func GroupBySection(tasks []Task, projectIDs []string) []Group {
	bySection := map[string][]Task{}
	var loose []Task
	for _, task := range tasks {
		name := task.SectionIn(projectIDs)
		if name == "" {
			loose = append(loose, task)
			continue
		}
		bySection[name] = append(bySection[name], task)
	}
	if len(bySection) == 0 {
		return nil
	}

	names := make([]string, 0, len(bySection))
	for name := range bySection {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names)+1)
	for _, name := range names {
		groups = append(groups, Group{Title: strings.ToUpper(name), Tasks: bySection[name]})
	}
	if len(loose) > 0 {
		groups = append(groups, Group{Title: NoSectionTitle, Tasks: loose})
	}
	return groups
}

// GroupByDue buckets tasks into OVERDUE, TODAY, THIS WEEK, NEXT WEEK, LATER
// and NO DUE DATE. Empty buckets are omitted.
func GroupByDue(tasks []Task, today datespec.Date) []Group {
	titles := []string{"OVERDUE", "TODAY", "THIS WEEK", "NEXT WEEK", "LATER", "NO DUE DATE"}
	buckets := make([][]Task, len(titles))

	for _, task := range tasks {
		i := dueBucket(task, today)
		buckets[i] = append(buckets[i], task)
	}

	groups := make([]Group, 0, len(titles))
	for i, title := range titles {
		if len(buckets[i]) > 0 {
			groups = append(groups, Group{Title: title, Tasks: buckets[i]})
		}
	}
	return groups
}

func dueBucket(task Task, today datespec.Date) int {
	due, ok := task.Due()
	switch {
	case !ok:
		return 5
	case due.Before(today):
		return 0
	case due == today:
		return 1
	case !due.After(today.AddDays(weekDays)):
		return 2
	case !due.After(today.AddDays(2 * weekDays)):
		return 3
	default:
		return 4
	}
}
