// Package lookup resolves remote entities by ID or display name.
package lookup

import (
	"fmt"
	"strings"
)

// Entry is the identity of one candidate.
type Entry struct {
	ID   string
	Name string
}

// NotFoundError lists the candidates that were available when a query
// matched none of them.
type NotFoundError struct {
	Kind      string
	Query     string
	Available []Entry
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q not found", e.Kind, e.Query)
	if len(e.Available) == 0 {
		fmt.Fprintf(&b, "; no %ss available", e.Kind)
		return b.String()
	}
	fmt.Fprintf(&b, "\n\nAvailable %ss:", e.Kind)
	for _, entry := range e.Available {
		fmt.Fprintf(&b, "\n  - %s (ID: %s)", entry.Name, entry.ID)
	}
	return b.String()
}

// Index matches items by exact ID or by case-insensitive, trimmed name.
// The first match in input order wins.
type Index[T any] struct {
	kind    string
	items   []T
	entries []Entry
	byID    map[string]int
	byName  map[string]int
}

// NewIndex builds an index over items. identify extracts each item's ID and
// name; kind names the entity in error messages ("page", "table").
func NewIndex[T any](kind string, items []T, identify func(T) Entry) *Index[T] {
	idx := &Index[T]{
		kind:    kind,
		items:   items,
		entries: make([]Entry, 0, len(items)),
		byID:    make(map[string]int, len(items)),
		byName:  make(map[string]int, len(items)),
	}
	for i, item := range items {
		entry := identify(item)
		idx.entries = append(idx.entries, entry)
		if _, ok := idx.byID[entry.ID]; !ok {
			idx.byID[entry.ID] = i
		}
		if _, ok := idx.byName[normalize(entry.Name)]; !ok {
			idx.byName[normalize(entry.Name)] = i
		}
	}
	return idx
}

// Find returns the item whose ID equals query or whose name matches it.
// An ID match takes precedence over a name match.
func (i *Index[T]) Find(query string) (T, error) {
	if pos, ok := i.byID[query]; ok {
		return i.items[pos], nil
	}
	if pos, ok := i.byName[normalize(query)]; ok {
		return i.items[pos], nil
	}
	var zero T
	return zero, &NotFoundError{Kind: i.kind, Query: query, Available: i.Entries()}
}

// Entries returns the candidates in input order.
func (i *Index[T]) Entries() []Entry {
	out := make([]Entry, len(i.entries))
	copy(out, i.entries)
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
