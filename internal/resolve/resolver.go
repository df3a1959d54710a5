// Package resolve maps a user-supplied identifier or title to exactly one
// incomplete item in a snapshot.
package resolve

import (
	"fmt"
	"strings"

	"remind/internal/store"
)

// Selector identifies a target item either by the store-assigned external
// identifier or by title. Exactly one of the two is set.
type Selector struct {
	ID    string
	Title string
}

func (s Selector) String() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Title
}

// NotFoundError is returned when no incomplete item matches the selector.
// Titles carries every incomplete title in the snapshot for diagnostics.
type NotFoundError struct {
	Selector Selector
	Titles   []string
}

func (e *NotFoundError) Error() string {
	if len(e.Titles) == 0 {
		return fmt.Sprintf("no reminder matching %q", e.Selector)
	}
	return fmt.Sprintf("no reminder matching %q (incomplete reminders: %s)",
		e.Selector, strings.Join(e.Titles, ", "))
}

// AmbiguousError is returned when a title selector matches more than one
// incomplete item. Matches carries every matching item so the caller can
// display identifiers and ask the user to disambiguate by id.
type AmbiguousError struct {
	Selector Selector
	Matches  []store.Item
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q matches %d reminders; use --id to disambiguate:", e.Selector, len(e.Matches))
	for _, it := range e.Matches {
		fmt.Fprintf(&b, "\n  %s  %s", it.ID, it.Title)
	}
	return b.String()
}

// Find resolves a selector against a snapshot. Only incomplete items are
// candidates; completed items are never mutation targets through this path.
//
// By id: exact match. By title, two phases: an exact case-sensitive title
// match wins immediately (first hit, scanning in snapshot order); otherwise
// a case-insensitive substring match must be unique.
func Find(snap store.Snapshot, sel Selector) (store.Item, error) {
	if sel.ID != "" {
		for _, it := range snap {
			if !it.Completed && it.ID == sel.ID {
				return it, nil
			}
		}
		return store.Item{}, &NotFoundError{Selector: sel, Titles: snap.IncompleteTitles()}
	}

	// Phase 1: exact title match, first hit wins.
	for _, it := range snap {
		if !it.Completed && it.Title == sel.Title {
			return it, nil
		}
	}

	// Phase 2: case-insensitive substring, must be unique.
	needle := strings.ToLower(sel.Title)
	var matches []store.Item
	for _, it := range snap {
		if !it.Completed && strings.Contains(strings.ToLower(it.Title), needle) {
			matches = append(matches, it)
		}
	}

	switch len(matches) {
	case 0:
		return store.Item{}, &NotFoundError{Selector: sel, Titles: snap.IncompleteTitles()}
	case 1:
		return matches[0], nil
	default:
		return store.Item{}, &AmbiguousError{Selector: sel, Matches: matches}
	}
}
