// Package store defines the backend-agnostic model and capability interface
// for the external reminder store.
package store

import (
	"fmt"
	"strings"
	"time"
)

// Priority is a reminder's priority, collapsed from the wider numeric range
// some backends carry.
type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityFromLevel collapses a 0-9 numeric priority into the four-value
// scale: 1-4 high, 5 medium, 6-9 low, 0 none.
func PriorityFromLevel(level int) Priority {
	switch {
	case level >= 1 && level <= 4:
		return PriorityHigh
	case level == 5:
		return PriorityMedium
	case level >= 6 && level <= 9:
		return PriorityLow
	default:
		return PriorityNone
	}
}

// ParsePriority parses a priority word (case-insensitive).
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityNone, "":
		return PriorityNone, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	}
	return PriorityNone, fmt.Errorf("invalid priority: %s", s)
}

// Frequency is a recurrence frequency.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// ParseFrequency parses a frequency word (case-insensitive).
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case Daily:
		return Daily, nil
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	case Yearly:
		return Yearly, nil
	}
	return "", fmt.Errorf("invalid frequency: %s", s)
}

// Recurrence is a single recurrence rule. Rules never carry an end date;
// recurrence is indefinite.
type Recurrence struct {
	Frequency Frequency
	Interval  int
}

func (r Recurrence) String() string {
	if r.Interval > 1 {
		return fmt.Sprintf("%s;interval=%d", r.Frequency, r.Interval)
	}
	return string(r.Frequency)
}

// DefaultDueHour and DefaultDueMinute are applied when a due date carries no
// explicit time of day.
const (
	DefaultDueHour   = 9
	DefaultDueMinute = 0
)

// DueDate is a calendar date with an optional time of day. Components are
// interpreted in the local calendar; there is no timezone on the wire.
type DueDate struct {
	Year  int
	Month time.Month
	Day   int

	Hour    int
	Minute  int
	HasTime bool
}

// Time materializes the due date in the given location. A due date without
// an explicit time defaults to 09:00.
func (d DueDate) Time(loc *time.Location) time.Time {
	h, m := d.Hour, d.Minute
	if !d.HasTime {
		h, m = DefaultDueHour, DefaultDueMinute
	}
	return time.Date(d.Year, d.Month, d.Day, h, m, 0, 0, loc)
}

// SameDate reports whether two due dates fall on the same calendar day.
func (d DueDate) SameDate(o DueDate) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

func (d DueDate) String() string {
	if d.HasTime {
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// List is a named container of items. Lists are owned by the backing store;
// this tool only reads them.
type List struct {
	ID     string
	Name   string
	Origin string // backing account, e.g. "google" or "memory"
}

// Item is a single reminder. The ID is assigned by the backing store on
// first save and is immutable for the item's lifetime.
type Item struct {
	ID             string
	Title          string
	Notes          string
	Due            *DueDate
	Completed      bool
	CompletionDate *time.Time
	Priority       Priority
	Recurrences    []Recurrence
	ListID         string
	ListName       string
}

// Snapshot is a frozen-in-time ordered sequence of items fetched from one or
// more lists. It is immutable for the duration of one operation and becomes
// stale the instant any mutation touches one of its lists.
type Snapshot []Item

// IncompleteTitles returns the titles of all incomplete items, in snapshot
// order. Used for not-found diagnostics.
func (s Snapshot) IncompleteTitles() []string {
	var titles []string
	for _, it := range s {
		if !it.Completed {
			titles = append(titles, it.Title)
		}
	}
	return titles
}

// HasIncompleteTitle reports whether an incomplete item with exactly this
// title is present.
func (s Snapshot) HasIncompleteTitle(title string) bool {
	for _, it := range s {
		if !it.Completed && it.Title == title {
			return true
		}
	}
	return false
}
