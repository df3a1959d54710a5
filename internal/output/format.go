// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"remind/internal/store"
)

// ListSeparator is the separator line for list sections.
const ListSeparator = "------------"

// ItemRecord is the single-item JSON record. Optional fields are omitted
// when absent.
type ItemRecord struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	IsCompleted    bool   `json:"isCompleted"`
	ListID         string `json:"listID"`
	ListName       string `json:"listName"`
	DueDate        string `json:"dueDate,omitempty"`
	CompletionDate string `json:"completionDate,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Priority       string `json:"priority"`
}

// Record builds the JSON record for an item. The completion date is only
// populated when the caller asked for completed items.
func Record(item store.Item, withCompletion bool) ItemRecord {
	rec := ItemRecord{
		ID:          item.ID,
		Title:       item.Title,
		IsCompleted: item.Completed,
		ListID:      item.ListID,
		ListName:    item.ListName,
		Notes:       item.Notes,
		Priority:    string(item.Priority),
	}
	if rec.Priority == "" {
		rec.Priority = string(store.PriorityNone)
	}
	if item.Due != nil {
		rec.DueDate = item.Due.Time(time.Local).UTC().Format(time.RFC3339)
	}
	if withCompletion && item.Completed && item.CompletionDate != nil {
		rec.CompletionDate = item.CompletionDate.UTC().Format(time.RFC3339)
	}
	return rec
}

// EncodeItems writes item records as an indented JSON array.
func EncodeItems(w io.Writer, items []store.Item, withCompletion bool) error {
	records := make([]ItemRecord, 0, len(items))
	for _, it := range items {
		records = append(records, Record(it, withCompletion))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// FormatItem formats one text line for an item.
// Format: "  [ ] TITLE  (due ...)  <id>" with [x] for completed items.
func FormatItem(w io.Writer, item store.Item) {
	box := "[ ]"
	if item.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("  %s %s", box, normalizeTitle(item.Title))
	if item.Due != nil {
		line += fmt.Sprintf("  (due %s)", item.Due)
	}
	if len(item.Recurrences) > 0 {
		var rules []string
		for _, r := range item.Recurrences {
			rules = append(rules, r.String())
		}
		line += fmt.Sprintf("  (repeats %s)", strings.Join(rules, ", "))
	}
	fmt.Fprintln(w, line)
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, list store.List) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, normalizeTitle(list.Name))
	fmt.Fprintln(w, ListSeparator)
}

// FormatListName formats a list name for the lists command.
func FormatListName(w io.Writer, list store.List) {
	fmt.Fprintln(w, normalizeTitle(list.Name))
}

// normalizeTitle normalizes a title for display: newlines collapse to
// spaces and blank titles become "(untitled)".
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
