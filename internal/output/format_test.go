package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"remind/internal/output"
	"remind/internal/store"
)

func TestRecord_OmitsAbsentFields(t *testing.T) {
	item := store.Item{
		ID:       "abc",
		Title:    "Buy milk",
		ListID:   "l1",
		ListName: "Groceries",
	}

	data, err := json.Marshal(output.Record(item, false))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, absent := range []string{"dueDate", "completionDate", "notes"} {
		if strings.Contains(s, absent) {
			t.Errorf("unset %s must be omitted: %s", absent, s)
		}
	}
	if !strings.Contains(s, `"priority":"none"`) {
		t.Errorf("priority should default to none: %s", s)
	}
}

func TestRecord_DueDateIsUTCInstant(t *testing.T) {
	item := store.Item{
		ID:    "abc",
		Title: "Buy milk",
		Due:   &store.DueDate{Year: 2026, Month: time.March, Day: 7, Hour: 14, Minute: 30, HasTime: true},
	}

	rec := output.Record(item, false)
	want := time.Date(2026, time.March, 7, 14, 30, 0, 0, time.Local).UTC().Format(time.RFC3339)
	if rec.DueDate != want {
		t.Errorf("dueDate = %s, want %s", rec.DueDate, want)
	}
}

func TestRecord_CompletionDateOnlyWhenRequested(t *testing.T) {
	now := time.Now()
	item := store.Item{ID: "abc", Title: "Done", Completed: true, CompletionDate: &now}

	if rec := output.Record(item, false); rec.CompletionDate != "" {
		t.Error("completionDate must be absent when not requested")
	}
	if rec := output.Record(item, true); rec.CompletionDate == "" {
		t.Error("completionDate must be present when requested")
	}
}

func TestFormatItem(t *testing.T) {
	var buf bytes.Buffer
	output.FormatItem(&buf, store.Item{
		Title:       "Take out trash",
		Due:         &store.DueDate{Year: 2026, Month: time.March, Day: 7},
		Recurrences: []store.Recurrence{{Frequency: store.Weekly, Interval: 2}},
	})
	got := buf.String()
	for _, want := range []string{"[ ]", "Take out trash", "due 2026-03-07", "repeats weekly;interval=2"} {
		if !strings.Contains(got, want) {
			t.Errorf("line missing %q: %s", want, got)
		}
	}
}

func TestFormatItem_UntitledAndCompleted(t *testing.T) {
	var buf bytes.Buffer
	output.FormatItem(&buf, store.Item{Title: "  ", Completed: true})
	got := buf.String()
	if !strings.Contains(got, "[x]") || !strings.Contains(got, "(untitled)") {
		t.Errorf("unexpected line: %s", got)
	}
}
