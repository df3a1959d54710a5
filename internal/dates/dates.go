// Package dates provides strict parsing for the date and time-of-day flags.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"remind/internal/store"
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ParseDate parses a strict YYYY-MM-DD calendar date into a DueDate with no
// time component.
func ParseDate(s string) (store.DueDate, error) {
	s = strings.TrimSpace(s)
	if !dateRegex.MatchString(s) {
		return store.DueDate{}, fmt.Errorf("invalid date: %q (want YYYY-MM-DD)", s)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return store.DueDate{}, fmt.Errorf("invalid date: %q (want YYYY-MM-DD)", s)
	}
	return store.DueDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// ParseTime parses a strict HH:MM time of day.
func ParseTime(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	if !timeRegex.MatchString(s) {
		return 0, 0, fmt.Errorf("invalid time: %q (want HH:MM)", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time: %q (want HH:MM)", s)
	}
	return t.Hour(), t.Minute(), nil
}
