package googletasks

import (
	"fmt"
	"strconv"
	"strings"

	"remind/internal/store"
)

// Google Tasks has no native priority, time of day or recurrence fields, so
// those travel in a trailer appended to the notes. The trailer is owned by
// this package; nothing above the gateway ever sees it.
//
//	<body>
//
//	--- remind ---
//	x-remind-priority: high
//	x-remind-time: 14:30
//	x-remind-recur: weekly;interval=2
const (
	trailerMarker = "--- remind ---"

	keyPriority = "x-remind-priority"
	keyTime     = "x-remind-time"
	keyRecur    = "x-remind-recur"
)

// itemMeta holds the fields carried in the notes trailer.
type itemMeta struct {
	Priority    store.Priority
	Hour        int
	Minute      int
	HasTime     bool
	Recurrences []store.Recurrence
}

// encodeNotes renders the body plus, when any trailer field is set, the
// metadata trailer.
func encodeNotes(body string, meta itemMeta) string {
	var lines []string
	if meta.Priority != "" && meta.Priority != store.PriorityNone {
		lines = append(lines, fmt.Sprintf("%s: %s", keyPriority, meta.Priority))
	}
	if meta.HasTime {
		lines = append(lines, fmt.Sprintf("%s: %02d:%02d", keyTime, meta.Hour, meta.Minute))
	}
	for _, r := range meta.Recurrences {
		lines = append(lines, fmt.Sprintf("%s: %s", keyRecur, r.String()))
	}
	if len(lines) == 0 {
		return body
	}

	var b strings.Builder
	if body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	b.WriteString(trailerMarker)
	b.WriteString("\n")
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

// decodeNotes splits stored notes into the user-visible body and the trailer
// metadata. Notes without a trailer come back unchanged with empty metadata.
// Unknown or malformed trailer lines are ignored.
func decodeNotes(raw string) (string, itemMeta) {
	var meta itemMeta
	idx := strings.LastIndex(raw, trailerMarker)
	if idx < 0 {
		return raw, meta
	}

	body := strings.TrimRight(raw[:idx], "\n")
	for _, line := range strings.Split(raw[idx+len(trailerMarker):], "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case keyPriority:
			if p, err := store.ParsePriority(value); err == nil {
				meta.Priority = p
			}
		case keyTime:
			if h, m, ok := parseClock(value); ok {
				meta.Hour, meta.Minute, meta.HasTime = h, m, true
			}
		case keyRecur:
			if r, ok := parseRule(value); ok {
				meta.Recurrences = append(meta.Recurrences, r)
			}
		}
	}
	return body, meta
}

func parseClock(s string) (int, int, bool) {
	hs, ms, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// parseRule is the inverse of store.Recurrence.String.
func parseRule(s string) (store.Recurrence, bool) {
	name, rest, hasInterval := strings.Cut(s, ";")
	freq, err := store.ParseFrequency(name)
	if err != nil {
		return store.Recurrence{}, false
	}
	rule := store.Recurrence{Frequency: freq, Interval: 1}
	if hasInterval {
		v, found := strings.CutPrefix(strings.TrimSpace(rest), "interval=")
		if !found {
			return store.Recurrence{}, false
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return store.Recurrence{}, false
		}
		rule.Interval = n
	}
	return rule, true
}
