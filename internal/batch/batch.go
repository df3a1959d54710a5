// Package batch decodes an ordered list of operation requests and runs them
// best-effort through one shared session.
package batch

import (
	"encoding/json"
	"fmt"
	"io"
)

// Request is one operation in a batch, decoded from the JSON array input.
// Fields are interpreted per command; required fields are validated at
// execution time so one malformed request never affects the others.
type Request struct {
	Command string `json:"command"`

	List   string `json:"list,omitempty"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`

	Title    string `json:"title,omitempty"`
	ID       string `json:"id,omitempty"`
	NewTitle string `json:"new_title,omitempty"`

	Due      string `json:"due,omitempty"`
	Time     string `json:"time,omitempty"`
	Body     string `json:"body,omitempty"`
	BodyFile string `json:"body_file,omitempty"`

	Recurrence string `json:"recurrence,omitempty"`
	Frequency  string `json:"frequency,omitempty"`
	Interval   int    `json:"interval,omitempty"`

	Force bool `json:"force,omitempty"`
}

// Result is the per-operation outcome record.
type Result struct {
	Index   int    `json:"index"`
	Command string `json:"command"`
	Title   string `json:"title"`
	Status  string `json:"status"` // "ok" or "error"
	Message string `json:"message"`
}

// Decode reads the JSON array of operation requests. Malformed JSON or an
// empty operation list is a structural failure of the whole batch, distinct
// from any individual operation failing.
func Decode(r io.Reader) ([]Request, error) {
	var reqs []Request
	dec := json.NewDecoder(r)
	if err := dec.Decode(&reqs); err != nil {
		return nil, fmt.Errorf("invalid batch input: %w", err)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("empty operation list")
	}
	return reqs, nil
}

// Encode writes results as an indented JSON array.
func Encode(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// AllOK reports whether every operation in the batch succeeded.
func AllOK(results []Result) bool {
	for _, r := range results {
		if r.Status != "ok" {
			return false
		}
	}
	return true
}
