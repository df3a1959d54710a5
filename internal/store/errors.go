package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAccessDenied indicates the one-time authorization handshake failed or
// the stored credentials were rejected.
var ErrAccessDenied = errors.New("access to the reminder store was denied")

// ListNotFoundError is returned by FindList when no list matches the
// requested display name. Available carries every known list name for
// diagnostics.
type ListNotFoundError struct {
	Name      string
	Available []string
}

func (e *ListNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("list not found: %s", e.Name)
	}
	return fmt.Sprintf("list not found: %s (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// FetchError wraps a failed store read.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch failed: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// SaveError wraps a failed store write. Op is "save" or "remove".
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string { return fmt.Sprintf("%s failed: %v", e.Op, e.Err) }
func (e *SaveError) Unwrap() error { return e.Err }
