// Package ops implements the mutating operations against the reminder
// store: add, complete, edit, move, set-recurrence and delete.
//
// Every executor follows the same shape: resolve the target from a cached
// snapshot, short-circuit on dry-run, mutate and save, then prove the write
// persisted by re-fetching through the verifier. A save acknowledgment alone
// never counts as success.
package ops

import (
	"fmt"
)

// Result is the shared outcome shape of every executor. A command failure
// is reported as an error, not a Result.
type Result struct {
	Success bool
	Message string
}

// Options toggle the two execution modes shared by all executors.
type Options struct {
	// DryRun computes and reports the intended change without writing.
	DryRun bool
	// SkipVerify trusts the save acknowledgment instead of re-fetching.
	SkipVerify bool
}

// ArgumentError is a per-operation user error: bad or missing inputs,
// detected before any store write. In single-command mode it is fatal; in a
// batch it fails only its own operation.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return e.Msg }

func argErrorf(format string, args ...any) error {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// VerifyError means a write was acknowledged but the change could not be
// confirmed by an independent re-fetch. The store may or may not have
// applied it.
type VerifyError struct {
	Msg string
	Err error
}

func (e *VerifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *VerifyError) Unwrap() error { return e.Err }

// DoubleRecurrenceError is the refusal to stack a new recurrence rule onto
// an item that already carries one. Recurrence is additive at the store
// level, so a blind write would accumulate rules silently.
type DoubleRecurrenceError struct {
	Title string
}

func (e *DoubleRecurrenceError) Error() string {
	return fmt.Sprintf("%q already has a recurrence rule; remove it before setting a new one", e.Title)
}

// AlreadyExistsError is the move-time conflict: an incomplete item with the
// same title is already present in the target list. Silently merging is
// unsafe, so this is a hard stop.
type AlreadyExistsError struct {
	Title string
	List  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%q already exists in %q", e.Title, e.List)
}

// MoveIncompleteError reports the half-applied move: the copy was created in
// the target list but the source item could not be completed. The operator
// must finish the move by hand.
type MoveIncompleteError struct {
	Title  string
	Source string
	Target string
	Err    error
}

func (e *MoveIncompleteError) Error() string {
	return fmt.Sprintf("created %q in %q but could not complete the original in %q: %v — complete it manually to finish the move",
		e.Title, e.Target, e.Source, e.Err)
}

func (e *MoveIncompleteError) Unwrap() error { return e.Err }
