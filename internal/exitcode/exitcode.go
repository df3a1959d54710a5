// Package exitcode defines process exit codes and their mapping from the
// error taxonomy.
package exitcode

import (
	"errors"

	"remind/internal/ops"
	"remind/internal/resolve"
	"remind/internal/store"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UsageError indicates bad or missing arguments; no store contact
	// was attempted.
	UsageError = 1

	// AccessDenied indicates the authorization handshake failed.
	AccessDenied = 2

	// ListNotFound indicates no list matched the requested name.
	ListNotFound = 3

	// FetchFailed indicates a store read failed.
	FetchFailed = 4

	// TargetNotFound indicates the item was not found or the title
	// matched ambiguously.
	TargetNotFound = 5

	// DoubleRecurrence indicates the non-destructive refusal to stack a
	// second recurrence rule.
	DoubleRecurrence = 6

	// SaveFailed indicates a save, remove or post-write verification
	// failed. In batch mode it also means at least one operation failed.
	SaveFailed = 7
)

// FromError maps an error from the resolver, store or an operation executor
// to its exit code. Single-command and batch call sites share this one
// mapping.
func FromError(err error) int {
	if err == nil {
		return Success
	}

	var (
		argErr    *ops.ArgumentError
		listErr   *store.ListNotFoundError
		fetchErr  *store.FetchError
		nfErr     *resolve.NotFoundError
		ambErr    *resolve.AmbiguousError
		recurErr  *ops.DoubleRecurrenceError
		existsErr *ops.AlreadyExistsError
	)

	switch {
	case errors.As(err, &argErr):
		return UsageError
	case errors.Is(err, store.ErrAccessDenied):
		return AccessDenied
	case errors.As(err, &listErr):
		return ListNotFound
	case errors.As(err, &fetchErr):
		return FetchFailed
	case errors.As(err, &nfErr), errors.As(err, &ambErr):
		return TargetNotFound
	case errors.As(err, &recurErr):
		return DoubleRecurrence
	case errors.As(err, &existsErr):
		return SaveFailed
	default:
		// SaveError, VerifyError, MoveIncompleteError and anything the
		// taxonomy does not name: a write may have happened.
		return SaveFailed
	}
}
