package ops

import (
	"context"
	"fmt"

	"remind/internal/store"
)

// AddRequest describes a create operation.
type AddRequest struct {
	List  string
	Title string
	Due   *store.DueDate
	Body  string
	// Recurrence, when set, must carry a valid frequency and a positive
	// interval.
	Recurrence *store.Recurrence
	// Force disables the duplicate-title guard.
	Force bool
}

// Add creates a new reminder. Unless forced, adding a title that already
// exists incomplete in the list is a no-op reported as a distinguishable
// "skipped" success: repeated invocation is idempotent by design.
func (s *Session) Add(ctx context.Context, req AddRequest, opts Options) (Result, error) {
	if req.Title == "" {
		return Result{}, argErrorf("title required")
	}
	if req.Recurrence != nil && req.Recurrence.Interval < 1 {
		return Result{}, argErrorf("recurrence interval must be a positive integer, got %d", req.Recurrence.Interval)
	}

	list, err := s.List(ctx, req.List)
	if err != nil {
		return Result{}, err
	}
	snap, err := s.Items(ctx, req.List)
	if err != nil {
		return Result{}, err
	}

	if !req.Force && snap.HasIncompleteTitle(req.Title) {
		return Result{Success: true, Message: fmt.Sprintf("skipped: %q already exists in %q", req.Title, list.Name)}, nil
	}

	if opts.DryRun {
		return Result{Success: true, Message: fmt.Sprintf("dry-run: would add %q to %q%s", req.Title, list.Name, describeAdd(req))}, nil
	}

	item := &store.Item{
		Title:    req.Title,
		Notes:    req.Body,
		Due:      req.Due,
		Priority: store.PriorityNone,
		ListID:   list.ID,
		ListName: list.Name,
	}
	if req.Recurrence != nil {
		item.Recurrences = []store.Recurrence{*req.Recurrence}
	}

	if err := s.st.Save(ctx, item); err != nil {
		return Result{}, &store.SaveError{Op: "save", Err: err}
	}
	s.Invalidate(req.List)

	if !opts.SkipVerify {
		ok, err := s.verifier.Exists(ctx, list, req.Title)
		if err != nil {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("could not confirm %q was added", req.Title), Err: err}
		}
		if !ok {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("%q was saved but is not present on re-read", req.Title)}
		}
	}

	return Result{Success: true, Message: fmt.Sprintf("added %q to %q", req.Title, list.Name)}, nil
}

func describeAdd(req AddRequest) string {
	var extra string
	if req.Due != nil {
		extra += fmt.Sprintf(" due %s", req.Due)
	}
	if req.Recurrence != nil {
		extra += fmt.Sprintf(" recurring %s", req.Recurrence)
	}
	return extra
}
