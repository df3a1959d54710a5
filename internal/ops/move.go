package ops

import (
	"context"
	"fmt"
	"time"

	"remind/internal/resolve"
	"remind/internal/store"
)

// MoveRequest describes a move from one list to another. Due, Time and Body
// override the source item's values when set; when nil the new item inherits
// them from the source.
type MoveRequest struct {
	Source string
	Target string
	Item   resolve.Selector
	Date   *store.DueDate
	Time   *TimeOfDay
	Body   *string
}

// Move transfers an item between lists as copy-and-complete: a fresh item is
// created in the target, then the source item is marked complete. The two
// writes are independent save+verify steps; when the second fails after the
// first succeeded, the returned MoveIncompleteError tells the operator what
// manual remediation is left. Recurrence and priority are not carried over,
// since the target item is freshly constructed.
func (s *Session) Move(ctx context.Context, req MoveRequest, opts Options) (Result, error) {
	source, err := s.List(ctx, req.Source)
	if err != nil {
		return Result{}, err
	}
	snap, err := s.Items(ctx, req.Source)
	if err != nil {
		return Result{}, err
	}
	item, err := resolve.Find(snap, req.Item)
	if err != nil {
		return Result{}, err
	}

	target, err := s.List(ctx, req.Target)
	if err != nil {
		return Result{}, err
	}
	targetSnap, err := s.Items(ctx, req.Target)
	if err != nil {
		return Result{}, err
	}
	// Pre-move dedup: merging into an existing incomplete item is unsafe.
	if targetSnap.HasIncompleteTitle(item.Title) {
		return Result{}, &AlreadyExistsError{Title: item.Title, List: target.Name}
	}

	if opts.DryRun {
		return Result{Success: true, Message: fmt.Sprintf("dry-run: would move %q from %q to %q",
			item.Title, source.Name, target.Name)}, nil
	}

	moved := &store.Item{
		Title:    item.Title,
		Notes:    item.Notes,
		Due:      item.Due,
		Priority: store.PriorityNone,
		ListID:   target.ID,
		ListName: target.Name,
	}
	if req.Body != nil {
		moved.Notes = *req.Body
	}
	if req.Date != nil {
		due := *req.Date
		if req.Time != nil {
			due.Hour, due.Minute = req.Time.Hour, req.Time.Minute
			due.HasTime = true
		}
		moved.Due = &due
	} else if req.Time != nil {
		if moved.Due == nil {
			return Result{}, argErrorf("%q has no due date; cannot set a time without one", item.Title)
		}
		due := *moved.Due
		due.Hour, due.Minute = req.Time.Hour, req.Time.Minute
		due.HasTime = true
		moved.Due = &due
	}

	// Step 1: create in target.
	if err := s.st.Save(ctx, moved); err != nil {
		return Result{}, &store.SaveError{Op: "save", Err: err}
	}
	s.Invalidate(req.Target)
	if !opts.SkipVerify {
		ok, err := s.verifier.Exists(ctx, target, moved.Title)
		if err != nil {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("could not confirm %q was created in %q", moved.Title, target.Name), Err: err}
		}
		if !ok {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("%q was saved but is not present in %q on re-read", moved.Title, target.Name)}
		}
	}

	// Step 2: complete the source item. Failure past this point leaves the
	// copy in place; there is no rollback, only actionable reporting.
	now := time.Now()
	item.Completed = true
	item.CompletionDate = &now
	if err := s.st.Save(ctx, &item); err != nil {
		return Result{}, &MoveIncompleteError{Title: item.Title, Source: source.Name, Target: target.Name, Err: err}
	}
	s.Invalidate(req.Source)
	if !opts.SkipVerify {
		ok, err := s.verifier.Completed(ctx, source, item.Title)
		if err != nil {
			return Result{}, &MoveIncompleteError{Title: item.Title, Source: source.Name, Target: target.Name, Err: err}
		}
		if !ok {
			return Result{}, &MoveIncompleteError{Title: item.Title, Source: source.Name, Target: target.Name,
				Err: fmt.Errorf("completion not visible on re-read")}
		}
	}

	return Result{Success: true, Message: fmt.Sprintf("moved %q from %q to %q", item.Title, source.Name, target.Name)}, nil
}
