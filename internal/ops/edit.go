package ops

import (
	"context"
	"fmt"
	"strings"

	"remind/internal/resolve"
	"remind/internal/store"
)

// TimeOfDay is an explicit clock time supplied separately from a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// EditRequest describes the changes to apply to an existing item. Absent
// fields (nil) are left untouched; setting and clearing are distinguishable
// by construction, so nothing can be cleared by omission.
type EditRequest struct {
	List     string
	Target   resolve.Selector
	NewTitle *string
	Date     *store.DueDate
	Time     *TimeOfDay
	Body     *string
}

// Edit applies one or more field changes to the resolved item. At least one
// change must be supplied, and a time-only edit requires the item to already
// have a due date.
func (s *Session) Edit(ctx context.Context, req EditRequest, opts Options) (Result, error) {
	if req.NewTitle == nil && req.Date == nil && req.Time == nil && req.Body == nil {
		return Result{}, argErrorf("nothing to change: supply a new title, due date, time or body")
	}

	list, err := s.List(ctx, req.List)
	if err != nil {
		return Result{}, err
	}
	snap, err := s.Items(ctx, req.List)
	if err != nil {
		return Result{}, err
	}
	item, err := resolve.Find(snap, req.Target)
	if err != nil {
		return Result{}, err
	}
	if req.Time != nil && req.Date == nil && item.Due == nil {
		return Result{}, argErrorf("%q has no due date; cannot set a time without one", item.Title)
	}

	var changes []string
	if req.NewTitle != nil && *req.NewTitle != item.Title {
		changes = append(changes, fmt.Sprintf("title %q -> %q", item.Title, *req.NewTitle))
	}
	if req.Date != nil {
		due := *req.Date
		if req.Time != nil {
			due.Hour, due.Minute = req.Time.Hour, req.Time.Minute
			due.HasTime = true
		}
		changes = append(changes, fmt.Sprintf("due -> %s", due))
	} else if req.Time != nil {
		changes = append(changes, fmt.Sprintf("time -> %02d:%02d", req.Time.Hour, req.Time.Minute))
	}
	if req.Body != nil {
		changes = append(changes, "body updated")
	}

	if opts.DryRun {
		return Result{Success: true, Message: fmt.Sprintf("dry-run: would edit %q in %q: %s",
			item.Title, list.Name, strings.Join(changes, ", "))}, nil
	}

	// The title to verify after the write is the new one if renamed.
	verifyTitle := item.Title
	if req.NewTitle != nil {
		item.Title = *req.NewTitle
		verifyTitle = *req.NewTitle
	}
	if req.Date != nil {
		due := *req.Date
		if req.Time != nil {
			due.Hour, due.Minute = req.Time.Hour, req.Time.Minute
			due.HasTime = true
		}
		item.Due = &due
	} else if req.Time != nil {
		due := *item.Due
		due.Hour, due.Minute = req.Time.Hour, req.Time.Minute
		due.HasTime = true
		item.Due = &due
	}
	if req.Body != nil {
		item.Notes = *req.Body
	}

	if err := s.st.Save(ctx, &item); err != nil {
		return Result{}, &store.SaveError{Op: "save", Err: err}
	}
	s.Invalidate(req.List)

	if !opts.SkipVerify {
		ok, err := s.verifier.Exists(ctx, list, verifyTitle)
		if err != nil {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("could not confirm %q was updated", verifyTitle), Err: err}
		}
		if !ok {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("%q was saved but is not present on re-read", verifyTitle)}
		}
	}

	return Result{Success: true, Message: fmt.Sprintf("updated %q in %q: %s",
		verifyTitle, list.Name, strings.Join(changes, ", "))}, nil
}
