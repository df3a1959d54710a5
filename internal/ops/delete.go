package ops

import (
	"context"
	"fmt"

	"remind/internal/resolve"
	"remind/internal/store"
)

// Delete removes the resolved item. Verification checks total absence, not
// just absence among incomplete items: a delete must remove regardless of
// completion state.
func (s *Session) Delete(ctx context.Context, listName string, sel resolve.Selector, opts Options) (Result, error) {
	list, err := s.List(ctx, listName)
	if err != nil {
		return Result{}, err
	}
	snap, err := s.Items(ctx, listName)
	if err != nil {
		return Result{}, err
	}
	item, err := resolve.Find(snap, sel)
	if err != nil {
		return Result{}, err
	}

	if opts.DryRun {
		return Result{Success: true, Message: fmt.Sprintf("dry-run: would delete %q from %q", item.Title, list.Name)}, nil
	}

	if err := s.st.Remove(ctx, &item); err != nil {
		return Result{}, &store.SaveError{Op: "remove", Err: err}
	}
	s.Invalidate(listName)

	if !opts.SkipVerify {
		ok, err := s.verifier.Gone(ctx, list, item.Title)
		if err != nil {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("could not confirm %q was deleted", item.Title), Err: err}
		}
		if !ok {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("%q was removed but is still present on re-read", item.Title)}
		}
	}

	return Result{Success: true, Message: fmt.Sprintf("deleted %q from %q", item.Title, list.Name)}, nil
}
