package ops

import (
	"context"
	"fmt"
	"time"

	"remind/internal/resolve"
	"remind/internal/store"
)

// Complete marks the resolved item complete with the current timestamp.
func (s *Session) Complete(ctx context.Context, listName string, sel resolve.Selector, opts Options) (Result, error) {
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
		return Result{Success: true, Message: fmt.Sprintf("dry-run: would complete %q in %q", item.Title, list.Name)}, nil
	}

	now := time.Now()
	item.Completed = true
	item.CompletionDate = &now
	if err := s.st.Save(ctx, &item); err != nil {
		return Result{}, &store.SaveError{Op: "save", Err: err}
	}
	s.Invalidate(listName)

	if !opts.SkipVerify {
		ok, err := s.verifier.Completed(ctx, list, item.Title)
		if err != nil {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("could not confirm %q was completed", item.Title), Err: err}
		}
		if !ok {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("%q was saved but is not completed on re-read", item.Title)}
		}
	}

	return Result{Success: true, Message: fmt.Sprintf("completed %q in %q", item.Title, list.Name)}, nil
}
