package ops

import (
	"context"
	"fmt"

	"remind/internal/resolve"
	"remind/internal/store"
)

// SetRecurrence attaches an indefinite recurrence rule to the resolved item.
// It hard-refuses when the item already carries any rule: recurrence is
// additive at the store level and must never be stacked silently.
func (s *Session) SetRecurrence(ctx context.Context, listName string, sel resolve.Selector, rule store.Recurrence, opts Options) (Result, error) {
	if rule.Interval < 1 {
		return Result{}, argErrorf("recurrence interval must be a positive integer, got %d", rule.Interval)
	}
	if _, err := store.ParseFrequency(string(rule.Frequency)); err != nil {
		return Result{}, &ArgumentError{Msg: err.Error()}
	}

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
	if len(item.Recurrences) > 0 {
		return Result{}, &DoubleRecurrenceError{Title: item.Title}
	}

	if opts.DryRun {
		return Result{Success: true, Message: fmt.Sprintf("dry-run: would set %s recurrence on %q in %q",
			rule, item.Title, list.Name)}, nil
	}

	item.Recurrences = append(item.Recurrences, rule)
	if err := s.st.Save(ctx, &item); err != nil {
		return Result{}, &store.SaveError{Op: "save", Err: err}
	}
	s.Invalidate(listName)

	if !opts.SkipVerify {
		ok, err := s.verifier.Recurring(ctx, list, item.ID)
		if err != nil {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("could not confirm recurrence on %q", item.Title), Err: err}
		}
		if !ok {
			return Result{}, &VerifyError{Msg: fmt.Sprintf("recurrence on %q was saved but is not present on re-read", item.Title)}
		}
	}

	return Result{Success: true, Message: fmt.Sprintf("set %s recurrence on %q in %q", rule, item.Title, list.Name)}, nil
}
