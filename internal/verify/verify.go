// Package verify confirms persisted state after a mutation by re-reading the
// store. The store's save acknowledgment is never trusted: every check here
// is a full, fresh fetch, independent of any cache the caller holds.
package verify

import (
	"context"

	"remind/internal/store"
)

// Verifier re-fetches a list and checks an expected post-state.
type Verifier struct {
	st store.Store
}

// New creates a Verifier over the given store.
func New(st store.Store) *Verifier {
	return &Verifier{st: st}
}

// Exists reports whether an incomplete item with exactly this title is
// present in a fresh fetch of the list.
func (v *Verifier) Exists(ctx context.Context, list store.List, title string) (bool, error) {
	snap, err := v.st.FetchItems(ctx, list)
	if err != nil {
		return false, err
	}
	return snap.HasIncompleteTitle(title), nil
}

// Completed reports whether an item with exactly this title is present and
// marked complete.
func (v *Verifier) Completed(ctx context.Context, list store.List, title string) (bool, error) {
	snap, err := v.st.FetchItems(ctx, list)
	if err != nil {
		return false, err
	}
	for _, it := range snap {
		if it.Completed && it.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// Gone reports whether no item with exactly this title is present at all.
// Unlike the other checks this scans completed items too: a delete must
// remove regardless of completion state.
func (v *Verifier) Gone(ctx context.Context, list store.List, title string) (bool, error) {
	snap, err := v.st.FetchItems(ctx, list)
	if err != nil {
		return false, err
	}
	for _, it := range snap {
		if it.Title == title {
			return false, nil
		}
	}
	return true, nil
}

// Recurring reports whether the item with this id carries a non-empty
// recurrence rule set in a fresh fetch.
func (v *Verifier) Recurring(ctx context.Context, list store.List, id string) (bool, error) {
	snap, err := v.st.FetchItems(ctx, list)
	if err != nil {
		return false, err
	}
	for _, it := range snap {
		if it.ID == id {
			return len(it.Recurrences) > 0, nil
		}
	}
	return false, nil
}
