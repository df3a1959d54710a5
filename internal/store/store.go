package store

import "context"

// Store is the capability interface over the external reminder store.
// Implementations never cache: every FetchItems call is a full, fresh read,
// and Save/Remove acknowledgments are not to be trusted by callers — the
// layers above re-fetch to confirm persistence.
//
// Authorization happens exactly once per process, inside the factory that
// constructs the concrete Store. A factory failure is fatal to the whole
// invocation.
type Store interface {
	// Lists returns all lists in store order.
	Lists(ctx context.Context) ([]List, error)

	// FindList finds a list by display name (case-insensitive, trimmed).
	// Display names are treated as unique; the first match wins. A miss
	// returns ListNotFoundError carrying all available names.
	FindList(ctx context.Context, name string) (List, error)

	// FetchItems returns a fresh snapshot of every item (complete and
	// incomplete) in the given lists, in store order.
	FetchItems(ctx context.Context, lists ...List) (Snapshot, error)

	// Save persists an item. An item with an empty ID is created and its
	// ID is filled in; otherwise the stored item with that ID is
	// replaced. A nil error only means the store acknowledged the write,
	// not that it persisted.
	Save(ctx context.Context, item *Item) error

	// Remove deletes an item by ID.
	Remove(ctx context.Context, item *Item) error
}
