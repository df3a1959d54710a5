package ops

import (
	"context"
	"strings"

	"remind/internal/store"
	"remind/internal/verify"
)

// Session carries one authorized store handle plus per-process caches of
// list handles and item snapshots, keyed by list name. It exists so that
// many operations in one run share a single authorization and avoid
// redundant round-trips; it is only ever touched by the sequential
// dispatch loop, so it needs no locking.
//
// List handles are cached for the whole session. Snapshots are dropped by
// Invalidate the moment a mutation touches their list; every mutation site
// in this package invalidates, so both single-shot commands and batches get
// the same staleness guarantee. The verifier performs its own fetches and
// never reads these caches.
type Session struct {
	st       store.Store
	verifier *verify.Verifier

	lists map[string]store.List
	items map[string]store.Snapshot
}

// NewSession creates a Session over an authorized store.
func NewSession(st store.Store) *Session {
	return &Session{
		st:       st,
		verifier: verify.New(st),
		lists:    make(map[string]store.List),
		items:    make(map[string]store.Snapshot),
	}
}

// Store exposes the underlying store handle.
func (s *Session) Store() store.Store { return s.st }

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// List returns the list with the given display name, cached after the first
// successful lookup.
func (s *Session) List(ctx context.Context, name string) (store.List, error) {
	key := cacheKey(name)
	if l, ok := s.lists[key]; ok {
		return l, nil
	}
	l, err := s.st.FindList(ctx, name)
	if err != nil {
		return store.List{}, err
	}
	s.lists[key] = l
	return l, nil
}

// Items returns a snapshot of the named list, cached until the next
// invalidation of that list.
func (s *Session) Items(ctx context.Context, name string) (store.Snapshot, error) {
	l, err := s.List(ctx, name)
	if err != nil {
		return nil, err
	}
	key := cacheKey(name)
	if snap, ok := s.items[key]; ok {
		return snap, nil
	}
	snap, err := s.st.FetchItems(ctx, l)
	if err != nil {
		return nil, &store.FetchError{Err: err}
	}
	s.items[key] = snap
	return snap, nil
}

// Invalidate drops the cached snapshot for a list. The list handle itself
// stays cached; only item state goes stale on mutation.
func (s *Session) Invalidate(name string) {
	delete(s.items, cacheKey(name))
}
