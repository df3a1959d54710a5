// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"remind/internal/store"
)

// ErrNotFound is returned when a store object does not exist.
var ErrNotFound = errors.New("not found")

// FakeStore is an in-memory implementation of store.Store for testing.
// Besides per-call error injection it can be told to lie: acknowledge a
// Save or Remove without persisting it, which is how the verification
// distrust tests model an eventually-consistent backing store.
type FakeStore struct {
	mu    sync.RWMutex
	lists []store.List
	items map[string][]store.Item // listID -> items

	// Error injection
	ListsErr    error
	FindListErr error
	FetchErr    error
	SaveErr     error
	RemoveErr   error

	// SaveHook, when set, is consulted per item on Save; a non-nil return
	// fails that save only. Lets tests fail the nth write of a multi-write
	// operation.
	SaveHook func(item *store.Item) error

	// LieOnSave makes Save report success while discarding the write.
	LieOnSave bool
	// LieOnRemove makes Remove report success while keeping the item.
	LieOnRemove bool

	// FetchCalls counts FetchItems invocations, for cache assertions.
	FetchCalls int
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{items: make(map[string][]store.Item)}
}

// AddList adds a list and returns it.
func (f *FakeStore) AddList(name string) store.List {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := store.List{ID: uuid.New().String(), Name: name, Origin: "memory"}
	f.lists = append(f.lists, l)
	f.items[l.ID] = nil
	return l
}

// Seed inserts an item into a list directly, bypassing Save, and returns it
// with its assigned id.
func (f *FakeStore) Seed(listName string, item store.Item) store.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lists {
		if strings.EqualFold(l.Name, listName) {
			if item.ID == "" {
				item.ID = uuid.New().String()
			}
			item.ListID = l.ID
			item.ListName = l.Name
			f.items[l.ID] = append(f.items[l.ID], item)
			return item
		}
	}
	panic("testutil: Seed into unknown list " + listName)
}

// ItemsIn returns a copy of a list's items for assertions.
func (f *FakeStore) ItemsIn(listName string) []store.Item {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if strings.EqualFold(l.Name, listName) {
			out := make([]store.Item, len(f.items[l.ID]))
			copy(out, f.items[l.ID])
			return out
		}
	}
	return nil
}

// Lists implements store.Store.
func (f *FakeStore) Lists(ctx context.Context) ([]store.List, error) {
	if f.ListsErr != nil {
		return nil, f.ListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]store.List, len(f.lists))
	copy(out, f.lists)
	return out, nil
}

// FindList implements store.Store.
func (f *FakeStore) FindList(ctx context.Context, name string) (store.List, error) {
	if f.FindListErr != nil {
		return store.List{}, f.FindListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	want := strings.TrimSpace(name)
	for _, l := range f.lists {
		if strings.EqualFold(strings.TrimSpace(l.Name), want) {
			return l, nil
		}
	}
	available := make([]string, 0, len(f.lists))
	for _, l := range f.lists {
		available = append(available, l.Name)
	}
	return store.List{}, &store.ListNotFoundError{Name: name, Available: available}
}

// FetchItems implements store.Store.
func (f *FakeStore) FetchItems(ctx context.Context, lists ...store.List) (store.Snapshot, error) {
	f.mu.Lock()
	f.FetchCalls++
	f.mu.Unlock()
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var snap store.Snapshot
	for _, l := range lists {
		snap = append(snap, f.items[l.ID]...)
	}
	return snap, nil
}

// Save implements store.Store.
func (f *FakeStore) Save(ctx context.Context, item *store.Item) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	if f.SaveHook != nil {
		if err := f.SaveHook(item); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
		if f.LieOnSave {
			return nil
		}
		f.items[item.ListID] = append(f.items[item.ListID], *item)
		return nil
	}

	if f.LieOnSave {
		return nil
	}
	for listID, items := range f.items {
		for i, it := range items {
			if it.ID == item.ID {
				f.items[listID][i] = *item
				return nil
			}
		}
	}
	return ErrNotFound
}

// Remove implements store.Store.
func (f *FakeStore) Remove(ctx context.Context, item *store.Item) error {
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	if f.LieOnRemove {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for listID, items := range f.items {
		for i, it := range items {
			if it.ID == item.ID {
				f.items[listID] = append(items[:i], items[i+1:]...)
				return nil
			}
		}
	}
	return ErrNotFound
}
