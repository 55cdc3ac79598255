// Package memory provides an in-memory implementation of transport.ItemStore.
// Items are kept in insertion order and lost when the process restarts.
package memory

import (
	"context"
	"sync"

	"github.com/rhuss/aibackend/pkg/api"
	"github.com/rhuss/aibackend/pkg/observability"
	"github.com/rhuss/aibackend/pkg/storage"
	"github.com/rhuss/aibackend/pkg/transport"
)

// Store is an ordered in-memory ItemStore. A single lock covers each
// operation, so the scan and the mutation it guards are atomic.
type Store struct {
	mu    sync.RWMutex
	items []api.Item // insertion order
}

// Ensure Store implements transport.ItemStore at compile time.
var _ transport.ItemStore = (*Store)(nil)

// New creates a store holding the given seed items in order. Seed items
// keep their ids; callers must not pass duplicate ids.
func New(seed ...api.Item) *Store {
	s := &Store{items: make([]api.Item, 0, len(seed))}
	for _, item := range seed {
		s.items = append(s.items, cloneItem(item))
	}
	s.report()
	return s
}

// SeedItems returns the two sample records the service starts with.
func SeedItems() []api.Item {
	first := "This is a sample item"
	second := "Another sample item"
	return []api.Item{
		{ID: 1, Name: "Sample Item", Description: &first, Price: 19.99},
		{ID: 2, Name: "Another Item", Description: &second, Price: 29.99},
	}
}

// ListItems returns a copy of all items in insertion order.
func (s *Store) ListItems(_ context.Context) ([]api.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]api.Item, len(s.items))
	for i, item := range s.items {
		out[i] = cloneItem(item)
	}
	return out, nil
}

// GetItem returns the item with the given id, or storage.ErrNotFound.
func (s *Store) GetItem(_ context.Context, id int) (*api.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, storage.ErrNotFound
	}
	item := cloneItem(s.items[idx])
	return &item, nil
}

// CreateItem appends a new item. Its id is one more than the largest id
// currently held, or 1 when the store is empty.
func (s *Store) CreateItem(_ context.Context, in *api.ItemInput) (*api.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := in.ToItem(s.nextID())
	s.items = append(s.items, item)
	s.report()

	out := cloneItem(item)
	return &out, nil
}

// UpdateItem replaces every field except the id, keeping the item's
// position. Returns storage.ErrNotFound without mutating anything when
// the id is absent.
func (s *Store) UpdateItem(_ context.Context, id int, in *api.ItemInput) (*api.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, storage.ErrNotFound
	}

	item := in.ToItem(id)
	s.items[idx] = item

	out := cloneItem(item)
	return &out, nil
}

// DeleteItem removes the item with the given id and returns it.
func (s *Store) DeleteItem(_ context.Context, id int) (*api.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, storage.ErrNotFound
	}

	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.report()

	return &removed, nil
}

// Len returns the number of items held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// indexOf returns the position of the first item with the given id, or -1.
// Must be called with s.mu held.
func (s *Store) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID must be called with s.mu held.
func (s *Store) nextID() int {
	maxID := 0
	for _, item := range s.items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID + 1
}

// report must be called with s.mu held (or before the store is shared).
func (s *Store) report() {
	observability.ItemsStored.Set(float64(len(s.items)))
}

func cloneItem(item api.Item) api.Item {
	if item.Description != nil {
		desc := *item.Description
		item.Description = &desc
	}
	return item
}
