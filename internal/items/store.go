// Package items provides the ordered line-item container that every engine
// reads from and writes to.
package items

import (
	"errors"

	"github.com/mmynk/estimator/internal/models"
)

// ErrNotFound is returned when no item has the requested ID.
var ErrNotFound = errors.New("line item not found")

// Store holds the line items of one estimate in insertion order.
// It performs no validation or recomputation and is not safe for
// concurrent use; callers serialize access per estimate.
type Store struct {
	order []string
	byID  map[string]models.LineItem
}

// NewStore creates a store seeded with items, keeping their order.
// A later item with a repeated ID replaces the earlier one in place.
func NewStore(seed ...models.LineItem) *Store {
	s := &Store{byID: make(map[string]models.LineItem, len(seed))}
	for _, item := range seed {
		s.Upsert(item)
	}
	return s
}

// Get returns the item with the given ID.
func (s *Store) Get(id string) (models.LineItem, error) {
	item, ok := s.byID[id]
	if !ok {
		return models.LineItem{}, ErrNotFound
	}
	return item, nil
}

// Has reports whether an item with the given ID exists.
func (s *Store) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// All returns a copy of every item in insertion order.
func (s *Store) All() []models.LineItem {
	out := make([]models.LineItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Upsert replaces the item with the same ID, keeping its position,
// or appends it when the ID is new.
func (s *Store) Upsert(item models.LineItem) {
	if _, exists := s.byID[item.ID]; !exists {
		s.order = append(s.order, item.ID)
	}
	s.byID[item.ID] = item
}

// Remove deletes the item with the given ID.
func (s *Store) Remove(id string) error {
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Index returns the position of the item in iteration order, or -1.
func (s *Store) Index(id string) int {
	for i, existing := range s.order {
		if existing == id {
			return i
		}
	}
	return -1
}

// At returns the item at position i in iteration order.
func (s *Store) At(i int) (models.LineItem, bool) {
	if i < 0 || i >= len(s.order) {
		return models.LineItem{}, false
	}
	return s.byID[s.order[i]], true
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.order)
}
