// Package ledger implements the transaction ledger view-model: the cached
// snapshot store, refresh sequencing, filtering, aggregation into chart
// datasets, and deterministic sorting.
package ledger

import (
	"sync"

	"github.com/jsvantner/minca/internal/models"
)

// Event describes a store change for subscribers.
type Event int

const (
	// EventSnapshotReplaced fires when a fresh ledger snapshot is applied.
	EventSnapshotReplaced Event = iota
	// EventCategoriesReplaced fires when the category list is replaced
	// wholesale after a fetch.
	EventCategoriesReplaced
	// EventCategoryUpserted fires when a single category is appended or
	// updated in place after a confirmed create/update.
	EventCategoryUpserted
)

// Store is the single source of truth for the fetched snapshot and category
// list. Sibling components subscribe to changes instead of threading
// mutation callbacks through each other.
//
// The cache lifetime is the current filter/date-range selection: every
// fetch replaces it wholesale, there is no incremental patching.
type Store struct {
	mu         sync.RWMutex
	snapshot   *models.LedgerSnapshot
	categories []models.Category
	subs       []chan Event
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current ledger snapshot, or nil before first fetch.
func (s *Store) Snapshot() *models.LedgerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Categories returns a copy of the current category list.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// SetSnapshot replaces the snapshot wholesale.
func (s *Store) SetSnapshot(snap *models.LedgerSnapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
	s.notify(EventSnapshotReplaced)
}

// SetCategories replaces the category list wholesale.
func (s *Store) SetCategories(cats []models.Category) {
	s.mu.Lock()
	s.categories = cats
	s.mu.Unlock()
	s.notify(EventCategoriesReplaced)
}

// UpsertCategory appends a category, or replaces it in place when the ID is
// already present. Called only after the server confirmed the mutation; the
// list is never updated speculatively.
func (s *Store) UpsertCategory(cat models.Category) {
	s.mu.Lock()
	replaced := false
	for i := range s.categories {
		if s.categories[i].ID == cat.ID {
			s.categories[i] = cat
			replaced = true
			break
		}
	}
	if !replaced {
		s.categories = append(s.categories, cat)
	}
	s.mu.Unlock()
	s.notify(EventCategoryUpserted)
}

// Subscribe returns a channel receiving store change events. Slow
// subscribers miss events rather than blocking updates.
func (s *Store) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) notify(e Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
