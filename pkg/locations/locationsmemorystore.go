// FILE: pkg/locations/inmem_store.go

package locations

import (
	"context"
	"fmt"
	"sync"
)

var errClosed = fmt.Errorf("in-memory store is closed: %w", ErrStorageUnavailable)

// InMemoryStore is a thread-safe, in-memory implementation of the Store interface.
type InMemoryStore struct {
	sync.RWMutex
	records map[int64]Record
	order   []int64
	lastID  int64
	closed  bool
}

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[int64]Record),
	}
}

// GetByID retrieves a record by its ID.
func (s *InMemoryStore) GetByID(ctx context.Context, id int64) (Record, error) {
	s.RLock()
	defer s.RUnlock()
	if s.closed {
		return Record{}, errClosed
	}
	rec, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("location with ID %d: %w", id, ErrNotFound)
	}
	return rec, nil
}

// Has reports whether a record with the same ID is stored.
func (s *InMemoryStore) Has(ctx context.Context, rec Record) (bool, error) {
	s.RLock()
	defer s.RUnlock()
	if s.closed {
		return false, errClosed
	}
	_, ok := s.records[rec.ID]
	return ok, nil
}

// GetAll returns all records in the order they were inserted.
func (s *InMemoryStore) GetAll(ctx context.Context) ([]Record, error) {
	s.RLock()
	defer s.RUnlock()
	if s.closed {
		return nil, errClosed
	}

	all := make([]Record, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.records[id])
	}
	return all, nil
}

// Insert assigns the next ID to rec and saves it.
func (s *InMemoryStore) Insert(ctx context.Context, rec *Record) (bool, error) {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return false, nil
	}

	s.lastID++
	rec.ID = s.lastID
	s.records[rec.ID] = *rec
	s.order = append(s.order, rec.ID)
	return true, nil
}

// Update overwrites the stored record with the same ID.
func (s *InMemoryStore) Update(ctx context.Context, rec Record) error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return errClosed
	}
	if _, ok := s.records[rec.ID]; !ok {
		return fmt.Errorf("update location with ID %d: %w", rec.ID, ErrNotFound)
	}
	s.records[rec.ID] = rec
	return nil
}

// Delete removes the record with the same ID.
func (s *InMemoryStore) Delete(ctx context.Context, rec Record) error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return errClosed
	}
	if _, ok := s.records[rec.ID]; !ok {
		return fmt.Errorf("delete location with ID %d: %w", rec.ID, ErrNotFound)
	}
	delete(s.records, rec.ID)
	for i, id := range s.order {
		if id == rec.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear drops every record and restarts ID allocation.
func (s *InMemoryStore) Clear(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return errClosed
	}
	s.records = make(map[int64]Record)
	s.order = nil
	s.lastID = 0
	return nil
}

// Close marks the store closed. Later inserts return false and every other
// operation fails with ErrStorageUnavailable.
func (s *InMemoryStore) Close() error {
	s.Lock()
	defer s.Unlock()
	s.closed = true
	return nil
}
