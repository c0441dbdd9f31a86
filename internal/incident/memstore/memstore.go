// Package memstore provides an in-memory implementation of incident.Store.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/linnemanlabs/beacon/internal/incident"
)

// Store holds incident records in memory. Suitable for dev/testing and
// the default when no database is configured.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]*incident.Incident
	order   []int64 // insertion order for snapshot enumeration
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{
		nextID:  1,
		records: make(map[int64]*incident.Incident),
	}
}

// Insert stores a copy of the record under a freshly allocated id and
// stamps both timestamps. Ids are strictly increasing and never reused.
func (s *Store) Insert(_ context.Context, in *incident.Incident) (*incident.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cp := in.Clone()
	cp.ID = s.nextID
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.nextID++

	s.records[cp.ID] = cp
	s.order = append(s.order, cp.ID)

	return cp.Clone(), nil
}

// Get retrieves a record by id. Returns a copy.
func (s *Store) Get(_ context.Context, id int64) (*incident.Incident, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	in, ok := s.records[id]
	if !ok {
		return nil, false, nil
	}
	return in.Clone(), true, nil
}

// List returns a snapshot of all records in insertion order. The
// snapshot is taken under the lock, so concurrent inserts and updates
// never surface partially written records in the result.
func (s *Store) List(_ context.Context) ([]*incident.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*incident.Incident, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].Clone())
	}
	return out, nil
}

// UpdateStatus mutates status and UpdatedAt in place and appends the
// transition event under a single lock acquisition, so readers never
// see a status inconsistent with its UpdatedAt stamp.
func (s *Store) UpdateStatus(_ context.Context, id int64, status incident.Status, ev *incident.StatusEvent) (*incident.Incident, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, ok := s.records[id]
	if !ok {
		return nil, false, nil
	}

	in.Status = status
	in.UpdatedAt = ev.At
	in.History = append(in.History, *ev)

	return in.Clone(), true, nil
}
