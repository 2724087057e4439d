package session

import (
	"context"
	"sync"
)

// MemoryStore is a mutex-guarded in-process [Store]. It backs SessionAuth and
// ExpiringSessionAuth, and is the default store wired by the engine builder
// when no durable backend is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

// Get returns the record for sessionID, or (nil, nil) when absent.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[sessionID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the record under sessionID, replacing any previous record.
func (s *MemoryStore) Put(_ context.Context, sessionID string, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[sessionID] = record
	return nil
}

// Delete removes the record for sessionID. Deleting an absent id is a no-op.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, sessionID)
	return nil
}

// Len reports the number of stored records. Expired records count until they
// are explicitly destroyed.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
