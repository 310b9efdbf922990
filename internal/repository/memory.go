// Package repository provides the persistence backends consumed by the
// gateway core: an in-memory map, append-only flat files, and postgres.
package repository

import (
	"sync"

	"payment-gateway/internal/domain"
)

// MemoryTransactionStore is a volatile keyed store. Save is last-write-wins
// per id. Values are copied on the way in and out so callers never share
// state with the store.
type MemoryTransactionStore struct {
	mu           sync.RWMutex
	transactions map[string]domain.Transaction
}

func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{transactions: make(map[string]domain.Transaction)}
}

func (s *MemoryTransactionStore) Save(t *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[t.ID] = *t
	return nil
}

func (s *MemoryTransactionStore) Find(txID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transactions[txID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *MemoryTransactionStore) ListAll() ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Transaction, 0, len(s.transactions))
	for id := range s.transactions {
		t := s.transactions[id]
		out = append(out, &t)
	}
	return out, nil
}
