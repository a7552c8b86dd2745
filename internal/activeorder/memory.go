package activeorder

import (
	"context"
	"sync"

	"tableserve/internal/domain"
)

// MemoryStore keeps the active-order set in process memory. It backs
// deployments without redis; the set then only survives as long as the
// process does.
type MemoryStore struct {
	mu     sync.Mutex
	orders []domain.ActiveOrder
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]domain.ActiveOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]domain.ActiveOrder, len(s.orders))
	copy(orders, s.orders)
	return orders, nil
}

func (s *MemoryStore) Save(_ context.Context, orders []domain.ActiveOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make([]domain.ActiveOrder, len(orders))
	copy(s.orders, orders)
	return nil
}
