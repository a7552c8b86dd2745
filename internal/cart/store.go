package cart

import (
	"sync"

	"github.com/google/uuid"

	"tableserve/internal/domain"
)

// Store keeps one cart per session token. Each operation runs under the
// lock, so mutations are atomic with respect to observation even though
// HTTP handlers call in concurrently.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// NewSession mints a fresh session token with an empty cart behind it.
func (s *Store) NewSession() string {
	session := uuid.NewString()
	s.mu.Lock()
	s.carts[session] = New()
	s.mu.Unlock()
	return session
}

func (s *Store) Add(session string, item domain.MenuItem) Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(session)
	c.Add(item)
	return c.Totals()
}

func (s *Store) Remove(session, itemID string) Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(session)
	c.Remove(itemID)
	return c.Totals()
}

func (s *Store) Clear(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(session).Clear()
}

// Snapshot returns the lines and totals of the session's cart as one
// consistent view.
func (s *Store) Snapshot(session string) ([]Line, Totals) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[session]
	if !ok {
		return nil, Totals{}
	}
	return c.Lines(), c.Totals()
}

// cart returns the session's cart, creating it on first use. Callers
// must hold the write lock.
func (s *Store) cart(session string) *Cart {
	c, ok := s.carts[session]
	if !ok {
		c = New()
		s.carts[session] = c
	}
	return c
}
