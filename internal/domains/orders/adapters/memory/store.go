package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
)

var _ ports.Store = (*Store)(nil)

// Store is an in-memory order persistence adapter. Records keep creation order.
type Store struct {
	mu     sync.RWMutex
	orders []*domain.Order
	newID  func() string
}

func NewStore() *Store {
	return &Store{newID: uuid.NewString}
}

// WithIDGenerator overrides id assignment for deterministic testing.
func (s *Store) WithIDGenerator(newID func() string) {
	if newID != nil {
		s.newID = newID
	}
}

func (s *Store) Create(_ context.Context, order *domain.Order) (string, error) {
	if order == nil {
		return "", errors.New("order is nil")
	}
	clone := order.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if clone.ID == "" {
		clone.ID = s.newID()
	} else if s.indexOf(clone.ID) >= 0 {
		return clone.ID, nil
	}
	s.orders = append(s.orders, clone)
	return clone.ID, nil
}

func (s *Store) ListAll(_ context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		list = append(list, order.Clone())
	}
	return list, nil
}

func (s *Store) Update(_ context.Context, id string, patch domain.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ports.ErrNotFound
	}
	s.orders[i].Apply(patch)
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, order := range s.orders {
		if order.ID == id {
			return i
		}
	}
	return -1
}

// Reset drops every order.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
}
