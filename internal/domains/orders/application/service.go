package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"slices"
	"time"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
)

// DefaultStoreTimeout bounds each round trip to the order store.
const DefaultStoreTimeout = 10 * time.Second

var errNoStore = errors.New("order store not configured")

// Service orchestrates the orders bounded context use cases.
type Service struct {
	store        ports.Store
	policy       domain.TransitionPolicy
	now          func() time.Time
	unitPrice    int
	storeTimeout time.Duration
}

// Option customizes the service.
type Option func(*Service)

// WithTransitionPolicy swaps the admin status-change rule.
func WithTransitionPolicy(policy domain.TransitionPolicy) Option {
	return func(s *Service) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithUnitPrice sets the price used for revenue estimates.
func WithUnitPrice(price int) Option {
	return func(s *Service) {
		if price > 0 {
			s.unitPrice = price
		}
	}
}

// WithStoreTimeout bounds each store call. Zero keeps the default.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

// NewService wires the orders service with its store.
func NewService(store ports.Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		policy:       domain.PermissiveTransitions{},
		now:          time.Now,
		unitPrice:    domain.DefaultUnitPrice,
		storeTimeout: DefaultStoreTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SubmitOrder validates a client submission and appends it to the store.
func (s *Service) SubmitOrder(ctx context.Context, input ports.SubmitOrderInput) (*domain.Order, error) {
	order, err := domain.NewOrder(input.ClientName, input.ClientCode, input.Flavor, input.Size, input.Quantity, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	if s.store == nil {
		return nil, mapError(errNoStore)
	}
	order.ID = input.OrderID
	ctx, cancel := s.storeContext(ctx)
	defer cancel()
	id, err := s.store.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	order.ID = id
	return order, nil
}

// FindOrdersByCredentials returns every order placed under the exact
// (name, code) pair, newest first. No match is an empty result, not an error.
func (s *Service) FindOrdersByCredentials(ctx context.Context, clientName, clientCode string) ([]*domain.Order, error) {
	orders, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	matches := make([]*domain.Order, 0)
	for i := len(orders) - 1; i >= 0; i-- {
		order := orders[i]
		if order.ClientName == clientName && codesEqual(order.ClientCode, clientCode) {
			matches = append(matches, order)
		}
	}
	return matches, nil
}

// ListOrders returns every order in creation order for the admin screen.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.listAll(ctx)
}

// UpdateOrder applies an admin edit to status and/or arrival date.
func (s *Service) UpdateOrder(ctx context.Context, input ports.UpdateOrderInput) (*domain.Order, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, mapError(&domain.ValidationError{Field: "status", Err: domain.ErrInvalidStatus})
	}
	orders, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(orders, func(o *domain.Order) bool { return o.ID == input.ID })
	if idx < 0 {
		return nil, ports.ErrNotFound
	}
	current := orders[idx]
	if input.Status != nil {
		if err := s.policy.Check(current.Status, *input.Status); err != nil {
			return nil, mapError(err)
		}
	}
	patch := domain.Patch{Status: input.Status, ArrivalDate: input.ArrivalDate}
	if patch.Empty() {
		return current, nil
	}
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	if err := s.store.Update(storeCtx, input.ID, patch); err != nil {
		return nil, mapError(err)
	}
	updated := current.Clone()
	updated.Apply(patch)
	return updated, nil
}

// ProductionSummary aggregates outstanding demand for the admin chart.
func (s *Service) ProductionSummary(ctx context.Context) (domain.ProductionSummary, error) {
	orders, err := s.listAll(ctx)
	if err != nil {
		return domain.ProductionSummary{}, err
	}
	return domain.Summarize(orders, s.unitPrice), nil
}

func (s *Service) listAll(ctx context.Context) ([]*domain.Order, error) {
	if s.store == nil {
		return nil, mapError(errNoStore)
	}
	ctx, cancel := s.storeContext(ctx)
	defer cancel()
	orders, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// codesEqual is plain string equality evaluated in constant time.
func codesEqual(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

var _ ports.Service = (*Service)(nil)
