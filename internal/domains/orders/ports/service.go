package ports

import (
	"context"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
)

// SubmitOrderInput is what a client fills in on the order form.
type SubmitOrderInput struct {
	ClientName string
	ClientCode string
	Flavor     domain.Flavor
	Size       domain.Size
	Quantity   int
	// OrderID pins the identifier so a retried submission reuses one record.
	// Empty lets the store assign it.
	OrderID string
}

// UpdateOrderInput is an admin edit. Nil fields are left unchanged.
type UpdateOrderInput struct {
	ID          string
	Status      *domain.Status
	ArrivalDate *string
}

// Service exposes order use cases to adapters (inbound/driving port).
type Service interface {
	SubmitOrder(ctx context.Context, input SubmitOrderInput) (*domain.Order, error)
	FindOrdersByCredentials(ctx context.Context, clientName, clientCode string) ([]*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, input UpdateOrderInput) (*domain.Order, error)
	ProductionSummary(ctx context.Context) (domain.ProductionSummary, error)
}
