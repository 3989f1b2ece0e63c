package ports

import (
	"context"
	"errors"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Store persists orders. Records are appended and updated, never deleted.
type Store interface {
	// Create appends one record and returns its identifier. A preset
	// order.ID is kept, and a Create for an ID already stored appends nothing
	// and returns that ID. Without one the store assigns an identifier.
	Create(ctx context.Context, order *domain.Order) (string, error)
	// ListAll returns every persisted record in creation order.
	ListAll(ctx context.Context) ([]*domain.Order, error)
	// Update merges patch into the record, returning ErrNotFound for unknown ids.
	Update(ctx context.Context, id string, patch domain.Patch) error
}
