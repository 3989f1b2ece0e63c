package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/application"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
)

const (
	// PersistOrderActivityName validates and stores one client submission.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// InvalidOrderErrorType marks submissions that must not be retried.
	InvalidOrderErrorType = "InvalidOrderInput"
)

// InvalidOrderDetails travels with an InvalidOrderErrorType failure.
type InvalidOrderDetails struct {
	Field   string
	Message string
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// PersistOrder stores a new order and returns it with its assigned id.
func (a *Activities) PersistOrder(ctx context.Context, input ports.SubmitOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized", "clientName", input.ClientName)
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "clientName", input.ClientName, "flavor", string(input.Flavor))
	order, err := a.service.SubmitOrder(ctx, input)
	if err != nil {
		logger.Error("PersistOrder activity failed", "clientName", input.ClientName, "error", err)
		return nil, classify(err)
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID)
	return order, nil
}

// classify stops retries for input the service will reject on every attempt.
func classify(err error) error {
	if !errors.Is(err, application.ErrInvalidInput) {
		return err
	}
	details := InvalidOrderDetails{Message: err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		details.Field = verr.Field
		details.Message = verr.Err.Error()
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), InvalidOrderErrorType, err, details)
}
