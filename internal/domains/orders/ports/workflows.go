package ports

import (
	"context"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs order submission, durably when a workflow engine
// is available. An empty idempotencyKey means every call is a new submission.
type WorkflowOrchestrator interface {
	SubmitOrder(ctx context.Context, input SubmitOrderInput, idempotencyKey string) (*domain.Order, error)
}
