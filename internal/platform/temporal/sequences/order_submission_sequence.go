package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/boochbooch-portal/internal/platform/temporal/activities/orders"
)

// PersistActivityOptions bounds the persist step; the store adapters are remote.
var PersistActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: time.Minute,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:        2 * time.Second,
		BackoffCoefficient:     2.0,
		MaximumInterval:        10 * time.Second,
		MaximumAttempts:        5,
		NonRetryableErrorTypes: []string{orderactivities.InvalidOrderErrorType},
	},
}

// RunOrderSubmissionSequence executes the activities needed to record a client submission.
func RunOrderSubmissionSequence(ctx workflow.Context, input ports.SubmitOrderInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order submission sequence started", "clientName", input.ClientName)

	var order domain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, PersistActivityOptions), orderactivities.PersistOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order submission sequence failed", "clientName", input.ClientName, "error", err)
		return nil, err
	}
	logger.Info("order submission sequence persisted", "orderId", order.ID)
	return &order, nil
}
