package orders

import (
	"github.com/google/uuid"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
	"github.com/Apurer/boochbooch-portal/internal/platform/temporal/sequences"
)

const (
	// SubmissionWorkflowName is the public identifier for registering the workflow.
	SubmissionWorkflowName = "orders.workflows.Submission"
	// SubmissionTaskQueue is the queue consumed by the worker processing order workflows.
	SubmissionTaskQueue = "ORDER_SUBMISSION"
)

// SubmissionWorkflowInput captures one order form submission.
type SubmissionWorkflowInput struct {
	Command ports.SubmitOrderInput
	TraceID string
}

// SubmissionWorkflow durably records a client order.
func SubmissionWorkflow(ctx workflow.Context, input SubmissionWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	clientName := input.Command.ClientName
	if input.Command.OrderID == "" {
		input.Command.OrderID = OrderIDFor(workflow.GetInfo(ctx).WorkflowExecution.ID)
	}
	logger.Info("SubmissionWorkflow started", withTraceID(input.TraceID, "clientName", clientName, "orderId", input.Command.OrderID)...)
	order, err := sequences.RunOrderSubmissionSequence(ctx, input.Command)
	if err != nil {
		logger.Error("SubmissionWorkflow failed", withTraceID(input.TraceID, "clientName", clientName, "error", err)...)
		return nil, err
	}
	logger.Info("SubmissionWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

// OrderIDFor derives the order id from the workflow id. Activity retries and
// reruns of a failed workflow with the same id write the same order.
func OrderIDFor(workflowID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("boochbooch:"+workflowID)).String()
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
