package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/application"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/boochbooch-portal/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/boochbooch-portal/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.SubmissionTaskQueue}
}

// SubmitOrder starts the submission workflow and waits for the stored order.
// A repeated idempotency key attaches to the run that already exists.
func (o *TemporalOrderWorkflows) SubmitOrder(ctx context.Context, input ports.SubmitOrderInput, idempotencyKey string) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildSubmissionWorkflowID(idempotencyKey, traceComponent)
	// A completed run with this id is attached to below; a failed one may run
	// again and reuses the same order id.
	options := client.StartWorkflowOptions{
		ID:                    workflowID,
		TaskQueue:             o.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
	}
	options.WorkflowExecutionErrorWhenAlreadyStarted = true
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.SubmissionWorkflow,
		orderworkflows.SubmissionWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(idempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var order domain.Order
			if err := existingRun.Get(ctx, &order); err != nil {
				return nil, translateWorkflowError(err)
			}
			return &order, nil
		}
		return nil, translateWorkflowError(err)
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &order, nil
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// SubmitOrder delegates to the application service. The idempotency key is ignored.
func (o *InlineOrderWorkflows) SubmitOrder(ctx context.Context, input ports.SubmitOrderInput, _ string) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.SubmitOrder(ctx, input)
}

// translateWorkflowError restores the application error classes lost in
// Temporal's failure conversion.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == orderactivities.InvalidOrderErrorType {
		var details orderactivities.InvalidOrderDetails
		if appErr.HasDetails() && appErr.Details(&details) == nil && details.Field != "" {
			return fmt.Errorf("%w: %w", application.ErrInvalidInput,
				&domain.ValidationError{Field: details.Field, Err: domain.ValidationSentinel(details.Message)})
		}
		return fmt.Errorf("%w: %s", application.ErrInvalidInput, appErr.Message())
	}
	return fmt.Errorf("%w: %w", application.ErrStoreUnavailable, err)
}

func buildSubmissionWorkflowID(idempotencyKey, traceComponent string) string {
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		return fmt.Sprintf("order-submission-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("order-submission-%d-%s", time.Now().UnixNano(), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// first 16 hex chars
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
