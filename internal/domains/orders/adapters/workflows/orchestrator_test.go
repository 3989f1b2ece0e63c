package workflows

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/adapters/memory"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/application"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/boochbooch-portal/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/boochbooch-portal/internal/platform/temporal/workflows/orders"
)

func TestInlineOrderWorkflowsSubmitsThroughService(t *testing.T) {
	store := memory.NewStore()
	svc := application.NewService(store, application.WithClock(func() time.Time {
		return time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	}))
	workflows := NewInlineOrderWorkflows(svc)

	order, err := workflows.SubmitOrder(context.Background(), ports.SubmitOrderInput{
		ClientName: "Cafe A", ClientCode: "x123", Flavor: domain.FlavorGinger, Size: domain.SizeKeg, Quantity: 2,
	}, "ignored")
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)

	_, err = workflows.SubmitOrder(context.Background(), ports.SubmitOrderInput{ClientCode: "x123", Quantity: 2}, "")
	require.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestInlineOrderWorkflowsRequiresService(t *testing.T) {
	_, err := NewInlineOrderWorkflows(nil).SubmitOrder(context.Background(), ports.SubmitOrderInput{}, "")
	require.Error(t, err)
}

func TestBuildSubmissionWorkflowIDIsStableForKey(t *testing.T) {
	first := buildSubmissionWorkflowID("abc", "trace-1")
	second := buildSubmissionWorkflowID("  abc ", "trace-2")
	require.Equal(t, first, second)
	require.True(t, strings.HasPrefix(first, "order-submission-idem-"))
	require.Len(t, strings.TrimPrefix(first, "order-submission-idem-"), 16)

	require.NotEqual(t, first, buildSubmissionWorkflowID("abd", "trace-1"))
	require.True(t, strings.HasSuffix(buildSubmissionWorkflowID("", "trace-1"), "-trace-1"))
}

func TestTranslateWorkflowErrorRestoresValidation(t *testing.T) {
	cause := &domain.ValidationError{Field: "quantity", Err: domain.ErrInvalidQuantity}
	appErr := temporal.NewNonRetryableApplicationError("bad", orderactivities.InvalidOrderErrorType, cause,
		orderactivities.InvalidOrderDetails{Field: "quantity", Message: domain.ErrInvalidQuantity.Error()})

	err := translateWorkflowError(appErr)
	require.ErrorIs(t, err, application.ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "quantity", verr.Field)
}

func TestTranslateWorkflowErrorDefaultsToStoreUnavailable(t *testing.T) {
	err := translateWorkflowError(errors.New("deadline exceeded"))
	require.ErrorIs(t, err, application.ErrStoreUnavailable)
}

// fakeTemporal emulates the server's workflow id bookkeeping and runs the
// submission against the service in place of a worker.
type fakeTemporal struct {
	client.Client
	service ports.Service
	runs    map[string]*fakeRun
	starts  int
	options []client.StartWorkflowOptions
}

type fakeRun struct {
	client.WorkflowRun
	id    string
	runID string
	order *domain.Order
	err   error
}

func (r *fakeRun) GetID() string    { return r.id }
func (r *fakeRun) GetRunID() string { return r.runID }

func (r *fakeRun) Get(_ context.Context, valuePtr interface{}) error {
	if r.err != nil {
		return r.err
	}
	*valuePtr.(*domain.Order) = *r.order
	return nil
}

func (f *fakeTemporal) ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, _ interface{}, args ...interface{}) (client.WorkflowRun, error) {
	f.options = append(f.options, options)
	if prev, ok := f.runs[options.ID]; ok && prev.err == nil &&
		options.WorkflowIDReusePolicy != enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE &&
		options.WorkflowExecutionErrorWhenAlreadyStarted {
		return nil, serviceerror.NewWorkflowExecutionAlreadyStarted("workflow already started", "", prev.runID)
	}
	f.starts++
	cmd := args[0].(orderworkflows.SubmissionWorkflowInput).Command
	cmd.OrderID = orderworkflows.OrderIDFor(options.ID)
	order, err := f.service.SubmitOrder(ctx, cmd)
	run := &fakeRun{id: options.ID, runID: "run-" + strconv.Itoa(f.starts), order: order, err: err}
	f.runs[options.ID] = run
	return run, nil
}

func (f *fakeTemporal) GetWorkflow(_ context.Context, workflowID string, runID string) client.WorkflowRun {
	run := f.runs[workflowID]
	if run == nil || run.runID != runID {
		return &fakeRun{err: errors.New("workflow not found")}
	}
	return run
}

func TestTemporalOrderWorkflowsSameKeySubmitsOnce(t *testing.T) {
	store := memory.NewStore()
	svc := application.NewService(store)
	temporalClient := &fakeTemporal{service: svc, runs: map[string]*fakeRun{}}
	workflows := NewTemporalOrderWorkflows(temporalClient)
	input := ports.SubmitOrderInput{ClientName: "Cafe A", ClientCode: "x123", Flavor: domain.FlavorPeach, Size: domain.Size24Pack, Quantity: 5}
	ctx := context.Background()

	first, err := workflows.SubmitOrder(ctx, input, "form-42")
	require.NoError(t, err)
	second, err := workflows.SubmitOrder(ctx, input, "form-42")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, temporalClient.starts)
	stored, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, first.ID, stored[0].ID)

	for _, options := range temporalClient.options {
		require.Equal(t, enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY, options.WorkflowIDReusePolicy)
		require.True(t, options.WorkflowExecutionErrorWhenAlreadyStarted)
		require.Equal(t, orderworkflows.SubmissionTaskQueue, options.TaskQueue)
	}
}

func TestTemporalOrderWorkflowsRerunAfterFailureKeepsOrderID(t *testing.T) {
	store := memory.NewStore()
	svc := application.NewService(store)
	temporalClient := &fakeTemporal{service: svc, runs: map[string]*fakeRun{}}
	workflows := NewTemporalOrderWorkflows(temporalClient)
	input := ports.SubmitOrderInput{ClientName: "Cafe A", ClientCode: "x123", Flavor: domain.FlavorBerry, Size: domain.SizeKeg, Quantity: 1}
	ctx := context.Background()

	first, err := workflows.SubmitOrder(ctx, input, "form-7")
	require.NoError(t, err)
	// the previous run is recorded as failed after its write landed
	temporalClient.runs[buildSubmissionWorkflowID("form-7", "")].err = errors.New("activity timed out")

	second, err := workflows.SubmitOrder(ctx, input, "form-7")
	require.NoError(t, err)
	require.Equal(t, 2, temporalClient.starts)
	require.Equal(t, first.ID, second.ID)

	stored, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}
