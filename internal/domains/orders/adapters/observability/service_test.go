package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
)

type stubService struct {
	order   *domain.Order
	orders  []*domain.Order
	summary domain.ProductionSummary
	err     error
}

func (s *stubService) SubmitOrder(context.Context, ports.SubmitOrderInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubService) FindOrdersByCredentials(context.Context, string, string) ([]*domain.Order, error) {
	return s.orders, s.err
}

func (s *stubService) ListOrders(context.Context) ([]*domain.Order, error) {
	return s.orders, s.err
}

func (s *stubService) UpdateOrder(context.Context, ports.UpdateOrderInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubService) ProductionSummary(context.Context) (domain.ProductionSummary, error) {
	return s.summary, s.err
}

func TestSubmitOrderNeverLogsClientCode(t *testing.T) {
	var buf bytes.Buffer
	inner := &stubService{order: &domain.Order{ID: "o-1", ClientName: "Cafe", ClientCode: "hunter2", Flavor: domain.FlavorPeach, Quantity: 4}}
	svc := New(inner, WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	_, err := svc.SubmitOrder(context.Background(), ports.SubmitOrderInput{ClientName: "Cafe", ClientCode: "hunter2", Flavor: domain.FlavorPeach, Quantity: 4})
	require.NoError(t, err)
	_, err = svc.FindOrdersByCredentials(context.Background(), "Cafe", "hunter2")
	require.NoError(t, err)

	require.Contains(t, buf.String(), "order submitted")
	require.NotContains(t, buf.String(), "hunter2")
}

func TestErrorsPassThroughUnchanged(t *testing.T) {
	var buf bytes.Buffer
	sentinel := errors.New("sheet offline")
	svc := New(&stubService{err: sentinel}, WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	_, err := svc.ListOrders(context.Background())
	require.ErrorIs(t, err, sentinel)
	_, err = svc.ProductionSummary(context.Background())
	require.ErrorIs(t, err, sentinel)
	require.Contains(t, buf.String(), "failed to summarize production")
}

func TestMetricsCountSubmissionsAndUpdates(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	shipped := domain.StatusShipped
	inner := &stubService{order: &domain.Order{ID: "o-1", Flavor: domain.FlavorBerry, Quantity: 6, Status: shipped}}
	svc := New(inner, WithMeter(provider.Meter("test")))
	ctx := context.Background()

	_, err := svc.SubmitOrder(ctx, ports.SubmitOrderInput{})
	require.NoError(t, err)
	_, err = svc.UpdateOrder(ctx, ports.UpdateOrderInput{ID: "o-1", Status: &shipped})
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	totals := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[m.Name] += dp.Value
			}
		}
	}
	require.Equal(t, int64(1), totals["orders.service.orders_submitted"])
	require.Equal(t, int64(6), totals["orders.service.units_ordered"])
	require.Equal(t, int64(1), totals["orders.service.orders_updated"])
}
