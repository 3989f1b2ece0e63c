package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/boochbooch-portal/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
// Client codes never reach spans or logs.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) SubmitOrder(ctx context.Context, input ports.SubmitOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.SubmitOrder",
		trace.WithAttributes(
			attribute.String("order.flavor", string(input.Flavor)),
			attribute.String("order.size", string(input.Size)),
			attribute.Int("order.quantity", input.Quantity),
		))
	defer span.End()

	s.logInfo(ctx, "submitting order", slog.String("client.name", input.ClientName), slog.String("flavor", string(input.Flavor)))
	result, err := s.inner.SubmitOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit order", slog.String("client.name", input.ClientName))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordSubmitted(ctx, result.Flavor, result.Quantity)
	s.logInfo(ctx, "order submitted", slog.String("order.id", result.ID), slog.Int("quantity", result.Quantity))
	return result, nil
}

func (s *Service) FindOrdersByCredentials(ctx context.Context, clientName, clientCode string) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.FindOrdersByCredentials")
	defer span.End()

	result, err := s.inner.FindOrdersByCredentials(ctx, clientName, clientCode)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to look up orders", slog.String("client.name", clientName))
	}
	span.SetAttributes(attribute.Int("orders.matched", len(result)))
	s.metrics.recordLookup(ctx, len(result) > 0)
	s.logInfo(ctx, "orders looked up", slog.String("client.name", clientName), slog.Int("matched", len(result)))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) UpdateOrder(ctx context.Context, input ports.UpdateOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrder", trace.WithAttributes(attribute.String("order.id", input.ID)))
	defer span.End()

	attrs := []slog.Attr{slog.String("order.id", input.ID)}
	if input.Status != nil {
		attrs = append(attrs, slog.String("status", string(*input.Status)))
	}
	if input.ArrivalDate != nil {
		attrs = append(attrs, slog.String("arrival_date", *input.ArrivalDate))
	}
	s.logInfo(ctx, "updating order", attrs...)
	result, err := s.inner.UpdateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.String("order.id", input.ID))
	}
	s.metrics.recordUpdated(ctx, result.Status)
	s.logInfo(ctx, "order updated", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) ProductionSummary(ctx context.Context) (domain.ProductionSummary, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ProductionSummary")
	defer span.End()

	result, err := s.inner.ProductionSummary(ctx)
	if err != nil {
		return domain.ProductionSummary{}, s.handleError(ctx, span, err, "failed to summarize production")
	}
	span.SetAttributes(
		attribute.Int("production.pending_units", result.TotalPendingUnits),
		attribute.Int("production.flavors", len(result.ByFlavor)),
	)
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersSubmitted metric.Int64Counter
	unitsOrdered    metric.Int64Counter
	ordersUpdated   metric.Int64Counter
	lookups         metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersSubmitted, _ := m.Int64Counter("orders.service.orders_submitted", metric.WithDescription("Number of orders submitted"))
	unitsOrdered, _ := m.Int64Counter("orders.service.units_ordered", metric.WithDescription("Units requested across submitted orders"))
	ordersUpdated, _ := m.Int64Counter("orders.service.orders_updated", metric.WithDescription("Number of admin order edits"))
	lookups, _ := m.Int64Counter("orders.service.lookups", metric.WithDescription("Number of credential lookups"))
	return serviceMetrics{
		ordersSubmitted: ordersSubmitted,
		unitsOrdered:    unitsOrdered,
		ordersUpdated:   ordersUpdated,
		lookups:         lookups,
	}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context, flavor domain.Flavor, quantity int) {
	attrs := metric.WithAttributes(attribute.String("order.flavor", string(flavor)))
	if m.ordersSubmitted != nil {
		m.ordersSubmitted.Add(ctx, 1, attrs)
	}
	if m.unitsOrdered != nil {
		m.unitsOrdered.Add(ctx, int64(quantity), attrs)
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status domain.Status) {
	if m.ordersUpdated != nil {
		m.ordersUpdated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordLookup(ctx context.Context, matched bool) {
	if m.lookups != nil {
		m.lookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("lookup.matched", matched)))
	}
}

var _ ports.Service = (*Service)(nil)
