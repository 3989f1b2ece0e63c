package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	portalserver "github.com/Apurer/boochbooch-portal/go"
	orderobs "github.com/Apurer/boochbooch-portal/internal/domains/orders/adapters/observability"
	orderworkflows "github.com/Apurer/boochbooch-portal/internal/domains/orders/adapters/workflows"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/application"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
	platformmetrics "github.com/Apurer/boochbooch-portal/internal/platform/metrics"
	platformobservability "github.com/Apurer/boochbooch-portal/internal/platform/observability"
)

const serviceName = "boochbooch-portal-api"

// Run boots the portal HTTP API with observability, the order store, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	metrics := platformmetrics.New()
	reader, err := metrics.OTelReader()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics exporter: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.WithMetricReader(reader))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, cleanupStore, err := OpenOrderStore(ctx, cfg, logger)
	defer cleanupStore()
	if err != nil {
		return fmt.Errorf("open order store: %w", err)
	}
	orderService := NewOrderService(store, cfg, instruments)

	var orderWorkflows ports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(orderService)
	if cfg.OrderStore == StoreMemory {
		logger.Info("in-memory store is process local, running inline SubmitOrder")
	} else if temporalClient, err := ConnectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline SubmitOrder", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD not set, admin routes are locked")
	}

	handlers := portalserver.ApiHandleFunctions{
		OrderAPI: portalserver.NewOrderAPI(orderService, orderWorkflows),
		AdminAPI: portalserver.NewAdminAPI(orderService, cfg.AdminPassword, metrics),
		Metrics:  metrics,
	}
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	portalserver.NewRouterWithGinEngine(router, handlers)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("portal API listening", slog.String("addr", server.Addr), slog.String("store", cfg.OrderStore))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("portal API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		logger.Info("shutting down portal API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// NewOrderService builds the core service decorated with tracing, logging and metrics.
func NewOrderService(store ports.Store, cfg Config, instruments *platformobservability.Instruments) ports.Service {
	core := application.NewService(store, cfg.ServiceOptions()...)
	return orderobs.New(
		core,
		orderobs.WithLogger(effectiveLogger(instruments)),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
}

// ConnectTemporalClient dials Temporal with tracing and structured logging.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
