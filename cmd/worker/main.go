package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/boochbooch-portal/internal/app/api"
	platformobservability "github.com/Apurer/boochbooch-portal/internal/platform/observability"
	orderactivities "github.com/Apurer/boochbooch-portal/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/boochbooch-portal/internal/platform/temporal/workflows/orders"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	const serviceName = "boochbooch-portal-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.OrderStore == api.StoreMemory {
		// The API runs submissions inline for the memory store, so a worker
		// here would persist into a map nobody reads.
		logger.Error("worker needs a shared order store, set ORDER_STORE to postgres or sheets")
		os.Exit(1)
	}

	store, cleanupStore, err := api.OpenOrderStore(ctx, cfg, logger)
	defer cleanupStore()
	if err != nil {
		logger.Error("failed to open order store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	orderActivities := orderactivities.NewActivities(api.NewOrderService(store, cfg, instruments))

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.SubmissionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.SubmissionWorkflow, workflow.RegisterOptions{Name: orderworkflows.SubmissionWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})

	logger.Info("worker listening",
		slog.String("taskQueue", orderworkflows.SubmissionTaskQueue),
		slog.String("namespace", cfg.TemporalNamespace),
		slog.String("store", cfg.OrderStore),
	)
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
