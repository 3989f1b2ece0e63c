package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/boochbooch-portal/internal/app/api"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/application"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
)

func main() {
	_ = godotenv.Load()

	if err := run(os.Stdout); err != nil {
		log.Fatalf("production report failed: %v", err)
	}
}

func run(w io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store, cleanup, err := api.OpenOrderStore(ctx, cfg, logger)
	defer cleanup()
	if err != nil {
		return fmt.Errorf("open order store: %w", err)
	}

	summary, err := application.NewService(store, cfg.ServiceOptions()...).ProductionSummary(ctx)
	if err != nil {
		return fmt.Errorf("summarize production: %w", err)
	}
	writeReport(w, summary)
	return nil
}

func writeReport(w io.Writer, summary domain.ProductionSummary) {
	fmt.Fprintln(w, "Outstanding units (every order not Completed)")
	for _, total := range summary.ByFlavor {
		fmt.Fprintf(w, "  %-8s %6d\n", total.Flavor, total.Units)
	}
	fmt.Fprintf(w, "Total units:       %d\n", summary.TotalPendingUnits)
	fmt.Fprintf(w, "Estimated revenue: $%d (at $%d/unit)\n", summary.EstimatedRevenue, summary.UnitPrice)
}
