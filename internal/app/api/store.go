package api

import (
	"context"
	"fmt"
	"log/slog"

	ordermemory "github.com/Apurer/boochbooch-portal/internal/domains/orders/adapters/memory"
	orderpostgres "github.com/Apurer/boochbooch-portal/internal/domains/orders/adapters/persistence/postgres"
	ordersheets "github.com/Apurer/boochbooch-portal/internal/domains/orders/adapters/persistence/sheets"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
	"github.com/Apurer/boochbooch-portal/internal/platform/migrations"
	platformpostgres "github.com/Apurer/boochbooch-portal/internal/platform/postgres"
	platformsheets "github.com/Apurer/boochbooch-portal/internal/platform/sheets"
)

// OpenOrderStore acquires the configured order store once per process. The
// returned cleanup releases it and is safe to call when err is non-nil.
func OpenOrderStore(ctx context.Context, cfg Config, logger *slog.Logger) (ports.Store, func(), error) {
	switch cfg.OrderStore {
	case StorePostgres:
		db, cleanup, err := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, cleanup, err
		}
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("migrate orders schema: %w", err)
		}
		logger.Info("order store configured with postgres")
		return orderpostgres.NewStore(db), cleanup, nil
	case StoreSheets:
		svc, err := platformsheets.Connect(ctx, cfg.GoogleCredentials)
		if err != nil {
			return nil, func() {}, err
		}
		store := ordersheets.NewStore(platformsheets.NewValues(svc, cfg.SheetsSpreadsheetID), cfg.SheetsWorksheet)
		if err := store.EnsureHeader(ctx); err != nil {
			return nil, func() {}, fmt.Errorf("prepare orders worksheet: %w", err)
		}
		logger.Info("order store configured with google sheets",
			slog.String("spreadsheet", cfg.SheetsSpreadsheetID), slog.String("worksheet", cfg.SheetsWorksheet))
		return store, func() {}, nil
	default:
		logger.Warn("order store is in-memory; orders are lost on restart")
		return ordermemory.NewStore(), func() {}, nil
	}
}
