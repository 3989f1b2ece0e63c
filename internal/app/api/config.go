package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/application"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
)

// Order store backends selectable with ORDER_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSheets   = "sheets"
)

// Config carries environment-driven settings for the portal processes.
type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	OrderStore string `env:"ORDER_STORE" envDefault:"memory"`

	PostgresDSN string `env:"POSTGRES_DSN"`

	SheetsSpreadsheetID string `env:"SHEETS_SPREADSHEET_ID"`
	SheetsWorksheet     string `env:"SHEETS_WORKSHEET" envDefault:"Orders"`
	GoogleCredentials   string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	UnitPrice         int           `env:"UNIT_PRICE" envDefault:"50"`
	StoreTimeout      time.Duration `env:"STORE_TIMEOUT" envDefault:"10s"`
	StrictTransitions bool          `env:"STRICT_STATUS_TRANSITIONS" envDefault:"false"`

	TemporalAddress   string `env:"TEMPORAL_ADDRESS"`
	TemporalNamespace string `env:"TEMPORAL_NAMESPACE"`
	TemporalDisabled  bool   `env:"TEMPORAL_DISABLED" envDefault:"false"`
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.OrderStore = strings.ToLower(strings.TrimSpace(cfg.OrderStore))
	if cfg.TemporalAddress == "" {
		cfg.TemporalAddress = client.DefaultHostPort
	}
	if cfg.TemporalNamespace == "" {
		cfg.TemporalNamespace = client.DefaultNamespace
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the process cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.OrderStore {
	case StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required when ORDER_STORE=postgres"))
		}
	case StoreSheets:
		if strings.TrimSpace(c.SheetsSpreadsheetID) == "" {
			errs = append(errs, errors.New("SHEETS_SPREADSHEET_ID is required when ORDER_STORE=sheets"))
		}
	default:
		errs = append(errs, fmt.Errorf("ORDER_STORE must be one of %s, %s, %s; got %q", StoreMemory, StorePostgres, StoreSheets, c.OrderStore))
	}
	if c.UnitPrice <= 0 {
		errs = append(errs, errors.New("UNIT_PRICE must be a positive integer"))
	}
	if c.StoreTimeout <= 0 {
		errs = append(errs, errors.New("STORE_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// ServiceOptions translates config into orders service options.
func (c Config) ServiceOptions() []application.Option {
	opts := []application.Option{
		application.WithUnitPrice(c.UnitPrice),
		application.WithStoreTimeout(c.StoreTimeout),
	}
	if c.StrictTransitions {
		opts = append(opts, application.WithTransitionPolicy(domain.StrictTransitions{}))
	}
	return opts
}
