package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ORDER_STORE", "UNIT_PRICE", "STORE_TIMEOUT", "TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "STRICT_STATUS_TRANSITIONS"} {
		t.Setenv(key, "")
	}
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, StoreMemory, cfg.OrderStore)
	require.Equal(t, 50, cfg.UnitPrice)
	require.Equal(t, 10*time.Second, cfg.StoreTimeout)
	require.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	require.Equal(t, client.DefaultNamespace, cfg.TemporalNamespace)
	require.False(t, cfg.StrictTransitions)
	require.Len(t, cfg.ServiceOptions(), 2)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ORDER_STORE", " Postgres ")
	t.Setenv("POSTGRES_DSN", "postgres://u:p@localhost/booch")
	t.Setenv("UNIT_PRICE", "65")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("STRICT_STATUS_TRANSITIONS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, StorePostgres, cfg.OrderStore)
	require.Equal(t, 65, cfg.UnitPrice)
	require.Equal(t, 3*time.Second, cfg.StoreTimeout)
	require.True(t, cfg.StrictTransitions)
	require.Len(t, cfg.ServiceOptions(), 3)
}

func TestConfigValidate(t *testing.T) {
	base := Config{OrderStore: StoreMemory, UnitPrice: 50, StoreTimeout: time.Second}
	require.NoError(t, base.Validate())

	pg := base
	pg.OrderStore = StorePostgres
	require.ErrorContains(t, pg.Validate(), "POSTGRES_DSN")

	sheets := base
	sheets.OrderStore = StoreSheets
	require.ErrorContains(t, sheets.Validate(), "SHEETS_SPREADSHEET_ID")

	unknown := base
	unknown.OrderStore = "redis"
	require.ErrorContains(t, unknown.Validate(), "ORDER_STORE")

	free := base
	free.UnitPrice = 0
	require.ErrorContains(t, free.Validate(), "UNIT_PRICE")
}

func TestLoadConfigRejectsMalformedValues(t *testing.T) {
	t.Setenv("UNIT_PRICE", "fifty")
	_, err := LoadConfig()
	require.Error(t, err)
}
