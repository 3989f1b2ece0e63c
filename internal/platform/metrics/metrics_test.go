package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddlewareCountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/v1/admin/orders/:orderId", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/admin/orders/abc", nil))

	body := scrape(t, m)
	require.Contains(t, body, `boochbooch_http_requests_total{method="GET",route="/v1/admin/orders/:orderId",status="204"} 1`)
}

func TestSetPendingUnitsReplacesPreviousValues(t *testing.T) {
	m := New()
	m.SetPendingUnits(map[string]int{"Peach": 10, "Berry": 3})
	m.SetPendingUnits(map[string]int{"Peach": 4})

	body := scrape(t, m)
	require.Contains(t, body, `boochbooch_pending_units{flavor="Peach"} 4`)
	require.NotContains(t, body, `flavor="Berry"`)
}

func TestOTelReaderExposesServiceCounters(t *testing.T) {
	m := New()
	reader, err := m.OTelReader()
	require.NoError(t, err)
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	counter, err := provider.Meter("test").Int64Counter("orders.service.lookups")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)

	require.Contains(t, scrape(t, m), "orders_service_lookups_total")
}
