package portalserver

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	ordermapper "github.com/Apurer/boochbooch-portal/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
	platformmetrics "github.com/Apurer/boochbooch-portal/internal/platform/metrics"
)

// AdminPasswordHeader carries the shared admin password.
const AdminPasswordHeader = "X-Admin-Password"

// AdminAPI serves the admin screen behind a shared password.
type AdminAPI struct {
	service  ports.Service
	password string
	metrics  *platformmetrics.Metrics
}

// NewAdminAPI creates an AdminAPI. An empty password locks every admin route.
func NewAdminAPI(service ports.Service, password string, metrics *platformmetrics.Metrics) AdminAPI {
	return AdminAPI{service: service, password: password, metrics: metrics}
}

// RequireAdmin rejects requests whose header does not equal the configured password.
func (api *AdminAPI) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(AdminPasswordHeader)
		if api.password == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(api.password)) != 1 {
			problems.Unauthorized(c, "admin password required")
			return
		}
		c.Next()
	}
}

// Get /v1/admin/orders
// List every order in submission order
func (api *AdminAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Patch /v1/admin/orders/:orderId
// Update order status and/or arrival date
func (api *AdminAPI) UpdateOrder(c *gin.Context) {
	orderID, ok := bindOrderID(c)
	if !ok {
		return
	}
	var payload ordermapper.UpdateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	updated, err := api.service.UpdateOrder(c.Request.Context(), ordermapper.ToUpdateInput(orderID, payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(updated))
}

// Get /v1/admin/production
// Pending units per flavor, total units and estimated revenue
func (api *AdminAPI) ProductionSummary(c *gin.Context) {
	summary, err := api.service.ProductionSummary(c.Request.Context())
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	if api.metrics != nil {
		api.metrics.SetPendingUnits(pendingByFlavor(summary))
	}
	c.JSON(http.StatusOK, ordermapper.FromProductionSummary(summary))
}

func bindOrderID(c *gin.Context) (string, bool) {
	var orderID string
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		problems.BadRequest(c, err.Error())
		return "", false
	}
	return orderID, true
}

// pendingByFlavor reports every flavor, zero included.
func pendingByFlavor(summary domain.ProductionSummary) map[string]int {
	units := make(map[string]int, len(domain.Flavors()))
	for _, f := range domain.Flavors() {
		units[string(f)] = 0
	}
	for _, total := range summary.ByFlavor {
		units[string(total.Flavor)] = total.Units
	}
	return units
}
