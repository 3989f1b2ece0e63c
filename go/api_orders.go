package portalserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/boochbooch-portal/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
)

// IdempotencyKeyHeader lets clients retry a submission without a duplicate order.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI serves the client-facing order and status screens.
type OrderAPI struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI. A nil workflows submits through the service directly.
func NewOrderAPI(service ports.Service, workflows ports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /v1/orders
// Submit a new wholesale order
func (api *OrderAPI) SubmitOrder(c *gin.Context) {
	var payload ordermapper.SubmitOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := api.submit(c.Request.Context(), ordermapper.ToSubmitInput(payload), c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

func (api *OrderAPI) submit(ctx context.Context, input ports.SubmitOrderInput, idempotencyKey string) (*domain.Order, error) {
	if api.workflows != nil {
		return api.workflows.SubmitOrder(ctx, input, idempotencyKey)
	}
	return api.service.SubmitOrder(ctx, input)
}

// Post /v1/orders/lookup
// Find orders placed under a client name and code, newest first
func (api *OrderAPI) LookupOrders(c *gin.Context) {
	var payload ordermapper.LookupRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	orders, err := api.service.FindOrdersByCredentials(c.Request.Context(), payload.ClientName, payload.ClientCode)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /v1/catalog
// List flavors, sizes and statuses
func (api *OrderAPI) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, ordermapper.NewCatalog())
}
