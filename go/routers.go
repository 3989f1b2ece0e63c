package portalserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	platformmetrics "github.com/Apurer/boochbooch-portal/internal/platform/metrics"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Admin routes sit behind the admin password gate.
	Admin bool
}

// ApiHandleFunctions groups the API handlers the router dispatches to.
type ApiHandleFunctions struct {
	OrderAPI OrderAPI
	AdminAPI AdminAPI
	// Metrics is optional; when set the router records requests and serves /metrics.
	Metrics *platformmetrics.Metrics
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the portal routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	useJSONFieldNames()
	if handleFunctions.Metrics != nil {
		router.Use(handleFunctions.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(handleFunctions.Metrics.Handler()))
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	admin := router.Group("", handleFunctions.AdminAPI.RequireAdmin())
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		if route.Admin {
			admin.Handle(route.Method, route.Pattern, route.HandlerFunc)
			continue
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{Name: "SubmitOrder", Method: http.MethodPost, Pattern: "/v1/orders", HandlerFunc: handleFunctions.OrderAPI.SubmitOrder},
		{Name: "LookupOrders", Method: http.MethodPost, Pattern: "/v1/orders/lookup", HandlerFunc: handleFunctions.OrderAPI.LookupOrders},
		{Name: "GetCatalog", Method: http.MethodGet, Pattern: "/v1/catalog", HandlerFunc: handleFunctions.OrderAPI.GetCatalog},
		{Name: "ListOrders", Method: http.MethodGet, Pattern: "/v1/admin/orders", HandlerFunc: handleFunctions.AdminAPI.ListOrders, Admin: true},
		{Name: "UpdateOrder", Method: http.MethodPatch, Pattern: "/v1/admin/orders/:orderId", HandlerFunc: handleFunctions.AdminAPI.UpdateOrder, Admin: true},
		{Name: "ProductionSummary", Method: http.MethodGet, Pattern: "/v1/admin/production", HandlerFunc: handleFunctions.AdminAPI.ProductionSummary, Admin: true},
	}
}
