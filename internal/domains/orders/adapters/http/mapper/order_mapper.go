package mapper

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
)

// Order is the transport shape returned to clients and admins. The client
// code is never included.
type Order struct {
	ID          string             `json:"id"`
	ClientName  string             `json:"clientName"`
	Flavor      string             `json:"flavor"`
	Size        string             `json:"size"`
	Quantity    int                `json:"quantity"`
	Status      string             `json:"status"`
	ArrivalDate string             `json:"arrivalDate"`
	OrderDate   openapi_types.Date `json:"orderDate"`
}

// OrderList wraps list responses.
type OrderList struct {
	Orders []Order `json:"orders"`
}

// SubmitOrderRequest is the order form payload.
type SubmitOrderRequest struct {
	ClientName string `json:"clientName" binding:"required"`
	ClientCode string `json:"clientCode" binding:"required"`
	Flavor     string `json:"flavor" binding:"required"`
	Size       string `json:"size" binding:"required"`
	Quantity   int    `json:"quantity"`
}

// LookupRequest carries client credentials for the status screen. Blank
// credentials are allowed and simply match nothing.
type LookupRequest struct {
	ClientName string `json:"clientName"`
	ClientCode string `json:"clientCode"`
}

// UpdateOrderRequest is an admin edit; absent fields stay unchanged.
type UpdateOrderRequest struct {
	Status      *string `json:"status,omitempty"`
	ArrivalDate *string `json:"arrivalDate,omitempty"`
}

// FlavorTotal is one bar of the production chart.
type FlavorTotal struct {
	Flavor string `json:"flavor"`
	Units  int    `json:"units"`
}

// ProductionSummary is the admin production view.
type ProductionSummary struct {
	ByFlavor          []FlavorTotal `json:"byFlavor"`
	TotalPendingUnits int           `json:"totalPendingUnits"`
	EstimatedRevenue  int           `json:"estimatedRevenue"`
	UnitPrice         int           `json:"unitPrice"`
}

// Catalog lists the options the order form and admin editor offer.
type Catalog struct {
	Flavors  []string `json:"flavors"`
	Sizes    []string `json:"sizes"`
	Statuses []string `json:"statuses"`
}

// ToSubmitInput converts the order form into the service input.
func ToSubmitInput(req SubmitOrderRequest) ports.SubmitOrderInput {
	return ports.SubmitOrderInput{
		ClientName: req.ClientName,
		ClientCode: req.ClientCode,
		Flavor:     domain.Flavor(req.Flavor),
		Size:       domain.Size(req.Size),
		Quantity:   req.Quantity,
	}
}

// ToUpdateInput converts an admin edit for the given order id.
func ToUpdateInput(id string, req UpdateOrderRequest) ports.UpdateOrderInput {
	input := ports.UpdateOrderInput{ID: id, ArrivalDate: req.ArrivalDate}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		input.Status = &status
	}
	return input
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		ID:          order.ID,
		ClientName:  order.ClientName,
		Flavor:      string(order.Flavor),
		Size:        string(order.Size),
		Quantity:    order.Quantity,
		Status:      string(order.Status),
		ArrivalDate: order.ArrivalDate,
		OrderDate:   openapi_types.Date{Time: order.OrderDate},
	}
}

// FromDomainOrders keeps input order; nil yields an empty list.
func FromDomainOrders(orders []*domain.Order) OrderList {
	list := OrderList{Orders: make([]Order, 0, len(orders))}
	for _, order := range orders {
		list.Orders = append(list.Orders, FromDomainOrder(order))
	}
	return list
}

func FromProductionSummary(summary domain.ProductionSummary) ProductionSummary {
	out := ProductionSummary{
		ByFlavor:          make([]FlavorTotal, 0, len(summary.ByFlavor)),
		TotalPendingUnits: summary.TotalPendingUnits,
		EstimatedRevenue:  summary.EstimatedRevenue,
		UnitPrice:         summary.UnitPrice,
	}
	for _, total := range summary.ByFlavor {
		out.ByFlavor = append(out.ByFlavor, FlavorTotal{Flavor: string(total.Flavor), Units: total.Units})
	}
	return out
}

// NewCatalog lists every option in menu order.
func NewCatalog() Catalog {
	c := Catalog{}
	for _, f := range domain.Flavors() {
		c.Flavors = append(c.Flavors, string(f))
	}
	for _, s := range domain.Sizes() {
		c.Sizes = append(c.Sizes, string(s))
	}
	for _, s := range domain.Statuses() {
		c.Statuses = append(c.Statuses, string(s))
	}
	return c
}
