package domain

// DefaultUnitPrice is the per-unit price used for revenue estimates when none
// is configured.
const DefaultUnitPrice = 50

// FlavorTotal is one bar of the production chart.
type FlavorTotal struct {
	Flavor Flavor
	Units  int
}

// ProductionSummary is the admin production view over outstanding orders.
type ProductionSummary struct {
	ByFlavor          []FlavorTotal
	TotalPendingUnits int
	EstimatedRevenue  int
	UnitPrice         int
}

// PendingUnitsByFlavor sums outstanding quantity per flavor. Flavors without
// outstanding orders are absent.
func PendingUnitsByFlavor(orders []*Order) map[Flavor]int {
	totals := map[Flavor]int{}
	for _, order := range orders {
		if order == nil || !order.Outstanding() {
			continue
		}
		totals[order.Flavor] += order.Quantity
	}
	return totals
}

// PendingFlavorTotals returns the same totals as PendingUnitsByFlavor ordered
// by first occurrence in orders.
func PendingFlavorTotals(orders []*Order) []FlavorTotal {
	index := map[Flavor]int{}
	var totals []FlavorTotal
	for _, order := range orders {
		if order == nil || !order.Outstanding() {
			continue
		}
		i, ok := index[order.Flavor]
		if !ok {
			i = len(totals)
			index[order.Flavor] = i
			totals = append(totals, FlavorTotal{Flavor: order.Flavor})
		}
		totals[i].Units += order.Quantity
	}
	return totals
}

// TotalPendingUnits sums quantity over outstanding orders.
func TotalPendingUnits(orders []*Order) int {
	total := 0
	for _, order := range orders {
		if order != nil && order.Outstanding() {
			total += order.Quantity
		}
	}
	return total
}

// EstimatedRevenue prices the outstanding units at unitPrice.
func EstimatedRevenue(orders []*Order, unitPrice int) int {
	return TotalPendingUnits(orders) * unitPrice
}

// Summarize builds the admin production view.
func Summarize(orders []*Order, unitPrice int) ProductionSummary {
	total := TotalPendingUnits(orders)
	return ProductionSummary{
		ByFlavor:          PendingFlavorTotals(orders),
		TotalPendingUnits: total,
		EstimatedRevenue:  total * unitPrice,
		UnitPrice:         unitPrice,
	}
}
