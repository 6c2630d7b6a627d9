package insights

import (
	"fmt"

	"github.com/datavista/datavista-cli/internal/dataset"
)

// KPI is one named summary scalar with its display formatting applied.
type KPI struct {
	Name  string
	Value string
}

// KPISet is the fixed, ordered list of dashboard KPIs.
type KPISet []KPI

// Get returns the formatted value for a KPI name.
func (s KPISet) Get(name string) (string, bool) {
	for _, k := range s {
		if k.Name == name {
			return k.Value, true
		}
	}
	return "", false
}

// KPI names, in display order.
const (
	KPITotalRevenue     = "Total Revenue"
	KPITotalOrders      = "Total Orders"
	KPIAverageOrder     = "Average Order Value"
	KPIUniqueProducts   = "Unique Products"
	KPIUniqueCategories = "Unique Categories"
)

func currency(v float64) string { return fmt.Sprintf("$%.2f", v) }

// ComputeKPIs derives the fixed KPI set from the raw tables. Revenue-based
// KPIs count matched records only (inner-join semantics); order and product
// counts come from the matched set as well, so an order against an unknown
// product contributes nothing. Zero and empty aggregates are reported
// explicitly, never dropped.
func ComputeKPIs(orders []dataset.OrderRecord, products []dataset.ProductRecord) KPISet {
	joined := Join(orders, products)

	var total float64
	prods := map[string]struct{}{}
	cats := map[string]struct{}{}
	for _, j := range joined {
		total += j.Revenue
		prods[j.ProductID] = struct{}{}
		cats[j.Category] = struct{}{}
	}
	avg := 0.0
	if len(joined) > 0 {
		avg = total / float64(len(joined))
	}
	return KPISet{
		{KPITotalRevenue, currency(total)},
		{KPITotalOrders, fmt.Sprintf("%d", len(joined))},
		{KPIAverageOrder, currency(avg)},
		{KPIUniqueProducts, fmt.Sprintf("%d", len(prods))},
		{KPIUniqueCategories, fmt.Sprintf("%d", len(cats))},
	}
}
