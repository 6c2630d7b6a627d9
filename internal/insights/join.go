// Package insights implements the analytical pipeline over the two uploaded
// tables: the orders/products join and the aggregations derived from it.
package insights

import (
	"time"

	"github.com/datavista/datavista-cli/internal/dataset"
)

// JoinedRecord is the inner join of one order with its product, plus the
// derived revenue and calendar-month columns.
type JoinedRecord struct {
	OrderID   string
	ProductID string
	Name      string
	Category  string
	Quantity  int
	OrderDate time.Time
	// UnitPrice is the price paid on the order; ListPrice the catalog price.
	UnitPrice float64
	ListPrice float64
	// Revenue = Quantity * UnitPrice, exact until display.
	Revenue float64
	// Month is the calendar-month truncation of OrderDate, "2006-01".
	Month string
}

// Join inner-joins orders and products on product_id. Orders referencing an
// unknown product and products with no orders are dropped, not errors. The
// result preserves order-table row order.
func Join(orders []dataset.OrderRecord, products []dataset.ProductRecord) []JoinedRecord {
	byID := make(map[string]dataset.ProductRecord, len(products))
	for _, p := range products {
		if _, ok := byID[p.ProductID]; !ok {
			byID[p.ProductID] = p
		}
	}
	out := make([]JoinedRecord, 0, len(orders))
	for _, o := range orders {
		p, ok := byID[o.ProductID]
		if !ok {
			continue
		}
		out = append(out, JoinedRecord{
			OrderID:   o.OrderID,
			ProductID: o.ProductID,
			Name:      p.Name,
			Category:  p.Category,
			Quantity:  o.Quantity,
			OrderDate: o.OrderDate,
			UnitPrice: o.UnitPrice,
			ListPrice: p.ListPrice,
			Revenue:   float64(o.Quantity) * o.UnitPrice,
			Month:     o.OrderDate.Format("2006-01"),
		})
	}
	return out
}
