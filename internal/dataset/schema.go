package dataset

import (
	"fmt"
	"time"
)

// OrderRecord is one row of the uploaded orders table. Immutable once loaded.
type OrderRecord struct {
	OrderID   string
	ProductID string
	Quantity  int
	OrderDate time.Time
	// UnitPrice is the price paid at order time.
	UnitPrice float64
}

// ProductRecord is one row of the uploaded products catalog.
type ProductRecord struct {
	ProductID string
	Name      string
	Category  string
	// ListPrice is the catalog price.
	ListPrice float64
}

// Required columns per table. Extra columns in an upload are ignored.
var (
	OrderColumns   = []string{"order_id", "product_id", "quantity", "order_date", "price"}
	ProductColumns = []string{"product_id", "name", "category", "price"}
)

// SchemaError reports a required column missing from an uploaded table.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s table: missing required column %q", e.Table, e.Column)
}

// RowError reports a value in an uploaded table that could not be parsed.
// Line is 1-based and counts the header row.
type RowError struct {
	Table  string
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s table: line %d, column %q: %v", e.Table, e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
