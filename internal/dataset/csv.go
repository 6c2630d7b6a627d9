package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02", "2006/01/02", time.RFC3339, "02/01/2006", "01/02/2006",
	"2006-01-02 15:04:05", "2006-01-02 15:04",
}

func parseDate(s string) (time.Time, error) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// columnIndex maps lower-cased header names to their position and verifies
// the required set. The first occurrence wins when a header repeats.
func columnIndex(table string, header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, &SchemaError{Table: table, Column: col}
		}
	}
	return idx, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

// LoadOrders parses the orders table. Required columns: order_id, product_id,
// quantity, order_date, price. Extra columns are ignored.
func LoadOrders(r io.Reader) ([]OrderRecord, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Table: "orders", Column: "order_id"}
		}
		return nil, fmt.Errorf("read orders header: %w", err)
	}
	idx, err := columnIndex("orders", header, OrderColumns)
	if err != nil {
		return nil, err
	}

	var out []OrderRecord
	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read orders row %d: %w", line, err)
		}
		line++
		qty, err := strconv.Atoi(field(rec, idx["quantity"]))
		if err != nil {
			return nil, &RowError{Table: "orders", Line: line, Column: "quantity", Err: err}
		}
		if qty < 0 {
			return nil, &RowError{Table: "orders", Line: line, Column: "quantity", Err: fmt.Errorf("negative quantity %d", qty)}
		}
		date, err := parseDate(field(rec, idx["order_date"]))
		if err != nil {
			return nil, &RowError{Table: "orders", Line: line, Column: "order_date", Err: err}
		}
		price, err := strconv.ParseFloat(field(rec, idx["price"]), 64)
		if err != nil {
			return nil, &RowError{Table: "orders", Line: line, Column: "price", Err: err}
		}
		out = append(out, OrderRecord{
			OrderID:   field(rec, idx["order_id"]),
			ProductID: field(rec, idx["product_id"]),
			Quantity:  qty,
			OrderDate: date,
			UnitPrice: price,
		})
	}
	return out, nil
}

// LoadProducts parses the products table. Required columns: product_id, name,
// category, price. Extra columns are ignored.
func LoadProducts(r io.Reader) ([]ProductRecord, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Table: "products", Column: "product_id"}
		}
		return nil, fmt.Errorf("read products header: %w", err)
	}
	idx, err := columnIndex("products", header, ProductColumns)
	if err != nil {
		return nil, err
	}

	var out []ProductRecord
	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read products row %d: %w", line, err)
		}
		line++
		price, err := strconv.ParseFloat(field(rec, idx["price"]), 64)
		if err != nil {
			return nil, &RowError{Table: "products", Line: line, Column: "price", Err: err}
		}
		out = append(out, ProductRecord{
			ProductID: field(rec, idx["product_id"]),
			Name:      field(rec, idx["name"]),
			Category:  field(rec, idx["category"]),
			ListPrice: price,
		})
	}
	return out, nil
}

// LoadOrdersFile opens and parses an orders CSV from disk.
func LoadOrdersFile(path string) ([]OrderRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open orders csv: %w", err)
	}
	defer f.Close()
	return LoadOrders(f)
}

// LoadProductsFile opens and parses a products CSV from disk.
func LoadProductsFile(path string) ([]ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open products csv: %w", err)
	}
	defer f.Close()
	return LoadProducts(f)
}
