package insights

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

// joinedHeader is the fixed column order of the processed-data export.
var joinedHeader = []string{
	"order_id", "product_id", "name", "category", "quantity",
	"order_date", "unit_price", "list_price", "revenue", "month",
}

func ffloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func parseExportDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// WriteKPIs writes the KPI summary as a two-column (KPI, Value) CSV.
func WriteKPIs(w io.Writer, kpis KPISet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"KPI", "Value"}); err != nil {
		return fmt.Errorf("write kpi header: %w", err)
	}
	for _, k := range kpis {
		if err := cw.Write([]string{k.Name, k.Value}); err != nil {
			return fmt.Errorf("write kpi row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadKPIs parses a KPI summary produced by WriteKPIs.
func ReadKPIs(r io.Reader) (KPISet, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read kpi header: %w", err)
	}
	if len(header) < 2 || header[0] != "KPI" || header[1] != "Value" {
		return nil, fmt.Errorf("unexpected kpi header %v", header)
	}
	var out KPISet
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read kpi row: %w", err)
		}
		out = append(out, KPI{Name: rec[0], Value: rec[1]})
	}
	return out, nil
}

// WriteJoined writes the full derived table. Float columns use the shortest
// exact representation so a re-parse reproduces the same values.
func WriteJoined(w io.Writer, joined []JoinedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(joinedHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, j := range joined {
		rec := []string{
			j.OrderID, j.ProductID, j.Name, j.Category,
			strconv.Itoa(j.Quantity),
			j.OrderDate.Format("2006-01-02"),
			ffloat(j.UnitPrice), ffloat(j.ListPrice), ffloat(j.Revenue),
			j.Month,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadJoined parses a processed-data export back into joined records.
func ReadJoined(r io.Reader) ([]JoinedRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(joinedHeader)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, want := range joinedHeader {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected column %q at position %d", header[i], i)
		}
	}
	var out []JoinedRecord
	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++
		qty, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("row %d quantity: %w", line, err)
		}
		date, err := parseExportDate(rec[5])
		if err != nil {
			return nil, fmt.Errorf("row %d order_date: %w", line, err)
		}
		unit, err := strconv.ParseFloat(rec[6], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d unit_price: %w", line, err)
		}
		list, err := strconv.ParseFloat(rec[7], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d list_price: %w", line, err)
		}
		rev, err := strconv.ParseFloat(rec[8], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d revenue: %w", line, err)
		}
		out = append(out, JoinedRecord{
			OrderID: rec[0], ProductID: rec[1], Name: rec[2], Category: rec[3],
			Quantity: qty, OrderDate: date,
			UnitPrice: unit, ListPrice: list, Revenue: rev,
			Month: rec[9],
		})
	}
	return out, nil
}
