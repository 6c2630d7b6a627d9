package report

import (
	"strings"
	"testing"
	"time"

	"github.com/datavista/datavista-cli/internal/dataset"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func fixture() ([]dataset.OrderRecord, []dataset.ProductRecord) {
	products := []dataset.ProductRecord{
		{ProductID: "A", Name: "Widget", Category: "Tools", ListPrice: 10},
		{ProductID: "B", Name: "Gizmo", Category: "Tools", ListPrice: 24},
	}
	orders := []dataset.OrderRecord{
		{OrderID: "1", ProductID: "A", Quantity: 2, OrderDate: day(2024, 1, 5), UnitPrice: 10},
		{OrderID: "2", ProductID: "B", Quantity: 1, OrderDate: day(2024, 2, 6), UnitPrice: 24},
	}
	return orders, products
}

func TestBuildFanOut(t *testing.T) {
	orders, products := fixture()
	d := Build(orders, products, DefaultOptions())
	if len(d.Joined) != 2 {
		t.Fatalf("expected 2 joined rows, got %d", len(d.Joined))
	}
	if len(d.KPIs) != 5 {
		t.Fatalf("expected 5 KPIs, got %d", len(d.KPIs))
	}
	if len(d.Monthly) != 2 || len(d.Category) != 1 {
		t.Fatalf("unexpected trends: monthly=%d category=%d", len(d.Monthly), len(d.Category))
	}
	if len(d.Anomalies) != 2 {
		t.Fatalf("expected 2 daily points, got %d", len(d.Anomalies))
	}
}

func TestBuildEmptyJoin(t *testing.T) {
	orders := []dataset.OrderRecord{
		{OrderID: "1", ProductID: "missing", Quantity: 1, OrderDate: day(2024, 1, 1), UnitPrice: 1},
	}
	_, products := fixture()
	d := Build(orders, products, DefaultOptions())
	if len(d.Joined) != 0 {
		t.Fatalf("expected empty join, got %d", len(d.Joined))
	}
	// The dashboard still renders, with explicit zeros.
	md := d.Markdown()
	if !strings.Contains(md, "Total Revenue: $0.00") {
		t.Fatalf("markdown missing zero KPI:\n%s", md)
	}
}

func TestMarkdownSections(t *testing.T) {
	orders, products := fixture()
	md := Build(orders, products, DefaultOptions()).Markdown()
	for _, section := range []string{"[KPIS]", "[MONTHLY REVENUE]", "[REVENUE BY CATEGORY]", "[BEST SELLERS]", "[LOW SELLERS]", "[REVENUE ANOMALIES]"} {
		if !strings.Contains(md, section) {
			t.Fatalf("markdown missing %s:\n%s", section, md)
		}
	}
	if !strings.Contains(md, "- 2024-01: 20.00") {
		t.Fatalf("markdown missing monthly line:\n%s", md)
	}
	if !strings.Contains(md, "- Tools: 44.00") {
		t.Fatalf("markdown missing category line:\n%s", md)
	}
}
