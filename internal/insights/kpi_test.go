package insights

import (
	"testing"

	"github.com/datavista/datavista-cli/internal/dataset"
)

func TestComputeKPIs(t *testing.T) {
	kpis := ComputeKPIs(sampleOrders(), sampleProducts())
	if len(kpis) != 5 {
		t.Fatalf("expected 5 KPIs, got %d", len(kpis))
	}
	// 2*10 + 1*24 = 44; the unmatched order is excluded.
	if v, _ := kpis.Get(KPITotalRevenue); v != "$44.00" {
		t.Fatalf("total revenue = %q", v)
	}
	if v, _ := kpis.Get(KPITotalOrders); v != "2" {
		t.Fatalf("total orders = %q", v)
	}
	if v, _ := kpis.Get(KPIAverageOrder); v != "$22.00" {
		t.Fatalf("average order value = %q", v)
	}
	if v, _ := kpis.Get(KPIUniqueProducts); v != "2" {
		t.Fatalf("unique products = %q", v)
	}
	if v, _ := kpis.Get(KPIUniqueCategories); v != "1" {
		t.Fatalf("unique categories = %q", v)
	}
}

func TestComputeKPIsMatchesJoinTotal(t *testing.T) {
	orders, products := sampleOrders(), sampleProducts()
	var total float64
	for _, j := range Join(orders, products) {
		total += j.Revenue
	}
	kpis := ComputeKPIs(orders, products)
	if v, _ := kpis.Get(KPITotalRevenue); v != "$44.00" || total != 44 {
		t.Fatalf("KPI %q does not match join total %v", v, total)
	}
}

func TestComputeKPIsEmptyJoin(t *testing.T) {
	orders := []dataset.OrderRecord{
		{OrderID: "1", ProductID: "missing", Quantity: 1, OrderDate: day(2024, 1, 1), UnitPrice: 5},
	}
	kpis := ComputeKPIs(orders, sampleProducts())
	// Zero aggregates are reported explicitly, never dropped.
	if len(kpis) != 5 {
		t.Fatalf("expected 5 KPIs on empty join, got %d", len(kpis))
	}
	if v, _ := kpis.Get(KPITotalRevenue); v != "$0.00" {
		t.Fatalf("total revenue = %q", v)
	}
	if v, _ := kpis.Get(KPITotalOrders); v != "0" {
		t.Fatalf("total orders = %q", v)
	}
	if v, _ := kpis.Get(KPIAverageOrder); v != "$0.00" {
		t.Fatalf("average order value = %q", v)
	}
}

func TestKPISetOrderFixed(t *testing.T) {
	kpis := ComputeKPIs(nil, nil)
	want := []string{KPITotalRevenue, KPITotalOrders, KPIAverageOrder, KPIUniqueProducts, KPIUniqueCategories}
	for i, name := range want {
		if kpis[i].Name != name {
			t.Fatalf("KPI %d = %q, want %q", i, kpis[i].Name, name)
		}
	}
}
