package insights

import (
	"errors"
	"testing"

	"github.com/datavista/datavista-cli/internal/dataset"
)

func recommendFixture() []JoinedRecord {
	products := []dataset.ProductRecord{
		{ProductID: "A", Name: "Widget", Category: "Tools", ListPrice: 100},
		{ProductID: "B", Name: "Gizmo", Category: "Tools", ListPrice: 80},   // exactly 0.8x, inclusive
		{ProductID: "C", Name: "Gadget", Category: "Tools", ListPrice: 120}, // exactly 1.2x, inclusive
		{ProductID: "D", Name: "Doohickey", Category: "Tools", ListPrice: 121},
		{ProductID: "E", Name: "Doodad", Category: "Toys", ListPrice: 100},
	}
	orders := make([]dataset.OrderRecord, 0, len(products))
	for i, p := range products {
		orders = append(orders, dataset.OrderRecord{
			OrderID: string(rune('1' + i)), ProductID: p.ProductID,
			Quantity: 1, OrderDate: day(2024, 1, 1+i), UnitPrice: p.ListPrice,
		})
	}
	return Join(orders, products)
}

func TestRecommendPriceBandInclusive(t *testing.T) {
	got, err := Recommend("Widget", recommendFixture())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	want := map[string]bool{"Widget": true, "Gizmo": true, "Gadget": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %v", len(want), got)
	}
	for _, n := range got {
		if !want[n] {
			t.Fatalf("unexpected recommendation %q in %v", n, got)
		}
	}
}

func TestRecommendIncludesSelectedProduct(t *testing.T) {
	got, err := Recommend("Widget", recommendFixture())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	found := false
	for _, n := range got {
		if n == "Widget" {
			found = true
		}
	}
	if !found {
		t.Fatalf("selected product excluded from %v", got)
	}
}

func TestRecommendCategoryFilter(t *testing.T) {
	got, err := Recommend("Widget", recommendFixture())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, n := range got {
		if n == "Doodad" {
			t.Fatalf("cross-category product recommended: %v", got)
		}
	}
}

func TestRecommendNotFound(t *testing.T) {
	_, err := Recommend("Unobtainium", recommendFixture())
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Product != "Unobtainium" {
		t.Fatalf("unexpected error detail: %+v", nf)
	}
}

func TestRecommendNoPeersIsEmptyNotError(t *testing.T) {
	products := []dataset.ProductRecord{
		{ProductID: "A", Name: "Widget", Category: "Tools", ListPrice: 100},
		{ProductID: "B", Name: "Gizmo", Category: "Tools", ListPrice: 10},
	}
	orders := []dataset.OrderRecord{
		{OrderID: "1", ProductID: "A", Quantity: 1, OrderDate: day(2024, 1, 1), UnitPrice: 100},
		{OrderID: "2", ProductID: "B", Quantity: 1, OrderDate: day(2024, 1, 2), UnitPrice: 10},
	}
	got, err := Recommend("Widget", Join(orders, products))
	if err != nil {
		t.Fatalf("expected no error for present product, got %v", err)
	}
	// Only the selected product itself falls inside its own band.
	if len(got) != 1 || got[0] != "Widget" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestRecommendDeduplicatesNames(t *testing.T) {
	joined := recommendFixture()
	// Same product ordered twice must not appear twice.
	joined = append(joined, joined[0])
	got, err := Recommend("Widget", joined)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	seen := map[string]int{}
	for _, n := range got {
		seen[n]++
		if seen[n] > 1 {
			t.Fatalf("duplicate name %q in %v", n, got)
		}
	}
}
