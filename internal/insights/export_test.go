package insights

import (
	"bytes"
	"reflect"
	"testing"
)

func TestKPIRoundTrip(t *testing.T) {
	kpis := ComputeKPIs(sampleOrders(), sampleProducts())
	var buf bytes.Buffer
	if err := WriteKPIs(&buf, kpis); err != nil {
		t.Fatalf("WriteKPIs: %v", err)
	}
	got, err := ReadKPIs(&buf)
	if err != nil {
		t.Fatalf("ReadKPIs: %v", err)
	}
	if !reflect.DeepEqual(kpis, got) {
		t.Fatalf("round trip mismatch:\nwrote %v\nread  %v", kpis, got)
	}
}

func TestJoinedRoundTrip(t *testing.T) {
	joined := Join(sampleOrders(), sampleProducts())
	var buf bytes.Buffer
	if err := WriteJoined(&buf, joined); err != nil {
		t.Fatalf("WriteJoined: %v", err)
	}
	got, err := ReadJoined(&buf)
	if err != nil {
		t.Fatalf("ReadJoined: %v", err)
	}
	if len(got) != len(joined) {
		t.Fatalf("expected %d rows, got %d", len(joined), len(got))
	}
	for i := range joined {
		w, g := joined[i], got[i]
		if w.OrderID != g.OrderID || w.ProductID != g.ProductID || w.Name != g.Name ||
			w.Category != g.Category || w.Quantity != g.Quantity || w.Month != g.Month {
			t.Fatalf("row %d mismatch:\nwrote %+v\nread  %+v", i, w, g)
		}
		if w.UnitPrice != g.UnitPrice || w.ListPrice != g.ListPrice || w.Revenue != g.Revenue {
			t.Fatalf("row %d float mismatch:\nwrote %+v\nread  %+v", i, w, g)
		}
		if !w.OrderDate.Equal(g.OrderDate) {
			t.Fatalf("row %d date mismatch: %v vs %v", i, w.OrderDate, g.OrderDate)
		}
	}
}

func TestJoinedRoundTripFractionalPrices(t *testing.T) {
	joined := trendFixture()
	for i := range joined {
		joined[i].UnitPrice = 19.99
		joined[i].Revenue = float64(joined[i].Quantity) * 19.99
	}
	var buf bytes.Buffer
	if err := WriteJoined(&buf, joined); err != nil {
		t.Fatalf("WriteJoined: %v", err)
	}
	got, err := ReadJoined(&buf)
	if err != nil {
		t.Fatalf("ReadJoined: %v", err)
	}
	for i := range joined {
		if got[i].Revenue != joined[i].Revenue {
			t.Fatalf("row %d revenue %v != %v", i, got[i].Revenue, joined[i].Revenue)
		}
	}
}
