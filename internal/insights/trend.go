package insights

import "sort"

// MonthRevenue is one point of the monthly revenue series.
type MonthRevenue struct {
	Month   string
	Revenue float64
}

// CategoryRevenue is total revenue for one product category.
type CategoryRevenue struct {
	Category string
	Revenue  float64
}

// ProductSales is total units sold for one product name.
type ProductSales struct {
	Name     string
	Quantity int
}

// MonthlyRevenue sums revenue per calendar month, ascending by month.
// Months with no matched records are omitted, not zero-filled.
func MonthlyRevenue(joined []JoinedRecord) []MonthRevenue {
	sums := map[string]float64{}
	for _, j := range joined {
		sums[j.Month] += j.Revenue
	}
	out := make([]MonthRevenue, 0, len(sums))
	for m, r := range sums {
		out = append(out, MonthRevenue{Month: m, Revenue: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CategoryRevenueSeries sums revenue per category, descending by revenue
// with category name as tiebreak.
func CategoryRevenueSeries(joined []JoinedRecord) []CategoryRevenue {
	sums := map[string]float64{}
	for _, j := range joined {
		sums[j.Category] += j.Revenue
	}
	out := make([]CategoryRevenue, 0, len(sums))
	for c, r := range sums {
		out = append(out, CategoryRevenue{Category: c, Revenue: r})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue == out[j].Revenue {
			return out[i].Category < out[j].Category
		}
		return out[i].Revenue > out[j].Revenue
	})
	return out
}

func salesByName(joined []JoinedRecord) []ProductSales {
	sums := map[string]int{}
	for _, j := range joined {
		sums[j.Name] += j.Quantity
	}
	out := make([]ProductSales, 0, len(sums))
	for n, q := range sums {
		out = append(out, ProductSales{Name: n, Quantity: q})
	}
	return out
}

// TopProducts returns the n best-selling products by units sold, descending.
// Ties break by name so output is stable.
func TopProducts(joined []JoinedRecord, n int) []ProductSales {
	out := salesByName(joined)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity == out[j].Quantity {
			return out[i].Name < out[j].Name
		}
		return out[i].Quantity > out[j].Quantity
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// BottomProducts returns the n worst-selling products by units sold, ascending.
func BottomProducts(joined []JoinedRecord, n int) []ProductSales {
	out := salesByName(joined)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity == out[j].Quantity {
			return out[i].Name < out[j].Name
		}
		return out[i].Quantity < out[j].Quantity
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
