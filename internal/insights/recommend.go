package insights

import "fmt"

// Default price band for comparable products: ±20% of the catalog price.
const (
	PriceBandLow  = 0.8
	PriceBandHigh = 1.2
)

// NotFoundError reports a selected product name absent from the joined table.
// Distinct from an empty recommendation set, which means the product exists
// but has no peers.
type NotFoundError struct {
	Product string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %q not found in joined data", e.Product)
}

// Recommend returns the distinct product names sharing the selected product's
// category with a catalog price inside the inclusive ±20% band. The selected
// product itself is not excluded. The first joined record matching the name
// supplies category and price. Result order follows first appearance in the
// joined table; callers may sort for display.
func Recommend(selected string, joined []JoinedRecord) ([]string, error) {
	var ref *JoinedRecord
	for i := range joined {
		if joined[i].Name == selected {
			ref = &joined[i]
			break
		}
	}
	if ref == nil {
		return nil, &NotFoundError{Product: selected}
	}
	lo := ref.ListPrice * PriceBandLow
	hi := ref.ListPrice * PriceBandHigh

	seen := map[string]struct{}{}
	out := []string{}
	for _, j := range joined {
		if j.Category != ref.Category || j.ListPrice < lo || j.ListPrice > hi {
			continue
		}
		if _, ok := seen[j.Name]; ok {
			continue
		}
		seen[j.Name] = struct{}{}
		out = append(out, j.Name)
	}
	return out, nil
}
