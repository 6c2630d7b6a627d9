// Package query answers free-text questions about the uploaded data by
// sending a compact category summary plus the question to the model runtime.
package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/datavista/datavista-cli/internal/ai"
	"github.com/datavista/datavista-cli/internal/dataset"
)

// CategorySummary is one row of the summary table handed to the model:
// units ordered in a category plus how many catalog products it has.
type CategorySummary struct {
	Category      string
	TotalQuantity int
	ProductCount  int
}

// Summarize aggregates total quantity ordered per category (orders joined to
// products on product_id) and distinct product count per category (products
// table alone). The two aggregates merge with an inner join on category, so
// a category appears only when it has both catalog products and at least one
// matched order. Sorted by quantity descending, category name as tiebreak.
func Summarize(orders []dataset.OrderRecord, products []dataset.ProductRecord) []CategorySummary {
	catByProduct := make(map[string]string, len(products))
	counts := map[string]int{}
	for _, p := range products {
		if _, ok := catByProduct[p.ProductID]; !ok {
			catByProduct[p.ProductID] = p.Category
		}
		counts[p.Category]++
	}
	qty := map[string]int{}
	for _, o := range orders {
		cat, ok := catByProduct[o.ProductID]
		if !ok {
			continue
		}
		qty[cat] += o.Quantity
	}
	out := make([]CategorySummary, 0, len(qty))
	for cat, q := range qty {
		out = append(out, CategorySummary{Category: cat, TotalQuantity: q, ProductCount: counts[cat]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQuantity == out[j].TotalQuantity {
			return out[i].Category < out[j].Category
		}
		return out[i].TotalQuantity > out[j].TotalQuantity
	})
	return out
}

// Markdown renders the summary as a compact pipe table.
func Markdown(rows []CategorySummary) string {
	var b strings.Builder
	b.WriteString("| Category | Total Quantity Ordered | Product Count |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %d | %d |\n", safeCell(r.Category), r.TotalQuantity, r.ProductCount)
	}
	return b.String()
}

func safeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}

const promptTemplate = `You are a data analyst AI.

Below is the actual data summary of product categories with total quantity ordered and product count:

%s

Now answer this user question based on the data above in clear text and, if possible, highlight top/bottom categories:

Question: %s
`

// BuildPrompt embeds the summary table and question into the fixed template.
func BuildPrompt(table, question string) string {
	return fmt.Sprintf(promptTemplate, table, question)
}

// Answerer forwards questions to a model runtime.
type Answerer struct {
	Runtime     ai.Runtime
	Model       string
	MaxTokens   int
	Temperature float64
}

// Answer builds the summary for the raw tables and asks the model. Service
// failures come back as typed errors from the ai package; callers render
// them as degraded text without aborting the rest of the dashboard.
func (a *Answerer) Answer(ctx context.Context, question string, orders []dataset.OrderRecord, products []dataset.ProductRecord) (string, error) {
	table := Markdown(Summarize(orders, products))
	resp, err := a.Runtime.Generate(ctx, ai.GenerateRequest{
		Model:       a.Model,
		Messages:    []ai.Message{{Role: "user", Content: BuildPrompt(table, question)}},
		MaxTokens:   a.MaxTokens,
		Temperature: a.Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
