// Package report assembles the full dashboard from the two uploaded tables
// and renders it as markdown for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/datavista/datavista-cli/internal/anomaly"
	"github.com/datavista/datavista-cli/internal/dataset"
	"github.com/datavista/datavista-cli/internal/insights"
)

// Options tunes the dashboard computation.
type Options struct {
	Anomaly     anomaly.Options
	TopProducts int
}

// DefaultOptions returns the dashboard defaults.
func DefaultOptions() Options {
	return Options{Anomaly: anomaly.DefaultOptions(), TopProducts: 5}
}

// Dashboard is one full computation over the uploaded tables. Every field is
// derived fresh per invocation; nothing is cached between runs.
type Dashboard struct {
	Joined    []insights.JoinedRecord
	KPIs      insights.KPISet
	Monthly   []insights.MonthRevenue
	Category  []insights.CategoryRevenue
	Top       []insights.ProductSales
	Bottom    []insights.ProductSales
	Anomalies []anomaly.Point
}

// Build runs the fan-out: join once, then KPIs, trends, sellers and anomaly
// detection independently off the joined set. A zero-row join is valid and
// produces an empty-but-rendered dashboard.
func Build(orders []dataset.OrderRecord, products []dataset.ProductRecord, opt Options) *Dashboard {
	joined := insights.Join(orders, products)
	return &Dashboard{
		Joined:    joined,
		KPIs:      insights.ComputeKPIs(orders, products),
		Monthly:   insights.MonthlyRevenue(joined),
		Category:  insights.CategoryRevenueSeries(joined),
		Top:       insights.TopProducts(joined, opt.TopProducts),
		Bottom:    insights.BottomProducts(joined, opt.TopProducts),
		Anomalies: anomaly.Detect(joined, opt.Anomaly),
	}
}

// Markdown renders the dashboard sections.
func (d *Dashboard) Markdown() string {
	var b strings.Builder
	b.WriteString("[KPIS]\n")
	for _, k := range d.KPIs {
		fmt.Fprintf(&b, "- %s: %s\n", k.Name, k.Value)
	}

	b.WriteString("\n[MONTHLY REVENUE]\n")
	for _, m := range d.Monthly {
		fmt.Fprintf(&b, "- %s: %.2f\n", m.Month, m.Revenue)
	}

	b.WriteString("\n[REVENUE BY CATEGORY]\n")
	for _, c := range d.Category {
		fmt.Fprintf(&b, "- %s: %.2f\n", c.Category, c.Revenue)
	}

	if len(d.Top) > 0 {
		b.WriteString("\n[BEST SELLERS]\n")
		for _, p := range d.Top {
			fmt.Fprintf(&b, "- %s (sold %d)\n", p.Name, p.Quantity)
		}
		b.WriteString("\n[LOW SELLERS]\n")
		for _, p := range d.Bottom {
			fmt.Fprintf(&b, "- %s (sold %d)\n", p.Name, p.Quantity)
		}
	}

	b.WriteString("\n[REVENUE ANOMALIES]\n")
	flagged := 0
	for _, p := range d.Anomalies {
		if p.IsAnomaly {
			flagged++
			fmt.Fprintf(&b, "- %s: %.2f\n", p.Date.Format("2006-01-02"), p.Revenue)
		}
	}
	if flagged == 0 {
		b.WriteString("- none detected\n")
	}
	return b.String()
}
