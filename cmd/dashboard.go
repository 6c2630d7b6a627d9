package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datavista/datavista-cli/internal/anomaly"
	"github.com/datavista/datavista-cli/internal/dataset"
	"github.com/datavista/datavista-cli/internal/insights"
	"github.com/datavista/datavista-cli/internal/report"
)

var (
	dashOrdersPath   string
	dashProductsPath string
	dashKPIOut       string
	dashDataOut      string
	dashContam       float64
	dashSeed         int64
	dashTopN         int
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Compute KPIs, revenue trends, sellers and anomalies from two CSVs",
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := dataset.LoadOrdersFile(dashOrdersPath)
		if err != nil {
			return err
		}
		products, err := dataset.LoadProductsFile(dashProductsPath)
		if err != nil {
			return err
		}

		opt := dashboardOptions()
		if dashContam > 0 {
			opt.Anomaly.Contamination = dashContam
		}
		if cmd.Flags().Changed("seed") {
			opt.Anomaly.Seed = dashSeed
		}
		if dashTopN > 0 {
			opt.TopProducts = dashTopN
		}

		d := report.Build(orders, products, opt)
		if len(d.Joined) == 0 {
			fmt.Fprintln(os.Stderr, "⚠ Warning: no orders matched the product catalog")
		}
		fmt.Println(d.Markdown())

		if dashKPIOut != "" {
			if err := writeFileWith(dashKPIOut, func(f *os.File) error {
				return insights.WriteKPIs(f, d.KPIs)
			}); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote KPI summary to %s\n", dashKPIOut)
		}
		if dashDataOut != "" {
			if err := writeFileWith(dashDataOut, func(f *os.File) error {
				return insights.WriteJoined(f, d.Joined)
			}); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote processed data to %s\n", dashDataOut)
		}
		return nil
	},
}

func dashboardOptions() report.Options {
	opt := report.DefaultOptions()
	if cfg != nil {
		if cfg.Contamination > 0 {
			opt.Anomaly.Contamination = cfg.Contamination
		}
		opt.Anomaly.Seed = cfg.AnomalySeed
		if cfg.TopProducts > 0 {
			opt.TopProducts = cfg.TopProducts
		}
	}
	return opt
}

func writeFileWith(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashOrdersPath, "orders", "", "path to orders CSV")
	dashboardCmd.Flags().StringVar(&dashProductsPath, "products", "", "path to products CSV")
	dashboardCmd.Flags().StringVar(&dashKPIOut, "kpi-out", "", "optional path to write the KPI summary CSV")
	dashboardCmd.Flags().StringVar(&dashDataOut, "data-out", "", "optional path to write the joined/derived table CSV")
	dashboardCmd.Flags().Float64Var(&dashContam, "contamination", 0, fmt.Sprintf("anomaly contamination fraction (default %.2f)", anomaly.DefaultContamination))
	dashboardCmd.Flags().Int64Var(&dashSeed, "seed", anomaly.DefaultSeed, "random seed for anomaly detection")
	dashboardCmd.Flags().IntVar(&dashTopN, "top", 0, "number of best/worst sellers to list (default 5)")
	_ = dashboardCmd.MarkFlagRequired("orders")
	_ = dashboardCmd.MarkFlagRequired("products")
}
