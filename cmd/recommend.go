package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/datavista/datavista-cli/internal/dataset"
	"github.com/datavista/datavista-cli/internal/insights"
)

var (
	recOrdersPath   string
	recProductsPath string
	recProduct      string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend products in the same category within ±20% of the price",
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := dataset.LoadOrdersFile(recOrdersPath)
		if err != nil {
			return err
		}
		products, err := dataset.LoadProductsFile(recProductsPath)
		if err != nil {
			return err
		}
		names, err := insights.Recommend(recProduct, insights.Join(orders, products))
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Printf("⚠ No similar products found for %q\n", recProduct)
			return nil
		}
		sort.Strings(names)
		fmt.Printf("✓ Recommended products for %q:\n", recProduct)
		for _, n := range names {
			fmt.Printf("  - %s\n", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().StringVar(&recOrdersPath, "orders", "", "path to orders CSV")
	recommendCmd.Flags().StringVar(&recProductsPath, "products", "", "path to products CSV")
	recommendCmd.Flags().StringVar(&recProduct, "product", "", "selected product name")
	_ = recommendCmd.MarkFlagRequired("orders")
	_ = recommendCmd.MarkFlagRequired("products")
	_ = recommendCmd.MarkFlagRequired("product")
}
