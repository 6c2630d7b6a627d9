package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datavista/datavista-cli/internal/dataset"
	"github.com/datavista/datavista-cli/internal/query"
)

var (
	askOrdersPath   string
	askProductsPath string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the local model a question about the uploaded data",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := mustConfig()
		if err != nil {
			return err
		}
		orders, err := dataset.LoadOrdersFile(askOrdersPath)
		if err != nil {
			return err
		}
		products, err := dataset.LoadProductsFile(askProductsPath)
		if err != nil {
			return err
		}

		question := strings.Join(args, " ")
		answerer := &query.Answerer{
			Runtime:     newRuntime(c),
			Model:       c.Model,
			MaxTokens:   c.MaxTokens,
			Temperature: c.Temperature,
		}
		answer, err := answerer.Answer(context.Background(), question, orders, products)
		if err != nil {
			// The query feature degrades to a message; the data itself is fine.
			fmt.Printf("⚠ Query unavailable: %v\n", err)
			return nil
		}
		fmt.Println(answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askOrdersPath, "orders", "", "path to orders CSV")
	askCmd.Flags().StringVar(&askProductsPath, "products", "", "path to products CSV")
	_ = askCmd.MarkFlagRequired("orders")
	_ = askCmd.MarkFlagRequired("products")
}
