package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/datavista/datavista-cli/internal/ai"
	cfgpkg "github.com/datavista/datavista-cli/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Runtime overrides (take precedence over config if set)
	flagOllamaHost     string
	flagModel          string
	flagTimeoutSec     int
	flagRetryMax       int
	flagRetryBaseDelay int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "datavista",
	Short: "DataVista CLI: KPIs, trends, anomalies and Q&A over orders/products CSVs",
	Long: `DataVista joins an orders CSV with a products CSV and computes the
business dashboard: KPIs, monthly and per-category revenue, best and worst
sellers, revenue anomaly detection, product recommendations, and natural
language questions answered by a locally hosted model.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.datavista/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagOllamaHost, "host", "", "Ollama host (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "model name (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTimeoutSec, "timeout", 0, "model HTTP timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMax, "retry-max", 0, "max retry attempts on transient failures (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryBaseDelay, "retry-base-ms", 0, "base retry backoff in ms (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("host") && flagOllamaHost != "" {
		cfg.OllamaHost = flagOllamaHost
	}
	if f.Changed("model") && flagModel != "" {
		cfg.Model = flagModel
	}
	if f.Changed("timeout") && flagTimeoutSec > 0 {
		cfg.OllamaTimeoutSec = flagTimeoutSec
	}
	if f.Changed("retry-max") && flagRetryMax > 0 {
		cfg.RetryMaxAttempts = flagRetryMax
	}
	if f.Changed("retry-base-ms") && flagRetryBaseDelay > 0 {
		cfg.RetryBaseDelayMs = flagRetryBaseDelay
	}
}

// mustConfig returns the loaded config or defaults when loading failed.
func mustConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	return cfgpkg.Load(cfgFile)
}

// newRuntime builds the Ollama runtime from config.
func newRuntime(c *cfgpkg.Global) *ai.OllamaClient {
	return ai.NewOllamaClient(
		c.OllamaHost,
		time.Duration(c.OllamaTimeoutSec)*time.Second,
		c.RetryMaxAttempts,
		time.Duration(c.RetryBaseDelayMs)*time.Millisecond,
		time.Duration(c.RetryMaxDelayMs)*time.Millisecond,
	)
}
