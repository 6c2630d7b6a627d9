package cmd

import (
	"github.com/spf13/cobra"

	"github.com/datavista/datavista-cli/internal/logging"
	"github.com/datavista/datavista-cli/internal/query"
	"github.com/datavista/datavista-cli/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard pipeline as an HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := mustConfig()
		if err != nil {
			return err
		}
		addr := c.Listen
		if cmd.Flags().Changed("listen") && serveListen != "" {
			addr = serveListen
		}
		level := c.LogLevel
		if debug {
			level = "debug"
		}
		log, err := logging.New(level, c.LogFormat)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		answerer := &query.Answerer{
			Runtime:     newRuntime(c),
			Model:       c.Model,
			MaxTokens:   c.MaxTokens,
			Temperature: c.Temperature,
		}
		srv := server.New(log, dashboardOptions(), answerer)
		return srv.ListenAndServe(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default :8080)")
}
