// ABOUTME: CLI command for the JSON HTTP API.
// ABOUTME: Serves the tracker over gin until interrupted.
package main

import (
	"github.com/harperreed/fitdiary/internal/httpapi"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON HTTP API. Every user-scoped route lives under
/api/users/:user, so one server can track several people.

EXAMPLES:

  fitdiary serve
  fitdiary serve --addr :9000
  curl localhost:8080/api/users/me/dashboard`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.GetHTTPAddr()
		if serveAddr != "" {
			addr = serveAddr
		}
		logger.Info("http api listening", "addr", addr, "backend", cfg.GetBackend())
		return httpapi.New(trk, foods, logger).Serve(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config or FITDIARY_HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
