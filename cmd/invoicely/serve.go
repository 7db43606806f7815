package main

import (
	"github.com/smallbiznis/invoicely/internal/clock"
	"github.com/smallbiznis/invoicely/internal/config"
	"github.com/smallbiznis/invoicely/internal/observability"
	"github.com/smallbiznis/invoicely/internal/server"
	"github.com/smallbiznis/invoicely/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the editor and invoice API over HTTP",
	Example: `  # Listen on the default address (HTTP_ADDR, :8080)
  invoicely serve

  # Keep invoices in Redis
  STORAGE_DRIVER=redis REDIS_ADDR=localhost:6379 invoicely serve`,
	Run: func(cmd *cobra.Command, args []string) {
		fx.New(
			config.Module,
			observability.Module,
			clock.Module,
			fx.Provide(newSnowflakeNode),
			storage.Module,
			server.Module,
		).Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
