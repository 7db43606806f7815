package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invoicely/internal/clock"
	"github.com/smallbiznis/invoicely/internal/config"
	"github.com/smallbiznis/invoicely/internal/invoice"
	"github.com/smallbiznis/invoicely/internal/invoice/service"
	"github.com/smallbiznis/invoicely/internal/observability"
	"github.com/smallbiznis/invoicely/internal/observability/logger"
	"github.com/smallbiznis/invoicely/internal/providers/pdf"
	"github.com/smallbiznis/invoicely/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "invoicely",
	Short: "Create, preview, track and export invoices",
	Long: `invoicely keeps a local collection of invoices. It serves the editor API
over HTTP and offers offline commands to list and export saved invoices.

Storage, logging and telemetry are configured through environment variables
(see .env.example); invoice defaults come from invoicely.yml.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newSnowflakeNode(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}

// cliLogger keeps stdout for command output.
func cliLogger(cfg logger.Config) logger.Config {
	cfg.Output = "stderr"
	if cfg.Level == "" || cfg.Level == "info" {
		cfg.Level = "warn"
	}
	return cfg
}

// withService runs fn against the invoice service without the HTTP layer.
func withService(ctx context.Context, fn func(context.Context, *service.Service) error) error {
	var svc *service.Service
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		fx.Provide(newSnowflakeNode),
		storage.Module,
		pdf.Module,
		invoice.Module,
		fx.Decorate(cliLogger),
		fx.NopLogger,
		fx.Populate(&svc),
	)
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Stop(context.Background()) }()

	return fn(ctx, svc)
}
