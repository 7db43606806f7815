package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smallbiznis/invoicely/internal/invoice/service"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <invoice-id>",
	Short: "Write an invoice as PDF or HTML",
	Example: `  # PDF into the current directory
  invoicely export 1718000000000

  # Printable HTML into ./out
  invoicely export 1718000000000 --format print --out ./out`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		dir, _ := cmd.Flags().GetString("out")

		return withService(cmd.Context(), func(ctx context.Context, svc *service.Service) error {
			out, err := svc.Export(ctx, args[0], formatName)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(dir, out.Filename)
			if err := os.WriteFile(path, out.Body, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("format", service.FormatPDF, "Export format: pdf, html or print")
	exportCmd.Flags().String("out", ".", "Directory to write into")
}
