package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/smallbiznis/invoicely/internal/invoice/format"
	"github.com/smallbiznis/invoicely/internal/invoice/service"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved invoices, pending first",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return withService(cmd.Context(), func(ctx context.Context, svc *service.Service) error {
			grouped := svc.ListGrouped(ctx)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(grouped)
			}
			return printGrouped(cmd.OutOrStdout(), grouped)
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("json", false, "Print the grouped list as JSON")
}

func printGrouped(out io.Writer, g service.Grouped) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tCLIENT\tSTATUS\tDATE\tTOTAL")
	for _, e := range g.Pending {
		fmt.Fprintf(w, "%d\t%s\t%s\tpending\tdue %s\t%s\n",
			e.ID, e.InvoiceNumber, e.ClientName, orDash(domain.Deref(e.DueDate)),
			format.FormatCurrency(e.Totals.Total, e.CurrencySymbol))
	}
	for _, e := range g.Paid {
		fmt.Fprintf(w, "%d\t%s\t%s\tpaid\tpaid %s\t%s\n",
			e.ID, e.InvoiceNumber, e.ClientName, orDash(domain.Deref(e.PaidDate)),
			format.FormatCurrency(e.Totals.Total, e.CurrencySymbol))
	}
	fmt.Fprintf(w, "\n%d pending, %d paid\n", g.Counts.Pending, g.Counts.Paid)
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
