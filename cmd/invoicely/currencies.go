package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/smallbiznis/invoicely/internal/currency"
	"github.com/spf13/cobra"
)

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "Print the supported currencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tSYMBOL\tNAME")
		for _, c := range currency.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Code, c.Symbol, c.Name)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(currenciesCmd)
}
