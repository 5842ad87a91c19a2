package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func (c *Cli) newRatesCommand() *cobra.Command {
	var symbols []string

	cmd := &cobra.Command{
		Use:   "rates [base]",
		Short: "Show exchange rates for a base currency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := c.currency.Code
			if len(args) == 1 {
				base = args[0]
			}

			rates, err := c.rates.Latest(cmd.Context(), base)
			if err != nil {
				return err
			}

			wanted := make(map[string]bool, len(symbols))
			for _, s := range symbols {
				wanted[strings.ToUpper(strings.TrimSpace(s))] = true
			}
			codes := make([]string, 0, len(rates.Rates))
			for code := range rates.Rates {
				if len(wanted) == 0 || wanted[code] {
					codes = append(codes, code)
				}
			}
			sort.Strings(codes)

			c.io.Printf("=== Exchange Rates (%s) ===\n", rates.Base)
			if rates.Date != "" {
				c.io.Printf("Date: %s\n", rates.Date)
			}
			c.io.Println()
			if len(codes) == 0 {
				c.io.Println("No rates found.")
				return nil
			}

			w := c.table()
			for _, code := range codes {
				fmt.Fprintf(w, "%s\t%.4f\n", code, rates.Rates[code])
			}
			_ = w.Flush()
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&symbols, "symbols", nil, "Show only these currencies, e.g. EUR,GBP")
	return cmd
}
