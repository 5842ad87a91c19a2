package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/iudanet/balancio/internal/finance"
)

func (c *Cli) newDashboardCommand() *cobra.Command {
	return requiresAuth(&cobra.Command{
		Use:   "dashboard",
		Short: "Show the monthly summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := c.dashboard.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			st := snap.Statistics
			c.io.Println("=== Dashboard ===")
			c.io.Println()
			c.io.Println("This month:")
			c.io.Printf("  Income:   %s (%s%.1f%%)\n", c.money(st.CurrentMonth.Income),
				changeArrow(st.Changes.IncomeDirection), math.Abs(st.Changes.IncomePercentage))
			c.io.Printf("  Expenses: %s (%s%.1f%%)\n", c.money(st.CurrentMonth.Expenses),
				changeArrow(st.Changes.ExpenseDirection), math.Abs(st.Changes.ExpensePercentage))
			c.io.Printf("  Balance:  %s\n", c.money(st.CurrentMonth.Balance))
			c.io.Printf("  Transactions: %d (last month %d)\n",
				st.TransactionCounts.CurrentMonth, st.TransactionCounts.LastMonth)

			c.io.Println()
			c.io.Printf("All time (%d transactions):\n", snap.Transactions)
			c.io.Printf("  Income:   %s\n", c.money(snap.Totals.Income))
			c.io.Printf("  Expenses: %s\n", c.money(snap.Totals.Expenses))
			c.io.Printf("  Balance:  %s\n", c.money(snap.Totals.Balance))

			if snap.Overview != nil {
				c.io.Println()
				c.io.Println(finance.BudgetStatusMessage(*snap.Overview, c.currency))
			}

			if len(snap.ByCategory) > 0 {
				c.io.Println()
				c.io.Println("Expenses by category:")
				w := c.table()
				for _, ct := range snap.ByCategory {
					fmt.Fprintf(w, "  %s\t%s\t%d%%\n", ct.Name, c.money(ct.Amount), ct.Percentage)
				}
				_ = w.Flush()
			}

			if len(snap.Monthly) > 0 {
				c.io.Println()
				c.io.Println("Last months:")
				w := c.table()
				fmt.Fprintln(w, "  MONTH\tINCOME\tEXPENSES")
				for _, m := range snap.Monthly {
					fmt.Fprintf(w, "  %s %d\t%s\t%s\n", m.Label, m.Year, c.money(m.Income), c.money(m.Expenses))
				}
				_ = w.Flush()
			}

			if len(snap.Recent) > 0 {
				c.io.Println()
				c.io.Println("Recent transactions:")
				c.printTransactions(snap.Recent)
			}
			return nil
		},
	})
}
