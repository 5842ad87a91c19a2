package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/balancio/internal/client/data"
	"github.com/iudanet/balancio/internal/finance"
	"github.com/iudanet/balancio/internal/models"
)

func (c *Cli) newBudgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Monthly budget and spending alerts",
	}
	cmd.AddCommand(
		requiresAuth(c.newBudgetShowCommand()),
		requiresAuth(c.newBudgetSetCommand()),
		requiresAuth(c.newBudgetOverviewCommand()),
		requiresAuth(c.newBudgetAlertsCommand()),
	)
	return cmd
}

func (c *Cli) newBudgetShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the monthly budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			budget, err := c.budget.Get(cmd.Context())
			if errors.Is(err, data.ErrBudgetNotSet) {
				c.io.Println("No monthly budget set. Use 'balancio budget set --amount <value>' to set one.")
				return nil
			}
			if err != nil {
				return err
			}
			c.printBudget(budget)
			return nil
		},
	}
}

func (c *Cli) printBudget(b *models.MonthlyBudget) {
	cur := finance.CurrencyForCode(b.Currency)
	t := b.Thresholds.WithDefaults()

	c.io.Println("=== Monthly Budget ===")
	c.io.Println()
	c.io.Printf("Amount:             %s\n", cur.Format(b.Amount))
	c.io.Printf("Currency:           %s\n", cur.Code)
	c.io.Printf("Warning threshold:  %.0f%%\n", t.Warning)
	c.io.Printf("Critical threshold: %.0f%%\n", t.Critical)
	if !b.LastAlertSent.Warning.IsZero() {
		c.io.Printf("Last warning:       %s\n", b.LastAlertSent.Warning.Format(time.RFC3339))
	}
	if !b.LastAlertSent.Critical.IsZero() {
		c.io.Printf("Last critical:      %s\n", b.LastAlertSent.Critical.Format(time.RFC3339))
	}
}

func (c *Cli) newBudgetSetCommand() *cobra.Command {
	var amount float64
	var currency string
	var warning, critical float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the monthly budget; amount 0 removes it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := models.BudgetInput{Amount: amount, Currency: currency}

			flags := cmd.Flags()
			if flags.Changed("warning") || flags.Changed("critical") {
				t := models.AlertThresholds{Warning: warning, Critical: critical}.WithDefaults()
				in.Thresholds = &t
			}

			budget, err := c.budget.Update(cmd.Context(), in)
			if errors.Is(err, data.ErrBudgetNotSet) {
				c.io.Println("✓ Monthly budget removed")
				return nil
			}
			if err != nil {
				return err
			}

			c.io.Println("✓ Budget saved successfully!")
			c.io.Println()
			c.printBudget(budget)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Monthly budget amount")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO currency code, e.g. EUR")
	cmd.Flags().Float64Var(&warning, "warning", models.DefaultWarningThreshold, "Warning threshold, percent")
	cmd.Flags().Float64Var(&critical, "critical", models.DefaultCriticalThreshold, "Critical threshold, percent")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func (c *Cli) newBudgetOverviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show spending against the budget for the current month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := c.budget.Overview(cmd.Context())
			if err != nil {
				return err
			}
			c.printOverview(o)
			return nil
		},
	}
}

func (c *Cli) printOverview(o *models.BudgetOverview) {
	c.io.Println("=== Budget Overview ===")
	c.io.Println()

	if !o.BudgetSet {
		c.io.Println(finance.BudgetStatusMessage(*o, c.currency))
		return
	}

	progress := finance.BudgetProgress(o.Spent, o.Budget)
	c.io.Printf("Budget:    %s\n", c.money(o.Budget))
	c.io.Printf("Spent:     %s\n", c.money(o.Spent))
	c.io.Printf("Remaining: %s\n", c.money(o.Remaining))
	c.io.Printf("Used:      %s %.0f%%\n", progressBar(progress, 20), o.PercentageUsed)
	c.io.Println()
	c.io.Println(finance.BudgetStatusMessage(*o, c.currency))

	if len(o.CategoryBreakdown) == 0 {
		return
	}
	c.io.Println()
	c.io.Println("Spending by category:")
	w := c.table()
	for _, share := range o.CategoryBreakdown {
		fmt.Fprintf(w, "  %s\t%s\t%.0f%%\t%d tx\n", share.CategoryName, c.money(share.Amount), share.Percentage, share.TransactionCount)
	}
	_ = w.Flush()
}

func (c *Cli) newBudgetAlertsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Show budget alert settings and status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.budget.AlertSummary(cmd.Context())
			if err != nil {
				return err
			}

			t := s.Thresholds.WithDefaults()
			c.io.Println("=== Budget Alerts ===")
			c.io.Println()
			c.io.Printf("Budget set:      %s\n", yesNo(s.BudgetSet))
			c.io.Printf("Alerts enabled:  %s\n", yesNo(s.AlertsEnabled))
			c.io.Printf("Current status:  %s\n", s.CurrentStatus)
			c.io.Printf("Used:            %.0f%%\n", s.PercentageUsed)
			c.io.Printf("Thresholds:      warning %.0f%%, critical %.0f%%\n", t.Warning, t.Critical)
			if !s.LastAlerts.Warning.IsZero() {
				c.io.Printf("Last warning:    %s\n", s.LastAlerts.Warning.Format(time.RFC3339))
			}
			if !s.LastAlerts.Critical.IsZero() {
				c.io.Printf("Last critical:   %s\n", s.LastAlerts.Critical.Format(time.RFC3339))
			}
			if s.ShouldSendAlert {
				c.io.Println()
				c.io.Println("⚠️  An alert is due for the current spending level.")
			}
			return nil
		},
	}
}
