package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iudanet/balancio/internal/models"
)

func (c *Cli) newReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Monthly reports",
	}
	cmd.AddCommand(
		requiresAuth(c.newReportsListCommand()),
		requiresAuth(c.newReportsDownloadCommand()),
	)
	return cmd
}

func (c *Cli) newReportsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List monthly reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := c.reports.Monthly(cmd.Context())
			if err != nil {
				return err
			}

			c.io.Println("=== Monthly Reports ===")
			c.io.Println()
			if len(reports) == 0 {
				c.io.Println("No reports available yet.")
				return nil
			}

			w := c.table()
			fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES\tSAVINGS\tTRANSACTIONS")
			for _, r := range reports {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", r.Month, c.money(r.TotalIncome),
					c.money(r.TotalExpenses), c.money(r.NetSavings), r.TransactionCount)
			}
			_ = w.Flush()
			return nil
		},
	}
}

func (c *Cli) newReportsDownloadCommand() *cobra.Command {
	var format, dir string

	cmd := &cobra.Command{
		Use:   "download <year> <month>",
		Short: "Download the report for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid month %q", args[1])
			}

			if format == "" {
				format = models.ReportFormatExcel
				if user := c.session.CurrentUser(cmd.Context()); user != nil && user.Settings.ReportFormat != "" {
					format = user.Settings.ReportFormat
				}
			}
			if dir == "" {
				dir = c.cfg.DownloadDir
			}

			path, err := c.reports.Download(cmd.Context(), year, month, "", format, dir)
			if err != nil {
				return err
			}
			c.io.Printf("Saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "pdf or excel (default from profile settings)")
	cmd.Flags().StringVar(&dir, "dir", "", "Target directory (default download directory)")
	return cmd
}
