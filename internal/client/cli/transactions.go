package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/balancio/internal/client/data"
	"github.com/iudanet/balancio/internal/models"
)

func (c *Cli) newTransactionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage income and expense transactions",
	}
	cmd.AddCommand(
		requiresAuth(c.newTransactionsListCommand()),
		requiresAuth(c.newTransactionsGetCommand()),
		requiresAuth(c.newTransactionsAddCommand()),
		requiresAuth(c.newTransactionsUpdateCommand()),
		requiresAuth(c.newTransactionsDeleteCommand()),
		requiresAuth(c.newTransactionsExportCommand()),
		requiresAuth(c.newTransactionsSuggestCommand()),
	)
	return cmd
}

func (c *Cli) newTransactionsListCommand() *cobra.Command {
	var typ string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := c.transactions.List(cmd.Context())
			if err != nil {
				return err
			}

			if typ != "" {
				t, err := parseType(typ)
				if err != nil {
					return err
				}
				filtered := txs[:0:0]
				for _, tx := range txs {
					if tx.Type == t {
						filtered = append(filtered, tx)
					}
				}
				txs = filtered
			}
			sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
			if limit > 0 && len(txs) > limit {
				txs = txs[:limit]
			}

			c.io.Println("=== Transactions ===")
			c.io.Println()
			if len(txs) == 0 {
				c.io.Println("No transactions found.")
				c.io.Println()
				c.io.Println("Use 'balancio transactions add' to add your first transaction.")
				return nil
			}

			c.io.Printf("Found %d transaction(s):\n\n", len(txs))
			c.printTransactions(txs)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Show only income or expense")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of transactions to show")
	return cmd
}

func (c *Cli) printTransactions(txs []models.Transaction) {
	w := c.table()
	fmt.Fprintln(w, "DATE\tTITLE\tCATEGORY\tAMOUNT\tID")
	for _, tx := range txs {
		category := tx.CategoryName
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", formatDate(tx.Date), tx.Title, category, c.signed(tx), tx.ID)
	}
	_ = w.Flush()
}

func (c *Cli) newTransactionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show transaction details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := c.transactions.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.printTransaction(tx)
			return nil
		},
	}
}

func (c *Cli) printTransaction(tx *models.Transaction) {
	c.io.Println("=== Transaction Details ===")
	c.io.Println()
	c.io.Printf("Title:    %s\n", tx.Title)
	c.io.Printf("ID:       %s\n", tx.ID)
	c.io.Printf("Type:     %s\n", tx.Type)
	c.io.Printf("Amount:   %s\n", c.signed(*tx))
	c.io.Printf("Date:     %s\n", formatDate(tx.Date))
	if tx.CategoryName != "" {
		c.io.Printf("Category: %s\n", tx.CategoryName)
	} else if tx.CategoryID != "" {
		c.io.Printf("Category: %s\n", tx.CategoryID)
	}
	if tx.Description != "" {
		c.io.Printf("Notes:    %s\n", tx.Description)
	}
}

func (c *Cli) newTransactionsAddCommand() *cobra.Command {
	var title, amount, typ, category, date, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		Long:  "Add a transaction. Missing title, amount and category are asked interactively.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			in := models.TransactionInput{Description: description}

			if in.Type, err = parseType(typ); err != nil {
				return err
			}
			if in.Title, err = c.ask(title, "Title: "); err != nil {
				return err
			}
			if amount, err = c.ask(amount, "Amount: "); err != nil {
				return err
			}
			if in.Amount, err = parseAmount(amount); err != nil {
				return err
			}
			if in.CategoryID, err = c.ask(category, "Category ID: "); err != nil {
				return err
			}
			if in.Date, err = parseDate(date, time.Now()); err != nil {
				return err
			}

			tx, err := c.transactions.Create(cmd.Context(), in)
			if err != nil {
				return err
			}

			c.io.Println()
			c.io.Println("✓ Transaction added successfully!")
			c.io.Printf("ID: %s\n", tx.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount, positive number")
	cmd.Flags().StringVar(&typ, "type", string(models.TransactionExpense), "income or expense")
	cmd.Flags().StringVar(&category, "category", "", "Category ID")
	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	return cmd
}

func (c *Cli) newTransactionsUpdateCommand() *cobra.Command {
	var title, amount, typ, category, date, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in models.TransactionUpdate
			changed := cmd.Flags().Changed

			if changed("title") {
				in.Title = &title
			}
			if changed("description") {
				in.Description = &description
			}
			if changed("category") {
				in.CategoryID = &category
			}
			if changed("amount") {
				v, err := parseAmount(amount)
				if err != nil {
					return err
				}
				in.Amount = &v
			}
			if changed("type") {
				v, err := parseType(typ)
				if err != nil {
					return err
				}
				in.Type = &v
			}
			if changed("date") {
				v, err := parseDate(date, time.Now())
				if err != nil {
					return err
				}
				in.Date = &v
			}

			tx, err := c.transactions.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}

			c.io.Println("✓ Transaction updated successfully!")
			c.io.Println()
			c.printTransaction(tx)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&amount, "amount", "", "New amount")
	cmd.Flags().StringVar(&typ, "type", "", "New type: income or expense")
	cmd.Flags().StringVar(&category, "category", "", "New category ID")
	cmd.Flags().StringVar(&date, "date", "", "New date YYYY-MM-DD")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func (c *Cli) newTransactionsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !force {
				ok, err := c.confirm(fmt.Sprintf("Delete transaction %s? [y/N]: ", id))
				if err != nil {
					return err
				}
				if !ok {
					c.io.Println("Cancelled.")
					return nil
				}
			}

			if err := c.transactions.Delete(cmd.Context(), id); err != nil {
				return err
			}
			c.io.Println("✓ Transaction deleted successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return cmd
}

func (c *Cli) newTransactionsExportCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to csv, excel or pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, ok := exportExtensions[format]
			if !ok {
				return fmt.Errorf("unknown export format %q, use csv, excel or pdf", format)
			}

			blob, err := c.transactions.Export(cmd.Context(), format)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				name := filepath.Base(blob.Filename)
				if blob.Filename == "" || name == "." || name == "/" {
					name = fmt.Sprintf("transactions-%s.%s", time.Now().Format(dateLayout), ext)
				}
				path = filepath.Join(c.cfg.DownloadDir, name)
			}
			if err := os.WriteFile(path, blob.Data, 0o600); err != nil {
				return fmt.Errorf("failed to save export: %w", err)
			}

			c.io.Println("✓ Export successful!")
			c.io.Printf("Saved %d bytes to %s\n", len(blob.Data), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", data.ExportCSV, "File format: csv, excel or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: download directory)")
	return cmd
}

var exportExtensions = map[string]string{
	data.ExportCSV:   "csv",
	data.ExportExcel: "xlsx",
	data.ExportPDF:   "pdf",
}

func (c *Cli) newTransactionsSuggestCommand() *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "suggest [query]",
		Short: "Suggest transaction titles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseType(typ)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			suggestions, err := c.transactions.Suggestions(cmd.Context(), t, query)
			if err != nil {
				return err
			}
			if len(suggestions) == 0 {
				c.io.Println("No suggestions.")
				return nil
			}
			for _, s := range suggestions {
				c.io.Println(s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", string(models.TransactionExpense), "income or expense")
	return cmd
}

// confirm задает вопрос да/нет; по умолчанию нет
func (c *Cli) confirm(prompt string) (bool, error) {
	answer, err := c.io.ReadInput(prompt)
	if err != nil {
		return false, fmt.Errorf("failed to read input: %w", err)
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
