package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/balancio/internal/models"
)

func (c *Cli) newCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage transaction categories",
	}
	cmd.AddCommand(
		requiresAuth(c.newCategoriesListCommand()),
		requiresAuth(c.newCategoriesGetCommand()),
		requiresAuth(c.newCategoriesAddCommand()),
		requiresAuth(c.newCategoriesUpdateCommand()),
		requiresAuth(c.newCategoriesDeleteCommand()),
	)
	return cmd
}

func (c *Cli) newCategoriesListCommand() *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := c.categories.List(cmd.Context())
			if err != nil {
				return err
			}

			if typ != "" {
				t, err := parseType(typ)
				if err != nil {
					return err
				}
				filtered := cats[:0:0]
				for _, cat := range cats {
					if cat.Type == t {
						filtered = append(filtered, cat)
					}
				}
				cats = filtered
			}

			c.io.Println("=== Categories ===")
			c.io.Println()
			if len(cats) == 0 {
				c.io.Println("No categories found.")
				c.io.Println()
				c.io.Println("Use 'balancio categories add' to create one.")
				return nil
			}

			w := c.table()
			fmt.Fprintln(w, "NAME\tTYPE\tCOLOR\tICON\tID")
			for _, cat := range cats {
				color := cat.Color
				if color == "" {
					color = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", cat.Name, cat.Type, color, cat.Icon, cat.ID)
			}
			_ = w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Show only income or expense categories")
	return cmd
}

func (c *Cli) newCategoriesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show category details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.categories.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c.printCategory(cat)
			return nil
		},
	}
}

func (c *Cli) printCategory(cat *models.Category) {
	c.io.Println("=== Category Details ===")
	c.io.Println()
	c.io.Printf("Name:  %s\n", cat.Name)
	c.io.Printf("ID:    %s\n", cat.ID)
	c.io.Printf("Type:  %s\n", cat.Type)
	c.io.Printf("Icon:  %s\n", cat.Icon)
	if cat.Color != "" {
		c.io.Printf("Color: %s\n", cat.Color)
	}
}

func (c *Cli) newCategoriesAddCommand() *cobra.Command {
	var name, typ, color, icon string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			in := models.CategoryInput{Color: color, Icon: icon}

			if in.Name, err = c.ask(name, "Name: "); err != nil {
				return err
			}
			if in.Type, err = parseType(typ); err != nil {
				return err
			}

			cat, err := c.categories.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			c.io.Println("✓ Category created successfully!")
			c.io.Printf("ID: %s\n", cat.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name")
	cmd.Flags().StringVar(&typ, "type", string(models.TransactionExpense), "income or expense")
	cmd.Flags().StringVar(&color, "color", "", "Hex color, e.g. #FF5722")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon name")
	return cmd
}

func (c *Cli) newCategoriesUpdateCommand() *cobra.Command {
	var in models.CategoryUpdate
	var typ string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("type") {
				t, err := parseType(typ)
				if err != nil {
					return err
				}
				in.Type = t
			}

			cat, err := c.categories.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			c.io.Println("✓ Category updated successfully!")
			c.io.Println()
			c.printCategory(cat)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "New name")
	cmd.Flags().StringVar(&typ, "type", "", "New type: income or expense")
	cmd.Flags().StringVar(&in.Color, "color", "", "New hex color")
	cmd.Flags().StringVar(&in.Icon, "icon", "", "New icon name")
	return cmd
}

func (c *Cli) newCategoriesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !force {
				ok, err := c.confirm(fmt.Sprintf("Delete category %s? [y/N]: ", id))
				if err != nil {
					return err
				}
				if !ok {
					c.io.Println("Cancelled.")
					return nil
				}
			}

			if err := c.categories.Delete(cmd.Context(), id); err != nil {
				return err
			}
			c.io.Println("✓ Category deleted successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return cmd
}
