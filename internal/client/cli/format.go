package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/iudanet/balancio/internal/models"
)

const dateLayout = "2006-01-02"

// table выравнивает колонки вывода
func (c *Cli) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
}

// money форматирует сумму в валюте пользователя
func (c *Cli) money(amount float64) string {
	return c.currency.Format(amount)
}

// signed сумма со знаком по типу транзакции
func (c *Cli) signed(tx models.Transaction) string {
	if tx.Type == models.TransactionExpense {
		return c.money(-tx.Amount)
	}
	return "+" + c.money(tx.Amount)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// parseDate принимает YYYY-MM-DD; пустая строка означает сегодня
func parseDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

func parseAmount(value string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", value)
	}
	return amount, nil
}

func parseType(value string) (models.TransactionType, error) {
	t := models.TransactionType(strings.ToLower(strings.TrimSpace(value)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid type %q, use income or expense", value)
	}
	return t, nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// progressBar полоса заполнения шириной width для процента 0..100
func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// changeArrow стрелка направления изменения показателя
func changeArrow(d models.Direction) string {
	if d == models.DirectionDown {
		return "↓"
	}
	return "↑"
}
