package finance

import (
	"math"
	"sort"
	"time"

	"github.com/iudanet/balancio/internal/models"
)

// UnknownCategory имя для транзакций без известной категории
const UnknownCategory = "Unknown Category"

// Summary итоги по набору транзакций
type Summary struct {
	Income   float64
	Expenses float64
	Balance  float64
}

// Totals суммирует доходы и расходы
func Totals(transactions []models.Transaction) Summary {
	var s Summary
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionIncome:
			s.Income += tx.Amount
		case models.TransactionExpense:
			s.Expenses += tx.Amount
		}
	}
	s.Balance = s.Income - s.Expenses
	return s
}

// CategoryTotal сумма расходов по категории
type CategoryTotal struct {
	CategoryID string
	Name       string
	Color      string
	Amount     float64
	Percentage int
	Count      int
}

// ExpensesByCategory группирует расходы по категориям, по убыванию суммы
func ExpensesByCategory(transactions []models.Transaction, categories []models.Category) []CategoryTotal {
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	totals := make(map[string]*CategoryTotal)
	var order []string
	var overall float64

	for _, tx := range transactions {
		if tx.Type != models.TransactionExpense {
			continue
		}
		overall += tx.Amount

		ct, ok := totals[tx.CategoryID]
		if !ok {
			ct = &CategoryTotal{CategoryID: tx.CategoryID, Name: UnknownCategory}
			if c, found := byID[tx.CategoryID]; found {
				ct.Name = c.Name
				ct.Color = c.Color
			} else if tx.CategoryName != "" {
				ct.Name = tx.CategoryName
				ct.Color = tx.CategoryColor
			}
			totals[tx.CategoryID] = ct
			order = append(order, tx.CategoryID)
		}
		ct.Amount += tx.Amount
		ct.Count++
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, id := range order {
		ct := totals[id]
		ct.Percentage = Percentage(ct.Amount, overall)
		out = append(out, *ct)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}

// MonthTotal доходы и расходы за календарный месяц
type MonthTotal struct {
	Label    string // короткое имя месяца, например "Jan"
	Year     int
	Month    time.Month
	Income   float64
	Expenses float64
}

// MonthlySeries возвращает months последних месяцев, заканчивая месяцем now.
// Месяцы сравниваются вместе с годом.
func MonthlySeries(transactions []models.Transaction, now time.Time, months int) []MonthTotal {
	if months <= 0 {
		return nil
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
	series := make([]MonthTotal, months)
	index := make(map[[2]int]int, months)
	for i := range series {
		m := first.AddDate(0, i, 0)
		series[i] = MonthTotal{Label: m.Format("Jan"), Year: m.Year(), Month: m.Month()}
		index[[2]int{m.Year(), int(m.Month())}] = i
	}

	for _, tx := range transactions {
		d := tx.Date.In(now.Location())
		i, ok := index[[2]int{d.Year(), int(d.Month())}]
		if !ok {
			continue
		}
		switch tx.Type {
		case models.TransactionIncome:
			series[i].Income += tx.Amount
		case models.TransactionExpense:
			series[i].Expenses += tx.Amount
		}
	}

	return series
}

// Percentage округленная доля value от total в процентах; 0 при нулевом total
func Percentage(value, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(value / total * 100))
}
