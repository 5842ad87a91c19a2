package finance

import (
	"fmt"
	"math"

	"github.com/iudanet/balancio/internal/models"
)

// Formatter форматирует денежную сумму для вывода
type Formatter interface {
	Format(amount float64) string
}

// BudgetProgress процент израсходованного бюджета, не больше 100; 0 при нулевом бюджете
func BudgetProgress(spent, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	return math.Min(spent/budget*100, 100)
}

// AlertLevel уровень по проценту расходования; нулевые пороги заменяются на 80/95
func AlertLevel(percent float64, thresholds models.AlertThresholds) models.AlertLevel {
	t := thresholds.WithDefaults()
	switch {
	case percent >= t.Critical:
		return models.AlertCritical
	case percent >= t.Warning:
		return models.AlertWarning
	default:
		return models.AlertSafe
	}
}

// BudgetStatusMessage текстовое описание состояния бюджета
func BudgetStatusMessage(o models.BudgetOverview, f Formatter) string {
	if !o.BudgetSet {
		return "No monthly budget set. Set a budget to track your spending."
	}

	// уровень приходит с сервера; если его нет, считаем сами
	level := o.AlertLevel
	if level == "" || level == models.AlertNoBudget {
		level = AlertLevel(o.PercentageUsed, o.Thresholds)
	}

	switch level {
	case models.AlertCritical:
		if o.Remaining < 0 {
			return "⚠️ You've exceeded your critical spending threshold! Over budget by " +
				f.Format(math.Abs(o.Remaining))
		}
		return fmt.Sprintf("⚠️ You've exceeded your critical spending threshold! Only %s remaining.",
			f.Format(o.Remaining))
	case models.AlertWarning:
		return fmt.Sprintf("⚠️ You're approaching your budget limit. %s remaining.", f.Format(o.Remaining))
	default:
		return fmt.Sprintf("✅ You're on track! %s remaining in your budget.", f.Format(o.Remaining))
	}
}
