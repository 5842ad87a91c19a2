package models

import "time"

// AlertLevel уровень расходования бюджета
type AlertLevel string

const (
	AlertSafe     AlertLevel = "safe"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
	AlertNoBudget AlertLevel = "no_budget"
)

// Пороги по умолчанию, в процентах
const (
	DefaultWarningThreshold  = 80
	DefaultCriticalThreshold = 95
)

// AlertThresholds пороги оповещений в процентах от бюджета
type AlertThresholds struct {
	Warning  float64 `json:"warning" validate:"gte=0,lte=100"`
	Critical float64 `json:"critical" validate:"gte=0,lte=100,gtfield=Warning"`
}

// WithDefaults подставляет пороги по умолчанию вместо нулевых
func (t AlertThresholds) WithDefaults() AlertThresholds {
	if t.Warning <= 0 {
		t.Warning = DefaultWarningThreshold
	}
	if t.Critical <= 0 {
		t.Critical = DefaultCriticalThreshold
	}
	return t
}

// AlertTimes время последних оповещений
type AlertTimes struct {
	Warning  time.Time `json:"warning,omitzero"`
	Critical time.Time `json:"critical,omitzero"`
}

// MonthlyBudget месячный бюджет пользователя
type MonthlyBudget struct {
	LastAlertSent AlertTimes      `json:"lastAlertSent"`
	Currency      string          `json:"currency"`
	Thresholds    AlertThresholds `json:"alertThresholds"`
	Amount        float64         `json:"amount"`
}

// BudgetInput данные формы бюджета
type BudgetInput struct {
	Thresholds *AlertThresholds `json:"alertThresholds"`
	Currency   string           `json:"currency" validate:"omitempty,len=3,alpha"`
	Amount     float64          `json:"amount" validate:"gte=0"`
}

// CategoryShare доля категории в расходах месяца
type CategoryShare struct {
	CategoryID       string  `json:"categoryId,omitempty"`
	CategoryName     string  `json:"categoryName"`
	Amount           float64 `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transactionCount"`
}

// MonthlySpending расходы за календарный месяц
type MonthlySpending struct {
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	Month            int       `json:"month"`
	Year             int       `json:"year"`
	TransactionCount int       `json:"transactionCount"`
	TotalExpenses    float64   `json:"totalExpenses"`
}

// BudgetOverview состояние бюджета за текущий месяц
type BudgetOverview struct {
	MonthlyData       *MonthlySpending `json:"monthlyData,omitempty"`
	AlertLevel        AlertLevel       `json:"alertLevel,omitempty"`
	AlertType         AlertLevel       `json:"alertType,omitempty"`
	CategoryBreakdown []CategoryShare  `json:"categoryBreakdown,omitempty"`
	Thresholds        AlertThresholds  `json:"thresholds"`
	Budget            float64          `json:"budget"`
	Spent             float64          `json:"spent"`
	Remaining         float64          `json:"remaining"`
	PercentageUsed    float64          `json:"percentageUsed"`
	BudgetSet         bool             `json:"budgetSet"`
	ShouldSendAlert   bool             `json:"shouldSendAlert"`
}

// BudgetAlertSummary сводка по оповещениям бюджета
type BudgetAlertSummary struct {
	LastAlerts      AlertTimes      `json:"lastAlerts"`
	CurrentStatus   AlertLevel      `json:"currentStatus"`
	Thresholds      AlertThresholds `json:"thresholds"`
	PercentageUsed  float64         `json:"percentageUsed"`
	BudgetSet       bool            `json:"budgetSet"`
	AlertsEnabled   bool            `json:"alertsEnabled"`
	ShouldSendAlert bool            `json:"shouldSendAlert"`
}
