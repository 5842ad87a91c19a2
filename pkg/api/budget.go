package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ThresholdsDTO пороги оповещений в процентах
type ThresholdsDTO struct {
	Warning  FlexFloat `json:"warning"`
	Critical FlexFloat `json:"critical"`
}

// AlertTimesDTO время последних отправленных оповещений
type AlertTimesDTO struct {
	Warning  string `json:"warning,omitempty"`
	Critical string `json:"critical,omitempty"`
}

// MonthlyBudgetDTO месячный бюджет
type MonthlyBudgetDTO struct {
	AlertThresholds *ThresholdsDTO `json:"alertThresholds,omitempty"`
	LastAlertSent   *AlertTimesDTO `json:"lastAlertSent,omitempty"`
	Currency        string         `json:"currency"`
	Amount          FlexFloat      `json:"amount"`
}

// BudgetEnvelope ответ GET users/budget
type BudgetEnvelope struct {
	MonthlyBudget *MonthlyBudgetDTO `json:"monthlyBudget"`
	Message       string            `json:"message,omitempty"`
}

// BudgetUpdateRequest тело PUT users/budget
type BudgetUpdateRequest struct {
	AlertThresholds *BudgetThresholdsRequest `json:"alertThresholds,omitempty"`
	Currency        string                   `json:"currency,omitempty"`
	Amount          float64                  `json:"amount"`
}

// BudgetThresholdsRequest пороги в запросе
type BudgetThresholdsRequest struct {
	Warning  float64 `json:"warning"`
	Critical float64 `json:"critical"`
}

// PeriodDTO границы месяца
type PeriodDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// MonthlyDataDTO расходы за месяц
type MonthlyDataDTO struct {
	Period           PeriodDTO `json:"period"`
	Month            int       `json:"month"`
	Year             int       `json:"year"`
	TransactionCount int       `json:"transactionCount"`
	TotalExpenses    FlexFloat `json:"totalExpenses"`
}

// CategoryBreakdownDTO доля категории в расходах
type CategoryBreakdownDTO struct {
	CategoryID       FlexString `json:"categoryId,omitempty"`
	CategoryName     string     `json:"categoryName"`
	Amount           FlexFloat  `json:"amount"`
	Percentage       FlexFloat  `json:"percentage"`
	TransactionCount int        `json:"transactionCount"`
}

// BudgetOverviewDTO ответ GET users/budget/overview
type BudgetOverviewDTO struct {
	Thresholds        *ThresholdsDTO         `json:"thresholds,omitempty"`
	MonthlyData       *MonthlyDataDTO        `json:"monthlyData,omitempty"`
	AlertLevel        string                 `json:"alertLevel,omitempty"`
	AlertType         string                 `json:"alertType,omitempty"`
	CategoryBreakdown []CategoryBreakdownDTO `json:"categoryBreakdown,omitempty"`
	Budget            FlexFloat              `json:"budget"`
	Spent             FlexFloat              `json:"spent"`
	Remaining         FlexFloat              `json:"remaining"`
	PercentageUsed    FlexFloat              `json:"percentageUsed"`
	BudgetSet         bool                   `json:"budgetSet"`
	ShouldSendAlert   bool                   `json:"shouldSendAlert"`
}

// BudgetAlertSummaryDTO ответ GET users/budget/alerts
type BudgetAlertSummaryDTO struct {
	LastAlerts      *AlertTimesDTO `json:"lastAlerts,omitempty"`
	Thresholds      *ThresholdsDTO `json:"thresholds,omitempty"`
	CurrentStatus   string         `json:"currentStatus"` // no_budget, safe, warning, critical
	PercentageUsed  FlexFloat      `json:"percentageUsed"`
	BudgetSet       bool           `json:"budgetSet"`
	AlertsEnabled   bool           `json:"alertsEnabled"`
	ShouldSendAlert bool           `json:"shouldSendAlert"`
}

// DashboardStatisticsDTO ответ GET dashboard/statistics
type DashboardStatisticsDTO struct {
	CurrentMonth      PeriodTotalsDTO      `json:"current_month"`
	LastMonth         PeriodTotalsDTO      `json:"last_month"`
	Changes           ChangesDTO           `json:"changes"`
	TransactionCounts TransactionCountsDTO `json:"transaction_counts"`
}

// PeriodTotalsDTO доходы, расходы и баланс за период
type PeriodTotalsDTO struct {
	Income   FlexFloat `json:"income"`
	Expenses FlexFloat `json:"expenses"`
	Balance  FlexFloat `json:"balance"`
}

// ChangesDTO изменения относительно прошлого месяца
type ChangesDTO struct {
	IncomeDirection   string    `json:"income_direction"`
	ExpenseDirection  string    `json:"expense_direction"`
	IncomePercentage  FlexFloat `json:"income_percentage"`
	ExpensePercentage FlexFloat `json:"expense_percentage"`
}

// TransactionCountsDTO счетчики транзакций
type TransactionCountsDTO struct {
	CurrentMonth        int `json:"current_month"`
	LastMonth           int `json:"last_month"`
	CurrentIncomeCount  int `json:"current_income_count"`
	CurrentExpenseCount int `json:"current_expense_count"`
}

// MonthlyReportDTO строка списка месячных отчетов
type MonthlyReportDTO struct {
	Month            string              `json:"month"`
	TopCategories    []CategoryAmountDTO `json:"topCategories"`
	Year             int                 `json:"year"`
	MonthNumber      int                 `json:"monthNumber"`
	TransactionCount int                 `json:"transactionCount"`
	TotalIncome      FlexFloat           `json:"totalIncome"`
	TotalExpenses    FlexFloat           `json:"totalExpenses"`
	NetSavings       FlexFloat           `json:"netSavings"`
}

// CategoryAmountDTO пара [название, сумма]
type CategoryAmountDTO struct {
	Name   string
	Amount FlexFloat
}

// UnmarshalJSON разбирает пару из двухэлементного массива
func (c *CategoryAmountDTO) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("category amount: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("category amount: expected 2 elements, got %d", len(pair))
	}
	var name FlexString
	if err := json.Unmarshal(bytes.TrimSpace(pair[0]), &name); err != nil {
		return fmt.Errorf("category amount name: %w", err)
	}
	if err := json.Unmarshal(pair[1], &c.Amount); err != nil {
		return fmt.Errorf("category amount value: %w", err)
	}
	c.Name = string(name)
	return nil
}

// ExchangeRatesDTO ответ внешнего сервиса курсов валют
type ExchangeRatesDTO struct {
	Rates map[string]float64 `json:"rates"`
	Base  string             `json:"base"`
	Date  string             `json:"date"`
}
