package models

// PeriodTotals доходы, расходы и баланс за период
type PeriodTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// Direction направление изменения показателя
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// PeriodChanges изменение относительно прошлого месяца
type PeriodChanges struct {
	IncomeDirection   Direction `json:"incomeDirection"`
	ExpenseDirection  Direction `json:"expenseDirection"`
	IncomePercentage  float64   `json:"incomePercentage"`
	ExpensePercentage float64   `json:"expensePercentage"`
}

// TransactionCounts счетчики транзакций
type TransactionCounts struct {
	CurrentMonth        int `json:"currentMonth"`
	LastMonth           int `json:"lastMonth"`
	CurrentIncomeCount  int `json:"currentIncomeCount"`
	CurrentExpenseCount int `json:"currentExpenseCount"`
}

// DashboardStatistics агрегаты для главного экрана
type DashboardStatistics struct {
	CurrentMonth      PeriodTotals      `json:"currentMonth"`
	LastMonth         PeriodTotals      `json:"lastMonth"`
	Changes           PeriodChanges     `json:"changes"`
	TransactionCounts TransactionCounts `json:"transactionCounts"`
}

// CategoryAmount сумма по категории
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// MonthlyReport строка месячного отчета
type MonthlyReport struct {
	Month            string           `json:"month"` // например "January 2025"
	TopCategories    []CategoryAmount `json:"topCategories"`
	Year             int              `json:"year"`
	MonthNumber      int              `json:"monthNumber"`
	TransactionCount int              `json:"transactionCount"`
	TotalIncome      float64          `json:"totalIncome"`
	TotalExpenses    float64          `json:"totalExpenses"`
	NetSavings       float64          `json:"netSavings"`
}

// ExchangeRates курсы валют относительно базовой
type ExchangeRates struct {
	Rates map[string]float64 `json:"rates"`
	Base  string             `json:"base"`
	Date  string             `json:"date"`
}
