package data

import (
	"strings"

	"github.com/iudanet/balancio/internal/models"
	pkgapi "github.com/iudanet/balancio/pkg/api"
)

// placeholderAvatar заглушка, которую бэкенд отдает вместо отсутствующего аватара
const placeholderAvatar = "https://via.placeholder.com/150"

// UserFromDTO приводит профиль бэкенда к модели.
// Имя берется из camelCase, затем snake_case, затем из поля name.
func UserFromDTO(dto *pkgapi.UserDTO) *models.User {
	if dto == nil {
		return nil
	}

	first, last := dto.FirstNameCamel, dto.LastNameCamel
	if first == "" {
		first = dto.FirstName
	}
	if last == "" {
		last = dto.LastName
	}
	if name := strings.Fields(dto.Name); len(name) > 0 {
		if first == "" {
			first = name[0]
		}
		if last == "" {
			last = strings.Join(name[1:], " ")
		}
	}

	u := &models.User{
		ID:                pkgapi.FirstNonEmpty(dto.MongoID, dto.ID),
		Email:             dto.Email,
		Username:          dto.Username,
		FirstName:         first,
		LastName:          last,
		FullName:          strings.TrimSpace(first + " " + last),
		PhoneNumber:       dto.PhoneNumber,
		DateOfBirth:       dto.DateOfBirth,
		ProfilePicture:    dto.ProfilePicture,
		Bio:               dto.Bio,
		PreferredCurrency: dto.PreferredCurrency,
		DateFormat:        dto.DateFormatPreference,
		Timezone:          dto.TimezonePreference,
		CreatedAt:         pkgapi.ParseTime(dto.CreatedAtCamel, dto.CreatedAt),
		UpdatedAt:         pkgapi.ParseTime(dto.UpdatedAtCamel, dto.UpdatedAt),
		Budget: models.BudgetPreferences{
			Currency:          dto.MonthlyBudgetCurrency,
			MonthlyAmount:     dto.MonthlyBudgetAmount.Float64(),
			WarningThreshold:  dto.BudgetWarningThreshold.Float64(),
			CriticalThreshold: dto.BudgetCriticalThreshold.Float64(),
		},
	}
	if dto.Avatar != placeholderAvatar {
		u.Avatar = dto.Avatar
	}

	if dto.Settings != nil {
		u.Settings = models.UserSettings{
			ReportFormat:       dto.Settings.ReportFormat,
			EmailNotifications: dto.Settings.EmailNotifications,
			BudgetAlerts:       dto.Settings.BudgetAlerts,
			MonthlyReports:     dto.Settings.MonthlyReports,
			TwoFactorEnabled:   dto.Settings.TwoFactorEnabled,
		}
	} else {
		// плоские флаги; отсутствующий флаг считается включенным
		u.Settings = models.UserSettings{
			ReportFormat:       models.ReportFormatExcel,
			EmailNotifications: boolOr(dto.EmailNotifications, true),
			BudgetAlerts:       boolOr(dto.BudgetAlerts, true),
			MonthlyReports:     boolOr(dto.MonthlyReports, true),
		}
	}
	if u.Settings.ReportFormat == "" {
		u.Settings.ReportFormat = models.ReportFormatExcel
	}

	return u
}

// TransactionFromDTO приводит транзакцию бэкенда к модели
func TransactionFromDTO(dto pkgapi.TransactionDTO) models.Transaction {
	return models.Transaction{
		ID:            pkgapi.FirstNonEmpty(dto.ID, dto.MongoID),
		Title:         dto.Title,
		Description:   dto.Description,
		CategoryID:    pkgapi.FirstNonEmpty(dto.Category, dto.CategoryID),
		CategoryName:  dto.CategoryName,
		CategoryColor: dto.CategoryColor,
		UserID:        pkgapi.FirstNonEmpty(dto.User, dto.UserID),
		Type:          models.TransactionType(dto.Type),
		Amount:        dto.Amount.Float64(),
		Date:          pkgapi.ParseTime(dto.Date),
		CreatedAt:     pkgapi.ParseTime(dto.CreatedAt, dto.CreatedAtCamel),
		UpdatedAt:     pkgapi.ParseTime(dto.UpdatedAt, dto.UpdatedAtCamel),
	}
}

// TransactionsFromDTO приводит список транзакций
func TransactionsFromDTO(dtos []pkgapi.TransactionDTO) []models.Transaction {
	out := make([]models.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, TransactionFromDTO(dto))
	}
	return out
}

// CategoryFromDTO приводит категорию бэкенда к модели; пустая иконка заменяется на DefaultCategoryIcon
func CategoryFromDTO(dto pkgapi.CategoryDTO) models.Category {
	c := models.Category{
		ID:        pkgapi.FirstNonEmpty(dto.ID, dto.MongoID),
		Name:      dto.Name,
		Color:     dto.Color,
		Icon:      dto.Icon,
		UserID:    pkgapi.FirstNonEmpty(dto.User, dto.UserID),
		Type:      models.TransactionType(dto.Type),
		CreatedAt: pkgapi.ParseTime(dto.CreatedAt, dto.CreatedAtCamel),
		UpdatedAt: pkgapi.ParseTime(dto.UpdatedAt, dto.UpdatedAtCamel),
	}
	if c.Icon == "" {
		c.Icon = models.DefaultCategoryIcon
	}
	return c
}

// CategoriesFromDTO приводит список категорий
func CategoriesFromDTO(dtos []pkgapi.CategoryDTO) []models.Category {
	out := make([]models.Category, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, CategoryFromDTO(dto))
	}
	return out
}

func thresholdsFromDTO(dto *pkgapi.ThresholdsDTO) models.AlertThresholds {
	if dto == nil {
		return models.AlertThresholds{}.WithDefaults()
	}
	return models.AlertThresholds{
		Warning:  dto.Warning.Float64(),
		Critical: dto.Critical.Float64(),
	}.WithDefaults()
}

func alertTimesFromDTO(dto *pkgapi.AlertTimesDTO) models.AlertTimes {
	if dto == nil {
		return models.AlertTimes{}
	}
	return models.AlertTimes{
		Warning:  pkgapi.ParseTime(dto.Warning),
		Critical: pkgapi.ParseTime(dto.Critical),
	}
}

// BudgetFromDTO приводит месячный бюджет; nil, если бюджет не задан или равен нулю
func BudgetFromDTO(dto *pkgapi.MonthlyBudgetDTO) *models.MonthlyBudget {
	if dto == nil || dto.Amount == 0 {
		return nil
	}
	return &models.MonthlyBudget{
		Amount:        dto.Amount.Float64(),
		Currency:      dto.Currency,
		Thresholds:    thresholdsFromDTO(dto.AlertThresholds),
		LastAlertSent: alertTimesFromDTO(dto.LastAlertSent),
	}
}

// BudgetOverviewFromDTO приводит обзор бюджета
func BudgetOverviewFromDTO(dto pkgapi.BudgetOverviewDTO) models.BudgetOverview {
	o := models.BudgetOverview{
		AlertLevel:      models.AlertLevel(dto.AlertLevel),
		AlertType:       models.AlertLevel(dto.AlertType),
		Thresholds:      thresholdsFromDTO(dto.Thresholds),
		Budget:          dto.Budget.Float64(),
		Spent:           dto.Spent.Float64(),
		Remaining:       dto.Remaining.Float64(),
		PercentageUsed:  dto.PercentageUsed.Float64(),
		BudgetSet:       dto.BudgetSet,
		ShouldSendAlert: dto.ShouldSendAlert,
	}
	if md := dto.MonthlyData; md != nil {
		o.MonthlyData = &models.MonthlySpending{
			StartDate:        pkgapi.ParseTime(md.Period.StartDate),
			EndDate:          pkgapi.ParseTime(md.Period.EndDate),
			Month:            md.Month,
			Year:             md.Year,
			TransactionCount: md.TransactionCount,
			TotalExpenses:    md.TotalExpenses.Float64(),
		}
	}
	for _, cb := range dto.CategoryBreakdown {
		o.CategoryBreakdown = append(o.CategoryBreakdown, models.CategoryShare{
			CategoryID:       cb.CategoryID.String(),
			CategoryName:     cb.CategoryName,
			Amount:           cb.Amount.Float64(),
			Percentage:       cb.Percentage.Float64(),
			TransactionCount: cb.TransactionCount,
		})
	}
	return o
}

// BudgetAlertSummaryFromDTO приводит сводку оповещений
func BudgetAlertSummaryFromDTO(dto pkgapi.BudgetAlertSummaryDTO) models.BudgetAlertSummary {
	return models.BudgetAlertSummary{
		LastAlerts:      alertTimesFromDTO(dto.LastAlerts),
		CurrentStatus:   models.AlertLevel(dto.CurrentStatus),
		Thresholds:      thresholdsFromDTO(dto.Thresholds),
		PercentageUsed:  dto.PercentageUsed.Float64(),
		BudgetSet:       dto.BudgetSet,
		AlertsEnabled:   dto.AlertsEnabled,
		ShouldSendAlert: dto.ShouldSendAlert,
	}
}

func periodFromDTO(dto pkgapi.PeriodTotalsDTO) models.PeriodTotals {
	return models.PeriodTotals{
		Income:   dto.Income.Float64(),
		Expenses: dto.Expenses.Float64(),
		Balance:  dto.Balance.Float64(),
	}
}

// StatisticsFromDTO приводит статистику главного экрана
func StatisticsFromDTO(dto pkgapi.DashboardStatisticsDTO) models.DashboardStatistics {
	return models.DashboardStatistics{
		CurrentMonth: periodFromDTO(dto.CurrentMonth),
		LastMonth:    periodFromDTO(dto.LastMonth),
		Changes: models.PeriodChanges{
			IncomeDirection:   models.Direction(dto.Changes.IncomeDirection),
			ExpenseDirection:  models.Direction(dto.Changes.ExpenseDirection),
			IncomePercentage:  dto.Changes.IncomePercentage.Float64(),
			ExpensePercentage: dto.Changes.ExpensePercentage.Float64(),
		},
		TransactionCounts: models.TransactionCounts{
			CurrentMonth:        dto.TransactionCounts.CurrentMonth,
			LastMonth:           dto.TransactionCounts.LastMonth,
			CurrentIncomeCount:  dto.TransactionCounts.CurrentIncomeCount,
			CurrentExpenseCount: dto.TransactionCounts.CurrentExpenseCount,
		},
	}
}

// ReportFromDTO приводит строку месячного отчета
func ReportFromDTO(dto pkgapi.MonthlyReportDTO) models.MonthlyReport {
	r := models.MonthlyReport{
		Month:            dto.Month,
		Year:             dto.Year,
		MonthNumber:      dto.MonthNumber,
		TransactionCount: dto.TransactionCount,
		TotalIncome:      dto.TotalIncome.Float64(),
		TotalExpenses:    dto.TotalExpenses.Float64(),
		NetSavings:       dto.NetSavings.Float64(),
		TopCategories:    make([]models.CategoryAmount, 0, len(dto.TopCategories)),
	}
	for _, tc := range dto.TopCategories {
		r.TopCategories = append(r.TopCategories, models.CategoryAmount{Name: tc.Name, Amount: tc.Amount.Float64()})
	}
	return r
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
