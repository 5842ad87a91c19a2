package models

import (
	"strings"
	"time"
)

// Report formats
const (
	ReportFormatExcel = "excel"
	ReportFormatPDF   = "pdf"
)

// UserSettings пользовательские настройки уведомлений и отчетов
type UserSettings struct {
	ReportFormat       string `json:"reportFormat"` // pdf или excel
	EmailNotifications bool   `json:"emailNotifications"`
	BudgetAlerts       bool   `json:"budgetAlerts"`
	MonthlyReports     bool   `json:"monthlyReports"`
	TwoFactorEnabled   bool   `json:"twoFactorEnabled"`
}

// BudgetPreferences бюджетные настройки из профиля
type BudgetPreferences struct {
	Currency          string  `json:"currency,omitempty"`
	MonthlyAmount     float64 `json:"monthlyAmount,omitempty"`
	WarningThreshold  float64 `json:"warningThreshold,omitempty"`
	CriticalThreshold float64 `json:"criticalThreshold,omitempty"`
}

// User представляет аутентифицированного пользователя
type User struct {
	CreatedAt         time.Time         `json:"createdAt"` // время создания
	UpdatedAt         time.Time         `json:"updatedAt"` // время последнего обновления
	Settings          UserSettings      `json:"settings"`
	Budget            BudgetPreferences `json:"budget"`
	ID                string            `json:"id"` // идентификатор на бэкенде
	Email             string            `json:"email"`
	Username          string            `json:"username,omitempty"`
	FirstName         string            `json:"firstName,omitempty"`
	LastName          string            `json:"lastName,omitempty"`
	FullName          string            `json:"fullName,omitempty"`
	PhoneNumber       string            `json:"phoneNumber,omitempty"`
	DateOfBirth       string            `json:"dateOfBirth,omitempty"`
	ProfilePicture    string            `json:"profilePicture,omitempty"`
	Bio               string            `json:"bio,omitempty"`
	Avatar            string            `json:"avatar,omitempty"`
	PreferredCurrency string            `json:"preferredCurrency,omitempty"`
	DateFormat        string            `json:"dateFormat,omitempty"`
	Timezone          string            `json:"timezone,omitempty"`
}

// DisplayName возвращает имя для вывода: полное имя, имя и фамилию или email
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Email
}

// Session аутентификационная сессия клиента
type Session struct {
	User         *User  `json:"user,omitempty"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Activity запись ленты активности профиля; структура определяется бэкендом
type Activity map[string]any
