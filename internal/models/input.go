package models

// LoginInput данные формы входа
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupInput данные формы регистрации
type SignupInput struct {
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// ProfileInput изменяемые поля профиля
type ProfileInput struct {
	FirstName   string `json:"firstName" validate:"omitempty,max=150"`
	LastName    string `json:"lastName" validate:"omitempty,max=150"`
	Email       string `json:"email" validate:"omitempty,email"`
	Bio         string `json:"bio" validate:"omitempty,max=500"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=32"`
}

// PasswordChangeInput данные смены пароля
type PasswordChangeInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,nefield=CurrentPassword"`
}

// SettingsInput изменяемые настройки пользователя
type SettingsInput struct {
	ReportFormat       string `json:"reportFormat" validate:"omitempty,oneof=pdf excel"`
	EmailNotifications bool   `json:"emailNotifications"`
	BudgetAlerts       bool   `json:"budgetAlerts"`
	MonthlyReports     bool   `json:"monthlyReports"`
}
