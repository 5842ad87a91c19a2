package api

// UserSettingsDTO настройки пользователя в camelCase-форме
type UserSettingsDTO struct {
	ReportFormat       string `json:"reportFormat,omitempty"` // pdf или excel
	EmailNotifications bool   `json:"emailNotifications"`
	BudgetAlerts       bool   `json:"budgetAlerts"`
	MonthlyReports     bool   `json:"monthlyReports"`
	TwoFactorEnabled   bool   `json:"twoFactorEnabled"`
}

// UserDTO профиль пользователя в том виде, в каком его отдает бэкенд.
// Одни и те же поля встречаются в snake_case и camelCase.
type UserDTO struct {
	Settings                *UserSettingsDTO `json:"settings,omitempty"`
	EmailNotifications      *bool            `json:"email_notifications,omitempty"`
	BudgetAlerts            *bool            `json:"budget_alerts,omitempty"`
	MonthlyReports          *bool            `json:"monthly_reports,omitempty"`
	ID                      FlexString       `json:"id"`
	MongoID                 FlexString       `json:"_id,omitempty"`
	Email                   string           `json:"email"`
	Username                string           `json:"username,omitempty"`
	FirstName               string           `json:"first_name,omitempty"`
	LastName                string           `json:"last_name,omitempty"`
	FirstNameCamel          string           `json:"firstName,omitempty"`
	LastNameCamel           string           `json:"lastName,omitempty"`
	Name                    string           `json:"name,omitempty"`
	FullName                string           `json:"full_name,omitempty"`
	PhoneNumber             string           `json:"phone_number,omitempty"`
	DateOfBirth             string           `json:"date_of_birth,omitempty"`
	ProfilePicture          string           `json:"profile_picture,omitempty"`
	Bio                     string           `json:"bio,omitempty"`
	Avatar                  string           `json:"avatar,omitempty"`
	MonthlyBudgetCurrency   string           `json:"monthly_budget_currency,omitempty"`
	PreferredCurrency       string           `json:"preferred_currency,omitempty"`
	DateFormatPreference    string           `json:"date_format_preference,omitempty"`
	TimezonePreference      string           `json:"timezone_preference,omitempty"`
	CreatedAt               string           `json:"created_at,omitempty"`
	CreatedAtCamel          string           `json:"createdAt,omitempty"`
	UpdatedAt               string           `json:"updated_at,omitempty"`
	UpdatedAtCamel          string           `json:"updatedAt,omitempty"`
	MonthlyBudgetAmount     FlexFloat        `json:"monthly_budget_amount,omitempty"`
	BudgetWarningThreshold  FlexFloat        `json:"budget_warning_threshold,omitempty"`
	BudgetCriticalThreshold FlexFloat        `json:"budget_critical_threshold,omitempty"`
}

// UserEnvelope ответ вида {"user": {...}}; некоторые эндпоинты отдают профиль без конверта
type UserEnvelope struct {
	User    *UserDTO `json:"user"`
	Message string   `json:"message,omitempty"`
}

// UpdateProfileRequest запрос на изменение профиля.
// Имя передается в обоих регистрах и склеенным в name.
type UpdateProfileRequest struct {
	Settings       *UserSettingsDTO `json:"settings,omitempty"`
	FirstName      string           `json:"firstName,omitempty"`
	FirstNameSnake string           `json:"first_name,omitempty"`
	LastName       string           `json:"lastName,omitempty"`
	LastNameSnake  string           `json:"last_name,omitempty"`
	Name           string           `json:"name,omitempty"`
	Email          string           `json:"email,omitempty"`
	Bio            string           `json:"bio,omitempty"`
	PhoneNumber    string           `json:"phone_number,omitempty"`
}

// ChangePasswordRequest запрос на смену пароля
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// MessageResponse ответ, содержащий только сообщение
type MessageResponse struct {
	Message string `json:"message"`
}
