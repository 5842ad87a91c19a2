package validation

import (
	"testing"
	"time"

	"github.com/iudanet/balancio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Login(t *testing.T) {
	tests := []struct {
		name    string
		input   models.LoginInput
		wantErr bool
		errMsg  string
	}{
		{
			name:  "valid",
			input: models.LoginInput{Email: "ada@example.com", Password: "secret"},
		},
		{
			name:    "empty email",
			input:   models.LoginInput{Password: "secret"},
			wantErr: true,
			errMsg:  "email is required",
		},
		{
			name:    "malformed email",
			input:   models.LoginInput{Email: "ada", Password: "secret"},
			wantErr: true,
			errMsg:  "email must be a valid email address",
		},
		{
			name:    "empty password",
			input:   models.LoginInput{Email: "ada@example.com"},
			wantErr: true,
			errMsg:  "password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_Signup(t *testing.T) {
	err := Validate(models.SignupInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password must be at least 8 characters long")

	err = Validate(models.SignupInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "long-enough"})
	assert.NoError(t, err)
}

func TestValidate_Transaction(t *testing.T) {
	valid := models.TransactionInput{
		Title:      "Salary",
		Amount:     1500,
		Type:       models.TransactionIncome,
		CategoryID: "3",
		Date:       time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, Validate(valid))

	invalid := valid
	invalid.Amount = 0
	invalid.Type = "transfer"
	invalid.Title = ""
	invalid.Date = time.Time{}

	err := Validate(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "amount must be greater than 0")
	assert.Contains(t, err.Error(), "type must be one of: income, expense")
	assert.Contains(t, err.Error(), "date is required")
}

func TestValidate_TransactionUpdate(t *testing.T) {
	assert.NoError(t, Validate(models.TransactionUpdate{}))

	negative := -5.0
	err := Validate(models.TransactionUpdate{Amount: &negative})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be greater than 0")
}

func TestValidate_Category(t *testing.T) {
	assert.NoError(t, Validate(models.CategoryInput{Name: "Food", Type: models.TransactionExpense, Color: "#4CAF50"}))

	err := Validate(models.CategoryInput{Name: "Food", Type: models.TransactionExpense, Color: "green"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color must be a hex color")
}

func TestValidate_Budget(t *testing.T) {
	assert.NoError(t, Validate(models.BudgetInput{Amount: 1000, Currency: "USD"}))
	assert.NoError(t, Validate(models.BudgetInput{
		Amount:     1000,
		Thresholds: &models.AlertThresholds{Warning: 75, Critical: 90},
	}))

	err := Validate(models.BudgetInput{
		Amount:     1000,
		Thresholds: &models.AlertThresholds{Warning: 90, Critical: 80},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "critical must be greater than warning")

	err = Validate(models.BudgetInput{Amount: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be at least 0")
}

func TestValidate_PasswordChange(t *testing.T) {
	err := Validate(models.PasswordChangeInput{CurrentPassword: "old-password", NewPassword: "old-password"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newPassword must differ from the current password")

	assert.NoError(t, Validate(models.PasswordChangeInput{CurrentPassword: "old-password", NewPassword: "new-password"}))
}
