package data

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/balancio/internal/models"
	pkgapi "github.com/iudanet/balancio/pkg/api"
)

func decodeDTO[T any](t *testing.T, raw string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestUserFromDTO_NamePrecedence(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantFirst string
		wantLast  string
	}{
		{
			name:      "camel wins",
			raw:       `{"id":1,"firstName":"Ann","first_name":"Anna","lastName":"Lee","last_name":"Li"}`,
			wantFirst: "Ann",
			wantLast:  "Lee",
		},
		{
			name:      "snake case",
			raw:       `{"id":1,"first_name":"Anna","last_name":"Li"}`,
			wantFirst: "Anna",
			wantLast:  "Li",
		},
		{
			name:      "split name",
			raw:       `{"id":1,"name":"Mary Jane Watson"}`,
			wantFirst: "Mary",
			wantLast:  "Jane Watson",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := decodeDTO[pkgapi.UserDTO](t, tt.raw)
			u := UserFromDTO(&dto)
			require.NotNil(t, u)
			assert.Equal(t, tt.wantFirst, u.FirstName)
			assert.Equal(t, tt.wantLast, u.LastName)
			assert.Equal(t, tt.wantFirst+" "+tt.wantLast, u.FullName)
		})
	}
}

func TestUserFromDTO_Defaults(t *testing.T) {
	dto := decodeDTO[pkgapi.UserDTO](t, `{
		"_id": "abc", "id": 7, "email": "a@b.c",
		"avatar": "https://via.placeholder.com/150",
		"budget_alerts": false,
		"created_at": "2025-01-02T03:04:05Z"
	}`)

	u := UserFromDTO(&dto)
	require.NotNil(t, u)
	assert.Equal(t, "abc", u.ID)
	assert.Empty(t, u.Avatar, "placeholder avatar is dropped")
	assert.True(t, u.Settings.EmailNotifications)
	assert.False(t, u.Settings.BudgetAlerts)
	assert.True(t, u.Settings.MonthlyReports)
	assert.Equal(t, models.ReportFormatExcel, u.Settings.ReportFormat)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), u.CreatedAt)
	assert.True(t, u.UpdatedAt.IsZero())

	assert.Nil(t, UserFromDTO(nil))
}

func TestUserFromDTO_NestedSettings(t *testing.T) {
	dto := decodeDTO[pkgapi.UserDTO](t, `{"id":"1","avatar":"https://cdn/x.png",
		"settings":{"reportFormat":"pdf","emailNotifications":false,"budgetAlerts":true}}`)

	u := UserFromDTO(&dto)
	assert.Equal(t, "https://cdn/x.png", u.Avatar)
	assert.Equal(t, models.ReportFormatPDF, u.Settings.ReportFormat)
	assert.False(t, u.Settings.EmailNotifications)
	assert.True(t, u.Settings.BudgetAlerts)
	assert.False(t, u.Settings.MonthlyReports)
}

func TestTransactionFromDTO(t *testing.T) {
	dto := decodeDTO[pkgapi.TransactionDTO](t, `{
		"_id": "tx1", "category": 12, "user": 3, "title": "Coffee",
		"type": "expense", "amount": "4.50", "date": "2025-03-01",
		"createdAt": "2025-03-01T10:00:00Z"
	}`)

	tx := TransactionFromDTO(dto)
	assert.Equal(t, "tx1", tx.ID)
	assert.Equal(t, "12", tx.CategoryID)
	assert.Equal(t, "3", tx.UserID)
	assert.Equal(t, models.TransactionExpense, tx.Type)
	assert.InDelta(t, 4.5, tx.Amount, 1e-9)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), tx.CreatedAt)
}

func TestCategoryFromDTO_DefaultIcon(t *testing.T) {
	c := CategoryFromDTO(decodeDTO[pkgapi.CategoryDTO](t, `{"id":5,"name":"Food","type":"expense","user":1}`))
	assert.Equal(t, "5", c.ID)
	assert.Equal(t, "1", c.UserID)
	assert.Equal(t, models.DefaultCategoryIcon, c.Icon)

	c = CategoryFromDTO(decodeDTO[pkgapi.CategoryDTO](t, `{"id":5,"name":"Food","icon":"restaurant"}`))
	assert.Equal(t, "restaurant", c.Icon)
}

func TestBudgetFromDTO(t *testing.T) {
	assert.Nil(t, BudgetFromDTO(nil))
	assert.Nil(t, BudgetFromDTO(&pkgapi.MonthlyBudgetDTO{Amount: 0}))

	b := BudgetFromDTO(&pkgapi.MonthlyBudgetDTO{
		Amount:        1000,
		Currency:      "EUR",
		LastAlertSent: &pkgapi.AlertTimesDTO{Warning: "2025-02-10T00:00:00Z"},
	})
	require.NotNil(t, b)
	assert.InDelta(t, 1000, b.Amount, 1e-9)
	assert.Equal(t, models.AlertThresholds{Warning: 80, Critical: 95}, b.Thresholds)
	assert.False(t, b.LastAlertSent.Warning.IsZero())
	assert.True(t, b.LastAlertSent.Critical.IsZero())
}

func TestReportFromDTO(t *testing.T) {
	dto := decodeDTO[pkgapi.MonthlyReportDTO](t, `{
		"month": "January 2025", "year": 2025, "monthNumber": 1,
		"totalIncome": 3000, "totalExpenses": "1200.5", "netSavings": 1799.5,
		"transactionCount": 14, "topCategories": [["Rent", 900], ["Food", "300.5"]]
	}`)

	r := ReportFromDTO(dto)
	assert.Equal(t, "January 2025", r.Month)
	assert.InDelta(t, 1200.5, r.TotalExpenses, 1e-9)
	require.Len(t, r.TopCategories, 2)
	assert.Equal(t, models.CategoryAmount{Name: "Food", Amount: 300.5}, r.TopCategories[1])
}
