package data

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/balancio/internal/models"
	"github.com/iudanet/balancio/internal/validation"
)

func TestBudgetService_Get(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		amount  float64
	}{
		{name: "set", body: `{"monthlyBudget":{"amount":1500,"currency":"USD","alertThresholds":{"warning":70,"critical":90}}}`, amount: 1500},
		{name: "zero amount", body: `{"monthlyBudget":{"amount":0,"currency":"USD"}}`, wantErr: ErrBudgetNotSet},
		{name: "missing", body: `{}`, wantErr: ErrBudgetNotSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/users/budget/", r.URL.Path)
				_, _ = w.Write([]byte(tt.body))
			}))

			b, err := NewBudgetService(env.client, env.toasts, env.logger).Get(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.amount, b.Amount, 1e-9)
			assert.Equal(t, models.AlertThresholds{Warning: 70, Critical: 90}, b.Thresholds)
		})
	}
}

func TestBudgetService_Update(t *testing.T) {
	rec := &recorder{}
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		writeJSON(w, http.StatusOK, map[string]any{"monthlyBudget": map[string]any{"amount": 2000, "currency": "EUR"}})
	}))
	svc := NewBudgetService(env.client, env.toasts, env.logger)

	b, err := svc.Update(context.Background(), models.BudgetInput{
		Amount:     2000,
		Currency:   "eur",
		Thresholds: &models.AlertThresholds{Warning: 75, Critical: 90},
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", b.Currency)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, map[string]any{
		"amount":          2000.0,
		"currency":        "EUR",
		"alertThresholds": map[string]any{"warning": 75.0, "critical": 90.0},
	}, rec.json(t))

	_, err = svc.Update(context.Background(), models.BudgetInput{
		Amount:     100,
		Thresholds: &models.AlertThresholds{Warning: 90, Critical: 80},
	})
	assert.ErrorIs(t, err, validation.ErrInvalidInput)
}

func TestBudgetService_OverviewAndAlerts(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/budget/overview/":
			_, _ = w.Write([]byte(`{
				"budgetSet": true, "budget": 1000, "spent": "850", "remaining": 150,
				"percentageUsed": 85, "alertLevel": "warning",
				"monthlyData": {"month": 3, "year": 2025, "period": {"startDate": "2025-03-01T00:00:00Z", "endDate": "2025-03-31T23:59:59Z"}},
				"categoryBreakdown": [{"categoryId": 4, "categoryName": "Rent", "amount": 600, "percentage": 70.6, "transactionCount": 1}]
			}`))
		case "/api/users/budget/alerts/":
			_, _ = w.Write([]byte(`{"currentStatus": "critical", "budgetSet": true, "alertsEnabled": true,
				"percentageUsed": 97.5, "lastAlerts": {"critical": "2025-03-20T08:00:00Z"}}`))
		}
	}))
	svc := NewBudgetService(env.client, env.toasts, env.logger)

	o, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.AlertWarning, o.AlertLevel)
	assert.InDelta(t, 850, o.Spent, 1e-9)
	require.NotNil(t, o.MonthlyData)
	assert.Equal(t, 3, o.MonthlyData.Month)
	require.Len(t, o.CategoryBreakdown, 1)
	assert.Equal(t, "4", o.CategoryBreakdown[0].CategoryID)

	s, err := svc.AlertSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.AlertCritical, s.CurrentStatus)
	assert.False(t, s.LastAlerts.Critical.IsZero())
	assert.Equal(t, models.AlertThresholds{Warning: 80, Critical: 95}, s.Thresholds)
}
