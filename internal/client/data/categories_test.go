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

func TestCategoryService_CRUD(t *testing.T) {
	rec := &recorder{}
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/categories/":
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 1, "name": "Food", "type": "expense", "color": "#ff0000"},
				{"id": 2, "name": "Salary", "type": "income", "icon": "work"},
			})
		case r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{"id": 1, "name": "Food", "type": "expense"})
		case r.Method == http.MethodPost, r.Method == http.MethodPut:
			writeJSON(w, http.StatusOK, map[string]any{"id": 3, "name": "Travel", "type": "expense"})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	svc := NewCategoryService(env.client, env.toasts, env.logger)
	ctx := context.Background()

	cats, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, models.DefaultCategoryIcon, cats[0].Icon)
	assert.Equal(t, "work", cats[1].Icon)

	c, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "/api/categories/1/", rec.path)
	assert.Equal(t, "Food", c.Name)

	c, err = svc.Create(ctx, models.CategoryInput{Name: "Travel", Type: models.TransactionExpense, Color: "#00aa00"})
	require.NoError(t, err)
	assert.Equal(t, "3", c.ID)
	assert.Equal(t, map[string]any{"name": "Travel", "type": "expense", "color": "#00aa00"}, rec.json(t))
	assert.Equal(t, "Category Created", env.lastToast(t).Title)

	_, err = svc.Update(ctx, "3", models.CategoryUpdate{Icon: "flight"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"icon": "flight"}, rec.json(t))

	require.NoError(t, svc.Delete(ctx, "3"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "Category Deleted", env.lastToast(t).Title)
}

func TestCategoryService_Validation(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler())
	svc := NewCategoryService(env.client, env.toasts, env.logger)

	_, err := svc.Create(context.Background(), models.CategoryInput{Name: "Bad", Type: models.TransactionExpense, Color: "red"})
	assert.ErrorIs(t, err, validation.ErrInvalidInput)

	_, err = svc.Update(context.Background(), "1", models.CategoryUpdate{})
	assert.ErrorIs(t, err, validation.ErrInvalidInput)
}

func TestCategoryService_ListFailure(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := NewCategoryService(env.client, env.toasts, env.logger).List(context.Background())
	require.Error(t, err)

	toast := env.lastToast(t)
	assert.Equal(t, "Failed to Load Categories", toast.Title)
	assert.Equal(t, "Server error. Please try again later.", toast.Message)
}

func TestServices_WithoutToaster(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/users/budget/":
			writeJSON(w, http.StatusOK, map[string]any{"monthlyBudget": map[string]any{"amount": 1500, "currency": "USD"}})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/api/categories/broken/":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			writeJSON(w, http.StatusOK, map[string]any{"id": 3, "name": "Travel", "type": "expense"})
		}
	}))
	ctx := context.Background()

	categories := NewCategoryService(env.client, nil, env.logger)
	require.NotPanics(t, func() {
		_, err := categories.Create(ctx, models.CategoryInput{Name: "Travel", Type: models.TransactionExpense})
		require.NoError(t, err)
		_, err = categories.Update(ctx, "3", models.CategoryUpdate{Icon: "flight"})
		require.NoError(t, err)
		require.NoError(t, categories.Delete(ctx, "3"))
		_, err = categories.Get(ctx, "broken")
		require.Error(t, err)
	})

	budget := NewBudgetService(env.client, nil, env.logger)
	require.NotPanics(t, func() {
		b, err := budget.Update(ctx, models.BudgetInput{Amount: 1500, Currency: "usd"})
		require.NoError(t, err)
		assert.InDelta(t, 1500, b.Amount, 1e-9)
	})
	assert.Empty(t, env.toasts.Toasts())
}
