package data

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/balancio/internal/models"
)

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "Monthly-Report-January-2025.pdf", ReportFilename("January 2025", models.ReportFormatPDF))
	assert.Equal(t, "Monthly-Report-January-2025.xlsx", ReportFilename("January 2025", models.ReportFormatExcel))
	assert.Equal(t, "Monthly-Report-May-2024.xlsx", ReportFilename("May 2024", ""))
	assert.Equal(t, "March 2025", ReportLabel(2025, 3))
}

func TestReportService_Monthly(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reports/monthly/", r.URL.Path)
		_, _ = w.Write([]byte(`[{"month":"February 2025","year":2025,"monthNumber":2,"totalIncome":100,
			"totalExpenses":40,"netSavings":60,"transactionCount":2,"topCategories":[["Food",40]]}]`))
	}))

	reports, err := NewReportService(env.client, env.toasts, env.logger).Monthly(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 2, reports[0].MonthNumber)
	assert.InDelta(t, 60, reports[0].NetSavings, 1e-9)
}

func TestReportService_Download(t *testing.T) {
	rec := &recorder{}
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	dir := t.TempDir()

	path, err := NewReportService(env.client, env.toasts, env.logger).
		Download(context.Background(), 2025, 1, "", models.ReportFormatPDF, dir)
	require.NoError(t, err)
	assert.Equal(t, "/api/reports/monthly/2025/1/download/", rec.path)
	assert.Equal(t, filepath.Join(dir, "Monthly-Report-January-2025.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	toast := env.lastToast(t)
	assert.Equal(t, "Download Successful", toast.Title)
	assert.Equal(t, "Report for January 2025 has been downloaded successfully", toast.Message)
}

func TestReportService_DownloadFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "not found", status: http.StatusNotFound, message: "Failed to download report: No data available for this month"},
		{name: "unauthorized", status: http.StatusUnauthorized, message: "Failed to download report: Please log in again"},
		{name: "server error", status: http.StatusInternalServerError, message: "Failed to download report: Server error. Please contact support"},
		{name: "server message", status: http.StatusBadRequest, body: `{"message":"Report not ready"}`, message: "Failed to download report: Report not ready"},
		{name: "generic", status: http.StatusBadGateway, message: "Failed to download report: Please try again"},
		{name: "empty file", status: http.StatusOK, message: "Failed to download report: Empty file received"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			dir := t.TempDir()

			_, err := NewReportService(env.client, env.toasts, env.logger).
				Download(context.Background(), 2025, 2, "February 2025", models.ReportFormatExcel, dir)
			require.Error(t, err)

			toast := env.lastToast(t)
			assert.Equal(t, "Download Failed", toast.Title)
			assert.Equal(t, tt.message, toast.Message)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "nothing is written on failure")
		})
	}
}

func TestReportService_DownloadInvalidMonth(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler())
	_, err := NewReportService(env.client, env.toasts, env.logger).
		Download(context.Background(), 2025, 13, "", "", t.TempDir())
	assert.Error(t, err)
}
