package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iudanet/balancio/internal/client/api"
	"github.com/iudanet/balancio/internal/models"
	pkgapi "github.com/iudanet/balancio/pkg/api"
)

const monthlyReportsEndpoint = "reports/monthly"

// ErrEmptyReport сервер вернул пустой файл отчета
var ErrEmptyReport = errors.New("empty file received")

// ReportService месячные отчеты
type ReportService struct {
	backend Backend
	toaster Toaster
	logger  *slog.Logger
}

// NewReportService создает сервис отчетов
func NewReportService(backend Backend, toaster Toaster, logger *slog.Logger) *ReportService {
	return &ReportService{
		backend: backend,
		toaster: toasterOrDiscard(toaster),
		logger:  loggerOrDefault(logger),
	}
}

// Monthly возвращает список месячных отчетов
func (s *ReportService) Monthly(ctx context.Context) ([]models.MonthlyReport, error) {
	var body []byte
	if err := s.backend.Get(ctx, monthlyReportsEndpoint, &body); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "load", object: "report", plural: true}, err)
	}

	dtos, err := pkgapi.DecodeList[pkgapi.MonthlyReportDTO](body)
	if err != nil {
		return nil, err
	}
	reports := make([]models.MonthlyReport, 0, len(dtos))
	for _, dto := range dtos {
		reports = append(reports, ReportFromDTO(dto))
	}
	return reports, nil
}

// ReportFilename имя файла отчета: Monthly-Report-January-2025.xlsx.
// Формат pdf дает расширение .pdf, любой другой .xlsx.
func ReportFilename(label, format string) string {
	ext := "xlsx"
	if format == models.ReportFormatPDF {
		ext = "pdf"
	}
	return fmt.Sprintf("Monthly-Report-%s.%s", strings.ReplaceAll(strings.TrimSpace(label), " ", "-"), ext)
}

// ReportLabel подпись месяца вида "January 2025"
func ReportLabel(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

// Download скачивает отчет за месяц и сохраняет его в dir.
// label подпись месяца; пустая подпись строится из year и month.
// Возвращает путь к сохраненному файлу.
func (s *ReportService) Download(ctx context.Context, year, month int, label, format, dir string) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month %d", month)
	}
	if label == "" {
		label = ReportLabel(year, month)
	}

	endpoint := fmt.Sprintf("%s/%d/%d/download", monthlyReportsEndpoint, year, month)
	blob, err := s.backend.GetBlob(ctx, endpoint)
	if err == nil && len(blob.Data) == 0 {
		err = ErrEmptyReport
	}
	if err != nil {
		s.downloadFailed(err)
		return "", err
	}

	path := filepath.Join(dir, ReportFilename(label, format))
	if err := os.WriteFile(path, blob.Data, 0o600); err != nil {
		s.downloadFailed(err)
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	s.logger.Info("report downloaded", "path", path, "bytes", len(blob.Data))
	s.toaster.Success("Download Successful", fmt.Sprintf("Report for %s has been downloaded successfully", label))
	return path, nil
}

func (s *ReportService) downloadFailed(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}

	reason := "Please try again"
	switch api.StatusCode(err) {
	case http.StatusNotFound:
		reason = "No data available for this month"
	case http.StatusUnauthorized:
		reason = "Please log in again"
	case http.StatusInternalServerError:
		reason = "Server error. Please contact support"
	default:
		if msg := api.ServerMessage(err); msg != "" {
			reason = msg
		} else if errors.Is(err, ErrEmptyReport) {
			reason = "Empty file received"
		}
	}

	s.logger.Error("report download failed", "status", api.StatusCode(err), "error", err)
	s.toaster.Error("Download Failed", "Failed to download report: "+reason)
}
