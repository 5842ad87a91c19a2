package data

import (
	"context"
	"log/slog"
	"strings"

	"github.com/iudanet/balancio/internal/models"
	"github.com/iudanet/balancio/internal/validation"
	pkgapi "github.com/iudanet/balancio/pkg/api"
)

const (
	budgetEndpoint         = "users/budget"
	budgetOverviewEndpoint = "users/budget/overview"
	budgetAlertsEndpoint   = "users/budget/alerts"
)

// BudgetService месячный бюджет и его анализ
type BudgetService struct {
	backend Backend
	toaster Toaster
	logger  *slog.Logger
}

// NewBudgetService создает сервис бюджета
func NewBudgetService(backend Backend, toaster Toaster, logger *slog.Logger) *BudgetService {
	return &BudgetService{
		backend: backend,
		toaster: toasterOrDiscard(toaster),
		logger:  loggerOrDefault(logger),
	}
}

// Get возвращает месячный бюджет; ErrBudgetNotSet, если он не задан
func (s *BudgetService) Get(ctx context.Context) (*models.MonthlyBudget, error) {
	var resp pkgapi.BudgetEnvelope
	if err := s.backend.Get(ctx, budgetEndpoint, &resp); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "load", object: "budget"}, err)
	}

	budget := BudgetFromDTO(resp.MonthlyBudget)
	if budget == nil {
		return nil, ErrBudgetNotSet
	}
	return budget, nil
}

// Update сохраняет месячный бюджет и пороги оповещений
func (s *BudgetService) Update(ctx context.Context, in models.BudgetInput) (*models.MonthlyBudget, error) {
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	req := pkgapi.BudgetUpdateRequest{
		Amount:   in.Amount,
		Currency: strings.ToUpper(in.Currency),
	}
	if in.Thresholds != nil {
		req.AlertThresholds = &pkgapi.BudgetThresholdsRequest{
			Warning:  in.Thresholds.Warning,
			Critical: in.Thresholds.Critical,
		}
	}

	var resp pkgapi.BudgetEnvelope
	if err := s.backend.Put(ctx, budgetEndpoint, req, &resp); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "update", object: "budget"}, err)
	}

	s.toaster.Success("Budget Updated", "Your monthly budget has been saved")

	budget := BudgetFromDTO(resp.MonthlyBudget)
	if budget == nil {
		// нулевой бюджет означает, что бюджет снят
		return nil, ErrBudgetNotSet
	}
	return budget, nil
}

// Overview возвращает расходы текущего месяца относительно бюджета
func (s *BudgetService) Overview(ctx context.Context) (*models.BudgetOverview, error) {
	var dto pkgapi.BudgetOverviewDTO
	if err := s.backend.Get(ctx, budgetOverviewEndpoint, &dto); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "load", object: "budget overview"}, err)
	}
	o := BudgetOverviewFromDTO(dto)
	return &o, nil
}

// quietOverview как Overview, но ошибки не показываются пользователю
func (s *BudgetService) quietOverview(ctx context.Context) (*models.BudgetOverview, error) {
	var dto pkgapi.BudgetOverviewDTO
	if err := s.backend.GetQuiet(ctx, budgetOverviewEndpoint, &dto); err != nil {
		return nil, err
	}
	o := BudgetOverviewFromDTO(dto)
	return &o, nil
}

// AlertSummary возвращает состояние оповещений бюджета
func (s *BudgetService) AlertSummary(ctx context.Context) (*models.BudgetAlertSummary, error) {
	var dto pkgapi.BudgetAlertSummaryDTO
	if err := s.backend.Get(ctx, budgetAlertsEndpoint, &dto); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "load", object: "budget alert", plural: true}, err)
	}
	summary := BudgetAlertSummaryFromDTO(dto)
	return &summary, nil
}
