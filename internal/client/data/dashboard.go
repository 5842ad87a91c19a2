package data

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/balancio/internal/finance"
	"github.com/iudanet/balancio/internal/models"
	pkgapi "github.com/iudanet/balancio/pkg/api"
)

const (
	statisticsEndpoint = "dashboard/statistics"

	// snapshotMonths длина помесячного ряда в сводке
	snapshotMonths = 6
	// recentLimit число последних транзакций в сводке
	recentLimit = 5
)

// Snapshot все данные главного экрана, загруженные за один вызов
type Snapshot struct {
	Overview     *models.BudgetOverview // nil, если обзор бюджета недоступен
	Categories   []models.Category
	Recent       []models.Transaction
	ByCategory   []finance.CategoryTotal
	Monthly      []finance.MonthTotal
	Statistics   models.DashboardStatistics
	Totals       finance.Summary
	Transactions int
}

// DashboardService агрегаты главного экрана
type DashboardService struct {
	backend      Backend
	toaster      Toaster
	logger       *slog.Logger
	transactions *TransactionService
	categories   *CategoryService
	budget       *BudgetService
	now          func() time.Time
}

// NewDashboardService создает сервис главного экрана поверх остальных сервисов
func NewDashboardService(backend Backend, toaster Toaster, transactions *TransactionService,
	categories *CategoryService, budget *BudgetService, logger *slog.Logger,
) *DashboardService {
	return &DashboardService{
		backend:      backend,
		toaster:      toasterOrDiscard(toaster),
		logger:       loggerOrDefault(logger),
		transactions: transactions,
		categories:   categories,
		budget:       budget,
		now:          time.Now,
	}
}

// Statistics сравнение текущего и прошлого месяца
func (s *DashboardService) Statistics(ctx context.Context) (*models.DashboardStatistics, error) {
	var dto pkgapi.DashboardStatisticsDTO
	if err := s.backend.Get(ctx, statisticsEndpoint, &dto); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "load", object: "statistic", plural: true}, err)
	}
	stats := StatisticsFromDTO(dto)
	return &stats, nil
}

// Snapshot параллельно загружает статистику, транзакции, категории и обзор бюджета
// и считает локальные агрегаты. Недоступный обзор бюджета не считается ошибкой.
func (s *DashboardService) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		snap         Snapshot
		transactions []models.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.Statistics(gctx)
		if err != nil {
			return err
		}
		snap.Statistics = *stats
		return nil
	})
	g.Go(func() error {
		txs, err := s.transactions.List(gctx)
		if err != nil {
			return err
		}
		transactions = txs
		return nil
	})
	g.Go(func() error {
		cats, err := s.categories.List(gctx)
		if err != nil {
			return err
		}
		snap.Categories = cats
		return nil
	})
	g.Go(func() error {
		overview, err := s.budget.quietOverview(gctx)
		if err != nil {
			if errors.Is(gctx.Err(), context.Canceled) {
				return err
			}
			s.logger.Warn("budget overview unavailable", "error", err)
			return nil
		}
		snap.Overview = overview
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.Transactions = len(transactions)
	snap.Totals = finance.Totals(transactions)
	snap.ByCategory = finance.ExpensesByCategory(transactions, snap.Categories)
	snap.Monthly = finance.MonthlySeries(transactions, s.now(), snapshotMonths)
	snap.Recent = recent(transactions, recentLimit)
	return &snap, nil
}

// recent последние n транзакций по дате, новые первыми
func recent(transactions []models.Transaction, n int) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
