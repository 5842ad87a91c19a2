// Package cli реализует команды терминального клиента Balancio.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/iudanet/balancio/internal/client/api"
	"github.com/iudanet/balancio/internal/client/auth"
	"github.com/iudanet/balancio/internal/client/config"
	"github.com/iudanet/balancio/internal/client/data"
	"github.com/iudanet/balancio/internal/client/iocli"
	"github.com/iudanet/balancio/internal/client/loader"
	"github.com/iudanet/balancio/internal/client/notify"
	"github.com/iudanet/balancio/internal/client/storage"
	"github.com/iudanet/balancio/internal/client/storage/boltdb"
	"github.com/iudanet/balancio/internal/finance"
)

// errNotAuthenticated текст ошибки для команд, требующих входа
var errNotAuthenticated = errors.New("not authenticated. Please run 'balancio login' first")

// Cli зависимости команд. Собирается один раз перед выполнением команды.
type Cli struct {
	io     iocli.IO
	cfg    config.Config
	logger *slog.Logger

	db       *boltdb.Storage
	prefs    storage.PreferenceStorage
	session  *auth.SessionStore
	toasts   *notify.Channel
	loader   *loader.Coordinator
	client   *api.Client
	currency finance.Currency

	authService  *auth.Service
	transactions *data.TransactionService
	categories   *data.CategoryService
	budget       *data.BudgetService
	users        *data.UserService
	dashboard    *data.DashboardService
	reports      *data.ReportService
	rates        *data.RatesService

	cleanup []func()
	once    sync.Once
}

// New создает Cli, выводящий в io
func New(io iocli.IO) *Cli {
	return &Cli{io: io}
}

// bootstrap открывает хранилище и собирает цепочку запросов и сервисы
func (c *Cli) bootstrap(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.cfg = cfg

	level, _ := cfg.SlogLevel()
	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.db = db
	c.prefs = db
	c.onClose(func() {
		if err := db.Close(); err != nil {
			c.logger.Error("failed to close database", "error", err)
		}
	})

	c.toasts = notify.NewChannel(
		notify.WithDefaultDuration(cfg.ToastDuration),
		notify.WithLogger(c.logger),
	)
	c.onClose(c.toasts.Close)
	c.onClose(c.toasts.Subscribe(newToastPrinter(c.io).render))

	c.loader = loader.New()
	if !cfg.Quiet {
		spin := newSpinner(c.io)
		c.onClose(spin.stop)
		c.onClose(c.loader.Subscribe(spin.toggle))
	}

	c.session = auth.NewSessionStore(db, c.logger)
	c.client = api.NewClient(cfg.ServerURL,
		api.WithLogger(c.logger),
		api.WithTokenSource(c.session),
		api.WithMiddleware(api.Pipeline(api.PipelineConfig{
			Toaster:         c.toasts,
			Navigator:       &loginNavigator{session: c.session, io: c.io},
			Tracker:         c.loader,
			Logger:          c.logger,
			BaseURL:         cfg.ServerURL,
			ExternalTimeout: cfg.ExternalTimeout,
			ExternalRetries: uint64(cfg.ExternalRetries),
		})),
	)

	c.currency = c.detectCurrency(ctx)

	c.authService = auth.NewService(c.client, c.session, c.logger)
	c.transactions = data.NewTransactionService(c.client, c.toasts, c.currency, c.logger)
	c.categories = data.NewCategoryService(c.client, c.toasts, c.logger)
	c.budget = data.NewBudgetService(c.client, c.toasts, c.logger)
	c.users = data.NewUserService(c.client, c.toasts, c.session, c.logger)
	c.dashboard = data.NewDashboardService(c.client, c.toasts, c.transactions, c.categories, c.budget, c.logger)
	c.reports = data.NewReportService(c.client, c.toasts, c.logger)
	c.rates = data.NewRatesService(c.client, cfg.RatesURL)

	c.logger.Debug("client initialized", "server", cfg.ServerURL, "db", cfg.DBPath, "currency", c.currency.Code)
	return nil
}

// detectCurrency валюта вывода: из профиля сохраненной сессии, иначе по локали
func (c *Cli) detectCurrency(ctx context.Context) finance.Currency {
	if user := c.session.CurrentUser(ctx); user != nil {
		for _, code := range []string{user.PreferredCurrency, user.Budget.Currency} {
			if code != "" {
				return finance.CurrencyForCode(code)
			}
		}
	}
	return finance.CurrencyForLocale(c.cfg.Locale)
}

// Close освобождает ресурсы в обратном порядке; повторный вызов ничего не делает
func (c *Cli) Close() {
	c.once.Do(func() {
		for i := len(c.cleanup) - 1; i >= 0; i-- {
			c.cleanup[i]()
		}
	})
}

func (c *Cli) onClose(fn func()) {
	c.cleanup = append(c.cleanup, fn)
}

// requireAuth возвращает ошибку, если сессии нет
func (c *Cli) requireAuth(ctx context.Context) error {
	if !c.session.IsAuthenticated(ctx) {
		return errNotAuthenticated
	}
	return nil
}

// ask возвращает value или, если оно пустое, спрашивает пользователя
func (c *Cli) ask(value, prompt string) (string, error) {
	if value = strings.TrimSpace(value); value != "" {
		return value, nil
	}
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return input, nil
}

// loginNavigator реакция на 401: сессия удаляется, пользователю предлагается войти снова
type loginNavigator struct {
	session *auth.SessionStore
	io      iocli.IO
}

func (n *loginNavigator) ToLogin(ctx context.Context) {
	if err := n.session.Clear(ctx); err != nil {
		n.io.Errorf("Failed to clear session: %v\n", err)
	}
	n.io.Errorf("Your session has ended. Run 'balancio login' to sign in again.\n")
}
