package data

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/iudanet/balancio/internal/client/api"
	"github.com/iudanet/balancio/internal/finance"
	"github.com/iudanet/balancio/internal/models"
	"github.com/iudanet/balancio/internal/validation"
	pkgapi "github.com/iudanet/balancio/pkg/api"
)

const transactionsEndpoint = "transactions"

// Export formats
const (
	ExportCSV   = "csv"
	ExportExcel = "excel"
	ExportPDF   = "pdf"
)

// TransactionService операции с транзакциями пользователя
type TransactionService struct {
	backend   Backend
	toaster   Toaster
	logger    *slog.Logger
	listeners changeListeners
	currency  finance.Currency
}

// NewTransactionService создает сервис транзакций.
// currency используется в тексте уведомлений о новых транзакциях.
func NewTransactionService(backend Backend, toaster Toaster, currency finance.Currency, logger *slog.Logger) *TransactionService {
	logger = loggerOrDefault(logger)
	return &TransactionService{
		backend:   backend,
		toaster:   toasterOrDiscard(toaster),
		logger:    logger,
		currency:  currency,
		listeners: changeListeners{logger: logger},
	}
}

// Subscribe регистрирует обработчик, вызываемый после создания, изменения или удаления транзакции
func (s *TransactionService) Subscribe(fn func()) (cancel func()) {
	return s.listeners.subscribe(fn)
}

// List возвращает все транзакции пользователя
func (s *TransactionService) List(ctx context.Context) ([]models.Transaction, error) {
	var body []byte
	if err := s.backend.Get(ctx, transactionsEndpoint, &body); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "load", object: "transaction", plural: true}, err)
	}

	dtos, err := pkgapi.DecodeList[pkgapi.TransactionDTO](body)
	if err != nil {
		return nil, err
	}
	return TransactionsFromDTO(dtos), nil
}

// Get возвращает транзакцию по идентификатору
func (s *TransactionService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	var dto pkgapi.TransactionDTO
	if err := s.backend.Get(ctx, transactionPath(id), &dto); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "load", object: "transaction"}, err)
	}
	tx := TransactionFromDTO(dto)
	return &tx, nil
}

// Create создает транзакцию. Категория уходит голым идентификатором, дата в виде YYYY-MM-DD.
func (s *TransactionService) Create(ctx context.Context, in models.TransactionInput) (*models.Transaction, error) {
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	req := pkgapi.TransactionRequest{
		Title:       in.Title,
		Type:        string(in.Type),
		Category:    in.CategoryID,
		Description: in.Description,
		Date:        in.Date.Format(time.DateOnly),
		Amount:      in.Amount,
	}

	var dto pkgapi.TransactionDTO
	if err := s.backend.Post(ctx, transactionsEndpoint, req, &dto); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "create", object: "transaction"}, err)
	}
	tx := TransactionFromDTO(dto)

	message := fmt.Sprintf("%s - %s", tx.Title, s.currency.Format(tx.Amount))
	if tx.Type == models.TransactionIncome {
		s.toaster.Success("Income Added", message)
	} else {
		s.toaster.Info("Expense Added", message)
	}

	s.listeners.notify()
	return &tx, nil
}

// Update частично изменяет транзакцию: отправляются только заданные поля
func (s *TransactionService) Update(ctx context.Context, id string, in models.TransactionUpdate) (*models.Transaction, error) {
	if in.Empty() {
		return nil, fmt.Errorf("%w: nothing to update", validation.ErrInvalidInput)
	}
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	patch := pkgapi.TransactionPatch{
		Title:       in.Title,
		Category:    in.CategoryID,
		Description: in.Description,
		Amount:      in.Amount,
	}
	if in.Type != nil {
		typ := string(*in.Type)
		patch.Type = &typ
	}
	if in.Date != nil {
		date := in.Date.Format(time.DateOnly)
		patch.Date = &date
	}

	var dto pkgapi.TransactionDTO
	if err := s.backend.Put(ctx, transactionPath(id), patch, &dto); err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "update", object: "transaction"}, err)
	}
	tx := TransactionFromDTO(dto)

	s.listeners.notify()
	return &tx, nil
}

// Delete удаляет транзакцию
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, transactionPath(id), nil); err != nil {
		return fail(s.toaster, s.logger, operation{verb: "delete", object: "transaction"}, err)
	}

	s.toaster.Info("Transaction Deleted", "Transaction has been successfully removed")
	s.listeners.notify()
	return nil
}

// Export выгружает транзакции в файл указанного формата
func (s *TransactionService) Export(ctx context.Context, fileType string) (*api.Blob, error) {
	endpoint := transactionsEndpoint + "/export?" + url.Values{"fileType": {fileType}}.Encode()
	blob, err := s.backend.GetBlob(ctx, endpoint)
	if err != nil {
		return nil, fail(s.toaster, s.logger, operation{verb: "export", object: "transaction", plural: true}, err)
	}
	return blob, nil
}

// Suggestions подсказки названий для автодополнения
func (s *TransactionService) Suggestions(ctx context.Context, typ models.TransactionType, query string) ([]string, error) {
	params := url.Values{"type": {string(typ)}}
	if query != "" {
		params.Set("q", query)
	}

	var resp pkgapi.SuggestionsResponse
	if err := s.backend.Get(ctx, transactionsEndpoint+"/suggestions?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Suggestions == nil {
		return []string{}, nil
	}
	return resp.Suggestions, nil
}

func transactionPath(id string) string {
	return transactionsEndpoint + "/" + url.PathEscape(id)
}
