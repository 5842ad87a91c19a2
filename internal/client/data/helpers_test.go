package data

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/balancio/internal/client/api"
	"github.com/iudanet/balancio/internal/client/notify"
	"github.com/iudanet/balancio/internal/finance"
)

// testEnv поддельный бэкенд, клиент к нему и канал уведомлений
type testEnv struct {
	server *httptest.Server
	client *api.Client
	toasts *notify.Channel
	logger *slog.Logger
}

func newTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ch := notify.NewChannel(notify.WithDefaultDuration(time.Hour))
	t.Cleanup(ch.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testEnv{
		server: srv,
		client: api.NewClient(srv.URL+"/api", api.WithLogger(logger)),
		toasts: ch,
		logger: logger,
	}
}

func (e *testEnv) transactions() *TransactionService {
	return NewTransactionService(e.client, e.toasts, finance.CurrencyForCode("USD"), e.logger)
}

// titles заголовки показанных уведомлений
func (e *testEnv) titles() []string {
	var out []string
	for _, toast := range e.toasts.Toasts() {
		out = append(out, toast.Title)
	}
	return out
}

func (e *testEnv) lastToast(t *testing.T) notify.Toast {
	t.Helper()
	toasts := e.toasts.Toasts()
	require.NotEmpty(t, toasts)
	return toasts[len(toasts)-1]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// recorder запоминает последний запрос к поддельному бэкенду
type recorder struct {
	mu     sync.Mutex
	method string
	path   string
	query  string
	body   []byte
	calls  int
}

func (r *recorder) record(req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.method = req.Method
	r.path = req.URL.Path
	r.query = req.URL.RawQuery
	r.body = body
	r.calls++
}

func (r *recorder) json(t *testing.T) map[string]any {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	var m map[string]any
	require.NoError(t, json.Unmarshal(r.body, &m))
	return m
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
