package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/balancio/internal/client/auth"
	"github.com/iudanet/balancio/internal/client/iocli"
	"github.com/iudanet/balancio/internal/client/storage/boltdb"
	"github.com/iudanet/balancio/internal/models"
)

// testEnv поддельный бэкенд и файлы клиента во временном каталоге
type testEnv struct {
	mux       *http.ServeMux
	server    *httptest.Server
	db        string
	downloads string
	ratesURL  string

	mu       sync.Mutex
	requests []recordedRequest
}

type recordedRequest struct {
	Header http.Header
	Body   map[string]any
	Method string
	Path   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		mux:       http.NewServeMux(),
		db:        filepath.Join(t.TempDir(), "client.db"),
		downloads: t.TempDir(),
	}
	env.server = httptest.NewServer(http.HandlerFunc(env.serve))
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) serve(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if r.Header.Get("Content-Type") == "application/json" {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	e.mu.Lock()
	e.requests = append(e.requests, recordedRequest{
		Header: r.Header.Clone(),
		Body:   body,
		Method: r.Method,
		Path:   r.URL.Path,
	})
	e.mu.Unlock()

	e.mux.ServeHTTP(w, r)
}

// handle регистрирует ответ JSON на шаблон вида "GET /api/transactions/{$}"
func (e *testEnv) handle(pattern string, status int, reply any) {
	e.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, reply)
	})
}

// last последний запрос к path
func (e *testEnv) last(t *testing.T, path string) recordedRequest {
	t.Helper()

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.requests) - 1; i >= 0; i-- {
		if e.requests[i].Path == path {
			return e.requests[i]
		}
	}
	t.Fatalf("no request to %s", path)
	return recordedRequest{}
}

func (e *testEnv) count(path string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, r := range e.requests {
		if r.Path == path {
			n++
		}
	}
	return n
}

// run выполняет команду клиента; input подается на stdin построчно
func (e *testEnv) run(t *testing.T, input []string, args ...string) (*iocli.Buffer, error) {
	t.Helper()

	buf := iocli.NewBuffer(input...)
	c := New(buf)
	defer c.Close()

	root := NewRootCommand(c, VersionInfo{Version: "test", BuildDate: "today", GitCommit: "abc123"})
	global := []string{
		"--server", e.server.URL + "/api",
		"--db", e.db,
		"--download-dir", e.downloads,
		"--locale", "en-US",
		"--log-level", "error",
		"--quiet",
	}
	if e.ratesURL != "" {
		global = append(global, "--rates-url", e.ratesURL)
	}
	root.SetArgs(append(global, args...))

	err := root.ExecuteContext(context.Background())
	return buf, err
}

// signIn сохраняет сессию в базе клиента, минуя бэкенд
func (e *testEnv) signIn(t *testing.T, user *models.User) {
	t.Helper()

	ctx := context.Background()
	db, err := boltdb.New(ctx, e.db)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	store := auth.NewSessionStore(db, nil)
	require.NoError(t, store.SetSession(ctx, "access-token", "refresh-token", user))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

var _ io.Writer = stderrWriter{}
