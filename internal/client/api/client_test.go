package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgapi "github.com/iudanet/balancio/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/api/")

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080/api", client.BaseURL())
	assert.NotNil(t, client.httpClient)
	// Внутренние запросы ограничены только контекстом вызывающего
	assert.Zero(t, client.httpClient.Timeout)
}

func TestClient_Endpoint(t *testing.T) {
	client := NewClient("https://example.com/api")

	assert.Equal(t, "https://example.com/api/transactions/", client.Endpoint("transactions"))
	assert.Equal(t, "https://example.com/api/transactions/42/", client.Endpoint("/transactions/42/"))
	assert.Equal(t, "https://example.com/api/transactions/export/?fileType=xlsx", client.Endpoint("transactions/export?fileType=xlsx"))
	assert.Equal(t, "https://example.com/api/users/activity/?limit=10", client.Endpoint("users/activity?limit=10"))
}

// TestClient_Login проверяет анонимный запрос входа
func TestClient_PostAnonymous(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var req pkgapi.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ada@example.com", req.Email)

		_ = json.NewEncoder(w).Encode(pkgapi.AuthResponse{Access: "access", Refresh: "refresh"})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api", WithTokenSource(staticToken("stored-token")))

	var resp pkgapi.AuthResponse
	err := client.PostAnonymous(context.Background(), "auth/login", pkgapi.LoginRequest{Email: "ada@example.com", Password: "pw"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "access", resp.Access)
}

func TestClient_BearerToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "token present", token: "abc", want: "Bearer abc"},
		{name: "no token", token: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.want, r.Header.Get("Authorization"))
				_, _ = w.Write([]byte(`[]`))
			}))
			defer server.Close()

			client := NewClient(server.URL, WithTokenSource(staticToken(tt.token)))
			var out []any
			require.NoError(t, client.Get(context.Background(), "categories", &out))
		})
	}
}

func TestClient_ExternalHasNoBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "Balancio-App/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9}}`))
	}))
	defer server.Close()

	ch := newTestChannel(t)
	client := NewClient("https://balancio.example.com/api",
		WithTokenSource(staticToken("secret")),
		WithMiddleware(Pipeline(PipelineConfig{
			BaseURL: "https://balancio.example.com/api",
			Toaster: ch,
			Tracker: &fakeTracker{},
		})),
	)

	var rates pkgapi.ExchangeRatesDTO
	require.NoError(t, client.Fetch(context.Background(), http.MethodGet, server.URL+"/v4/latest/USD", nil, &rates))
	assert.Equal(t, "USD", rates.Base)
	assert.InDelta(t, 0.9, rates.Rates["EUR"], 0.0001)
}

func TestClient_InternalHasNoExternalHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEqual(t, "Balancio-App/1.0", r.Header.Get("User-Agent"))
		assert.Empty(t, r.Header.Get("Cache-Control"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithMiddleware(Pipeline(PipelineConfig{
		BaseURL: server.URL,
		Toaster: newTestChannel(t),
		Tracker: &fakeTracker{},
	})))
	require.NoError(t, client.Get(context.Background(), "users/profile", nil))
}

func TestClient_GetBlob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/monthly/2025/1/download/", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	blob, err := client.GetBlob(context.Background(), "reports/monthly/2025/1/download")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", blob.ContentType)
	assert.Equal(t, "report.pdf", blob.Filename)
	assert.Equal(t, []byte("%PDF-1.4"), blob.Data)
}

func TestClient_PostMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("avatar")
		require.NoError(t, err)
		defer file.Close()

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "me.png", header.Filename)
		assert.Equal(t, []byte("png-bytes"), content)

		_, _ = w.Write([]byte(`{"user":{"id":1,"email":"ada@example.com","avatar":"https://cdn/x.png"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	var resp pkgapi.UserEnvelope
	err := client.PostMultipart(context.Background(), "users/avatar", "avatar", "me.png", "image/png", []byte("png-bytes"), &resp)
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "https://cdn/x.png", resp.User.Avatar)
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	var out map[string]any
	err := client.Get(context.Background(), "x", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.Get(ctx, "slow", nil)
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
}

// TestClient_PipelineOrder проверяет полный путь запроса через перехватчики
func TestClient_PipelineOrder(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer backend.Close()

	// Другой порт означает другой хост, то есть внешний сервис
	external := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer external.Close()

	ch := newTestChannel(t)
	tracker := &fakeTracker{}
	nav := &fakeNavigator{}
	logger, _ := newTestLogger()

	client := NewClient(backend.URL+"/api", WithLogger(logger), WithMiddleware(Pipeline(PipelineConfig{
		BaseURL:         backend.URL + "/api",
		Toaster:         ch,
		Navigator:       nav,
		Tracker:         tracker,
		Logger:          logger,
		ExternalTimeout: 5 * time.Second,
		ExternalRetries: DefaultExternalRetries,
	})))

	// Внутренний запрос: одна попытка, одно уведомление от ErrorTranslation
	err := client.Get(context.Background(), "transactions/99", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	started, done := tracker.counts()
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, done)

	toasts := ch.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Resource Not Found", toasts[0].Title)
	ch.DismissAll()

	// Внешний запрос: три попытки, ровно одно уведомление от ExternalAPI
	err = client.Fetch(context.Background(), http.MethodGet, external.URL+"/rates", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNotified(err))
	started, done = tracker.counts()
	assert.Equal(t, 4, started)
	assert.Equal(t, 4, done)

	toasts = ch.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "External Service Unavailable", toasts[0].Title)
	assert.Zero(t, nav.Calls())
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestClient_LookalikeHostHasNoBearer(t *testing.T) {
	var got http.Header
	httpClient := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		got = r.Header.Clone()
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Request:    r,
		}, nil
	})}

	client := NewClient("https://x.com", WithHTTPClient(httpClient), WithTokenSource(staticToken("secret")))

	require.NoError(t, client.Fetch(context.Background(), http.MethodGet, "https://x.com.evil.io/steal", nil, nil))
	assert.Empty(t, got.Get("Authorization"))

	require.NoError(t, client.Fetch(context.Background(), http.MethodGet, "https://x.com/api/profile/", nil, nil))
	assert.Equal(t, "Bearer secret", got.Get("Authorization"))
}
