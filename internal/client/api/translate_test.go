package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractErrorDetails(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		title   string
		message string
	}{
		{
			name:    "error and message",
			status:  400,
			body:    `{"error":"Invalid Data","message":"Amount must be positive"}`,
			title:   "Invalid Data",
			message: "Amount must be positive",
		},
		{
			name:    "detail",
			status:  400,
			body:    `{"detail":"Not allowed"}`,
			title:   "Validation Error",
			message: "Not allowed",
		},
		{
			name:    "first field in document order",
			status:  400,
			body:    `{"title":["This field is required."],"amount":["Must be positive."]}`,
			title:   "Validation Error",
			message: "title: This field is required.",
		},
		{
			name:    "skips non-array fields",
			status:  400,
			body:    `{"code":17,"zeta":[],"amount":["Must be positive."]}`,
			title:   "Validation Error",
			message: "amount: Must be positive.",
		},
		{
			name:    "only error without message",
			status:  400,
			body:    `{"error":"Invalid"}`,
			title:   "Bad Request",
			message: "The request could not be understood by the server.",
		},
		{
			name:    "not json",
			status:  418,
			body:    `<html>teapot</html>`,
			title:   "Error 418",
			message: "I'm a teapot",
		},
		{
			name:    "empty body 404",
			status:  404,
			body:    ``,
			title:   "Not Found",
			message: "The requested resource was not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractErrorDetails(tt.status, []byte(tt.body))
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestErrorTranslation_ServerErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		title    string
		message  string
		navigate bool
	}{
		{
			name:    "400 with details",
			status:  400,
			body:    `{"title":["This field is required."]}`,
			title:   "Validation Error",
			message: "title: This field is required.",
		},
		{
			name:     "401",
			status:   401,
			title:    "Authentication Required",
			message:  "Please log in to continue.",
			navigate: true,
		},
		{
			name:    "403",
			status:  403,
			title:   "Access Denied",
			message: "You do not have permission to perform this action.",
		},
		{
			name:    "404",
			status:  404,
			title:   "Resource Not Found",
			message: "The requested resource could not be found.",
		},
		{
			name:    "422",
			status:  422,
			body:    `{"email":["Enter a valid email address."]}`,
			title:   "Validation Error",
			message: "email: Enter a valid email address.",
		},
		{
			name:    "500",
			status:  500,
			title:   "Server Error",
			message: "An unexpected error occurred on the server. Please try again later.",
		},
		{
			name:    "503",
			status:  503,
			title:   "Service Unavailable",
			message: "The service is temporarily unavailable. Please try again later.",
		},
		{
			name:    "409 with message",
			status:  409,
			body:    `{"error":"Conflict","message":"Category already exists"}`,
			title:   "Conflict",
			message: "Category already exists",
		},
		{
			name:    "409 without body",
			status:  409,
			title:   "Error 409",
			message: "Conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := newTestChannel(t)
			nav := &fakeNavigator{}
			logger, _ := newTestLogger()

			httpErr := &HTTPError{StatusCode: tt.status, Body: []byte(tt.body)}
			next := func(context.Context, *Request) (*Response, error) { return nil, httpErr }

			_, err := ErrorTranslation(ch, nav, logger)(next)(context.Background(), &Request{Method: http.MethodGet, URL: testBaseURL + "/x/"})

			// Ошибка всегда пробрасывается дальше
			require.ErrorIs(t, err, httpErr)

			toasts := ch.Toasts()
			require.Len(t, toasts, 1)
			assert.Equal(t, tt.title, toasts[0].Title)
			assert.Equal(t, tt.message, toasts[0].Message)
			assert.Equal(t, 6*time.Second, toasts[0].Duration)

			if tt.navigate {
				assert.Equal(t, 1, nav.Calls())
			} else {
				assert.Zero(t, nav.Calls())
			}
		})
	}
}

func TestErrorTranslation_NetworkError(t *testing.T) {
	ch := newTestChannel(t)
	next := func(context.Context, *Request) (*Response, error) {
		return nil, &NetworkError{Err: assert.AnError}
	}

	_, err := ErrorTranslation(ch, nil, nil)(next)(context.Background(), &Request{URL: testBaseURL})
	require.Error(t, err)

	toasts := ch.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Network Error", toasts[0].Title)
	assert.Equal(t, "Please check your internet connection and try again.", toasts[0].Message)
}

func TestErrorTranslation_SkipsNotified(t *testing.T) {
	ch := newTestChannel(t)
	next := func(context.Context, *Request) (*Response, error) {
		return nil, MarkNotified(&HTTPError{StatusCode: 503})
	}

	_, err := ErrorTranslation(ch, nil, nil)(next)(context.Background(), &Request{URL: "https://example.org"})
	require.Error(t, err)
	assert.Empty(t, ch.Toasts())
}

func TestErrorTranslation_SkipsCanceledAndQuiet(t *testing.T) {
	ch := newTestChannel(t)

	canceled := func(context.Context, *Request) (*Response, error) {
		return nil, &NetworkError{Err: context.Canceled}
	}
	_, err := ErrorTranslation(ch, nil, nil)(canceled)(context.Background(), &Request{URL: testBaseURL})
	require.Error(t, err)

	failing := func(context.Context, *Request) (*Response, error) {
		return nil, &HTTPError{StatusCode: 500}
	}
	_, err = ErrorTranslation(ch, nil, nil)(failing)(context.Background(), &Request{URL: testBaseURL, Quiet: true})
	require.Error(t, err)

	assert.Empty(t, ch.Toasts())
}

func TestErrorTranslation_Success(t *testing.T) {
	ch := newTestChannel(t)
	want := &Response{StatusCode: 200}
	next := func(context.Context, *Request) (*Response, error) { return want, nil }

	got, err := ErrorTranslation(ch, nil, nil)(next)(context.Background(), &Request{URL: testBaseURL})
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Empty(t, ch.Toasts())
}

func TestErrorTranslation_AnonymousUnauthorized(t *testing.T) {
	ch := newTestChannel(t)
	nav := &fakeNavigator{}
	next := func(context.Context, *Request) (*Response, error) {
		return nil, &HTTPError{StatusCode: http.StatusUnauthorized, Body: []byte(`{"detail":"Invalid credentials"}`)}
	}

	req := &Request{Method: http.MethodPost, URL: testBaseURL + "/auth/login/", Anonymous: true}
	_, err := ErrorTranslation(ch, nav, nil)(next)(context.Background(), req)
	require.Error(t, err)

	// неверный пароль не завершает существующую сессию
	assert.Zero(t, nav.Calls())

	toasts := ch.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Authentication Failed", toasts[0].Title)
	assert.Equal(t, "Invalid credentials", toasts[0].Message)
}
