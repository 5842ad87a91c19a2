package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// Client представляет HTTP клиент для взаимодействия с бэкендом
type Client struct {
	httpClient  *http.Client
	tokens      TokenSource
	logger      *slog.Logger
	handler     Handler
	baseURL     string
	middlewares []Middleware
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient задает HTTP клиент транспорта
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTokenSource задает источник токена доступа
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithLogger задает логгер транспорта
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMiddleware добавляет перехватчики; первый становится внешним
func WithMiddleware(mws ...Middleware) Option {
	return func(c *Client) {
		c.middlewares = append(c.middlewares, mws...)
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
		httpClient: &http.Client{
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе на тот же хост
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" && strings.EqualFold(req.URL.Host, via[0].URL.Host) {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.handler = Chain(c.middlewares...)(Transport(c.httpClient, c.logger))
	return c
}

// BaseURL возвращает базовый адрес бэкенда
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint строит URL вида base/endpoint/ и сохраняет query после завершающего слэша
func (c *Client) Endpoint(endpoint string) string {
	path, query, hasQuery := strings.Cut(strings.TrimLeft(endpoint, "/"), "?")
	u := c.baseURL + "/" + strings.TrimRight(path, "/") + "/"
	if hasQuery {
		u += "?" + query
	}
	return u
}

// Do пропускает запрос через цепочку перехватчиков и транспорт
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	c.authorize(ctx, r)
	return c.handler(ctx, r)
}

// Get выполняет GET запрос к эндпоинту бэкенда
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.doJSON(ctx, &Request{Method: http.MethodGet, URL: c.Endpoint(endpoint)}, nil, out)
}

// GetQuiet выполняет GET, ошибки которого не показываются пользователю
func (c *Client) GetQuiet(ctx context.Context, endpoint string, out any) error {
	return c.doJSON(ctx, &Request{Method: http.MethodGet, URL: c.Endpoint(endpoint), Quiet: true}, nil, out)
}

// Post выполняет POST запрос с JSON телом
func (c *Client) Post(ctx context.Context, endpoint string, in, out any) error {
	return c.doJSON(ctx, &Request{Method: http.MethodPost, URL: c.Endpoint(endpoint)}, in, out)
}

// Put выполняет PUT запрос с JSON телом
func (c *Client) Put(ctx context.Context, endpoint string, in, out any) error {
	return c.doJSON(ctx, &Request{Method: http.MethodPut, URL: c.Endpoint(endpoint)}, in, out)
}

// Patch выполняет PATCH запрос с JSON телом
func (c *Client) Patch(ctx context.Context, endpoint string, in, out any) error {
	return c.doJSON(ctx, &Request{Method: http.MethodPatch, URL: c.Endpoint(endpoint)}, in, out)
}

// Delete выполняет DELETE запрос
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.doJSON(ctx, &Request{Method: http.MethodDelete, URL: c.Endpoint(endpoint)}, nil, out)
}

// PostAnonymous выполняет POST без токена доступа (вход, регистрация)
func (c *Client) PostAnonymous(ctx context.Context, endpoint string, in, out any) error {
	return c.doJSON(ctx, &Request{Method: http.MethodPost, URL: c.Endpoint(endpoint), Anonymous: true}, in, out)
}

// PostQuiet выполняет POST, ошибки которого не показываются пользователю
func (c *Client) PostQuiet(ctx context.Context, endpoint string, in, out any) error {
	return c.doJSON(ctx, &Request{Method: http.MethodPost, URL: c.Endpoint(endpoint), Quiet: true}, in, out)
}

// Fetch выполняет запрос по абсолютному URL (например, к внешнему сервису)
func (c *Client) Fetch(ctx context.Context, method, rawURL string, in, out any) error {
	return c.doJSON(ctx, &Request{Method: method, URL: rawURL}, in, out)
}

// Blob бинарный ответ (файл)
type Blob struct {
	ContentType string
	Filename    string // из Content-Disposition, если сервер его указал
	Data        []byte
}

// GetBlob загружает бинарный ответ
func (c *Client) GetBlob(ctx context.Context, endpoint string) (*Blob, error) {
	req := &Request{
		Method: http.MethodGet,
		URL:    c.Endpoint(endpoint),
		Header: http.Header{"Accept": []string{"*/*"}},
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	blob := &Blob{
		ContentType: resp.Header.Get("Content-Type"),
		Data:        resp.Body,
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			blob.Filename = params["filename"]
		}
	}
	return blob, nil
}

// PostMultipart отправляет файл как multipart/form-data в поле field
func (c *Client) PostMultipart(ctx context.Context, endpoint, field, filename, contentType string, content []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("failed to write multipart part: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req := &Request{
		Method: http.MethodPost,
		URL:    c.Endpoint(endpoint),
		Header: http.Header{"Content-Type": []string{w.FormDataContentType()}},
		Body:   buf.Bytes(),
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// doJSON кодирует тело в JSON, выполняет запрос и декодирует ответ
func (c *Client) doJSON(ctx context.Context, r *Request, in, out any) error {
	r.Header = make(http.Header)
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		r.Body = jsonData
		r.Header.Set("Content-Type", "application/json")
	}
	if !IsExternal(c.baseURL, r.URL) {
		r.Header.Set("Accept", "application/json")
	}

	resp, err := c.Do(ctx, r)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// authorize добавляет Bearer токен к внутренним неанонимным запросам
func (c *Client) authorize(ctx context.Context, r *Request) {
	if r.Anonymous || c.tokens == nil || IsExternal(c.baseURL, r.URL) {
		return
	}
	if token := c.tokens.Token(ctx); token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func decode(resp *Response, out any) error {
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = append((*raw)[:0], resp.Body...)
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
