package data

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/iudanet/balancio/internal/models"
	pkgapi "github.com/iudanet/balancio/pkg/api"
)

// DefaultRatesURL сервис курсов валют; базовая валюта добавляется в конец пути
const DefaultRatesURL = "https://api.exchangerate-api.com/v4/latest"

// RatesService курсы валют от стороннего сервиса.
// Запросы идут мимо бэкенда, поэтому уведомления об ошибках показывает ExternalAPI.
type RatesService struct {
	backend Backend
	baseURL string
}

// NewRatesService создает сервис курсов; пустой endpoint означает DefaultRatesURL
func NewRatesService(backend Backend, endpoint string) *RatesService {
	if endpoint == "" {
		endpoint = DefaultRatesURL
	}
	return &RatesService{
		backend: backend,
		baseURL: strings.TrimRight(endpoint, "/"),
	}
}

// Latest последние курсы относительно base (ISO код, например USD)
func (s *RatesService) Latest(ctx context.Context, base string) (*models.ExchangeRates, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		base = "USD"
	}

	var dto pkgapi.ExchangeRatesDTO
	if err := s.backend.Fetch(ctx, http.MethodGet, s.baseURL+"/"+url.PathEscape(base), nil, &dto); err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}

	rates := &models.ExchangeRates{
		Rates: dto.Rates,
		Base:  dto.Base,
		Date:  dto.Date,
	}
	if rates.Base == "" {
		rates.Base = base
	}
	if rates.Rates == nil {
		rates.Rates = map[string]float64{}
	}
	return rates, nil
}
