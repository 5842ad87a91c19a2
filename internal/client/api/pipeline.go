package api

import (
	"log/slog"
	"time"
)

// PipelineConfig зависимости стандартной цепочки перехватчиков
type PipelineConfig struct {
	Toaster         Toaster
	Navigator       Navigator
	Tracker         Tracker
	Logger          *slog.Logger
	BaseURL         string
	ExternalTimeout time.Duration
	ExternalRetries uint64
}

// Pipeline собирает цепочку в фиксированном порядке:
// ErrorTranslation -> ExternalAPI -> Loading -> транспорт
func Pipeline(cfg PipelineConfig) Middleware {
	return Chain(
		ErrorTranslation(cfg.Toaster, cfg.Navigator, cfg.Logger),
		ExternalAPI(ExternalConfig{
			BaseURL: cfg.BaseURL,
			Toaster: cfg.Toaster,
			Logger:  cfg.Logger,
			Timeout: cfg.ExternalTimeout,
			Retries: cfg.ExternalRetries,
		}),
		Loading(cfg.Tracker),
	)
}
