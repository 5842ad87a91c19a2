// Package config собирает настройки клиента из .env, окружения и флагов.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultServerURL       = "https://balancio-backend-3kzs.vercel.app/api"
	DefaultDBPath          = "balancio-client.db"
	DefaultLogLevel        = "info"
	DefaultLocale          = "en-US"
	DefaultExternalTimeout = 30 * time.Second
	DefaultExternalRetries = 2
	DefaultToastDuration   = 4 * time.Second
	DefaultDownloadDir     = "."
	DefaultRatesURL        = "https://api.exchangerate-api.com/v4/latest"
)

// Config настройки клиента
type Config struct {
	ServerURL       string
	DBPath          string
	LogLevel        string
	Locale          string
	DownloadDir     string
	RatesURL        string
	ExternalTimeout time.Duration
	ToastDuration   time.Duration
	ExternalRetries int
	Quiet           bool
}

// Default конфигурация без учета окружения
func Default() Config {
	return Config{
		ServerURL:       DefaultServerURL,
		DBPath:          DefaultDBPath,
		LogLevel:        DefaultLogLevel,
		Locale:          DefaultLocale,
		DownloadDir:     DefaultDownloadDir,
		RatesURL:        DefaultRatesURL,
		ExternalTimeout: DefaultExternalTimeout,
		ToastDuration:   DefaultToastDuration,
		ExternalRetries: DefaultExternalRetries,
	}
}

// Load загружает конфигурацию из .env (или файла ENV_FILE) и переменных BALANCIO_*.
// Отсутствующий .env не ошибка.
func Load() (Config, error) {
	cfg := Default()

	if err := loadEnv(); err != nil {
		return cfg, err
	}

	cfg.ServerURL = getEnv("BALANCIO_SERVER_URL", cfg.ServerURL)
	cfg.DBPath = getEnv("BALANCIO_DB_PATH", cfg.DBPath)
	cfg.LogLevel = strings.ToLower(getEnv("BALANCIO_LOG_LEVEL", cfg.LogLevel))
	cfg.Locale = DetectLocale()
	cfg.DownloadDir = getEnv("BALANCIO_DOWNLOAD_DIR", cfg.DownloadDir)
	cfg.RatesURL = getEnv("BALANCIO_RATES_URL", cfg.RatesURL)

	var errs []error

	timeout, err := parseDurationEnv("BALANCIO_EXTERNAL_TIMEOUT", cfg.ExternalTimeout)
	errs = append(errs, err)
	cfg.ExternalTimeout = timeout

	toast, err := parseDurationEnv("BALANCIO_TOAST_DURATION", cfg.ToastDuration)
	errs = append(errs, err)
	cfg.ToastDuration = toast

	retries, err := parseIntEnv("BALANCIO_EXTERNAL_RETRIES", cfg.ExternalRetries)
	errs = append(errs, err)
	cfg.ExternalRetries = retries

	quiet, err := parseBoolEnv("BALANCIO_QUIET", cfg.Quiet)
	errs = append(errs, err)
	cfg.Quiet = quiet

	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate проверяет конфигурацию и возвращает все найденные проблемы разом
func (c Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.ServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("server url %q must be an absolute http(s) url", c.ServerURL))
	}
	if u, err := url.Parse(c.RatesURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("rates url %q must be an absolute http(s) url", c.RatesURL))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db path is required"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.ExternalTimeout <= 0 {
		errs = append(errs, errors.New("external timeout must be greater than 0"))
	}
	if c.ToastDuration <= 0 {
		errs = append(errs, errors.New("toast duration must be greater than 0"))
	}
	if c.ExternalRetries < 0 {
		errs = append(errs, errors.New("external retries must not be negative"))
	}
	if c.DownloadDir == "" {
		errs = append(errs, errors.New("download dir is required"))
	}

	return errors.Join(errs...)
}

// SlogLevel уровень логирования для slog
func (c Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (debug, info, warn, error)", c.LogLevel)
	}
}

// DetectLocale локаль пользователя: BALANCIO_LOCALE, затем LC_ALL и LANG
func DetectLocale() string {
	for _, key := range []string{"BALANCIO_LOCALE", "LC_ALL", "LANG"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return DefaultLocale
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < 0 {
		return fallback, fmt.Errorf("%s must not be negative", key)
	}
	return parsed, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if parsed <= 0 {
		return fallback, fmt.Errorf("%s must be greater than 0", key)
	}
	return parsed, nil
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return parsed, nil
}

func loadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
