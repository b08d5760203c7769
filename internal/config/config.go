// Пакет config — загрузка и валидация конфигурации Auction Browser
// из переменных окружения (префикс AB_).
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Auction Browser.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// --- Graceful shutdown ---

	ShutdownTimeout time.Duration

	// --- Auction API (upstream) ---

	// Базовый URL API аукционов (например, https://auction-api.example.com)
	AuctionAPIURL string
	// Таймаут одного запроса к API аукционов
	AuctionAPITimeout time.Duration
	// Путь к CA-сертификату для TLS (пустая строка — системный пул)
	AuctionAPICACertPath string
	// Путь health endpoint API аукционов для topologymetrics
	AuctionAPIHealthPath string

	// --- Листинг ---

	// Размер страницы таблицы аукционов
	PageSize int
	// Максимальное количество клиентских представлений листинга в памяти
	ViewSessions int

	// --- Кэш ответов ---

	// Максимальный размер LRU-кэша ответов
	CacheSize int
	// Время жизни записи в кэше
	CacheTTL time.Duration
	// URL Redis для разделяемого кэша (пустая строка — только in-memory)
	RedisURL string

	// --- UI ---

	// Язык интерфейса по умолчанию (hu, en)
	DefaultLang string
	// Часовой пояс для отображения и сравнения дат
	Timezone *time.Location

	// --- topologymetrics ---

	DephealthEnabled       bool
	DephealthGroup         string
	DephealthCheckInterval time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// AB_PORT — порт HTTP-сервера (по умолчанию 8040)
	cfg.Port, err = getEnvInt("AB_PORT", 8040)
	if err != nil {
		return nil, fmt.Errorf("AB_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("AB_PORT: порт %d вне диапазона 1-65535", cfg.Port)
	}

	cfg.LogLevel, err = parseLogLevel(getEnvDefault("AB_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("AB_LOG_LEVEL: %w", err)
	}

	cfg.LogFormat = getEnvDefault("AB_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("AB_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("AB_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AB_HTTP_READ_TIMEOUT: %w", err)
	}
	cfg.HTTPWriteTimeout, err = getEnvDuration("AB_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AB_HTTP_WRITE_TIMEOUT: %w", err)
	}
	cfg.HTTPIdleTimeout, err = getEnvDuration("AB_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AB_HTTP_IDLE_TIMEOUT: %w", err)
	}

	cfg.ShutdownTimeout, err = getEnvDuration("AB_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AB_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- Auction API ---

	// AB_AUCTION_API_URL — обязательный базовый URL API аукционов
	cfg.AuctionAPIURL, err = getEnvRequired("AB_AUCTION_API_URL")
	if err != nil {
		return nil, err
	}
	parsed, err := url.Parse(cfg.AuctionAPIURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("AB_AUCTION_API_URL: некорректный URL %q (ожидается http:// или https://)", cfg.AuctionAPIURL)
	}
	cfg.AuctionAPIURL = strings.TrimRight(cfg.AuctionAPIURL, "/")

	cfg.AuctionAPITimeout, err = getEnvDurationPositive("AB_AUCTION_API_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AB_AUCTION_API_TIMEOUT: %w", err)
	}

	cfg.AuctionAPICACertPath = os.Getenv("AB_AUCTION_API_CA_CERT_PATH")
	cfg.AuctionAPIHealthPath = getEnvDefault("AB_AUCTION_API_HEALTH_PATH", "/")

	// --- Листинг ---

	cfg.PageSize, err = getEnvInt("AB_PAGE_SIZE", 30)
	if err != nil {
		return nil, fmt.Errorf("AB_PAGE_SIZE: %w", err)
	}
	if cfg.PageSize < 1 || cfg.PageSize > 100 {
		return nil, fmt.Errorf("AB_PAGE_SIZE: значение %d вне диапазона 1-100", cfg.PageSize)
	}

	cfg.ViewSessions, err = getEnvInt("AB_VIEW_SESSIONS", 10000)
	if err != nil {
		return nil, fmt.Errorf("AB_VIEW_SESSIONS: %w", err)
	}
	if cfg.ViewSessions < 1 {
		return nil, fmt.Errorf("AB_VIEW_SESSIONS: значение должно быть > 0")
	}

	// --- Кэш ---

	cfg.CacheSize, err = getEnvInt("AB_CACHE_SIZE", 1000)
	if err != nil {
		return nil, fmt.Errorf("AB_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("AB_CACHE_SIZE: значение должно быть > 0")
	}

	cfg.CacheTTL, err = getEnvDurationPositive("AB_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AB_CACHE_TTL: %w", err)
	}

	cfg.RedisURL = os.Getenv("AB_REDIS_URL")

	// --- UI ---

	cfg.DefaultLang = getEnvDefault("AB_DEFAULT_LANG", "hu")
	if cfg.DefaultLang != "hu" && cfg.DefaultLang != "en" {
		return nil, fmt.Errorf("AB_DEFAULT_LANG: недопустимый язык %q, допустимые: hu, en", cfg.DefaultLang)
	}

	tz := getEnvDefault("AB_TIMEZONE", "Europe/Budapest")
	cfg.Timezone, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("AB_TIMEZONE: неизвестный часовой пояс %q: %w", tz, err)
	}

	// --- topologymetrics ---

	cfg.DephealthEnabled, err = getEnvBool("AB_DEPHEALTH_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("AB_DEPHEALTH_ENABLED: %w", err)
	}
	cfg.DephealthGroup = getEnvDefault("AB_DEPHEALTH_GROUP", "auction-browser")
	cfg.DephealthCheckInterval, err = getEnvDurationPositive("AB_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AB_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvDurationPositive — как getEnvDuration, но значение должно быть > 0.
func getEnvDurationPositive(key string, defaultVal time.Duration) (time.Duration, error) {
	d, err := getEnvDuration(key, defaultVal)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("значение должно быть > 0")
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
