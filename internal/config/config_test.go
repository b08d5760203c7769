package config

import (
	"log/slog"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs возвращает минимальный набор обязательных переменных.
func minimalEnvs() map[string]string {
	return map[string]string{
		"AB_AUCTION_API_URL": "https://auction-api.example.com/",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 8040 {
		t.Errorf("Port = %d, ожидается 8040", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.AuctionAPIURL != "https://auction-api.example.com" {
		t.Errorf("AuctionAPIURL = %q, ожидается без завершающего слэша", cfg.AuctionAPIURL)
	}
	if cfg.AuctionAPITimeout != 15*time.Second {
		t.Errorf("AuctionAPITimeout = %v, ожидается 15s", cfg.AuctionAPITimeout)
	}
	if cfg.PageSize != 30 {
		t.Errorf("PageSize = %d, ожидается 30", cfg.PageSize)
	}
	if cfg.CacheSize != 1000 {
		t.Errorf("CacheSize = %d, ожидается 1000", cfg.CacheSize)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, ожидается 30s", cfg.CacheTTL)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, ожидается пустая строка", cfg.RedisURL)
	}
	if cfg.DefaultLang != "hu" {
		t.Errorf("DefaultLang = %q, ожидается hu", cfg.DefaultLang)
	}
	if cfg.Timezone == nil || cfg.Timezone.String() != "Europe/Budapest" {
		t.Errorf("Timezone = %v, ожидается Europe/Budapest", cfg.Timezone)
	}
	if !cfg.DephealthEnabled {
		t.Error("DephealthEnabled = false, ожидается true")
	}
	if cfg.DephealthCheckInterval != 15*time.Second {
		t.Errorf("DephealthCheckInterval = %v, ожидается 15s", cfg.DephealthCheckInterval)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	envs := minimalEnvs()
	envs["AB_PORT"] = "9000"
	envs["AB_LOG_LEVEL"] = "debug"
	envs["AB_LOG_FORMAT"] = "text"
	envs["AB_PAGE_SIZE"] = "10"
	envs["AB_CACHE_TTL"] = "2m"
	envs["AB_REDIS_URL"] = "redis://localhost:6379/0"
	envs["AB_DEFAULT_LANG"] = "en"
	envs["AB_TIMEZONE"] = "UTC"
	envs["AB_DEPHEALTH_ENABLED"] = "false"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, ожидается 9000", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидается Debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, ожидается text", cfg.LogFormat)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, ожидается 10", cfg.PageSize)
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Errorf("CacheTTL = %v, ожидается 2m", cfg.CacheTTL)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.DefaultLang != "en" {
		t.Errorf("DefaultLang = %q, ожидается en", cfg.DefaultLang)
	}
	if cfg.Timezone.String() != "UTC" {
		t.Errorf("Timezone = %v, ожидается UTC", cfg.Timezone)
	}
	if cfg.DephealthEnabled {
		t.Error("DephealthEnabled = true, ожидается false")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		envs map[string]string
	}{
		{"нет URL API", map[string]string{}},
		{"некорректная схема URL", map[string]string{"AB_AUCTION_API_URL": "ftp://example.com"}},
		{"некорректный порт", map[string]string{"AB_PORT": "abc"}},
		{"порт вне диапазона", map[string]string{"AB_PORT": "70000"}},
		{"некорректный уровень логов", map[string]string{"AB_LOG_LEVEL": "verbose"}},
		{"некорректный формат логов", map[string]string{"AB_LOG_FORMAT": "xml"}},
		{"нулевой таймаут API", map[string]string{"AB_AUCTION_API_TIMEOUT": "0s"}},
		{"размер страницы вне диапазона", map[string]string{"AB_PAGE_SIZE": "500"}},
		{"неподдерживаемый язык", map[string]string{"AB_DEFAULT_LANG": "de"}},
		{"неизвестный часовой пояс", map[string]string{"AB_TIMEZONE": "Mars/Olympus"}},
		{"некорректный bool", map[string]string{"AB_DEPHEALTH_ENABLED": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envs := map[string]string{}
			if _, ok := tt.envs["AB_AUCTION_API_URL"]; !ok && tt.name != "нет URL API" {
				envs["AB_AUCTION_API_URL"] = "https://auction-api.example.com"
			}
			for k, v := range tt.envs {
				envs[k] = v
			}
			if tt.name == "нет URL API" {
				t.Setenv("AB_AUCTION_API_URL", "")
			}
			setEnvs(t, envs)

			if _, err := Load(); err == nil {
				t.Fatal("ожидалась ошибка Load()")
			}
		})
	}
}
