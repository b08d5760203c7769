// dephealth.go — интеграция с topologymetrics SDK для мониторинга зависимостей.
//
// Auction Browser мониторит единственную зависимость — API аукционов
// (HTTP checker, critical). Результат используется readiness probe.
//
// Метрики доступны на /metrics вместе с остальными Prometheus-метриками:
//   - app_dependency_health — состояние зависимости (1 = ok, 0 = fail)
//   - app_dependency_latency_seconds — задержка проверки
//   - app_dependency_status — категория статуса
//   - app_dependency_status_detail — детальный статус
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // регистрация HTTP checker factory
	"github.com/prometheus/client_golang/prometheus"
)

// auctionAPIDependency — имя зависимости в метриках.
const auctionAPIDependency = "auction-api"

// DephealthService — сервис мониторинга зависимостей через topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService создаёт сервис мониторинга зависимостей.
// Метрики регистрируются в глобальном Prometheus registry.
//
// Параметры:
//   - serviceID — имя вершины графа текущего приложения
//   - group — имя группы в метриках (AB_DEPHEALTH_GROUP)
//   - apiURL — базовый URL API аукционов
//   - healthPath — путь проверки API (AB_AUCTION_API_HEALTH_PATH)
//   - checkInterval — интервал проверки (AB_DEPHEALTH_CHECK_INTERVAL)
func NewDephealthService(
	serviceID string,
	group string,
	apiURL string,
	healthPath string,
	checkInterval time.Duration,
	logger *slog.Logger,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, apiURL, healthPath, checkInterval, logger)
}

// NewDephealthServiceWithRegisterer создаёт сервис с указанным Prometheus registerer.
// Используется в тестах для изоляции метрик.
func NewDephealthServiceWithRegisterer(
	serviceID string,
	group string,
	apiURL string,
	healthPath string,
	checkInterval time.Duration,
	logger *slog.Logger,
	registerer prometheus.Registerer,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, apiURL, healthPath, checkInterval,
		logger, dephealth.WithRegisterer(registerer))
}

func newDephealthService(
	serviceID string,
	group string,
	apiURL string,
	healthPath string,
	checkInterval time.Duration,
	logger *slog.Logger,
	extraOpts ...dephealth.Option,
) (*DephealthService, error) {
	if healthPath == "" {
		healthPath = "/"
	}

	depOpts := []dephealth.DependencyOption{
		dephealth.FromURL(apiURL),
		dephealth.WithHTTPHealthPath(healthPath),
		dephealth.CheckInterval(checkInterval),
		dephealth.Critical(true),
	}
	if parsed, err := url.Parse(apiURL); err == nil && parsed.Scheme == "https" {
		depOpts = append(depOpts, dephealth.WithHTTPTLSSkipVerify(false))
	}

	opts := make([]dephealth.Option, 0, 2+len(extraOpts))
	opts = append(opts,
		dephealth.WithLogger(logger),
		dephealth.HTTP(auctionAPIDependency, depOpts...),
	)
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(serviceID, group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен (API аукционов)")
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг зависимостей.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}

// Health возвращает текущее состояние зависимостей.
// Ключ — имя зависимости, значение — true если ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}

// CheckReady реализует handlers.ReadinessChecker по последним результатам проверок.
func (ds *DephealthService) CheckReady() (string, string) {
	return readinessFromHealth(ds.Health())
}

// readinessFromHealth сводит результаты проверок к статусу readiness.
// Пока проверок не было — degraded.
func readinessFromHealth(health map[string]bool) (string, string) {
	if len(health) == 0 {
		return "degraded", "проверка API аукционов ещё не выполнялась"
	}
	for name, ok := range health {
		if !ok {
			return "fail", fmt.Sprintf("зависимость %s недоступна", name)
		}
	}
	return "ok", "API аукционов доступен"
}

// Pinger — прямая проверка доступности API (auctionapi.Client).
type Pinger interface {
	Ping(ctx context.Context, path string) error
}

// PingChecker — readiness по прямому запросу к API.
// Используется, когда мониторинг topologymetrics отключён.
type PingChecker struct {
	api     Pinger
	path    string
	timeout time.Duration
}

// NewPingChecker создаёт проверку готовности по прямому запросу.
func NewPingChecker(api Pinger, path string, timeout time.Duration) *PingChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PingChecker{api: api, path: path, timeout: timeout}
}

// CheckReady выполняет запрос к API и возвращает статус.
func (c *PingChecker) CheckReady() (string, string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.api.Ping(ctx, c.path); err != nil {
		return "fail", fmt.Sprintf("API аукционов недоступен: %v", err)
	}
	return "ok", "API аукционов доступен"
}
