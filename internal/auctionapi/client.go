// Пакет auctionapi — HTTP-клиент API аукционов.
// Список (POST /auctions), карточка (GET /auction?id=N) и файлы
// (GET /download_file) с поддержкой TLS с кастомным CA.
package auctionapi

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/auction-browser/internal/domain/model"
	"github.com/bigkaa/auction-browser/internal/domain/query"
)

// Ошибки клиента.
var (
	// ErrUpstream — API недоступен или вернул неуспешный статус.
	ErrUpstream = errors.New("API аукционов недоступен")
	// ErrMalformedPayload — ответ API не соответствует ожидаемой структуре.
	ErrMalformedPayload = errors.New("некорректный ответ API аукционов")
	// ErrNotFound — аукцион или файл не найден.
	ErrNotFound = errors.New("не найдено")
)

// Prometheus-метрики обращений к API.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ab_upstream_requests_total",
		Help: "Общее количество запросов к API аукционов (по операции и результату).",
	}, []string{"operation", "result"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ab_upstream_request_duration_seconds",
		Help:    "Длительность запросов к API аукционов в секундах.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// ListResponse — ответ на запрос списка.
type ListResponse struct {
	Auctions   []model.Auction `json:"auctions"`
	TotalCount int             `json:"total_count"`
}

// Client — клиент API аукционов.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *slog.Logger
}

// New создаёт клиент.
// baseURL — базовый URL API (без завершающего слэша).
// caCertPath — путь к CA-сертификату (пустая строка — системный пул).
// timeout — таймаут одного запроса (AB_AUCTION_API_TIMEOUT).
func New(baseURL, caCertPath string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if caCertPath != "" {
		tlsConfig, err := buildTLSConfig(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата API аукционов: %w", err)
		}
		rc.SetTLSClientConfig(tlsConfig)
		logger.Info("CA-сертификат API аукционов добавлен в пул доверия",
			slog.String("ca_cert", caCertPath),
		)
	}

	return &Client{
		http:    rc,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(slog.String("component", "auction_api_client")),
	}, nil
}

// BaseURL возвращает базовый URL API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List запрашивает страницу списка аукционов.
// POST {base}/auctions, тело — query.Request, ответ — {auctions, total_count}.
func (c *Client) List(ctx context.Context, req query.Request) (*ListResponse, error) {
	const op = "list"
	start := time.Now()
	defer func() { upstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds()) }()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/auctions")
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return nil, fmt.Errorf("%w: запрос списка: %w", ErrUpstream, err)
	}
	if !resp.IsSuccess() {
		upstreamRequestsTotal.WithLabelValues(op, "status_"+strconv.Itoa(resp.StatusCode())).Inc()
		return nil, fmt.Errorf("%w: список: статус %d: %s", ErrUpstream, resp.StatusCode(), truncate(resp.String(), 200))
	}

	out, err := decodeList(resp.Body())
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(op, "malformed").Inc()
		return nil, err
	}
	upstreamRequestsTotal.WithLabelValues(op, "ok").Inc()

	c.logger.Debug("Список аукционов получен",
		slog.Int("page", req.PageNumber),
		slog.Int("count", len(out.Auctions)),
		slog.Int("total_count", out.TotalCount),
		slog.Duration("duration", time.Since(start)),
	)
	return out, nil
}

// decodeList разбирает ответ списка. auctions: null трактуется как пустой
// список, любое другое не-массивное значение — ErrMalformedPayload.
func decodeList(body []byte) (*ListResponse, error) {
	var raw struct {
		Auctions   json.RawMessage `json:"auctions"`
		TotalCount model.Count     `json:"total_count"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	trimmed := strings.TrimSpace(string(raw.Auctions))
	if trimmed == "" || trimmed == "null" {
		return &ListResponse{Auctions: []model.Auction{}, TotalCount: int(raw.TotalCount)}, nil
	}
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%w: поле auctions не является массивом", ErrMalformedPayload)
	}

	var auctions []model.Auction
	if err := json.Unmarshal(raw.Auctions, &auctions); err != nil {
		return nil, fmt.Errorf("%w: auctions: %v", ErrMalformedPayload, err)
	}
	total := int(raw.TotalCount)
	if total < len(auctions) {
		total = len(auctions)
	}
	return &ListResponse{Auctions: auctions, TotalCount: total}, nil
}

// Get запрашивает один аукцион. GET {base}/auction?id=N, ответ — {auction}.
func (c *Client) Get(ctx context.Context, id int64) (*model.Auction, error) {
	const op = "get"
	start := time.Now()
	defer func() { upstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds()) }()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", strconv.FormatInt(id, 10)).
		Get("/auction")
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return nil, fmt.Errorf("%w: запрос аукциона %d: %w", ErrUpstream, id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		upstreamRequestsTotal.WithLabelValues(op, "not_found").Inc()
		return nil, fmt.Errorf("аукцион %d: %w", id, ErrNotFound)
	}
	if !resp.IsSuccess() {
		upstreamRequestsTotal.WithLabelValues(op, "status_"+strconv.Itoa(resp.StatusCode())).Inc()
		return nil, fmt.Errorf("%w: аукцион %d: статус %d", ErrUpstream, id, resp.StatusCode())
	}

	var payload struct {
		Auction *model.Auction `json:"auction"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		upstreamRequestsTotal.WithLabelValues(op, "malformed").Inc()
		return nil, fmt.Errorf("%w: аукцион %d: %v", ErrMalformedPayload, id, err)
	}
	if payload.Auction == nil {
		upstreamRequestsTotal.WithLabelValues(op, "not_found").Inc()
		return nil, fmt.Errorf("аукцион %d: %w", id, ErrNotFound)
	}
	upstreamRequestsTotal.WithLabelValues(op, "ok").Inc()
	return payload.Auction, nil
}

// Download запрашивает файл у API в потоковом режиме.
// Возвращает *http.Response — вызывающий код ОБЯЗАН закрыть resp.Body.
// Статус ответа не проверяется: решение принимает вызывающий код.
// rangeHeader — значение заголовка Range клиента (пустая строка — без Range).
func (c *Client) Download(ctx context.Context, folder, file string, download bool, rangeHeader string) (*http.Response, error) {
	r := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetQueryParams(map[string]string{
			"folder":   folder,
			"file":     file,
			"download": boolParam(download),
		})
	if rangeHeader != "" {
		r.SetHeader("Range", rangeHeader)
	}

	resp, err := r.Get("/download_file")
	if err != nil {
		upstreamRequestsTotal.WithLabelValues("download", "transport_error").Inc()
		return nil, fmt.Errorf("%w: скачивание %s/%s: %w", ErrUpstream, folder, file, err)
	}
	upstreamRequestsTotal.WithLabelValues("download", "status_"+strconv.Itoa(resp.StatusCode())).Inc()
	return resp.RawResponse, nil
}

// Ping выполняет GET по пути path относительно базового URL.
// Используется проверкой готовности при отключённом dephealth.
func (c *Client) Ping(ctx context.Context, path string) error {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: статус %d", ErrUpstream, resp.StatusCode())
	}
	return nil
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA-сертификатом.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("CA-сертификат %s не содержит PEM-блоков", caCertPath)
	}

	return &tls.Config{
		RootCAs:    caCertPool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
