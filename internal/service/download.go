// download.go — прокси файлов API аукционов (изображения, PDF).
// Файлы не сохраняются: ответ API передаётся клиенту потоком
// с пробросом только разрешённых заголовков.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/auction-browser/internal/auctionapi"
)

// Prometheus-метрики download.
var (
	downloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ab_downloads_total",
		Help: "Общее количество запросов файлов через прокси (по статусу).",
	}, []string{"status"})

	downloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ab_download_duration_seconds",
		Help:    "Длительность proxy download (от запроса до завершения streaming).",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})

	downloadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ab_download_bytes_total",
		Help: "Общее количество переданных байт через прокси файлов.",
	})

	activeDownloads = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ab_active_downloads",
		Help: "Количество активных proxy downloads.",
	})
)

// headersToProxy — заголовки ответа API, которые передаются клиенту.
var headersToProxy = []string{
	"Content-Type",
	"Content-Length",
	"Content-Disposition",
	"Content-Range",
	"Accept-Ranges",
	"ETag",
	"Last-Modified",
	"Cache-Control",
}

// FileDownloader — источник файлов (auctionapi.Client).
type FileDownloader interface {
	Download(ctx context.Context, folder, file string, download bool, rangeHeader string) (*http.Response, error)
}

// DownloadService — прокси файлов.
type DownloadService struct {
	api    FileDownloader
	logger *slog.Logger
}

// NewDownloadService создаёт прокси файлов.
func NewDownloadService(api FileDownloader, logger *slog.Logger) *DownloadService {
	return &DownloadService{
		api:    api,
		logger: logger.With(slog.String("component", "download_service")),
	}
}

// Proxy передаёт файл folder/file клиенту.
//
// Возвращает ErrInvalidFile для папки вне белого списка или имени с
// разделителями пути, ErrNotFound при 404 от API, ErrUpstream при прочих
// ошибках. Ошибка возвращается только до начала записи ответа; сбой во время
// streaming логируется, потому что заголовки уже отправлены.
func (ds *DownloadService) Proxy(
	ctx context.Context,
	w http.ResponseWriter,
	folder, file string,
	download bool,
	rangeHeader string,
) error {
	if !auctionapi.ValidFolder(folder) || !auctionapi.ValidFileName(file) {
		downloadsTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("%s/%s: %w", folder, file, ErrInvalidFile)
	}

	start := time.Now()
	activeDownloads.Inc()
	defer activeDownloads.Dec()

	resp, err := ds.api.Download(ctx, folder, file, download, rangeHeader)
	if err != nil {
		downloadsTotal.WithLabelValues("upstream_error").Inc()
		return fmt.Errorf("скачивание файла %s/%s: %w", folder, file, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		downloadsTotal.WithLabelValues("not_found").Inc()
		return fmt.Errorf("файл %s/%s: %w", folder, file, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		downloadsTotal.WithLabelValues("upstream_error").Inc()
		return fmt.Errorf("%w: API вернул статус %d для файла %s/%s", ErrUpstream, resp.StatusCode, folder, file)
	}

	copyHeaders(w, resp)
	w.WriteHeader(resp.StatusCode)

	written, err := io.Copy(w, resp.Body)
	if err != nil && ctx.Err() != nil {
		ds.logger.Debug("Скачивание прервано клиентом",
			slog.String("folder", folder),
			slog.String("file", file),
			slog.Int64("bytes_written", written),
		)
		downloadsTotal.WithLabelValues("canceled").Inc()
		return nil
	}
	if err != nil {
		ds.logger.Error("Ошибка streaming download",
			slog.String("folder", folder),
			slog.String("file", file),
			slog.Int64("bytes_written", written),
			slog.String("error", err.Error()),
		)
		downloadsTotal.WithLabelValues("stream_error").Inc()
		return nil
	}

	duration := time.Since(start)
	downloadsTotal.WithLabelValues("success").Inc()
	downloadDuration.Observe(duration.Seconds())
	downloadBytesTotal.Add(float64(written))

	ds.logger.Debug("Download завершён",
		slog.String("folder", folder),
		slog.String("file", file),
		slog.Int64("bytes", written),
		slog.Duration("duration", duration),
		slog.Int("status", resp.StatusCode),
	)
	return nil
}

// copyHeaders пробрасывает разрешённые заголовки ответа API клиенту.
func copyHeaders(w http.ResponseWriter, resp *http.Response) {
	for _, h := range headersToProxy {
		if v := resp.Header.Get(h); v != "" {
			w.Header().Set(h, v)
		}
	}
}
