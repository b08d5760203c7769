// handler.go — основной обработчик JSON API Auction Browser.
// Объединяет health и бизнес-обработчики, делегируя запросы в сервисный слой.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/auction-browser/internal/api/errors"
	"github.com/bigkaa/auction-browser/internal/domain/query"
	"github.com/bigkaa/auction-browser/internal/service"
)

// Searcher — поиск страницы списка (service.ListingService).
type Searcher interface {
	Search(ctx context.Context, state query.FilterState) (*service.Page, error)
	PageSize() int
}

// DetailGetter — карточка аукциона (service.DetailService).
type DetailGetter interface {
	Get(ctx context.Context, id int64) (*service.Detail, error)
}

// FileProxy — прокси файлов (service.DownloadService).
type FileProxy interface {
	Proxy(ctx context.Context, w http.ResponseWriter, folder, file string, download bool, rangeHeader string) error
}

// APIHandler — обработчик JSON API и прокси файлов.
type APIHandler struct {
	health  *HealthHandler
	listing Searcher
	detail  DetailGetter
	files   FileProxy
	logger  *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	listing Searcher,
	detail DetailGetter,
	files FileProxy,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:  health,
		listing: listing,
		detail:  detail,
		files:   files,
		logger:  logger.With(slog.String("component", "api_handler")),
	}
}

// --- Health endpoints (делегируются в HealthHandler) ---

// HealthLive — liveness probe.
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe.
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики.
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError преобразует ошибку сервисного слоя в HTTP-ответ.
// notFoundMsg — сообщение для 404.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, context.Canceled):
		// Клиент ушёл, отвечать некому
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, notFoundMsg)
	case errors.Is(err, service.ErrInvalidFile):
		apierrors.ValidationError(w, "Недопустимая папка или имя файла")
	case errors.Is(err, service.ErrUpstream), errors.Is(err, service.ErrMalformedPayload):
		apierrors.UpstreamUnavailable(w, "API аукционов недоступен")
	default:
		h.logger.Error("Внутренняя ошибка", slog.String("error", err.Error()))
		apierrors.InternalError(w, "Внутренняя ошибка")
	}
}
