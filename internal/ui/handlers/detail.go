// detail.go — страница аукциона.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/auction-browser/internal/service"
	"github.com/bigkaa/auction-browser/internal/ui/pages"
)

// DetailGetter — загрузка карточки аукциона (service.DetailService).
type DetailGetter interface {
	Get(ctx context.Context, id int64) (*service.Detail, error)
}

// DetailHandler — обработчик страницы аукциона.
type DetailHandler struct {
	detail DetailGetter
	logger *slog.Logger
}

// NewDetailHandler создаёт новый DetailHandler.
func NewDetailHandler(detail DetailGetter, logger *slog.Logger) *DetailHandler {
	return &DetailHandler{
		detail: detail,
		logger: logger.With(slog.String("component", "ui.detail")),
	}
}

// HandleDetail обрабатывает GET /auctions/{id}.
// Идентификатор берётся только из параметра маршрута.
func (h *DetailHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		renderPage(ctx, w, http.StatusNotFound, pages.Error(pages.ErrorData{Key: "error.not_found"}), h.logger)
		return
	}

	d, err := h.detail.Get(ctx, id)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		status, key := errorPage(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Ошибка загрузки аукциона",
				slog.Int64("auction_id", id),
				slog.String("error", err.Error()),
			)
		}
		renderPage(ctx, w, status, pages.Error(pages.ErrorData{Key: key}), h.logger)
		return
	}

	renderPage(ctx, w, http.StatusOK, pages.Detail(pages.DetailData{
		Detail:  d,
		BackURL: backURL(r),
	}), h.logger)
}

// errorPage сопоставляет ошибку сервиса со статусом и сообщением страницы.
func errorPage(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "error.not_found"
	case errors.Is(err, service.ErrUpstream), errors.Is(err, service.ErrMalformedPayload):
		return http.StatusBadGateway, "error.upstream"
	default:
		return http.StatusInternalServerError, "error.internal"
	}
}

// backURL возвращает ссылку на список с фильтрами, если клиент пришёл
// со страницы списка этого же сервиса.
func backURL(r *http.Request) string {
	ref, err := url.Parse(r.Header.Get("Referer"))
	if err != nil || ref.Host != r.Host || ref.Path != "/" {
		return ""
	}
	return ref.RequestURI()
}
