// Пакет handlers — HTTP-обработчики HTML-страниц Auction Browser.
// Файл listing.go — страница списка: фильтры из строки запроса,
// цикл загрузки через представление клиента, рендеринг таблицы.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/bigkaa/auction-browser/internal/domain/query"
	"github.com/bigkaa/auction-browser/internal/service"
	"github.com/bigkaa/auction-browser/internal/ui/pages"
)

// ViewCookieName — cookie с идентификатором представления списка клиента.
const ViewCookieName = "ab_view"

// ListingLoader — цикл загрузки страницы списка (service.ListingService).
type ListingLoader interface {
	Load(ctx context.Context, view *service.ListingView, state query.FilterState) (service.ViewSnapshot, error)
	PageSize() int
}

// ViewProvider — хранилище представлений клиентов (service.ViewStore).
type ViewProvider interface {
	Acquire(id string) (*service.ListingView, string)
}

// ListingHandler — обработчик страницы списка.
type ListingHandler struct {
	listing ListingLoader
	views   ViewProvider
	logger  *slog.Logger
}

// NewListingHandler создаёт новый ListingHandler.
func NewListingHandler(listing ListingLoader, views ViewProvider, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		listing: listing,
		views:   views,
		logger:  logger.With(slog.String("component", "ui.listing")),
	}
}

// HandleList обрабатывает GET / — страница списка аукционов.
// Ошибка загрузки не прерывает рендеринг: страница показывает баннер
// и предыдущие результаты представления, если они есть.
func (h *ListingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pageSize := h.listing.PageSize()
	state := query.ParseFilterState(r.URL.Query(), pageSize)

	cookieID := ""
	if c, err := r.Cookie(ViewCookieName); err == nil {
		cookieID = c.Value
	}
	view, id := h.views.Acquire(cookieID)
	if id != cookieID {
		http.SetCookie(w, &http.Cookie{
			Name:     ViewCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	snapshot, err := h.listing.Load(ctx, view, state)
	if errors.Is(err, context.Canceled) {
		// Клиент ушёл, отвечать некому
		return
	}

	status := http.StatusOK
	if err != nil && snapshot.Page == nil {
		status = http.StatusBadGateway
	}
	renderPage(ctx, w, status, pages.Listing(pages.ListingData{
		Snapshot: snapshot,
		State:    state,
		PageSize: pageSize,
	}), h.logger)
}

// renderPage пишет HTML-страницу с указанным статусом.
func renderPage(ctx context.Context, w http.ResponseWriter, status int, page templ.Component, logger *slog.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(ctx, w); err != nil {
		logger.Error("Ошибка рендеринга страницы",
			slog.String("error", err.Error()),
		)
	}
}
