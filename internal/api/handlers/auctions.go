// auctions.go — обработчики POST /api/v1/auctions/search и GET /api/v1/auctions/{id}.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/auction-browser/internal/api/errors"
	"github.com/bigkaa/auction-browser/internal/domain/query"
)

// maxSearchBodySize — ограничение тела запроса поиска.
const maxSearchBodySize = 64 << 10

// SearchAuctions — POST /api/v1/auctions/search.
// Тело — состояние фильтров (query.FilterState), пустое тело — все аукционы.
// Ответ — страница списка с вычисленными статусами и пагинацией.
func (h *APIHandler) SearchAuctions(w http.ResponseWriter, r *http.Request) {
	var state query.FilterState
	if r.ContentLength != 0 {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSearchBodySize))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&state); err != nil {
			apierrors.ValidationError(w, "Некорректное тело запроса: "+err.Error())
			return
		}
	}

	page, err := h.listing.Search(r.Context(), state)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.logger.Warn("Ошибка поиска аукционов",
			slog.String("error", err.Error()),
		)
		h.writeServiceError(w, err, "Аукционы не найдены")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetAuction — GET /api/v1/auctions/{id}.
func (h *APIHandler) GetAuction(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		apierrors.ValidationError(w, "Некорректный идентификатор аукциона: "+idParam)
		return
	}

	detail, err := h.detail.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.logger.Warn("Ошибка получения аукциона",
			slog.Int64("auction_id", id),
			slog.String("error", err.Error()),
		)
		h.writeServiceError(w, err, "Аукцион не найден")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}
