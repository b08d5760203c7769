// files.go — обработчик GET /files/{folder}/{file}.
// Изображения и PDF аукционов отдаются через прокси к API аукционов.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/auction-browser/internal/api/errors"
)

// DownloadFile — GET /files/{folder}/{file}[?download=1].
// Заголовок Range передаётся API как есть.
func (h *APIHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	file, err := url.PathUnescape(chi.URLParam(r, "file"))
	if err != nil {
		apierrors.ValidationError(w, "Некорректное имя файла")
		return
	}
	download := r.URL.Query().Get("download") == "1"

	err = h.files.Proxy(r.Context(), w, folder, file, download, r.Header.Get("Range"))
	if err != nil && !errors.Is(err, context.Canceled) {
		h.logger.Warn("Ошибка прокси файла",
			slog.String("folder", folder),
			slog.String("file", file),
			slog.String("error", err.Error()),
		)
		h.writeServiceError(w, err, "Файл не найден")
	}
}
