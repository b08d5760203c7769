// Пакет server — HTTP-сервер Auction Browser с graceful shutdown.
// Без TLS — TLS termination на ingress.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apihandlers "github.com/bigkaa/auction-browser/internal/api/handlers"
	"github.com/bigkaa/auction-browser/internal/api/middleware"
	"github.com/bigkaa/auction-browser/internal/config"
	uihandlers "github.com/bigkaa/auction-browser/internal/ui/handlers"
	"github.com/bigkaa/auction-browser/internal/ui/i18n"
)

// Handlers — обработчики всех маршрутов сервиса.
type Handlers struct {
	API     *apihandlers.APIHandler
	Listing *uihandlers.ListingHandler
	Detail  *uihandlers.DetailHandler
}

// Server — HTTP-сервер Auction Browser.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
func New(cfg *config.Config, logger *slog.Logger, h Handlers) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(logger, h),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// NewRouter собирает маршруты сервиса.
func NewRouter(logger *slog.Logger, h Handlers) http.Handler {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.RequestID())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))

	// Health и metrics проверяются Kubernetes напрямую
	router.Get("/health/live", h.API.HealthLive)
	router.Get("/health/ready", h.API.HealthReady)
	router.Get("/metrics", h.API.GetMetrics)

	// JSON API
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auctions/search", h.API.SearchAuctions)
		r.Get("/auctions/{id}", h.API.GetAuction)
	})

	// Прокси файлов аукционов (миниатюры и скачивание)
	router.Get("/files/{folder}/{file}", h.API.DownloadFile)

	// HTML-страницы: язык определяется для каждого запроса
	router.Group(func(r chi.Router) {
		r.Use(i18n.Middleware())
		r.Get("/", h.Listing.HandleList)
		r.Get("/auctions/{id}", h.Detail.HandleDetail)
		r.Post("/set-language", uihandlers.HandleSetLanguage)
	})

	return router
}

// Run запускает сервер и блокируется до отмены ctx (SIGINT/SIGTERM в main)
// или ошибки ListenAndServe. После отмены выполняется graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Получен сигнал завершения")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
