// main.go — точка входа Auction Browser.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/bigkaa/auction-browser/internal/api/handlers"
	"github.com/bigkaa/auction-browser/internal/auctionapi"
	"github.com/bigkaa/auction-browser/internal/config"
	"github.com/bigkaa/auction-browser/internal/domain/model"
	"github.com/bigkaa/auction-browser/internal/server"
	"github.com/bigkaa/auction-browser/internal/service"
	uihandlers "github.com/bigkaa/auction-browser/internal/ui/handlers"
	"github.com/bigkaa/auction-browser/internal/ui/i18n"
)

// serviceID — имя вершины графа зависимостей в topologymetrics.
const serviceID = "auction-browser"

func main() {
	// 1. .env (если есть) и конфигурация из переменных окружения
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// 2. Логгер
	logger := config.SetupLogger(cfg)
	logger.Info("Auction Browser запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("auction_api", cfg.AuctionAPIURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Часовой пояс дат API и каталоги переводов
	model.Location = cfg.Timezone
	if err := i18n.LoadFromEmbedFS(i18n.Init(logger), logger); err != nil {
		logger.Error("Ошибка загрузки переводов", slog.String("error", err.Error()))
		os.Exit(1)
	}
	i18n.SetDefaultLang(cfg.DefaultLang)

	// 4. Клиент API аукционов
	client, err := auctionapi.New(cfg.AuctionAPIURL, cfg.AuctionAPICACertPath, cfg.AuctionAPITimeout, logger)
	if err != nil {
		logger.Error("Ошибка создания клиента API аукционов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Кэш ответов: LRU в памяти, Redis опционально
	var rdb redis.UniversalClient
	if cfg.RedisURL != "" {
		redisClient, redisErr := service.NewRedisClient(ctx, cfg.RedisURL)
		if redisErr != nil {
			logger.Warn("Redis недоступен, используется только кэш в памяти",
				slog.String("error", redisErr.Error()),
			)
		} else {
			rdb = redisClient
			defer func() { _ = redisClient.Close() }()
			logger.Info("Redis подключён")
		}
	}
	cache := service.NewCacheService(cfg.CacheSize, cfg.CacheTTL, rdb, logger)

	// 6. Сервисы
	listingSvc := service.NewListingService(client, cache, cfg.PageSize, logger)
	detailSvc := service.NewDetailService(client, cache, logger)
	downloadSvc := service.NewDownloadService(client, logger)
	views := service.NewViewStore(cfg.ViewSessions, logger)

	// 7. Readiness API аукционов: topologymetrics или прямой запрос
	var apiChecker handlers.ReadinessChecker = service.NewPingChecker(client, cfg.AuctionAPIHealthPath, cfg.AuctionAPITimeout)
	var dephealthSvc *service.DephealthService
	if cfg.DephealthEnabled {
		dh, dhErr := service.NewDephealthService(
			serviceID,
			cfg.DephealthGroup,
			cfg.AuctionAPIURL,
			cfg.AuctionAPIHealthPath,
			cfg.DephealthCheckInterval,
			logger,
		)
		if dhErr != nil {
			logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
				slog.String("error", dhErr.Error()),
			)
		} else if startErr := dh.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			dephealthSvc = dh
			apiChecker = dh
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}
	var cacheChecker handlers.ReadinessChecker
	if rdb != nil {
		cacheChecker = cache
	}

	// 8. Handlers
	healthHandler := handlers.NewHealthHandler(apiChecker, cacheChecker)
	apiHandler := handlers.NewAPIHandler(healthHandler, listingSvc, detailSvc, downloadSvc, logger)

	// 9. HTTP-сервер (блокирующий вызов с graceful shutdown)
	srv := server.New(cfg, logger, server.Handlers{
		API:     apiHandler,
		Listing: uihandlers.NewListingHandler(listingSvc, views, logger),
		Detail:  uihandlers.NewDetailHandler(detailSvc, logger),
	})
	runErr := srv.Run(ctx)

	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}
	if runErr != nil {
		logger.Error("Ошибка сервера", slog.String("error", runErr.Error()))
		os.Exit(1)
	}

	logger.Info("Auction Browser остановлен")
}
