// listing.go — сервис списка аукционов.
// Цепочка: FilterState → query.Request → кэш/API → расчёт статусов → пагинация.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/auction-browser/internal/auctionapi"
	"github.com/bigkaa/auction-browser/internal/domain/model"
	"github.com/bigkaa/auction-browser/internal/domain/pagination"
	"github.com/bigkaa/auction-browser/internal/domain/query"
	"github.com/bigkaa/auction-browser/internal/domain/status"
)

// Prometheus-метрики списка.
var (
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ab_search_total",
		Help: "Общее количество запросов списка аукционов (по результату).",
	}, []string{"result"})
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ab_search_duration_seconds",
		Help:    "Длительность запросов списка аукционов.",
		Buckets: prometheus.DefBuckets,
	})
)

// AuctionLister — источник страниц списка (auctionapi.Client).
type AuctionLister interface {
	List(ctx context.Context, req query.Request) (*auctionapi.ListResponse, error)
}

// ListItem — строка таблицы: запись API и вычисленные поля.
type ListItem struct {
	Auction      model.Auction         `json:"auction"`
	Evaluation   status.Evaluation     `json:"evaluation"`
	History      *model.AuctionHistory `json:"current_history,omitempty"`
	ThumbnailURL string                `json:"thumbnail_url,omitempty"`
	DetailURL    string                `json:"detail_url"`
}

// Page — результат загрузки одной страницы списка.
type Page struct {
	Items      []ListItem        `json:"items"`
	TotalCount int               `json:"total_count"`
	TotalPages int               `json:"total_pages"`
	Strip      pagination.Strip  `json:"pagination"`
	State      query.FilterState `json:"state"`
	FetchedAt  time.Time         `json:"fetched_at"`
}

// ListingService — сервис списка аукционов.
type ListingService struct {
	api      AuctionLister
	cache    *CacheService
	pageSize int
	now      func() time.Time
	logger   *slog.Logger
}

// NewListingService создаёт сервис списка.
// pageSize — размер страницы по умолчанию (AB_PAGE_SIZE).
func NewListingService(
	api AuctionLister,
	cache *CacheService,
	pageSize int,
	logger *slog.Logger,
) *ListingService {
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &ListingService{
		api:      api,
		cache:    cache,
		pageSize: pageSize,
		now:      time.Now,
		logger:   logger.With(slog.String("component", "listing_service")),
	}
}

// PageSize возвращает размер страницы по умолчанию.
func (s *ListingService) PageSize() int {
	return s.pageSize
}

// Search загружает страницу списка для состояния фильтров.
// Ответ API берётся из кэша, если он там есть; статусы всегда
// пересчитываются по текущему времени.
func (s *ListingService) Search(ctx context.Context, state query.FilterState) (*Page, error) {
	start := time.Now()
	defer func() { searchDuration.Observe(time.Since(start).Seconds()) }()

	now := s.now()
	state = state.Normalize(s.pageSize)
	req := query.Build(state, now)
	key := ListKey(req)

	resp, cached := getJSON[auctionapi.ListResponse](ctx, s.cache, key)
	if !cached {
		var err error
		resp, err = s.api.List(ctx, req)
		if err != nil {
			result := "error"
			if errors.Is(err, context.Canceled) {
				result = "canceled"
			}
			searchTotal.WithLabelValues(result).Inc()
			return nil, fmt.Errorf("загрузка списка аукционов: %w", err)
		}
		setJSON(ctx, s.cache, key, resp)
	}
	searchTotal.WithLabelValues("ok").Inc()

	items := make([]ListItem, 0, len(resp.Auctions))
	for i := range resp.Auctions {
		items = append(items, decorate(&resp.Auctions[i], now))
	}

	totalPages := pagination.TotalPages(resp.TotalCount, state.PageSize)
	page := &Page{
		Items:      items,
		TotalCount: resp.TotalCount,
		TotalPages: totalPages,
		Strip:      pagination.Window(state.Page, totalPages),
		State:      state,
		FetchedAt:  now,
	}

	s.logger.Debug("Страница списка загружена",
		slog.Int("page", state.Page),
		slog.Int("items", len(items)),
		slog.Int("total_count", resp.TotalCount),
		slog.Bool("cached", cached),
		slog.Int("filters", len(req.Filters)),
	)
	return page, nil
}

// Load выполняет цикл загрузки для представления клиента:
// Begin → Search → Commit или Fail. Возвращает снимок представления
// после завершения и ошибку загрузки (снимок при ошибке содержит
// предыдущую страницу с флагом Stale).
func (s *ListingService) Load(ctx context.Context, view *ListingView, state query.FilterState) (ViewSnapshot, error) {
	state = state.Normalize(s.pageSize)
	ticket := view.Begin(state)

	page, err := s.Search(ctx, state)
	if errors.Is(err, context.Canceled) {
		s.logger.Debug("Загрузка списка прервана клиентом",
			slog.String("view", view.ID()),
			slog.Uint64("ticket", uint64(ticket)),
		)
		view.Abandon(ticket)
		return view.Snapshot(), err
	}
	if err != nil {
		s.logger.Error("Ошибка загрузки списка аукционов",
			slog.String("view", view.ID()),
			slog.Uint64("ticket", uint64(ticket)),
			slog.String("error", err.Error()),
		)
		view.Fail(ticket, err)
		return view.Snapshot(), err
	}
	view.Commit(ticket, page)
	return view.Snapshot(), nil
}

// decorate вычисляет производные поля строки таблицы.
func decorate(a *model.Auction, now time.Time) ListItem {
	item := ListItem{
		Auction:    *a,
		Evaluation: status.Evaluate(a, now),
		DetailURL:  "/auctions/" + strconv.FormatInt(a.ID, 10),
	}
	if h := a.CurrentHistory(); h != nil {
		hc := *h
		item.History = &hc
	}
	item.ThumbnailURL = auctionapi.FileURL(auctionapi.FolderFor(a.AuctionType), a.FirstImage, false)
	return item
}
