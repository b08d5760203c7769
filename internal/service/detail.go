// detail.go — сервис карточки аукциона.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bigkaa/auction-browser/internal/auctionapi"
	"github.com/bigkaa/auction-browser/internal/domain/model"
	"github.com/bigkaa/auction-browser/internal/domain/status"
)

// AuctionGetter — источник отдельных аукционов (auctionapi.Client).
type AuctionGetter interface {
	Get(ctx context.Context, id int64) (*model.Auction, error)
}

// FileLinks — ссылки на файлы аукциона через прокси.
type FileLinks struct {
	Images             []string `json:"images"`
	FirstImage         string   `json:"first_image,omitempty"`
	FirstImageDownload string   `json:"first_image_download,omitempty"`
	PDFDownload        string   `json:"pdf_download,omitempty"`
}

// Detail — карточка аукциона с вычисленными полями.
type Detail struct {
	Auction      model.Auction         `json:"auction"`
	Evaluation   status.Evaluation     `json:"evaluation"`
	HistoryState status.HistoryState   `json:"history_state"`
	Current      *model.AuctionHistory `json:"current_history,omitempty"`
	Bids         []model.Bid           `json:"bids"`
	Files        FileLinks             `json:"files"`
	FetchedAt    time.Time             `json:"fetched_at"`
}

// DetailService — сервис карточки аукциона.
type DetailService struct {
	api    AuctionGetter
	cache  *CacheService
	now    func() time.Time
	logger *slog.Logger
}

// NewDetailService создаёт сервис карточки.
func NewDetailService(api AuctionGetter, cache *CacheService, logger *slog.Logger) *DetailService {
	return &DetailService{
		api:    api,
		cache:  cache,
		now:    time.Now,
		logger: logger.With(slog.String("component", "detail_service")),
	}
}

// Get загружает аукцион id и вычисляет статус, раунд, состояние торгов,
// журнал ставок и ссылки на файлы.
func (s *DetailService) Get(ctx context.Context, id int64) (*Detail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("аукцион %d: %w", id, ErrNotFound)
	}

	key := AuctionKey(id)
	a, ok := getJSON[model.Auction](ctx, s.cache, key)
	if !ok {
		var err error
		a, err = s.api.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("загрузка аукциона %d: %w", id, err)
		}
		setJSON(ctx, s.cache, key, a)
	}

	now := s.now()
	d := &Detail{
		Auction:      *a,
		Evaluation:   status.Evaluate(a, now),
		HistoryState: status.HistoryStateOf(a),
		Bids:         []model.Bid{},
		Files:        buildFileLinks(a),
		FetchedAt:    now,
	}

	if h := a.CurrentHistory(); h != nil {
		hc := *h
		d.Current = &hc
		bids, err := h.Bids()
		if err != nil {
			// Журнал ставок необязателен для карточки
			s.logger.Warn("Журнал ставок не разобран",
				slog.Int64("auction_id", id),
				slog.String("error", err.Error()),
			)
		} else if bids != nil {
			d.Bids = bids
		}
	}
	return d, nil
}

// buildFileLinks строит ссылки на изображения и PDF аукциона.
func buildFileLinks(a *model.Auction) FileLinks {
	folder := auctionapi.FolderFor(a.AuctionType)
	links := FileLinks{
		Images:             make([]string, 0, len(a.AllImages)),
		FirstImage:         auctionapi.FileURL(folder, a.FirstImage, false),
		FirstImageDownload: auctionapi.FileURL(folder, a.FirstImage, true),
		PDFDownload:        auctionapi.FileURL(folder, a.PDFLink, true),
	}
	for _, img := range a.AllImages {
		if u := auctionapi.FileURL(folder, img, false); u != "" {
			links.Images = append(links.Images, u)
		}
	}
	return links
}
