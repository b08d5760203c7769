package service

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/bigkaa/auction-browser/internal/auctionapi"
	"github.com/bigkaa/auction-browser/internal/domain/model"
	"github.com/bigkaa/auction-browser/internal/domain/query"
)

// --- Mock API аукционов ---

// mockAPI — мок клиента API аукционов для unit-тестов.
type mockAPI struct {
	listFn     func(ctx context.Context, req query.Request) (*auctionapi.ListResponse, error)
	getFn      func(ctx context.Context, id int64) (*model.Auction, error)
	downloadFn func(ctx context.Context, folder, file string, download bool, rangeHeader string) (*http.Response, error)
	pingFn     func(ctx context.Context, path string) error

	listCalls atomic.Int32
	getCalls  atomic.Int32
}

func (m *mockAPI) List(ctx context.Context, req query.Request) (*auctionapi.ListResponse, error) {
	m.listCalls.Add(1)
	if m.listFn != nil {
		return m.listFn(ctx, req)
	}
	return &auctionapi.ListResponse{Auctions: []model.Auction{}}, nil
}

func (m *mockAPI) Get(ctx context.Context, id int64) (*model.Auction, error) {
	m.getCalls.Add(1)
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, auctionapi.ErrNotFound
}

func (m *mockAPI) Download(ctx context.Context, folder, file string, download bool, rangeHeader string) (*http.Response, error) {
	if m.downloadFn != nil {
		return m.downloadFn(ctx, folder, file, download, rangeHeader)
	}
	return nil, auctionapi.ErrUpstream
}

func (m *mockAPI) Ping(ctx context.Context, path string) error {
	if m.pingFn != nil {
		return m.pingFn(ctx, path)
	}
	return nil
}
