package auctionapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bigkaa/auction-browser/internal/domain/model"
	"github.com/bigkaa/auction-browser/internal/domain/query"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", "", 5*time.Second, slog.Default())
	if err != nil {
		t.Fatalf("New ошибка: %v", err)
	}
	return c
}

func TestList_Success(t *testing.T) {
	var got query.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auctions" {
			t.Errorf("запрос %s %s, ожидался POST /auctions", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("тело запроса: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"auctions":[{"id":1,"auction_type":"online"},{"id":2,"auction_type":"offline"}],"total_count":"295"}`)
	})

	req := query.Build(query.FilterState{Query: "Pécs", Page: 2}, time.Now())
	resp, err := c.List(context.Background(), req)
	if err != nil {
		t.Fatalf("List ошибка: %v", err)
	}
	if len(resp.Auctions) != 2 || resp.Auctions[1].ID != 2 {
		t.Errorf("Auctions = %+v", resp.Auctions)
	}
	if resp.TotalCount != 295 {
		t.Errorf("TotalCount = %d, ожидалось 295", resp.TotalCount)
	}
	if got.PageNumber != 2 || len(got.Filters) != 1 || got.Filters[0].Field != "address" {
		t.Errorf("отправленный запрос = %+v", got)
	}
}

func TestList_NullAuctionsIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"auctions":null,"total_count":0}`)
	})
	resp, err := c.List(context.Background(), query.Request{})
	if err != nil {
		t.Fatalf("List ошибка: %v", err)
	}
	if resp.Auctions == nil || len(resp.Auctions) != 0 {
		t.Errorf("Auctions = %#v, ожидался пустой срез", resp.Auctions)
	}
}

func TestList_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"auctions не массив", http.StatusOK, `{"auctions":{"id":1},"total_count":1}`, ErrMalformedPayload},
		{"не JSON", http.StatusOK, `<html>`, ErrMalformedPayload},
		{"битая запись", http.StatusOK, `{"auctions":[{"id":"x"}]}`, ErrMalformedPayload},
		{"ошибка сервера", http.StatusInternalServerError, `boom`, ErrUpstream},
		{"плохой запрос", http.StatusBadRequest, `{}`, ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.List(context.Background(), query.Request{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ошибка = %v, ожидалась %v", err, tt.wantErr)
			}
		})
	}
}

func TestList_Unreachable(t *testing.T) {
	c, err := New("http://127.0.0.1:1", "", time.Second, slog.Default())
	if err != nil {
		t.Fatalf("New ошибка: %v", err)
	}
	if _, err := c.List(context.Background(), query.Request{}); !errors.Is(err, ErrUpstream) {
		t.Errorf("ошибка = %v, ожидалась ErrUpstream", err)
	}
}

func TestList_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := c.List(ctx, query.Request{})
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("ошибка = %v, ожидалась ErrUpstream", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ошибка = %v, ожидалась context.Canceled в цепочке", err)
	}
}

func TestGet_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	if _, err := c.Get(ctx, 5); !errors.Is(err, context.Canceled) {
		t.Errorf("ошибка = %v, ожидалась context.Canceled", err)
	}
}

func TestGet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auction" {
			t.Errorf("путь %s, ожидался /auction", r.URL.Path)
		}
		switch r.URL.Query().Get("id") {
		case "7":
			_, _ = io.WriteString(w, `{"auction":{"id":7,"address":"Szeged","auction_type":"online","starting_price":"1000"}}`)
		case "8":
			_, _ = io.WriteString(w, `{"auction":null}`)
		case "9":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})

	a, err := c.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get ошибка: %v", err)
	}
	if a.ID != 7 || a.Address != "Szeged" || a.AuctionType != model.AuctionTypeOnline {
		t.Errorf("аукцион = %+v", a)
	}

	for _, id := range []int64{8, 9} {
		if _, err := c.Get(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%d) ошибка = %v, ожидалась ErrNotFound", id, err)
		}
	}
	if _, err := c.Get(context.Background(), 10); !errors.Is(err, ErrUpstream) {
		t.Errorf("Get(10) ошибка = %v, ожидалась ErrUpstream", err)
	}
}

func TestDownload_PassesParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/download_file" || q.Get("folder") != FolderOnline ||
			q.Get("file") != "kep 1.jpg" || q.Get("download") != "1" {
			t.Errorf("запрос = %s", r.URL.String())
		}
		if r.Header.Get("Range") != "bytes=0-9" {
			t.Errorf("Range = %q", r.Header.Get("Range"))
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = io.WriteString(w, "0123456789")
	})

	resp, err := c.Download(context.Background(), FolderOnline, "kep 1.jpg", true, "bytes=0-9")
	if err != nil {
		t.Fatalf("Download ошибка: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusPartialContent || string(body) != "0123456789" {
		t.Errorf("status=%d body=%q", resp.StatusCode, body)
	}
}

func TestFileHelpers(t *testing.T) {
	if FolderFor(model.AuctionTypeOnline) != FolderOnline || FolderFor("ONLINE") != FolderOnline {
		t.Error("FolderFor(online) != Online_auctions")
	}
	if FolderFor(model.AuctionTypeOffline) != FolderOffline || FolderFor("") != FolderOffline {
		t.Error("FolderFor(offline) != Offline_auctions")
	}

	tests := []struct {
		folder, file string
		download     bool
		want         string
	}{
		{FolderOnline, "a.jpg", false, "/files/Online_auctions/a.jpg"},
		{FolderOffline, "hirdetmény 1.pdf", true, "/files/Offline_auctions/hirdetm%C3%A9ny%201.pdf?download=1"},
		{FolderOnline, "", false, ""},
		{FolderOnline, "../etc/passwd", false, ""},
		{"Secret", "a.jpg", false, ""},
	}
	for _, tt := range tests {
		if got := FileURL(tt.folder, tt.file, tt.download); got != tt.want {
			t.Errorf("FileURL(%q, %q) = %q, ожидалось %q", tt.folder, tt.file, got, tt.want)
		}
	}
}
