// view.go — серверное представление списка для одного клиента.
//
// Цикл загрузки: idle → loading → success | error. Каждая загрузка получает
// возрастающий тикет. Результат с тикетом не новее последнего применённого
// отбрасывается, поэтому медленный старый ответ не перезапишет свежий.
// После Close (клиент ушёл) любые результаты игнорируются.
package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/auction-browser/internal/domain/query"
)

// Prometheus-метрики представлений.
var (
	viewResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ab_view_results_total",
		Help: "Результаты загрузок представлений списка (applied, failed, discarded).",
	}, []string{"result"})
	viewsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ab_views_active",
		Help: "Количество представлений списка в памяти.",
	})
)

// Phase — фаза цикла загрузки.
type Phase string

// Фазы цикла загрузки.
const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// Ticket — номер загрузки в пределах одного представления.
type Ticket uint64

// ViewSnapshot — состояние представления на момент вызова Snapshot.
type ViewSnapshot struct {
	ID      string            `json:"id"`
	Phase   Phase             `json:"phase"`
	Loading bool              `json:"loading"`
	Page    *Page             `json:"page,omitempty"`
	State   query.FilterState `json:"state"`
	// Stale — показана предыдущая страница, последняя загрузка завершилась ошибкой
	Stale bool  `json:"stale"`
	Err   error `json:"-"`
}

// ListingView — представление списка одного клиента.
type ListingView struct {
	id string

	mu        sync.Mutex
	phase     Phase
	issued    Ticket
	committed Ticket
	closed    bool
	page      *Page
	state     query.FilterState
	lastErr   error
}

// NewListingView создаёт представление в фазе idle.
func NewListingView(id string) *ListingView {
	return &ListingView{id: id, phase: PhaseIdle}
}

// ID возвращает идентификатор представления.
func (v *ListingView) ID() string {
	return v.id
}

// Begin начинает новую загрузку для состояния state и возвращает её тикет.
func (v *ListingView) Begin(state query.FilterState) Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.issued++
	if !v.closed {
		v.phase = PhaseLoading
		v.state = state
	}
	return v.issued
}

// accept проверяет, можно ли применить результат загрузки t. Вызывается под mu.
func (v *ListingView) accept(t Ticket) bool {
	if v.closed || t <= v.committed || t > v.issued {
		viewResultsTotal.WithLabelValues("discarded").Inc()
		return false
	}
	v.committed = t
	return true
}

// Commit атомарно применяет успешный результат: страница, число страниц
// и снятие флага загрузки. Возвращает false, если результат отброшен.
func (v *ListingView) Commit(t Ticket, page *Page) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.accept(t) {
		return false
	}
	v.page = page
	v.lastErr = nil
	if t == v.issued || v.phase != PhaseLoading {
		v.phase = PhaseSuccess
	}
	viewResultsTotal.WithLabelValues("applied").Inc()
	return true
}

// Fail фиксирует ошибку загрузки t. Предыдущая страница сохраняется
// и помечается устаревшей. Возвращает false, если результат отброшен.
func (v *ListingView) Fail(t Ticket, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.accept(t) {
		return false
	}
	v.lastErr = err
	if t == v.issued || v.phase != PhaseLoading {
		v.phase = PhaseError
	}
	viewResultsTotal.WithLabelValues("failed").Inc()
	return true
}

// Abandon отменяет загрузку t без результата: тикет не фиксируется,
// представление возвращается к последнему применённому результату.
func (v *ListingView) Abandon(t Ticket) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || t != v.issued || v.phase != PhaseLoading {
		return
	}
	switch {
	case v.lastErr != nil:
		v.phase = PhaseError
	case v.page != nil:
		v.phase = PhaseSuccess
	default:
		v.phase = PhaseIdle
	}
	if v.page != nil {
		v.state = v.page.State
	}
	viewResultsTotal.WithLabelValues("abandoned").Inc()
}

// Close закрывает представление: последующие Commit и Fail игнорируются.
func (v *ListingView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

// Closed сообщает, что представление закрыто.
func (v *ListingView) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// Snapshot возвращает текущее состояние представления.
func (v *ListingView) Snapshot() ViewSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	return ViewSnapshot{
		ID:      v.id,
		Phase:   v.phase,
		Loading: v.phase == PhaseLoading,
		Page:    v.page,
		State:   v.state,
		Stale:   v.lastErr != nil && v.page != nil,
		Err:     v.lastErr,
	}
}

// viewTTL — время жизни неактивного представления.
const viewTTL = 30 * time.Minute

// ViewStore — LRU представлений по идентификатору клиента (cookie).
// Вытесненное или истёкшее представление закрывается.
type ViewStore struct {
	views  *expirable.LRU[string, *ListingView]
	logger *slog.Logger
}

// NewViewStore создаёт хранилище на size представлений.
func NewViewStore(size int, logger *slog.Logger) *ViewStore {
	if size <= 0 {
		size = 1
	}
	s := &ViewStore{logger: logger.With(slog.String("component", "view_store"))}
	s.views = expirable.NewLRU[string, *ListingView](size, func(_ string, v *ListingView) {
		v.Close()
		viewsActive.Dec()
	}, viewTTL)
	return s
}

// Acquire возвращает представление клиента id. Если id пуст, некорректен или
// представление уже вытеснено, создаётся новое с новым идентификатором.
// Второй результат — идентификатор, который нужно сохранить в cookie.
func (s *ViewStore) Acquire(id string) (*ListingView, string) {
	if _, err := uuid.Parse(id); err == nil {
		if v, ok := s.views.Get(id); ok {
			return v, id
		}
	} else {
		id = ""
	}
	if id == "" {
		id = uuid.NewString()
	}
	v := NewListingView(id)
	s.views.Add(id, v)
	viewsActive.Inc()
	s.logger.Debug("Создано представление списка", slog.String("view", id))
	return v, id
}

// Release закрывает и удаляет представление.
func (s *ViewStore) Release(id string) {
	s.views.Remove(id)
}

// Len возвращает количество представлений в памяти.
func (s *ViewStore) Len() int {
	return s.views.Len()
}
