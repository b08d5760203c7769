package service

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/bigkaa/auction-browser/internal/domain/query"
)

func pageWithTotal(n int) *Page {
	return &Page{TotalCount: n}
}

func TestListingView_Lifecycle(t *testing.T) {
	v := NewListingView("v")
	if s := v.Snapshot(); s.Phase != PhaseIdle || s.Loading {
		t.Fatalf("новое представление: %+v", s)
	}

	t1 := v.Begin(query.FilterState{Page: 1})
	if s := v.Snapshot(); s.Phase != PhaseLoading || !s.Loading {
		t.Fatalf("после Begin: %+v", s)
	}

	if !v.Commit(t1, pageWithTotal(10)) {
		t.Fatal("Commit отброшен")
	}
	s := v.Snapshot()
	if s.Phase != PhaseSuccess || s.Loading || s.Page.TotalCount != 10 || s.Stale {
		t.Errorf("после Commit: %+v", s)
	}
}

func TestListingView_Abandon(t *testing.T) {
	v := NewListingView("v")
	t1 := v.Begin(query.FilterState{Page: 1})
	v.Commit(t1, &Page{TotalCount: 5, State: query.FilterState{Page: 1}})

	t2 := v.Begin(query.FilterState{Page: 2})
	v.Abandon(t2)
	s := v.Snapshot()
	if s.Phase != PhaseSuccess || s.Loading || s.Stale || s.Err != nil {
		t.Errorf("после Abandon: %+v", s)
	}
	if s.State.Page != 1 || s.Page.TotalCount != 5 {
		t.Errorf("ожидалась прежняя страница: %+v", s)
	}

	// Тикет не зафиксирован: следующая загрузка применяется как обычно
	t3 := v.Begin(query.FilterState{Page: 3})
	if !v.Commit(t3, pageWithTotal(7)) {
		t.Fatal("Commit после Abandon отброшен")
	}
	if s := v.Snapshot(); s.Phase != PhaseSuccess || s.Page.TotalCount != 7 {
		t.Errorf("после Commit: %+v", s)
	}
}

func TestListingView_AbandonFreshView(t *testing.T) {
	v := NewListingView("v")
	v.Abandon(v.Begin(query.FilterState{}))
	if s := v.Snapshot(); s.Phase != PhaseIdle || s.Loading || s.Page != nil {
		t.Errorf("после Abandon: %+v", s)
	}
}

// TestListingView_StaleTicketDiscarded: ответ старой загрузки, пришедший
// после ответа новой, не перезаписывает результат.
func TestListingView_StaleTicketDiscarded(t *testing.T) {
	v := NewListingView("v")
	t1 := v.Begin(query.FilterState{Page: 1})
	t2 := v.Begin(query.FilterState{Page: 2})

	if !v.Commit(t2, pageWithTotal(2)) {
		t.Fatal("Commit новой загрузки отброшен")
	}
	if v.Commit(t1, pageWithTotal(1)) {
		t.Error("Commit старой загрузки должен быть отброшен")
	}
	if v.Fail(t1, errors.New("late")) {
		t.Error("Fail старой загрузки должен быть отброшен")
	}

	s := v.Snapshot()
	if s.Page.TotalCount != 2 || s.Phase != PhaseSuccess || s.Stale {
		t.Errorf("снимок = %+v", s)
	}
}

// TestListingView_OlderCommitKeepsLoading: результат более старой загрузки
// применяется, но флаг загрузки остаётся, пока не завершится последняя.
func TestListingView_OlderCommitKeepsLoading(t *testing.T) {
	v := NewListingView("v")
	t1 := v.Begin(query.FilterState{Page: 1})
	t2 := v.Begin(query.FilterState{Page: 2})

	if !v.Commit(t1, pageWithTotal(1)) {
		t.Fatal("Commit t1 отброшен")
	}
	if s := v.Snapshot(); !s.Loading {
		t.Error("Loading должен оставаться true до завершения t2")
	}
	if !v.Commit(t2, pageWithTotal(2)) {
		t.Fatal("Commit t2 отброшен")
	}
	if s := v.Snapshot(); s.Loading || s.Page.TotalCount != 2 {
		t.Errorf("снимок = %+v", s)
	}
}

func TestListingView_FailKeepsPage(t *testing.T) {
	v := NewListingView("v")
	v.Commit(v.Begin(query.FilterState{}), pageWithTotal(7))

	boom := errors.New("boom")
	if !v.Fail(v.Begin(query.FilterState{Page: 3}), boom) {
		t.Fatal("Fail отброшен")
	}
	s := v.Snapshot()
	if s.Phase != PhaseError || s.Loading {
		t.Errorf("Phase=%q Loading=%v", s.Phase, s.Loading)
	}
	if !s.Stale || s.Page.TotalCount != 7 || !errors.Is(s.Err, boom) {
		t.Errorf("снимок = %+v", s)
	}

	// Ошибка без предыдущей страницы не считается устаревшим показом
	fresh := NewListingView("f")
	fresh.Fail(fresh.Begin(query.FilterState{}), boom)
	if s := fresh.Snapshot(); s.Stale || s.Page != nil || s.Phase != PhaseError {
		t.Errorf("снимок без страницы = %+v", s)
	}
}

// TestListingView_ClosedIgnoresResults: после Close результаты игнорируются.
func TestListingView_ClosedIgnoresResults(t *testing.T) {
	v := NewListingView("v")
	t1 := v.Begin(query.FilterState{})
	v.Close()

	if v.Commit(t1, pageWithTotal(1)) {
		t.Error("Commit после Close должен быть отброшен")
	}
	if v.Fail(t1, errors.New("x")) {
		t.Error("Fail после Close должен быть отброшен")
	}
	if v.Snapshot().Page != nil {
		t.Error("страница применена после Close")
	}
	if !v.Closed() {
		t.Error("Closed = false")
	}
}

func TestListingView_UnknownTicket(t *testing.T) {
	v := NewListingView("v")
	if v.Commit(Ticket(5), pageWithTotal(1)) {
		t.Error("Commit невыданного тикета должен быть отброшен")
	}
}

func TestViewStore_Acquire(t *testing.T) {
	store := NewViewStore(10, slog.Default())

	v1, id := store.Acquire("")
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("идентификатор %q не UUID", id)
	}
	v2, id2 := store.Acquire(id)
	if v1 != v2 || id2 != id {
		t.Error("повторный Acquire вернул другое представление")
	}

	_, id3 := store.Acquire("not-a-uuid")
	if id3 == "not-a-uuid" || id3 == id {
		t.Errorf("для некорректного id ожидался новый идентификатор, получен %q", id3)
	}

	// Неизвестный, но корректный UUID сохраняется
	known := uuid.NewString()
	_, id4 := store.Acquire(known)
	if id4 != known {
		t.Errorf("Acquire(%q) = %q", known, id4)
	}
}

// TestViewStore_EvictionClosesView: вытесненное представление закрывается.
func TestViewStore_EvictionClosesView(t *testing.T) {
	store := NewViewStore(1, slog.Default())

	first, _ := store.Acquire("")
	ticket := first.Begin(query.FilterState{})
	store.Acquire("")

	if !first.Closed() {
		t.Fatal("вытесненное представление не закрыто")
	}
	if first.Commit(ticket, pageWithTotal(1)) {
		t.Error("результат применён к вытесненному представлению")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, ожидалось 1", store.Len())
	}

	second, id := store.Acquire("")
	store.Release(id)
	if !second.Closed() {
		t.Error("Release не закрыл представление")
	}
}
