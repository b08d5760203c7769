package query

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bigkaa/auction-browser/internal/domain/model"
)

// Op — оператор предиката.
type Op string

// Операторы, которые понимает API.
const (
	OpLike Op = "like"
	OpEq   Op = "=="
	OpNe   Op = "!="
	OpLe   Op = "<="
	OpGt   Op = ">"
	OpIn   Op = "in"
)

// Модели, к полям которых относятся предикаты.
const (
	ModelAuction = "Auction"
	ModelHistory = "AuctionHistory"
)

// Predicate — одно условие фильтра. Все предикаты запроса объединяются через AND.
type Predicate struct {
	Model string `json:"model"`
	Field string `json:"field"`
	Op    Op     `json:"op"`
	Value any    `json:"value"`
}

// key — ключ для устранения повторов.
func (p Predicate) key() string {
	return fmt.Sprintf("%s|%s|%s|%v", p.Model, p.Field, p.Op, p.Value)
}

// Request — тело запроса списка аукционов.
type Request struct {
	Filters    []Predicate `json:"filters"`
	PageNumber int         `json:"page_number"`
	PageSize   int         `json:"page_size"`
	Sorts      []Sort      `json:"sorts"`
	TotalCount int         `json:"total_count"`
}

// roundPrefixes — префиксы полей окон раундов.
var roundPrefixes = map[int]string{1: "first", 2: "second", 3: "third"}

// Build строит запрос к API из состояния фильтров. Каждый заданный фильтр даёт
// ноль или несколько предикатов, незаданный — ни одного. now подставляется
// в предикаты селекторов «идёт», «не начался», «истёк» и раунда.
// Состояние предварительно нормализуется с DefaultPageSize.
func Build(s FilterState, now time.Time) Request {
	s = s.Normalize(DefaultPageSize)
	b := &builder{filters: []Predicate{}, seen: make(map[string]bool)}

	if s.Query != "" {
		b.add(ModelAuction, "address", OpLike, "%"+s.Query+"%")
	}
	if s.BuildingType != "" {
		b.add(ModelAuction, "building_types", OpLike, "%"+s.BuildingType+"%")
	}
	if s.Classification != "" {
		b.add(ModelAuction, "classification", OpEq, s.Classification)
	}
	b.addRange("starting_price", s.StartingPrice)
	b.addRange("minimal_price", s.MinimalPrice)

	if len(s.Counties) > 0 {
		names := make([]string, 0, len(s.Counties))
		for _, c := range s.Counties {
			names = append(names, CountyAPIName(c))
		}
		b.add(ModelAuction, "county", OpIn, names)
	}
	if s.CanMoveIn != nil {
		b.add(ModelAuction, "can_move_in", OpEq, *s.CanMoveIn)
	}

	b.addKind(s.AuctionType, now)
	if s.Round > 0 {
		prefix := roundPrefixes[s.Round]
		at := model.FormatTimestamp(now)
		b.add(ModelAuction, "auction_type", OpEq, string(model.AuctionTypeOnline))
		b.add(ModelAuction, prefix+"_round_start_time", OpLe, at)
		b.add(ModelAuction, prefix+"_round_end_time", OpGt, at)
	}

	return Request{
		Filters:    b.filters,
		PageNumber: s.Page,
		PageSize:   s.PageSize,
		Sorts:      []Sort{s.Sort},
	}
}

type builder struct {
	filters []Predicate
	seen    map[string]bool
}

// add добавляет предикат, если такого ещё нет.
func (b *builder) add(modelName, field string, op Op, value any) {
	p := Predicate{Model: modelName, Field: field, Op: op, Value: value}
	k := p.key()
	if b.seen[k] {
		return
	}
	b.seen[k] = true
	b.filters = append(b.filters, p)
}

// addRange: нижняя граница передаётся как «> min-1», верхняя — «<= max».
// Нулевая нижняя граница не передаётся.
func (b *builder) addRange(field, preset string) {
	r, ok := ParseRange(preset)
	if !ok || r.IsZero() {
		return
	}
	if r.Min > 0 {
		b.add(ModelAuction, field, OpGt, strconv.FormatInt(r.Min-1, 10))
	}
	if r.Max > 0 {
		b.add(ModelAuction, field, OpLe, strconv.FormatInt(r.Max, 10))
	}
}

// addKind раскрывает селектор типа аукциона в набор предикатов.
func (b *builder) addKind(kind AuctionKind, now time.Time) {
	at := model.FormatTimestamp(now)
	online := string(model.AuctionTypeOnline)

	switch kind {
	case KindOnline:
		b.add(ModelAuction, "auction_type", OpEq, online)
	case KindOffline:
		b.add(ModelAuction, "auction_type", OpEq, string(model.AuctionTypeOffline))
	case KindFinished:
		b.add(ModelAuction, "auction_type", OpEq, online)
		b.add(ModelHistory, "final_result", OpNe, nil)
	case KindLive:
		b.add(ModelAuction, "auction_type", OpEq, online)
		b.add(ModelHistory, "final_result", OpEq, nil)
		b.add(ModelAuction, "first_round_start_time", OpLe, at)
		b.add(ModelAuction, "third_round_end_time", OpGt, at)
	case KindNotStarted:
		b.add(ModelAuction, "auction_type", OpEq, online)
		b.add(ModelAuction, "first_round_start_time", OpGt, at)
	case KindExpired:
		b.add(ModelAuction, "auction_type", OpEq, online)
		b.add(ModelHistory, "final_result", OpEq, nil)
		b.add(ModelAuction, "third_round_end_time", OpLe, at)
	}
}
