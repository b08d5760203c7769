// Пакет query — состояние фильтров списка аукционов и построение запроса к API.
package query

import (
	"strconv"
	"strings"
)

// Ограничения размера страницы.
const (
	DefaultPageSize = 30
	MaxPageSize     = 100
)

// Direction — направление сортировки.
type Direction string

// Направления сортировки.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort — поле и направление сортировки.
type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// AuctionKind — значение селектора типа аукциона.
type AuctionKind string

// Значения селектора типа аукциона. Пустое значение — все аукционы.
const (
	KindAll        AuctionKind = ""
	KindOnline     AuctionKind = "online"
	KindOffline    AuctionKind = "offline"
	KindLive       AuctionKind = "live"
	KindFinished   AuctionKind = "finished"
	KindNotStarted AuctionKind = "not-started"
	KindExpired    AuctionKind = "expired"
)

// auctionKinds — допустимые значения селектора.
var auctionKinds = map[AuctionKind]bool{
	KindAll: true, KindOnline: true, KindOffline: true, KindLive: true,
	KindFinished: true, KindNotStarted: true, KindExpired: true,
}

// Valid сообщает, что значение селектора известно.
func (k AuctionKind) Valid() bool {
	return auctionKinds[k]
}

// FilterState — состояние всех элементов управления списка.
// Нулевое значение любого поля означает «фильтр не задан».
type FilterState struct {
	Query          string      `json:"q,omitempty"`
	BuildingType   string      `json:"building_type,omitempty"`
	Classification string      `json:"classification,omitempty"`
	StartingPrice  string      `json:"starting_price,omitempty"`
	MinimalPrice   string      `json:"minimal_price,omitempty"`
	Counties       []string    `json:"counties,omitempty"`
	CanMoveIn      *bool       `json:"can_move_in,omitempty"`
	AuctionType    AuctionKind `json:"auction_type,omitempty"`
	Round          int         `json:"round,omitempty"`
	Sort           Sort        `json:"sort"`
	Page           int         `json:"page"`
	PageSize       int         `json:"page_size"`
}

// Normalize приводит состояние к допустимому виду: страница не меньше 1,
// размер страницы в [1, MaxPageSize], сортировка по белому списку,
// округа — известные и без повторов. defaultPageSize используется при PageSize <= 0.
func (s FilterState) Normalize(defaultPageSize int) FilterState {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	s.Query = strings.TrimSpace(s.Query)
	s.BuildingType = strings.TrimSpace(s.BuildingType)
	if s.BuildingType == BuildingTypeNone {
		s.BuildingType = ""
	}
	s.Classification = strings.TrimSpace(s.Classification)
	if _, ok := ParseRange(s.StartingPrice); !ok {
		s.StartingPrice = ""
	}
	if _, ok := ParseRange(s.MinimalPrice); !ok {
		s.MinimalPrice = ""
	}
	s.Counties = NormalizeCounties(s.Counties)
	if !s.AuctionType.Valid() {
		s.AuctionType = KindAll
	}
	if s.Round < 1 || s.Round > 3 {
		s.Round = 0
	}
	if !IsSortable(s.Sort.Field) {
		s.Sort = DefaultSort
	} else if s.Sort.Direction != Desc {
		s.Sort.Direction = Asc
	}
	if s.Page < 1 {
		s.Page = 1
	}
	switch {
	case s.PageSize <= 0:
		s.PageSize = defaultPageSize
	case s.PageSize > MaxPageSize:
		s.PageSize = MaxPageSize
	}
	return s
}

// WithPage возвращает копию состояния с другой страницей.
func (s FilterState) WithPage(page int) FilterState {
	s.Counties = append([]string(nil), s.Counties...)
	s.Page = page
	return s
}

// WithSort возвращает копию состояния после нажатия на заголовок колонки field.
// Смена сортировки возвращает на первую страницу.
func (s FilterState) WithSort(field string) FilterState {
	s.Counties = append([]string(nil), s.Counties...)
	next := ToggleSort(s.Sort, field)
	if next != s.Sort {
		s.Page = 1
	}
	s.Sort = next
	return s
}

// PriceRange — диапазон цены в форинтах. Max == 0 означает «без верхней границы».
type PriceRange struct {
	Min int64
	Max int64
}

// ParseRange разбирает пресет вида "a-b" или "a-". Пустая строка допустима
// и означает отсутствие фильтра (второй результат true, диапазон нулевой).
func ParseRange(s string) (PriceRange, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriceRange{}, true
	}
	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return PriceRange{}, false
	}
	var r PriceRange
	if lo = strings.TrimSpace(lo); lo != "" {
		v, err := strconv.ParseInt(lo, 10, 64)
		if err != nil || v < 0 {
			return PriceRange{}, false
		}
		r.Min = v
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		v, err := strconv.ParseInt(hi, 10, 64)
		if err != nil || v <= 0 || v < r.Min {
			return PriceRange{}, false
		}
		r.Max = v
	}
	return r, true
}

// IsZero сообщает, что диапазон ничего не ограничивает.
func (r PriceRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}
