package query

import (
	"net/url"
	"reflect"
	"testing"
)

func TestToggleSort(t *testing.T) {
	tests := []struct {
		name    string
		current Sort
		field   string
		want    Sort
	}{
		{"та же колонка asc → desc", Sort{"starting_price", Asc}, "starting_price", Sort{"starting_price", Desc}},
		{"та же колонка desc → asc", Sort{"starting_price", Desc}, "starting_price", Sort{"starting_price", Asc}},
		{"новая колонка после desc", Sort{"starting_price", Desc}, "address", Sort{"address", Asc}},
		{"новая колонка после asc", DefaultSort, "minimal_price", Sort{"minimal_price", Asc}},
		{"неизвестная колонка", Sort{"address", Desc}, "id; drop", Sort{"address", Desc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToggleSort(tt.current, tt.field); got != tt.want {
				t.Errorf("ToggleSort = %+v, ожидалось %+v", got, tt.want)
			}
		})
	}
}

func TestWithSort_ResetsPage(t *testing.T) {
	s := FilterState{Page: 4, Sort: DefaultSort}
	next := s.WithSort("address")
	if next.Page != 1 {
		t.Errorf("Page = %d, ожидалась 1 после смены сортировки", next.Page)
	}
	if s.Page != 4 {
		t.Error("WithSort изменил исходное состояние")
	}

	same := s.WithSort("unknown")
	if same.Page != 4 {
		t.Errorf("неизменная сортировка не должна сбрасывать страницу: %d", same.Page)
	}
}

func TestParseFilterState(t *testing.T) {
	v := url.Values{
		ParamQuery:          {" Pécs "},
		ParamBuildingType:   {"lakóház"},
		ParamStartingPrice:  {"1000001-5000000"},
		ParamMinimalPrice:   {"nonsense"},
		ParamCounty:         {"Baranya", "Főváros", "Baranya"},
		ParamCanMoveIn:      {"true"},
		ParamAuctionType:    {"live"},
		ParamRound:          {"2"},
		ParamSort:           {"starting_price"},
		ParamDir:            {"DESC"},
		ParamPage:           {"3"},
		ParamPageSize:       {"abc"},
		ParamClassification: {""},
	}
	s := ParseFilterState(v, 30)

	if s.Query != "Pécs" {
		t.Errorf("Query = %q", s.Query)
	}
	if s.MinimalPrice != "" {
		t.Errorf("MinimalPrice = %q, некорректный пресет должен сбрасываться", s.MinimalPrice)
	}
	if !reflect.DeepEqual(s.Counties, []string{"Baranya", "Budapest"}) {
		t.Errorf("Counties = %v", s.Counties)
	}
	if s.CanMoveIn == nil || !*s.CanMoveIn {
		t.Errorf("CanMoveIn = %v", s.CanMoveIn)
	}
	if s.AuctionType != KindLive || s.Round != 2 {
		t.Errorf("AuctionType=%q Round=%d", s.AuctionType, s.Round)
	}
	if s.Sort != (Sort{"starting_price", Desc}) {
		t.Errorf("Sort = %+v", s.Sort)
	}
	if s.Page != 3 || s.PageSize != 30 {
		t.Errorf("Page=%d PageSize=%d", s.Page, s.PageSize)
	}
}

func TestParseFilterState_Empty(t *testing.T) {
	s := ParseFilterState(url.Values{}, 25)
	want := FilterState{Sort: DefaultSort, Page: 1, PageSize: 25}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("ParseFilterState(пусто) = %+v, ожидалось %+v", s, want)
	}
	if enc := s.Values(25).Encode(); enc != "" {
		t.Errorf("Values(по умолчанию) = %q, ожидалась пустая строка", enc)
	}
}

// TestValues_RoundTrip: состояние переживает сериализацию в строку запроса.
func TestValues_RoundTrip(t *testing.T) {
	states := []FilterState{
		{Query: "Szeged", Page: 2, PageSize: 30, Sort: DefaultSort},
		{Counties: []string{"Pest", "Budapest"}, CanMoveIn: boolPtr(false), Page: 1, PageSize: 50, Sort: Sort{"address", Desc}},
		{AuctionType: KindFinished, Round: 3, StartingPrice: "10000001-", Classification: "ipari", Page: 7, PageSize: 30, Sort: DefaultSort},
	}
	for i, s := range states {
		got := ParseFilterState(s.Values(30), 30)
		if !reflect.DeepEqual(got, s) {
			t.Errorf("состояние %d: %+v → %+v", i, s, got)
		}
	}
}

func TestURL(t *testing.T) {
	s := FilterState{Query: "Győr", Page: 2}
	if got := s.URL("/", 30); got != "/?page=2&q=Gy%C5%91r" {
		t.Errorf("URL = %q", got)
	}
	if got := (FilterState{}).URL("/", 30); got != "/" {
		t.Errorf("URL(пусто) = %q", got)
	}
}
