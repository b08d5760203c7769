package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Имена параметров строки запроса страницы списка.
const (
	ParamQuery          = "q"
	ParamBuildingType   = "building_type"
	ParamClassification = "classification"
	ParamStartingPrice  = "starting_price"
	ParamMinimalPrice   = "minimal_price"
	ParamCounty         = "county"
	ParamCanMoveIn      = "can_move_in"
	ParamAuctionType    = "auction_type"
	ParamRound          = "round"
	ParamSort           = "sort"
	ParamDir            = "dir"
	ParamPage           = "page"
	ParamPageSize       = "page_size"
)

// ParseFilterState восстанавливает состояние фильтров из строки запроса.
// Некорректные значения заменяются значениями по умолчанию.
func ParseFilterState(v url.Values, defaultPageSize int) FilterState {
	s := FilterState{
		Query:          v.Get(ParamQuery),
		BuildingType:   v.Get(ParamBuildingType),
		Classification: v.Get(ParamClassification),
		StartingPrice:  v.Get(ParamStartingPrice),
		MinimalPrice:   v.Get(ParamMinimalPrice),
		Counties:       v[ParamCounty],
		AuctionType:    AuctionKind(v.Get(ParamAuctionType)),
		Sort:           Sort{Field: v.Get(ParamSort), Direction: Direction(strings.ToLower(v.Get(ParamDir)))},
	}

	if raw := v.Get(ParamCanMoveIn); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			s.CanMoveIn = &b
		}
	}
	if n, err := strconv.Atoi(v.Get(ParamRound)); err == nil {
		s.Round = n
	}
	if n, err := strconv.Atoi(v.Get(ParamPage)); err == nil {
		s.Page = n
	}
	if n, err := strconv.Atoi(v.Get(ParamPageSize)); err == nil {
		s.PageSize = n
	}
	if s.Sort.Field == "" {
		s.Sort = DefaultSort
	}

	return s.Normalize(defaultPageSize)
}

// Values сериализует состояние в строку запроса. Значения по умолчанию
// не записываются, поэтому ParseFilterState(s.Values()) возвращает s.
func (s FilterState) Values(defaultPageSize int) url.Values {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	s = s.Normalize(defaultPageSize)
	v := url.Values{}

	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set(ParamQuery, s.Query)
	set(ParamBuildingType, s.BuildingType)
	set(ParamClassification, s.Classification)
	set(ParamStartingPrice, s.StartingPrice)
	set(ParamMinimalPrice, s.MinimalPrice)
	for _, c := range s.Counties {
		v.Add(ParamCounty, c)
	}
	if s.CanMoveIn != nil {
		v.Set(ParamCanMoveIn, strconv.FormatBool(*s.CanMoveIn))
	}
	set(ParamAuctionType, string(s.AuctionType))
	if s.Round > 0 {
		v.Set(ParamRound, strconv.Itoa(s.Round))
	}
	if s.Sort != DefaultSort {
		v.Set(ParamSort, s.Sort.Field)
		v.Set(ParamDir, string(s.Sort.Direction))
	}
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	if s.PageSize != defaultPageSize {
		v.Set(ParamPageSize, strconv.Itoa(s.PageSize))
	}
	return v
}

// URL возвращает путь со строкой запроса для состояния.
func (s FilterState) URL(path string, defaultPageSize int) string {
	enc := s.Values(defaultPageSize).Encode()
	if enc == "" {
		return path
	}
	return path + "?" + enc
}
