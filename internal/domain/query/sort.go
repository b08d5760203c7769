package query

// DefaultSort — сортировка по умолчанию: ближайшие по окончанию сверху.
var DefaultSort = Sort{Field: "online_auction_planned_end_time", Direction: Asc}

// sortableFields — колонки, по которым API умеет сортировать.
var sortableFields = map[string]bool{
	"online_auction_planned_end_time": true,
	"address":                         true,
	"post_code":                       true,
	"starting_price":                  true,
	"minimal_price":                   true,
	"bidding_ladder":                  true,
	"execution_number":                true,
	"first_round_start_time":          true,
	"auction_type":                    true,
}

// IsSortable сообщает, что по полю можно сортировать.
func IsSortable(field string) bool {
	return sortableFields[field]
}

// ToggleSort возвращает сортировку после выбора колонки field:
// повторный выбор той же колонки меняет направление, новая колонка — всегда asc.
// Неизвестное поле оставляет сортировку без изменений.
func ToggleSort(current Sort, field string) Sort {
	if !IsSortable(field) {
		return current
	}
	if current.Field != field {
		return Sort{Field: field, Direction: Asc}
	}
	if current.Direction == Asc {
		return Sort{Field: field, Direction: Desc}
	}
	return Sort{Field: field, Direction: Asc}
}
