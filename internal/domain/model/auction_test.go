package model

import (
	"encoding/json"
	"testing"
	"time"
)

// TestAuction_DecodeMixedTypes проверяет разбор ответа API, где числа приходят
// то строками, то числами, а флаги — в разных форматах.
func TestAuction_DecodeMixedTypes(t *testing.T) {
	payload := `{
		"id": 42,
		"address": "1011 Budapest, Fő utca 1.",
		"city": "Budapest",
		"post_code": 1011,
		"auction_type": "online",
		"starting_price": "12000000",
		"minimal_price": 9000000,
		"bidding_ladder": 100000,
		"auction_advance": "",
		"first_round_start_time": "2026-01-10T10:00:00",
		"first_round_end_time": "2026-01-20 10:00:00",
		"first_round_min_price": 9000000,
		"second_round_discount": "10",
		"third_round_end_time": null,
		"online_auction_strat_time": "2026-01-10T10:00:00+01:00",
		"execution_number": 12345,
		"can_move_in": "igen",
		"building_types": "lakóház, garázs",
		"parcel_number": "123/4",
		"auction_histories": [
			{"id": 1, "is_current": 0, "final_result": null, "number_of_bids": "3"},
			{"id": 2, "is_current": 1, "final_result": "sikeres", "final_price": "9500000"}
		]
	}`

	var a Auction
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		t.Fatalf("Unmarshal ошибка: %v", err)
	}

	if a.PostCode != "1011" {
		t.Errorf("PostCode = %q, ожидался 1011", a.PostCode)
	}
	if a.StartingPrice.Value().IntPart() != 12000000 {
		t.Errorf("StartingPrice = %s, ожидалось 12000000", a.StartingPrice.Value())
	}
	if a.AuctionAdvance.IsSet() {
		t.Error("AuctionAdvance: пустая строка должна давать незаданную сумму")
	}
	if a.SecondRoundDiscount.Value().IntPart() != 10 {
		t.Errorf("SecondRoundDiscount = %s, ожидалось 10", a.SecondRoundDiscount.Value())
	}
	if !a.ThirdRoundEnd.IsZero() {
		t.Error("ThirdRoundEnd: null должен давать нулевую дату")
	}
	if a.FirstRoundEnd.Location() != Location {
		t.Errorf("FirstRoundEnd: ожидался часовой пояс %v", Location)
	}
	if a.ExecutionNumber != "12345" {
		t.Errorf("ExecutionNumber = %q", a.ExecutionNumber)
	}
	if !a.CanMoveIn {
		t.Error("CanMoveIn = false, ожидалось true для \"igen\"")
	}
	if len(a.BuildingTypes) != 2 || a.BuildingTypes[1] != "garázs" {
		t.Errorf("BuildingTypes = %v", a.BuildingTypes)
	}
	if !a.IsOnline() {
		t.Error("IsOnline = false")
	}

	h := a.CurrentHistory()
	if h == nil || h.ID != 2 {
		t.Fatalf("CurrentHistory = %+v, ожидалась запись 2", h)
	}
	if a.FinalResult() == nil || *a.FinalResult() != "sikeres" {
		t.Errorf("FinalResult = %v", a.FinalResult())
	}
	if a.Histories[0].NumberOfBids != 3 {
		t.Errorf("NumberOfBids = %d, ожидалось 3", a.Histories[0].NumberOfBids)
	}
}

func TestAuction_CurrentHistoryFallback(t *testing.T) {
	a := Auction{}
	if a.CurrentHistory() != nil {
		t.Error("пустая история: ожидался nil")
	}
	if a.FinalResult() != nil {
		t.Error("пустая история: FinalResult должен быть nil")
	}

	a.Histories = []AuctionHistory{{ID: 1}, {ID: 2}}
	if got := a.CurrentHistory(); got == nil || got.ID != 2 {
		t.Errorf("без is_current ожидалась последняя запись, получено %+v", got)
	}
	if a.HasCurrentHistory() {
		t.Error("HasCurrentHistory = true без is_current")
	}
}

func TestRoundWindow_Contains(t *testing.T) {
	start := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	w := RoundWindow{Start: NewTimestamp(start), End: NewTimestamp(end)}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"до начала", start.Add(-time.Second), false},
		{"ровно начало", start, true},
		{"внутри", start.Add(time.Hour), true},
		{"ровно конец", end, true},
		{"после конца", end.Add(time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.at); got != tt.want {
				t.Errorf("Contains(%v) = %v, ожидалось %v", tt.at, got, tt.want)
			}
		})
	}

	if (RoundWindow{Start: NewTimestamp(start)}).Contains(start) {
		t.Error("окно без конца не должно ничего содержать")
	}
}

func TestAuctionHistory_Bids(t *testing.T) {
	h := AuctionHistory{
		ID:             7,
		BiddingHistory: `[{"nickname":"licitalo1","amount":"9100000","date":"2026-01-11 12:00:00","valid":1},{"nickname":"b2","amount":9200000,"date":"2026-01-11T13:00:00","valid":false}]`,
	}
	bids, err := h.Bids()
	if err != nil {
		t.Fatalf("Bids ошибка: %v", err)
	}
	if len(bids) != 2 {
		t.Fatalf("len(bids) = %d, ожидалось 2", len(bids))
	}
	if bids[0].Nickname != "licitalo1" || !bids[0].Valid {
		t.Errorf("bids[0] = %+v", bids[0])
	}
	if bids[1].Amount.Value().IntPart() != 9200000 || bids[1].Valid {
		t.Errorf("bids[1] = %+v", bids[1])
	}

	empty := AuctionHistory{BiddingHistory: ""}
	if got, err := empty.Bids(); err != nil || got != nil {
		t.Errorf("пустой журнал: got=%v err=%v", got, err)
	}

	broken := AuctionHistory{BiddingHistory: "{not json"}
	if _, err := broken.Bids(); err == nil {
		t.Error("ожидалась ошибка разбора журнала")
	}
}

func TestFlag_Unknown(t *testing.T) {
	var f Flag
	if err := json.Unmarshal([]byte(`"talán"`), &f); err == nil {
		t.Error("ожидалась ошибка для неизвестного значения флага")
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	if _, err := ParseTimestamp("10/01/2026"); err == nil {
		t.Error("ожидалась ошибка для неизвестного формата даты")
	}
	ts, err := ParseTimestamp("  ")
	if err != nil || !ts.IsZero() {
		t.Errorf("пустая строка: ts=%v err=%v", ts, err)
	}
}
