package status

import (
	"testing"
	"time"

	"github.com/bigkaa/auction-browser/internal/domain/model"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ts(d time.Duration) model.Timestamp {
	return model.NewTimestamp(base.Add(d))
}

// onlineAuction — онлайн-аукцион с тремя последовательными окнами по 10 дней,
// первое начинается в base.
func onlineAuction() *model.Auction {
	day := 24 * time.Hour
	return &model.Auction{
		ID:                  1,
		AuctionType:         model.AuctionTypeOnline,
		FirstRoundStart:     ts(0),
		FirstRoundEnd:       ts(10 * day),
		FirstRoundMinPrice:  model.NewMoney(9_000_000),
		SecondRoundStart:    ts(10*day + time.Hour),
		SecondRoundEnd:      ts(20 * day),
		SecondRoundMinPrice: model.NewMoney(8_000_000),
		ThirdRoundStart:     ts(20*day + time.Hour),
		ThirdRoundEnd:       ts(30 * day),
		ThirdRoundMinPrice:  model.NewMoney(7_000_000),
	}
}

func strPtr(s string) *string { return &s }

func TestClassifyRound(t *testing.T) {
	day := 24 * time.Hour
	a := onlineAuction()

	tests := []struct {
		name string
		now  time.Time
		want Round
	}{
		{"до первого раунда", base.Add(-time.Minute), RoundNotStarted},
		{"начало первого раунда", base, RoundFirst},
		{"первый раунд", base.Add(5 * day), RoundFirst},
		{"конец первого раунда", base.Add(10 * day), RoundFirst},
		{"между первым и вторым", base.Add(10*day + time.Minute), RoundNone},
		{"второй раунд", base.Add(15 * day), RoundSecond},
		{"третий раунд", base.Add(25 * day), RoundThird},
		{"конец третьего раунда", base.Add(30 * day), RoundThird},
		{"после третьего раунда", base.Add(30*day + time.Second), RoundExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRound(a, tt.now); got != tt.want {
				t.Errorf("ClassifyRound = %q, ожидался %q", got, tt.want)
			}
		})
	}
}

func TestClassifyRound_FirstMatchWins(t *testing.T) {
	// Перекрывающиеся окна: момент внутри первого и второго — побеждает первое
	a := onlineAuction()
	a.SecondRoundStart = ts(time.Hour)
	if got := ClassifyRound(a, base.Add(2*time.Hour)); got != RoundFirst {
		t.Errorf("ClassifyRound = %q, ожидался %q", got, RoundFirst)
	}
}

func TestClassifyRound_NoWindows(t *testing.T) {
	a := &model.Auction{AuctionType: model.AuctionTypeOnline}
	if got := ClassifyRound(a, base); got != RoundNone {
		t.Errorf("ClassifyRound = %q, ожидался пустой раунд", got)
	}
	if got := RoundLabel(ClassifyRound(a, base)); got.Key != "round.cancelled" {
		t.Errorf("RoundLabel = %q, ожидался round.cancelled", got.Key)
	}
}

func TestRoundMinPrice(t *testing.T) {
	a := onlineAuction()

	tests := []struct {
		round Round
		want  int64
	}{
		{RoundNotStarted, 9_000_000},
		{RoundFirst, 9_000_000},
		{RoundSecond, 8_000_000},
		{RoundThird, 7_000_000},
		{RoundNone, 0},
	}
	for _, tt := range tests {
		if got := RoundMinPrice(a, tt.round).IntPart(); got != tt.want {
			t.Errorf("RoundMinPrice(%q) = %d, ожидалось %d", tt.round, got, tt.want)
		}
	}
}

func TestRoundMinPrice_Expired(t *testing.T) {
	a := onlineAuction()
	if got := RoundMinPrice(a, RoundExpired); !got.IsZero() {
		t.Errorf("истёкший без итога: %s, ожидался 0", got)
	}

	a.Histories = []model.AuctionHistory{{ID: 1, IsCurrent: true, FinalResult: strPtr("sikertelen")}}
	if got := RoundMinPrice(a, RoundExpired).IntPart(); got != 7_000_000 {
		t.Errorf("истёкший с итогом: %d, ожидалась цена третьего раунда", got)
	}
}

func TestRoundEndTime(t *testing.T) {
	a := onlineAuction()
	day := 24 * time.Hour

	tests := []struct {
		round Round
		want  time.Time
	}{
		{RoundNotStarted, base},
		{RoundFirst, base.Add(10 * day)},
		{RoundSecond, base.Add(20 * day)},
		{RoundThird, base.Add(30 * day)},
		{RoundExpired, base.Add(30 * day)},
		{RoundNone, time.Time{}},
	}
	for _, tt := range tests {
		if got := RoundEndTime(a, tt.round); !got.Equal(tt.want) {
			t.Errorf("RoundEndTime(%q) = %v, ожидалось %v", tt.round, got, tt.want)
		}
	}
}

func TestRoundLabel_UnknownFallsBack(t *testing.T) {
	if got := RoundLabel("7"); got != cancelledLabel {
		t.Errorf("RoundLabel(7) = %+v, ожидалась подпись отмены", got)
	}
	if got := RoundLabel(RoundSecond); got.Key != "round.second" {
		t.Errorf("RoundLabel(2) = %q", got.Key)
	}
}

// TestDisplayStatus_OfflineAlwaysContinuous: офлайн-аукцион «Folyamatos»
// при любых окнах, истории и времени.
func TestDisplayStatus_OfflineAlwaysContinuous(t *testing.T) {
	a := onlineAuction()
	a.AuctionType = model.AuctionTypeOffline
	a.Histories = []model.AuctionHistory{{ID: 1, IsCurrent: true, FinalResult: strPtr("sikeres")}}

	for _, now := range []time.Time{base.Add(-time.Hour), base.Add(time.Hour), base.Add(1000 * time.Hour)} {
		if got := DisplayStatus(a, now); got != StatusContinuous {
			t.Errorf("DisplayStatus(%v) = %q, ожидался %q", now, got, StatusContinuous)
		}
	}
}

// TestDisplayStatus_FinalResultWins: итог торгов важнее окон раундов.
func TestDisplayStatus_FinalResultWins(t *testing.T) {
	a := onlineAuction()
	a.Histories = []model.AuctionHistory{{ID: 1, IsCurrent: true, FinalResult: strPtr("sikeres")}}

	for _, now := range []time.Time{base.Add(-time.Hour), base.Add(time.Hour), base.Add(1000 * time.Hour)} {
		if got := DisplayStatus(a, now); got != StatusFinished {
			t.Errorf("DisplayStatus(%v) = %q, ожидался %q", now, got, StatusFinished)
		}
	}
}

func TestDisplayStatus_ByRound(t *testing.T) {
	day := 24 * time.Hour
	a := onlineAuction()

	tests := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"не начался", base.Add(-time.Hour), StatusNotStarted},
		{"первый раунд", base.Add(day), StatusLive},
		{"третий раунд", base.Add(25 * day), StatusLive},
		{"истёк", base.Add(31 * day), StatusExpired},
		{"промежуток между раундами", base.Add(10*day + time.Minute), StatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayStatus(a, tt.now); got != tt.want {
				t.Errorf("DisplayStatus = %q, ожидался %q", got, tt.want)
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel(StatusLive); got.Key != "status.live" {
		t.Errorf("StatusLabel(live) = %q", got.Key)
	}
	if got := StatusLabel("unknown"); got.Key != "status.cancelled" {
		t.Errorf("StatusLabel(unknown) = %q, ожидался status.cancelled", got.Key)
	}
}

func TestHistoryStateOf(t *testing.T) {
	tests := []struct {
		name    string
		typ     model.AuctionType
		history []model.AuctionHistory
		want    HistoryState
	}{
		{"онлайн без истории", model.AuctionTypeOnline, nil, HistoryNoData},
		{"онлайн без текущей записи", model.AuctionTypeOnline,
			[]model.AuctionHistory{{ID: 1}}, HistoryNoData},
		{"онлайн, торги идут", model.AuctionTypeOnline,
			[]model.AuctionHistory{{ID: 1, IsCurrent: true}}, HistoryInProgress},
		{"онлайн, старая запись без итога", model.AuctionTypeOnline,
			[]model.AuctionHistory{{ID: 1}, {ID: 2, IsCurrent: true, FinalResult: strPtr("sikeres")}}, HistoryInProgress},
		{"онлайн, все итоги есть", model.AuctionTypeOnline,
			[]model.AuctionHistory{{ID: 1, FinalResult: strPtr("x")}, {ID: 2, IsCurrent: true, FinalResult: strPtr("sikeres")}}, HistoryClosed},
		{"офлайн", model.AuctionTypeOffline,
			[]model.AuctionHistory{{ID: 1, IsCurrent: true}}, HistoryNoData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.Auction{AuctionType: tt.typ, Histories: tt.history}
			if got := HistoryStateOf(a); got != tt.want {
				t.Errorf("HistoryStateOf = %q, ожидалось %q", got, tt.want)
			}
		})
	}
}

// TestEvaluate_Pure: повторный вызов с тем же временем даёт тот же результат,
// другое время — пересчитанный статус.
func TestEvaluate_Pure(t *testing.T) {
	a := onlineAuction()
	now := base.Add(-time.Hour)

	first := Evaluate(a, now)
	second := Evaluate(a, now)
	if first.Status != second.Status || first.Round != second.Round ||
		!first.RoundMinPrice.Equal(second.RoundMinPrice) || !first.RoundEndTime.Equal(second.RoundEndTime) {
		t.Errorf("Evaluate не детерминирован: %+v != %+v", first, second)
	}
	if first.Status != StatusNotStarted || first.RoundLabel.Key != "round.not_started" {
		t.Errorf("Evaluate(до начала) = %+v", first)
	}

	later := Evaluate(a, base.Add(time.Hour))
	if later.Status != StatusLive || later.Round != RoundFirst {
		t.Errorf("Evaluate(первый раунд) = %+v", later)
	}
	if later.RoundMinPrice.IntPart() != 9_000_000 {
		t.Errorf("RoundMinPrice = %s", later.RoundMinPrice)
	}
}
