// Пакет status — вычисление раунда и отображаемого статуса аукциона.
// Чистые функции: результат зависит только от записи и переданного времени,
// ничего не сохраняется и пересчитывается при каждом запросе.
package status

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bigkaa/auction-browser/internal/domain/model"
)

// Round — идентификатор текущего раунда онлайн-аукциона.
type Round string

// Значения Round. RoundNone — нет данных об окнах или запись противоречива.
const (
	RoundNotStarted Round = "not-started"
	RoundFirst      Round = "1"
	RoundSecond     Round = "2"
	RoundThird      Round = "3"
	RoundExpired    Round = "expired"
	RoundNone       Round = ""
)

// Status — отображаемый статус аукциона.
type Status string

// Значения Status.
const (
	// StatusContinuous — офлайн-аукцион (Folyamatos)
	StatusContinuous Status = "continuous"
	// StatusLive — идёт один из раундов (Élő)
	StatusLive Status = "live"
	// StatusFinished — есть итог торгов (Befejezett)
	StatusFinished Status = "finished"
	// StatusNotStarted — первый раунд ещё не начался (El nem kezdődött)
	StatusNotStarted Status = "not_started"
	// StatusExpired — все раунды прошли без итога (Lejárt)
	StatusExpired Status = "expired"
	// StatusCancelled — статус не определить (Törölve)
	StatusCancelled Status = "cancelled"
)

// Label — ключ i18n-каталога и класс оформления.
type Label struct {
	Key   string `json:"key"`
	Style string `json:"style"`
}

// ClassifyRound определяет раунд по окнам аукциона и текущему времени.
// Правила проверяются строго по порядку, побеждает первое совпадение.
func ClassifyRound(a *model.Auction, now time.Time) Round {
	r1, r2, r3 := a.Round(1), a.Round(2), a.Round(3)

	switch {
	case !r1.Start.IsZero() && r1.Start.After(now):
		return RoundNotStarted
	case r1.Contains(now):
		return RoundFirst
	case r2.Contains(now):
		return RoundSecond
	case r3.Contains(now):
		return RoundThird
	case !r3.End.IsZero() && r3.End.Before(now):
		return RoundExpired
	default:
		return RoundNone
	}
}

// RoundMinPrice возвращает минимальную цену для раунда.
// Для ещё не начавшегося аукциона — цена первого раунда, для истёкшего —
// третьего. Истёкший аукцион без итога торгов показывает 0.
func RoundMinPrice(a *model.Auction, r Round) decimal.Decimal {
	switch r {
	case RoundNotStarted, RoundFirst:
		return a.Round(1).MinPrice.Value()
	case RoundSecond:
		return a.Round(2).MinPrice.Value()
	case RoundThird:
		return a.Round(3).MinPrice.Value()
	case RoundExpired:
		if a.FinalResult() == nil {
			return decimal.Zero
		}
		return a.Round(3).MinPrice.Value()
	default:
		return decimal.Zero
	}
}

// RoundEndTime возвращает момент, который показывается в колонке «Szakasz vége».
// Для не начавшегося аукциона это начало первого раунда.
func RoundEndTime(a *model.Auction, r Round) time.Time {
	switch r {
	case RoundNotStarted:
		return a.Round(1).Start.Time
	case RoundFirst:
		return a.Round(1).End.Time
	case RoundSecond:
		return a.Round(2).End.Time
	case RoundThird, RoundExpired:
		return a.Round(3).End.Time
	default:
		return time.Time{}
	}
}

// roundLabels — подписи раундов. Нераспознанный раунд получает «Törölve».
var roundLabels = map[Round]Label{
	RoundNotStarted: {Key: "round.not_started", Style: "pending"},
	RoundFirst:      {Key: "round.first", Style: "live"},
	RoundSecond:     {Key: "round.second", Style: "live"},
	RoundThird:      {Key: "round.third", Style: "live"},
	RoundExpired:    {Key: "round.expired", Style: "expired"},
}

// cancelledLabel — подпись по умолчанию.
var cancelledLabel = Label{Key: "round.cancelled", Style: "cancelled"}

// RoundLabel возвращает подпись раунда.
func RoundLabel(r Round) Label {
	if l, ok := roundLabels[r]; ok {
		return l
	}
	return cancelledLabel
}

// DisplayStatus вычисляет отображаемый статус аукциона.
// Офлайн-аукцион всегда «Folyamatos», независимо от окон и истории.
func DisplayStatus(a *model.Auction, now time.Time) Status {
	if !a.IsOnline() {
		return StatusContinuous
	}
	if a.FinalResult() != nil {
		return StatusFinished
	}
	switch ClassifyRound(a, now) {
	case RoundNotStarted:
		return StatusNotStarted
	case RoundFirst, RoundSecond, RoundThird:
		return StatusLive
	case RoundExpired:
		return StatusExpired
	default:
		return StatusCancelled
	}
}

// statusLabels — подписи статусов.
var statusLabels = map[Status]Label{
	StatusContinuous: {Key: "status.continuous", Style: "continuous"},
	StatusLive:       {Key: "status.live", Style: "live"},
	StatusFinished:   {Key: "status.finished", Style: "finished"},
	StatusNotStarted: {Key: "status.not_started", Style: "pending"},
	StatusExpired:    {Key: "status.expired", Style: "expired"},
	StatusCancelled:  {Key: "status.cancelled", Style: "cancelled"},
}

// StatusLabel возвращает подпись статуса. Неизвестный статус — «Törölve».
func StatusLabel(s Status) Label {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return statusLabels[StatusCancelled]
}

// HistoryState — состояние торгов по данным истории (блок на странице аукциона).
type HistoryState string

// Значения HistoryState.
const (
	HistoryInProgress HistoryState = "in_progress"
	HistoryClosed     HistoryState = "closed"
	HistoryNoData     HistoryState = "no_data"
)

// HistoryStateOf определяет состояние торгов: для онлайн-аукциона с текущей
// записью истории — «идёт», пока хоть одна запись без итога; иначе «нет данных».
func HistoryStateOf(a *model.Auction) HistoryState {
	if !a.IsOnline() || !a.HasCurrentHistory() {
		return HistoryNoData
	}
	for i := range a.Histories {
		if a.Histories[i].FinalResult == nil {
			return HistoryInProgress
		}
	}
	return HistoryClosed
}

// Evaluation — все производные поля аукциона на момент времени.
type Evaluation struct {
	Status        Status          `json:"status"`
	StatusLabel   Label           `json:"status_label"`
	Round         Round           `json:"round"`
	RoundLabel    Label           `json:"round_label"`
	RoundMinPrice decimal.Decimal `json:"round_min_price"`
	RoundEndTime  time.Time       `json:"round_end_time"`
}

// Evaluate вычисляет статус, раунд, цену и время окончания раунда.
func Evaluate(a *model.Auction, now time.Time) Evaluation {
	st := DisplayStatus(a, now)
	r := ClassifyRound(a, now)
	return Evaluation{
		Status:        st,
		StatusLabel:   StatusLabel(st),
		Round:         r,
		RoundLabel:    RoundLabel(r),
		RoundMinPrice: RoundMinPrice(a, r),
		RoundEndTime:  RoundEndTime(a, r),
	}
}
