package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AuctionType — тип аукциона.
type AuctionType string

// Типы аукционов.
const (
	AuctionTypeOnline  AuctionType = "online"
	AuctionTypeOffline AuctionType = "offline"
)

// Auction — аукцион недвижимости в том виде, в каком его отдаёт API.
// Клиент только читает записи; все изменения происходят на стороне API.
type Auction struct {
	ID           int64       `json:"id"`
	Address      string      `json:"address"`
	ShortAddress string      `json:"short_address,omitempty"`
	City         string      `json:"city"`
	PostCode     Text        `json:"post_code"`
	County       string      `json:"county,omitempty"`
	AuctionType  AuctionType `json:"auction_type"`

	StartingPrice  Money `json:"starting_price"`
	MinimalPrice   Money `json:"minimal_price"`
	BiddingLadder  Money `json:"bidding_ladder"`
	AuctionAdvance Money `json:"auction_advance"`

	// Окна раундов онлайн-аукциона
	FirstRoundStart     Timestamp `json:"first_round_start_time"`
	FirstRoundEnd       Timestamp `json:"first_round_end_time"`
	FirstRoundMinPrice  Money     `json:"first_round_min_price"`
	SecondRoundStart    Timestamp `json:"second_round_start_time"`
	SecondRoundEnd      Timestamp `json:"second_round_end_time"`
	SecondRoundMinPrice Money     `json:"second_round_min_price"`
	SecondRoundDiscount Money     `json:"second_round_discount"`
	ThirdRoundStart     Timestamp `json:"third_round_start_time"`
	ThirdRoundEnd       Timestamp `json:"third_round_end_time"`
	ThirdRoundMinPrice  Money     `json:"third_round_min_price"`
	ThirdRoundDiscount  Money     `json:"third_round_discount"`

	// Поле называется так в API (опечатка сохранена ради совместимости)
	StartTime      Timestamp `json:"online_auction_strat_time"`
	PlannedEndTime Timestamp `json:"online_auction_planned_end_time"`

	ExecutionNumber Text       `json:"execution_number"`
	SerialNumber    Text       `json:"serial_number,omitempty"`
	CanMoveIn       Flag       `json:"can_move_in"`
	NotMoveOut      Flag       `json:"not_move_out"`
	Viewable        Text       `json:"viewable,omitempty"`
	BuildingTypes   StringList `json:"building_types"`
	Classification  string     `json:"classification"`
	Description     string     `json:"description"`

	ParcelNumber           Text `json:"parcel_number"`
	LocationType           Text `json:"location_type,omitempty"`
	CultivationType        Text `json:"cultivation_type,omitempty"`
	RegisteredLandUse      Text `json:"registered_land_use,omitempty"`
	JuristicClassification Text `json:"juristic_classification,omitempty"`
	OwnershipFraction      Text `json:"ownership_fraction,omitempty"`
	PhoneNumber            Text `json:"phonenumber,omitempty"`

	FirstImage string     `json:"link_to_first_image"`
	AllImages  StringList `json:"all_images,omitempty"`
	PDFLink    string     `json:"pdf_link,omitempty"`

	Histories []AuctionHistory `json:"auction_histories,omitempty"`
}

// RoundWindow — окно одного раунда.
type RoundWindow struct {
	Number   int
	Start    Timestamp
	End      Timestamp
	MinPrice Money
	// Discount — скидка от стартовой цены в процентах (раунды 2–3)
	Discount Money
}

// Contains сообщает, что момент t попадает в [Start, End] включительно.
// Окно без начала или конца не содержит ничего.
func (w RoundWindow) Contains(t time.Time) bool {
	if w.Start.IsZero() || w.End.IsZero() {
		return false
	}
	return !t.Before(w.Start.Time) && !t.After(w.End.Time)
}

// Round возвращает окно раунда n (1..3).
func (a *Auction) Round(n int) RoundWindow {
	switch n {
	case 1:
		return RoundWindow{Number: 1, Start: a.FirstRoundStart, End: a.FirstRoundEnd, MinPrice: a.FirstRoundMinPrice}
	case 2:
		return RoundWindow{Number: 2, Start: a.SecondRoundStart, End: a.SecondRoundEnd,
			MinPrice: a.SecondRoundMinPrice, Discount: a.SecondRoundDiscount}
	case 3:
		return RoundWindow{Number: 3, Start: a.ThirdRoundStart, End: a.ThirdRoundEnd,
			MinPrice: a.ThirdRoundMinPrice, Discount: a.ThirdRoundDiscount}
	default:
		return RoundWindow{Number: n}
	}
}

// IsOnline сообщает, что аукцион проводится онлайн.
func (a *Auction) IsOnline() bool {
	return strings.EqualFold(string(a.AuctionType), string(AuctionTypeOnline))
}

// CurrentHistory возвращает текущую запись истории (is_current),
// а если такой нет — последнюю. nil, если история пуста.
func (a *Auction) CurrentHistory() *AuctionHistory {
	for i := range a.Histories {
		if a.Histories[i].IsCurrent {
			return &a.Histories[i]
		}
	}
	if len(a.Histories) == 0 {
		return nil
	}
	return &a.Histories[len(a.Histories)-1]
}

// HasCurrentHistory сообщает, что среди записей истории есть помеченная is_current.
func (a *Auction) HasCurrentHistory() bool {
	for i := range a.Histories {
		if a.Histories[i].IsCurrent {
			return true
		}
	}
	return false
}

// FinalResult возвращает итог аукциона из актуальной записи истории.
// nil означает, что аукцион ещё не завершён (или истории нет).
func (a *Auction) FinalResult() *string {
	h := a.CurrentHistory()
	if h == nil {
		return nil
	}
	return h.FinalResult
}

// AuctionHistory — снимок истории торгов аукциона.
type AuctionHistory struct {
	ID                      int64     `json:"id"`
	AuctionID               int64     `json:"auction_id"`
	BiddingHistory          string    `json:"bidding_history"`
	BiddingHistoryUpdatedAt Timestamp `json:"bidding_history_updated_at"`
	NumberOfBids            Count     `json:"number_of_bids"`
	ChangeInNumberOfBids    Count     `json:"change_in_number_of_bids"`
	HighestBid              Money     `json:"highest_bid"`
	HighestBidSubmittedDate Timestamp `json:"highest_bid_submitted_date"`
	FinalPrice              Money     `json:"final_price"`
	FinalResult             *string   `json:"final_result"`
	IsCurrent               Flag      `json:"is_current"`
	Removed                 Flag      `json:"removed"`
	ScrapedAt               Timestamp `json:"scraped_at"`
}

// Bid — одна ставка из журнала торгов.
type Bid struct {
	Nickname string    `json:"nickname"`
	Amount   Money     `json:"amount"`
	Date     Timestamp `json:"date"`
	Valid    Flag      `json:"valid"`
}

// Bids разбирает журнал ставок. API хранит его JSON-массивом внутри строки.
func (h *AuctionHistory) Bids() ([]Bid, error) {
	raw := strings.TrimSpace(h.BiddingHistory)
	if raw == "" || raw == "null" || raw == "[]" {
		return nil, nil
	}
	var bids []Bid
	if err := json.Unmarshal([]byte(raw), &bids); err != nil {
		return nil, fmt.Errorf("разбор журнала ставок истории %d: %w", h.ID, err)
	}
	return bids, nil
}
