// detail.go — страница аукциона.
package pages

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/bigkaa/auction-browser/internal/domain/model"
	"github.com/bigkaa/auction-browser/internal/service"
	"github.com/bigkaa/auction-browser/internal/ui/i18n"
)

// DetailData — данные страницы аукциона.
type DetailData struct {
	Detail *service.Detail
	// BackURL — ссылка «назад» на список (с фильтрами, если известны)
	BackURL string
}

// Detail — страница аукциона.
func Detail(data DetailData) templ.Component {
	return component(func(ctx context.Context) g.Node {
		d := data.Detail
		a := &d.Auction
		back := data.BackURL
		if back == "" {
			back = listPath
		}
		return layout(ctx, i18n.Tf(ctx, "detail.title", a.ID),
			h.P(h.A(h.Href(back), g.Text("← "+i18n.T(ctx, "nav.back")))),
			h.H1(g.Text(i18n.Tf(ctx, "detail.title", a.ID)), g.Text(" "), badge(ctx, d.Evaluation.StatusLabel)),
			gallery(ctx, d.Files),
			basicSection(ctx, d),
			g.If(a.IsOnline(), roundsSection(ctx, a)),
			historySection(ctx, d),
			moreSection(ctx, a),
		)
	})
}

// entry — строка списка «подпись: значение».
type entry struct {
	Key   string
	Value g.Node
}

func entryText(key, value string) entry {
	return entry{Key: key, Value: g.Text(value)}
}

func fields(ctx context.Context, entries ...entry) g.Node {
	nodes := make([]g.Node, 0, 2*len(entries))
	for _, e := range entries {
		nodes = append(nodes, h.Dt(g.Text(i18n.T(ctx, e.Key))), h.Dd(e.Value))
	}
	return h.Dl(h.Class("fields"), g.Group(nodes))
}

func gallery(ctx context.Context, files service.FileLinks) g.Node {
	if len(files.Images) == 0 && files.PDFDownload == "" {
		return nil
	}
	links := make([]g.Node, 0, 2)
	if files.FirstImageDownload != "" {
		links = append(links, h.A(h.Href(files.FirstImageDownload), g.Attr("download"),
			g.Text(i18n.T(ctx, "detail.download_image"))))
	}
	if files.PDFDownload != "" {
		links = append(links, h.A(h.Href(files.PDFDownload), g.Attr("download"),
			g.Text(i18n.T(ctx, "detail.download_pdf"))))
	}
	return h.Section(h.Class("gallery"),
		h.H2(g.Text(i18n.T(ctx, "detail.images"))),
		h.Div(g.Map(files.Images, func(src string) g.Node {
			return h.A(h.Href(src), h.Img(h.Src(src), h.Alt(""), g.Attr("loading", "lazy")))
		})),
		h.P(g.Group(links)),
	)
}

func basicSection(ctx context.Context, d *service.Detail) g.Node {
	a := &d.Auction
	ev := d.Evaluation

	entries := []entry{
		entryText("detail.address", text(a.Address)),
		entryText("detail.phone", text(string(a.PhoneNumber))),
		entryText("detail.auction_advance", money(ctx, a.AuctionAdvance)),
		entryText("detail.starting_price", money(ctx, a.StartingPrice)),
		entryText("detail.minimal_price", money(ctx, a.MinimalPrice)),
		entryText("detail.bidding_ladder", money(ctx, a.BiddingLadder)),
		entryText("detail.start_time", timestamp(ctx, a.StartTime)),
		entryText("detail.planned_end_time", timestamp(ctx, a.PlannedEndTime)),
		{Key: "detail.status", Value: badge(ctx, ev.StatusLabel)},
	}
	if a.IsOnline() {
		entries = append(entries,
			entry{Key: "detail.current_round", Value: badge(ctx, ev.RoundLabel)},
			entryText("detail.round_end_time", moment(ctx, ev.RoundEndTime)),
			entryText("detail.round_min_price", decimalMoney(ctx, ev.RoundMinPrice)),
		)
	}
	return h.Section(
		h.H2(g.Text(i18n.T(ctx, "detail.basic"))),
		fields(ctx, entries...),
	)
}

// roundsSection — окна трёх раундов онлайн-аукциона.
func roundsSection(ctx context.Context, a *model.Auction) g.Node {
	rows := make([]g.Node, 0, 3)
	for n := 1; n <= 3; n++ {
		w := a.Round(n)
		discount := i18n.Placeholder
		if w.Discount.IsSet() {
			discount = w.Discount.Value().String() + " %"
		}
		rows = append(rows, h.Tr(
			h.Th(g.Text(i18n.T(ctx, "filter.round."+itoa(n)))),
			h.Td(g.Text(timestamp(ctx, w.Start))),
			h.Td(g.Text(timestamp(ctx, w.End))),
			h.Td(g.Text(money(ctx, w.MinPrice))),
			h.Td(g.Text(discount)),
		))
	}
	return h.Section(
		h.H2(g.Text(i18n.T(ctx, "detail.rounds"))),
		h.Table(
			h.THead(h.Tr(
				h.Th(),
				h.Th(g.Text(i18n.T(ctx, "detail.round.start"))),
				h.Th(g.Text(i18n.T(ctx, "detail.round.end"))),
				h.Th(g.Text(i18n.T(ctx, "detail.round.min_price"))),
				h.Th(g.Text(i18n.T(ctx, "detail.round.discount"))),
			)),
			h.TBody(g.Group(rows)),
		),
	)
}

// historySection — состояние торгов и журнал ставок.
func historySection(ctx context.Context, d *service.Detail) g.Node {
	entries := []entry{entryText("detail.history", i18n.T(ctx, "history."+string(d.HistoryState)))}
	if c := d.Current; c != nil {
		result := i18n.Placeholder
		if c.FinalResult != nil {
			result = text(*c.FinalResult)
		}
		entries = append(entries,
			entryText("detail.highest_bid", money(ctx, c.HighestBid)),
			entryText("detail.number_of_bids", count(ctx, c.NumberOfBids)),
			entryText("detail.final_price", money(ctx, c.FinalPrice)),
			entryText("detail.final_result", result),
		)
	}

	var log g.Node
	if len(d.Bids) == 0 {
		log = h.P(g.Text(i18n.T(ctx, "detail.no_bids")))
	} else {
		log = h.Table(
			h.THead(h.Tr(
				h.Th(g.Text(i18n.T(ctx, "detail.bid.nickname"))),
				h.Th(g.Text(i18n.T(ctx, "detail.bid.amount"))),
				h.Th(g.Text(i18n.T(ctx, "detail.bid.date"))),
				h.Th(g.Text(i18n.T(ctx, "detail.bid.valid"))),
			)),
			h.TBody(g.Map(d.Bids, func(b model.Bid) g.Node {
				return h.Tr(
					h.Td(g.Text(text(b.Nickname))),
					h.Td(g.Text(money(ctx, b.Amount))),
					h.Td(g.Text(timestamp(ctx, b.Date))),
					h.Td(g.Text(flag(ctx, b.Valid))),
				)
			})),
		)
	}

	return h.Section(
		fields(ctx, entries...),
		h.H2(g.Text(i18n.T(ctx, "detail.bids"))),
		log,
	)
}

// moreSection — описательные атрибуты и текст объявления.
func moreSection(ctx context.Context, a *model.Auction) g.Node {
	return h.Section(
		h.H2(g.Text(i18n.T(ctx, "detail.more"))),
		fields(ctx,
			entryText("detail.location", text(string(a.LocationType))),
			entryText("detail.parcel_number", text(string(a.ParcelNumber))),
			entryText("detail.execution_number", text(string(a.ExecutionNumber))),
			entryText("detail.building_types", text(strings.Join(a.BuildingTypes, ", "))),
			entryText("detail.classification", text(a.Classification)),
			entryText("detail.can_move_in", flag(ctx, a.CanMoveIn)),
		),
		g.If(strings.TrimSpace(a.Description) != "", g.Group([]g.Node{
			h.H2(g.Text(i18n.T(ctx, "detail.description"))),
			h.P(g.Text(a.Description)),
		})),
	)
}

// ErrorData — данные страницы ошибки.
type ErrorData struct {
	// Key — ключ сообщения в каталоге (error.*)
	Key string
}

// Error — страница ошибки со ссылкой на список.
func Error(data ErrorData) templ.Component {
	return component(func(ctx context.Context) g.Node {
		msg := i18n.T(ctx, data.Key)
		return layout(ctx, msg,
			h.Div(h.Class("banner banner-error"), g.Attr("role", "alert"), g.Text(msg)),
			h.P(h.A(h.Href(listPath), g.Text("← "+i18n.T(ctx, "nav.back")))),
		)
	})
}
