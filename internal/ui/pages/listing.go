// listing.go — страница списка аукционов: фильтры, таблица, пагинация.
package pages

import (
	"context"
	"slices"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/bigkaa/auction-browser/internal/domain/pagination"
	"github.com/bigkaa/auction-browser/internal/domain/query"
	"github.com/bigkaa/auction-browser/internal/service"
	"github.com/bigkaa/auction-browser/internal/ui/i18n"
)

// listPath — путь страницы списка.
const listPath = "/"

// ListingData — данные страницы списка.
type ListingData struct {
	Snapshot service.ViewSnapshot
	State    query.FilterState
	// PageSize — размер страницы по умолчанию; не попадает в ссылки
	PageSize int
}

// column — колонка таблицы. Пустой Field — колонка без сортировки.
type column struct {
	Key   string
	Field string
}

// columns — колонки таблицы в порядке отображения.
var columns = []column{
	{Key: "table.post_code", Field: "post_code"},
	{Key: "table.address", Field: "address"},
	{Key: "table.minimal_price", Field: "minimal_price"},
	{Key: "table.starting_price", Field: "starting_price"},
	{Key: "table.status"},
	{Key: "table.bidding_ladder", Field: "bidding_ladder"},
	{Key: "table.round_end_time"},
	{Key: "table.current_round"},
	{Key: "table.round_min_price"},
	{Key: "table.planned_end_time", Field: "online_auction_planned_end_time"},
	{Key: "table.highest_bid"},
	{Key: "table.number_of_bids"},
	{Key: "table.execution_number", Field: "execution_number"},
	{Key: "table.scraped_at"},
}

// Listing — страница списка аукционов.
func Listing(data ListingData) templ.Component {
	return component(func(ctx context.Context) g.Node {
		return layout(ctx, i18n.T(ctx, "app.title"),
			filterForm(ctx, data.State),
			listingBanner(ctx, data.Snapshot),
			listingResults(ctx, data),
		)
	})
}

// listingBanner — предупреждение об ошибке загрузки.
// Без предыдущей страницы показывается ошибка, с ней — устаревшие данные.
func listingBanner(ctx context.Context, snap service.ViewSnapshot) g.Node {
	switch {
	case snap.Stale:
		return h.Div(h.Class("banner banner-warning"), g.Attr("role", "status"), g.Text(i18n.T(ctx, "listing.stale")))
	case snap.Err != nil && snap.Page == nil:
		return h.Div(h.Class("banner banner-error"), g.Attr("role", "alert"), g.Text(i18n.T(ctx, "listing.error")))
	default:
		return nil
	}
}

func listingResults(ctx context.Context, data ListingData) g.Node {
	page := data.Snapshot.Page
	if page == nil {
		return nil
	}
	if len(page.Items) == 0 {
		return h.P(h.Class("empty"), g.Text(i18n.T(ctx, "listing.empty")))
	}
	// Ссылки строятся от состояния показанной страницы: при устаревших
	// данных это предыдущий успешный запрос
	state := page.State
	return h.Div(h.Class("results"),
		h.P(h.Class("total"), g.Text(i18n.Tf(ctx, "listing.total", i18n.FormatNumber(ctx, int64(page.TotalCount))))),
		h.Table(
			h.THead(h.Tr(tableHeader(ctx, state, data.PageSize)...)),
			h.TBody(g.Map(page.Items, func(it service.ListItem) g.Node {
				return listingRow(ctx, it)
			})),
		),
		paginationStrip(ctx, page.Strip, state, data.PageSize),
	)
}

func tableHeader(ctx context.Context, state query.FilterState, pageSize int) []g.Node {
	cells := make([]g.Node, 0, len(columns)+1)
	cells = append(cells, h.Th())
	for _, c := range columns {
		label := i18n.T(ctx, c.Key)
		if c.Field == "" {
			cells = append(cells, h.Th(g.Text(label)))
			continue
		}
		if state.Sort.Field == c.Field {
			if state.Sort.Direction == query.Desc {
				label += " ▼"
			} else {
				label += " ▲"
			}
		}
		cells = append(cells, h.Th(h.A(h.Href(state.WithSort(c.Field).URL(listPath, pageSize)), g.Text(label))))
	}
	return cells
}

func listingRow(ctx context.Context, it service.ListItem) g.Node {
	a := &it.Auction
	ev := it.Evaluation

	thumb := g.Node(nil)
	if it.ThumbnailURL != "" {
		thumb = h.A(h.Href(it.DetailURL),
			h.Img(h.Class("thumb"), h.Src(it.ThumbnailURL), h.Alt(a.Address), g.Attr("loading", "lazy")))
	}

	// У офлайн-аукциона нет раундов
	roundEnd, round, roundPrice := g.Node(g.Text(i18n.Placeholder)), g.Node(g.Text(i18n.Placeholder)), i18n.Placeholder
	if a.IsOnline() {
		roundEnd = g.Text(moment(ctx, ev.RoundEndTime))
		round = badge(ctx, ev.RoundLabel)
		roundPrice = decimalMoney(ctx, ev.RoundMinPrice)
	}

	highest, bids, scraped := i18n.Placeholder, i18n.Placeholder, i18n.Placeholder
	if it.History != nil {
		highest = money(ctx, it.History.HighestBid)
		bids = count(ctx, it.History.NumberOfBids)
		scraped = timestamp(ctx, it.History.ScrapedAt)
	}

	return h.Tr(
		h.Td(thumb),
		h.Td(g.Text(text(string(a.PostCode)))),
		h.Td(h.A(h.Href(it.DetailURL), g.Text(text(a.Address)))),
		h.Td(g.Text(money(ctx, a.MinimalPrice))),
		h.Td(g.Text(money(ctx, a.StartingPrice))),
		h.Td(badge(ctx, ev.StatusLabel)),
		h.Td(g.Text(money(ctx, a.BiddingLadder))),
		h.Td(roundEnd),
		h.Td(round),
		h.Td(g.Text(roundPrice)),
		h.Td(g.Text(timestamp(ctx, a.PlannedEndTime))),
		h.Td(g.Text(highest)),
		h.Td(g.Text(bids)),
		h.Td(g.Text(text(string(a.ExecutionNumber)))),
		h.Td(g.Text(scraped)),
	)
}

// paginationStrip — полоса страниц. Одна страница навигации не требует.
func paginationStrip(ctx context.Context, s pagination.Strip, state query.FilterState, pageSize int) g.Node {
	if s.Total <= 1 {
		return nil
	}
	link := func(page int, label string) g.Node {
		return h.Li(h.A(h.Href(state.WithPage(page).URL(listPath, pageSize)), g.Text(label)))
	}

	items := make([]g.Node, 0, len(s.Items)+2)
	if s.Prev > 0 {
		items = append(items, link(s.Prev, i18n.T(ctx, "pagination.prev")))
	}
	for _, it := range s.Items {
		switch {
		case it.Kind == pagination.KindEllipsis:
			items = append(items, h.Li(g.Text("…")))
		case it.Current:
			items = append(items, h.Li(h.Class("current"), g.Attr("aria-current", "page"), g.Text(strconv.Itoa(it.Page))))
		default:
			items = append(items, link(it.Page, strconv.Itoa(it.Page)))
		}
	}
	if s.Next > 0 {
		items = append(items, link(s.Next, i18n.T(ctx, "pagination.next")))
	}
	return h.Nav(g.Attr("aria-label", i18n.T(ctx, "pagination.label")),
		h.Ul(h.Class("pagination"), g.Group(items)),
	)
}

// filterForm — форма фильтров. Отправляется GET-запросом на страницу списка,
// номер страницы не передаётся, поэтому новый фильтр открывает первую страницу.
func filterForm(ctx context.Context, s query.FilterState) g.Node {
	return g.El("form",
		h.Method("get"), h.Action(listPath), h.Class("filters"),
		h.Input(h.Type("search"), h.Name(query.ParamQuery), h.Value(s.Query),
			h.Placeholder(i18n.T(ctx, "search.placeholder"))),
		field(ctx, "filter.building_type", buildingTypeSelect(ctx, s.BuildingType)),
		field(ctx, "filter.classification",
			stringSelect(ctx, query.ParamClassification, s.Classification, query.Classifications)),
		field(ctx, "filter.starting_price", priceSelect(ctx, query.ParamStartingPrice, s.StartingPrice)),
		field(ctx, "filter.minimal_price", priceSelect(ctx, query.ParamMinimalPrice, s.MinimalPrice)),
		field(ctx, "filter.can_move_in", canMoveInSelect(ctx, s.CanMoveIn)),
		field(ctx, "filter.auction_type", auctionTypeSelect(ctx, s.AuctionType)),
		field(ctx, "filter.round", roundSelect(ctx, s.Round)),
		countyChecks(ctx, s.Counties),
		g.If(s.Sort != query.DefaultSort, g.Group([]g.Node{
			h.Input(h.Type("hidden"), h.Name(query.ParamSort), h.Value(s.Sort.Field)),
			h.Input(h.Type("hidden"), h.Name(query.ParamDir), h.Value(string(s.Sort.Direction))),
		})),
		h.Button(h.Type("submit"), g.Text(i18n.T(ctx, "search.submit"))),
		h.A(h.Href(listPath), g.Text(i18n.T(ctx, "search.reset"))),
	)
}

func field(ctx context.Context, key string, control g.Node) g.Node {
	return g.El("label", g.Text(i18n.T(ctx, key)+" "), control)
}

func option(value, label string, selected bool) g.Node {
	return h.Option(h.Value(value), g.If(selected, h.Selected()), g.Text(label))
}

func stringSelect(ctx context.Context, name, current string, values []string) g.Node {
	opts := []g.Node{option("", i18n.T(ctx, "filter.all"), current == "")}
	for _, v := range values {
		opts = append(opts, option(v, v, v == current))
	}
	return h.Select(h.Name(name), g.Group(opts))
}

// buildingTypeSelect — список типов здания; «nincs» означает отсутствие фильтра.
func buildingTypeSelect(ctx context.Context, current string) g.Node {
	opts := []g.Node{option("", i18n.T(ctx, "filter.all"), current == "")}
	for _, v := range query.BuildingTypes {
		opts = append(opts, option(v, v, v == current))
	}
	opts = append(opts, option(query.BuildingTypeNone, i18n.T(ctx, "filter.building_type.none"), false))
	return h.Select(h.Name(query.ParamBuildingType), g.Group(opts))
}

func priceSelect(ctx context.Context, name, current string) g.Node {
	opts := []g.Node{option("", i18n.T(ctx, "filter.all"), current == "")}
	for _, p := range query.PricePresets {
		opts = append(opts, option(p.Value, priceLabel(ctx, p.Range), p.Value == current))
	}
	return h.Select(h.Name(name), g.Group(opts))
}

// priceLabel — подпись пресета: «a - b Ft» или «a Ft felett».
func priceLabel(ctx context.Context, r query.PriceRange) string {
	if r.Max == 0 {
		return i18n.Tf(ctx, "filter.price.above", i18n.FormatNumber(ctx, r.Min-1))
	}
	return i18n.Tf(ctx, "filter.price.range", i18n.FormatNumber(ctx, r.Min), i18n.FormatNumber(ctx, r.Max))
}

func canMoveInSelect(ctx context.Context, current *bool) g.Node {
	return h.Select(h.Name(query.ParamCanMoveIn),
		option("", i18n.T(ctx, "filter.all"), current == nil),
		option("true", i18n.T(ctx, "filter.yes"), current != nil && *current),
		option("false", i18n.T(ctx, "filter.no"), current != nil && !*current),
	)
}

// auctionKinds — значения селектора типа аукциона в порядке отображения.
var auctionKinds = []query.AuctionKind{
	query.KindOnline, query.KindOffline, query.KindLive,
	query.KindFinished, query.KindNotStarted, query.KindExpired,
}

func auctionTypeSelect(ctx context.Context, current query.AuctionKind) g.Node {
	opts := []g.Node{option("", i18n.T(ctx, "filter.all"), current == query.KindAll)}
	for _, k := range auctionKinds {
		opts = append(opts, option(string(k), i18n.T(ctx, "filter.auction_type."+string(k)), k == current))
	}
	return h.Select(h.Name(query.ParamAuctionType), g.Group(opts))
}

func roundSelect(ctx context.Context, current int) g.Node {
	opts := []g.Node{option("", i18n.T(ctx, "filter.round.all"), current == 0)}
	for n := 1; n <= 3; n++ {
		opts = append(opts, option(itoa(n), i18n.T(ctx, "filter.round."+itoa(n)), n == current))
	}
	return h.Select(h.Name(query.ParamRound), g.Group(opts))
}

func countyChecks(ctx context.Context, selected []string) g.Node {
	boxes := make([]g.Node, 0, len(query.Counties))
	for _, c := range query.Counties {
		boxes = append(boxes, g.El("label",
			h.Input(h.Type("checkbox"), h.Name(query.ParamCounty), h.Value(c),
				g.If(slices.Contains(selected, c), h.Checked())),
			g.Text(" "+c),
		))
	}
	return g.El("fieldset", h.Class("counties"),
		g.El("legend", g.Text(i18n.T(ctx, "filter.county"))),
		g.Group(boxes),
	)
}
