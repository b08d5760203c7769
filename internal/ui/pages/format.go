package pages

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/bigkaa/auction-browser/internal/domain/model"
	"github.com/bigkaa/auction-browser/internal/domain/status"
	"github.com/bigkaa/auction-browser/internal/ui/i18n"
)

func money(ctx context.Context, m model.Money) string {
	if !m.IsSet() {
		return i18n.Placeholder
	}
	return i18n.FormatMoney(ctx, m.Value())
}

// decimalMoney форматирует вычисленную сумму; ноль отображается как «0 Ft».
func decimalMoney(ctx context.Context, d decimal.Decimal) string {
	return i18n.FormatMoney(ctx, d)
}

func timestamp(ctx context.Context, t model.Timestamp) string {
	return i18n.FormatTime(ctx, t.Time, model.Location)
}

func moment(ctx context.Context, t time.Time) string {
	return i18n.FormatTime(ctx, t, model.Location)
}

func text(s string) string {
	if strings.TrimSpace(s) == "" {
		return i18n.Placeholder
	}
	return s
}

func flag(ctx context.Context, f model.Flag) string {
	if f {
		return i18n.T(ctx, "filter.yes")
	}
	return i18n.T(ctx, "filter.no")
}

func count(ctx context.Context, c model.Count) string {
	return i18n.FormatNumber(ctx, int64(c))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// badge — метка статуса или раунда с классом оформления.
func badge(ctx context.Context, l status.Label) g.Node {
	return h.Span(h.Class("badge badge-"+l.Style), g.Text(i18n.T(ctx, l.Key)))
}
