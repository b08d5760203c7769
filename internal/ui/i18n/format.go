// format.go — форматирование чисел, сумм и дат по языку запроса.
package i18n

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder — отображение отсутствующего значения.
const Placeholder = "—"

// printers — принтеры x/text по языку (разделители разрядов).
var printers = map[string]*message.Printer{
	LangHungarian: message.NewPrinter(language.Hungarian),
	LangEnglish:   message.NewPrinter(language.English),
}

// dateLayouts — формат даты и времени по языку.
var dateLayouts = map[string]string{
	LangHungarian: "2006. 01. 02. 15:04",
	LangEnglish:   "2006-01-02 15:04",
}

func printerFor(ctx context.Context) *message.Printer {
	if p, ok := printers[LangFromContext(ctx)]; ok {
		return p
	}
	return printers[LangHungarian]
}

// FormatNumber форматирует целое с разделителями разрядов.
func FormatNumber(ctx context.Context, n int64) string {
	return printerFor(ctx).Sprintf("%d", n)
}

// FormatMoney форматирует сумму в форинтах: «5 000 000 Ft».
// Дробная часть округляется до целого форинта.
func FormatMoney(ctx context.Context, d decimal.Decimal) string {
	return FormatNumber(ctx, d.Round(0).IntPart()) + " Ft"
}

// FormatTime форматирует момент времени в часовом поясе loc.
// Нулевое время — Placeholder.
func FormatTime(ctx context.Context, t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return Placeholder
	}
	if loc == nil {
		loc = time.UTC
	}
	layout, ok := dateLayouts[LangFromContext(ctx)]
	if !ok {
		layout = dateLayouts[LangHungarian]
	}
	return t.In(loc).Format(layout)
}
