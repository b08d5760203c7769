// Пакет pages — HTML-страницы Auction Browser.
// Разметка строится деревьями gomponents; наружу страницы отдаются как
// templ.Component, поэтому обработчики вызывают pages.X(data).Render(ctx, w).
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/bigkaa/auction-browser/internal/ui/i18n"
)

// baseCSS — минимальное оформление: статусы, таблица, баннеры.
const baseCSS = `
body{font-family:sans-serif;margin:0;color:#222}
header{display:flex;justify-content:space-between;align-items:center;padding:.5rem 1rem;background:#1f3a5f;color:#fff}
header a{color:#fff;text-decoration:none}
main{padding:1rem}
table{border-collapse:collapse;width:100%;font-size:.9rem}
th,td{border-bottom:1px solid #ddd;padding:.3rem .4rem;text-align:left;vertical-align:top}
.thumb{width:80px;height:60px;object-fit:cover}
.badge{padding:.1rem .4rem;border-radius:.3rem;white-space:nowrap}
.badge-live{background:#d4f5d4}.badge-finished{background:#dde4ff}
.badge-pending{background:#fff3c4}.badge-expired{background:#f1f1f1}
.badge-cancelled{background:#ffd6d6}.badge-continuous{background:#e0f4ff}
.banner{padding:.5rem 1rem;margin-bottom:1rem;border-radius:.3rem}
.banner-error{background:#ffd6d6}.banner-warning{background:#fff3c4}
.filters{display:flex;flex-wrap:wrap;gap:.5rem 1rem;margin-bottom:1rem}
.counties{display:flex;flex-wrap:wrap;gap:.2rem .6rem;width:100%}
.pagination{display:flex;gap:.3rem;margin-top:1rem;list-style:none;padding:0}
.pagination .current{font-weight:bold}
.gallery img{max-width:240px;margin:.2rem}
dl.fields{display:grid;grid-template-columns:max-content auto;gap:.2rem 1rem}
`

// component оборачивает построение дерева узлов в templ.Component.
// Узлы строятся во время рендеринга: переводы зависят от языка в ctx.
func component(build func(ctx context.Context) g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return build(ctx).Render(w)
	})
}

// layout — общий каркас страницы: заголовок, переключатель языка, контент.
func layout(ctx context.Context, title string, body ...g.Node) g.Node {
	lang := i18n.LangFromContext(ctx)
	return h.Doctype(
		h.HTML(
			g.Attr("lang", lang),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(title)),
				h.StyleEl(g.Raw(baseCSS)),
			),
			h.Body(
				h.Header(
					h.A(h.Href("/"), h.Strong(g.Text(i18n.T(ctx, "app.heading")))),
					languageSwitch(ctx, lang),
				),
				h.Main(body...),
			),
		),
	)
}

// languageSwitch — форма POST /set-language с кнопкой на каждый язык.
func languageSwitch(ctx context.Context, current string) g.Node {
	buttons := make([]g.Node, 0, len(i18n.SupportedLanguages))
	for _, code := range []string{i18n.LangHungarian, i18n.LangEnglish} {
		buttons = append(buttons, h.Button(
			h.Type("submit"), h.Name("lang"), h.Value(code),
			g.If(code == current, h.Disabled()),
			g.Text(i18n.T(ctx, "lang."+code)),
		))
	}
	return g.El("form",
		h.Method("post"), h.Action("/set-language"),
		g.Attr("aria-label", i18n.T(ctx, "lang.label")),
		g.Group(buttons),
	)
}
