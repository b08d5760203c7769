package i18n

import (
	"net/http"
)

// LangCookieName — cookie, в которой переключатель языка сохраняет выбор.
const LangCookieName = "lang"

// Middleware кладёт язык страницы в контекст запроса и отражает его
// в заголовке Content-Language. Ответ зависит от Accept-Language,
// поэтому добавляется Vary.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := requestLanguage(r)
			w.Header().Set("Content-Language", lang)
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// requestLanguage: явный выбор в cookie важнее настроек браузера.
func requestLanguage(r *http.Request) string {
	if c, err := r.Cookie(LangCookieName); err == nil && IsSupported(c.Value) {
		return c.Value
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return MatchLanguage(accept)
	}
	return DefaultLang()
}
