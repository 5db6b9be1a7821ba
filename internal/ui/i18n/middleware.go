package i18n

import (
	"net/http"
)

// LangCookieName — cookie с языком, выбранным в переключателе.
const LangCookieName = "lang"

// Middleware определяет язык запроса и кладёт его в контекст.
// Порядок: cookie lang, затем Accept-Language, затем defaultLang
// (неподдерживаемый defaultLang заменяется на DefaultLanguage).
func Middleware(defaultLang string) func(http.Handler) http.Handler {
	if !IsSupported(defaultLang) {
		defaultLang = DefaultLanguage
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLang(r.Context(), requestLanguage(r, defaultLang))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestLanguage(r *http.Request, defaultLang string) string {
	if cookie, err := r.Cookie(LangCookieName); err == nil && IsSupported(cookie.Value) {
		return cookie.Value
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return MatchLanguage(accept)
	}
	return defaultLang
}
