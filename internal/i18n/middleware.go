package i18n

import "net/http"

// Middleware returns middleware that picks a localizer per request from the
// lang query parameter, cookie, or Accept-Language header, falling back to
// the configured default language.
func Middleware(defaultLang string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := r.URL.Query().Get("lang")
			if lang == "" {
				if c, err := r.Cookie("lang"); err == nil {
					lang = c.Value
				}
			}
			accept := r.Header.Get("Accept-Language")

			loc := NewLocalizer(lang + "," + accept + "," + defaultLang)
			ctx := WithLocalizer(r.Context(), loc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
