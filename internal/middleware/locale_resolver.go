package middleware

import (
	"context"
	"net/http"
	"strings"

	"buylink.app/buylink-web/internal/i18n"
)

const localeCookieName = "hl"

// Locale picks the display language for the request and remembers it in the
// session and the `hl` cookie.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback()))
			s := GetSession(r)
			switch lang, switched := pickLocale(r, s, bundle); {
			case switched:
				s.Locale = lang
				s.MarkDirty()
				http.SetCookie(w, &http.Cookie{Name: localeCookieName, Value: lang, Path: "/"})
			case s.Locale == "":
				s.Locale = lang
				s.MarkDirty()
			}
			if s.Locale != "" {
				w.Header().Set("Content-Language", s.Locale)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// pickLocale resolves the language in order of precedence: the ?hl= switch,
// the session, the hl cookie, then Accept-Language. The second return is true
// only for the explicit switch, which must also overwrite the cookie.
func pickLocale(r *http.Request, s *SessionData, bundle *i18n.Bundle) (string, bool) {
	if q := r.URL.Query().Get(localeCookieName); q != "" {
		return strings.ToLower(q), true
	}
	if s.Locale != "" {
		return s.Locale, false
	}
	if c, err := r.Cookie(localeCookieName); err == nil && c.Value != "" {
		return strings.ToLower(c.Value), false
	}
	return bundle.Resolve(r.Header.Get("Accept-Language")), false
}

// Lang is the request's resolved language, with "ko" as the last resort.
func Lang(r *http.Request) string {
	if s := GetSession(r); s != nil && s.Locale != "" {
		return s.Locale
	}
	if fb, ok := r.Context().Value(ctxKeyLocaleFB).(string); ok && fb != "" {
		return fb
	}
	return "ko"
}
