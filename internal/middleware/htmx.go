package middleware

import (
	"net/http"

	"buylink.app/buylink-web/internal/api"
)

// backendCookieName is the session cookie the backend API issues; its value is
// forwarded on every API call so the backend sees the same cart session.
const backendCookieName = "BUYLINK_SID"

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := WithHTMX(r.Context(), is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BackendCredentials copies the backend session cookie into request context.
func BackendCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(backendCookieName); err == nil && c.Value != "" {
			r = r.WithContext(api.WithSessionCredential(r.Context(), c.Value))
		}
		next.ServeHTTP(w, r)
	})
}
