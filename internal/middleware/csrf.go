package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"time"
)

const csrfCookieName = "csrf_token"

// CSRF issues a CSRF cookie and verifies modifying requests carry the token
// in a header or form field (double submit cookie, tied to the session).
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		token := s.CSRFToken
		if token == "" { // initialize if missing
			token = newCSRFToken()
			s.CSRFToken = token
			s.MarkDirty()
		}

		// Ensure client has cookie with the same token
		needSet := true
		if c, err := r.Cookie(csrfCookieName); err == nil && c.Value == token {
			needSet = false
		}
		if needSet {
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: false,
				Secure:   sessionSecure,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(24 * time.Hour),
			})
		}

		if !isSafeMethod(r.Method) {
			got := r.Header.Get("X-CSRF-Token")
			if got == "" {
				got = r.PostFormValue("csrf_token")
			}
			if got == "" || got != token {
				denyCSRF(w, r)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// denyCSRF rejects a modifying request whose token did not match. Fragment
// requests get alert markup for the swap target; full page loads get a bare
// 403.
func denyCSRF(w http.ResponseWriter, r *http.Request) {
	const msg = "Your session expired. Refresh the page and try again."
	if IsHTMX(r.Context()) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("HX-Reswap", "innerHTML")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `<p class="alert alert-error" role="alert">`+msg+`</p>`)
		return
	}
	http.Error(w, msg, http.StatusForbidden)
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
