package web

import (
	"crypto/rand"
	"crypto/subtle"
	"net/http"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
)

// csrfToken returns the request's CSRF token, setting a new cookie when the
// request has none. The cookie is readable by app.js, which copies it into
// the X-CSRF-Token header of HTMX requests.
func (h *Handler) csrfToken(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := rand.Text()
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookies,
	})
	return token
}

// validateCSRF checks that the CSRF token (from header or form field) matches
// the cookie. Returns true if the tokens match and are non-empty.
func validateCSRF(r *http.Request) bool {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	// Check header first (HTMX sends it here), then fall back to form field.
	token := r.Header.Get(csrfHeader)
	if token == "" {
		token = r.FormValue(csrfFormField)
	}

	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(cookie.Value)) == 1
}

// checkCSRF rejects the request with 403 when validateCSRF fails.
func (h *Handler) checkCSRF(w http.ResponseWriter, r *http.Request) bool {
	if validateCSRF(r) {
		return true
	}
	h.logger.Warn("csrf validation failed", "method", r.Method, "path", r.URL.Path)
	http.Error(w, "invalid or missing CSRF token", http.StatusForbidden)
	return false
}
