package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

const (
	// CookieName holds the authenticated Session.
	CookieName = "session_data"

	sessionMaxAge = 7 * 24 * time.Hour
)

// Store reads and writes the Session cookie. Reads fail closed: any cookie
// that cannot be decoded is treated as no session.
type Store struct {
	codec  *codec
	secure bool
	logger *slog.Logger
}

// NewStore creates a Store. key is either empty (cookie holds encoded JSON)
// or KeySize bytes (cookie is sealed). secure sets the cookie Secure flag.
func NewStore(key []byte, secure bool, logger *slog.Logger) (*Store, error) {
	c, err := newCodec(key)
	if err != nil {
		return nil, err
	}
	return &Store{codec: c, secure: secure, logger: logger}, nil
}

// Set writes s to the response, replacing any existing session cookie.
func (st *Store) Set(w http.ResponseWriter, s *model.Session) error {
	if !s.Valid() {
		return ErrInvalidSession
	}
	value, err := st.codec.encode(CookieName, s)
	if err != nil {
		return err
	}
	http.SetCookie(w, st.cookie(value, int(sessionMaxAge.Seconds())))
	return nil
}

// Get returns the Session from the request or nil when there is none, it
// is unreadable, or it lacks the user and client keys.
func (st *Store) Get(r *http.Request) *model.Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	var s model.Session
	if err := st.codec.decode(CookieName, cookie.Value, &s); err != nil {
		st.logger.Debug("discarding unreadable session cookie", "error", err)
		return nil
	}
	if !s.Valid() {
		st.logger.Debug("discarding session cookie without keys")
		return nil
	}
	return &s
}

// Has reports whether the request carries a session cookie at all. It does
// not decode the cookie.
func (st *Store) Has(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	return err == nil && cookie.Value != ""
}

// Delete expires the session cookie. Calling it without a session is harmless.
func (st *Store) Delete(w http.ResponseWriter) {
	http.SetCookie(w, st.cookie("", -1))
}

func (st *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
