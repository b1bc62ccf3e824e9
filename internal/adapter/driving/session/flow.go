package session

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

const (
	// FlowCookieName holds the state of an in-progress signup or reset wizard.
	FlowCookieName = "auth_flow"

	flowMaxAge = 15 * time.Minute
)

// FlowStore persists model.FlowState between wizard steps. The state carries
// the signup password, so the cookie is always sealed.
type FlowStore struct {
	codec  *codec
	secure bool
	logger *slog.Logger
}

// NewFlowStore creates a FlowStore. An empty key is replaced by a random
// per-process key; wizards in flight across a restart then start over.
func NewFlowStore(key []byte, secure bool, logger *slog.Logger) (*FlowStore, error) {
	if len(key) == 0 {
		key = make([]byte, KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate flow key: %w", err)
		}
	}
	c, err := newCodec(key)
	if err != nil {
		return nil, err
	}
	return &FlowStore{codec: c, secure: secure, logger: logger}, nil
}

// Load returns the stored state for kind. A missing, unreadable, or
// different-kind cookie yields a fresh state at its first step.
func (fs *FlowStore) Load(r *http.Request, kind model.FlowKind) model.FlowState {
	fresh := model.NewFlowState(kind)

	cookie, err := r.Cookie(FlowCookieName)
	if err != nil || cookie.Value == "" {
		return fresh
	}

	var state model.FlowState
	if err := fs.codec.decode(FlowCookieName, cookie.Value, &state); err != nil {
		fs.logger.Debug("discarding unreadable flow cookie", "error", err)
		return fresh
	}
	if state.Kind != kind {
		return fresh
	}
	return state
}

// Save writes state. A state at StepDone clears the cookie instead.
func (fs *FlowStore) Save(w http.ResponseWriter, state model.FlowState) error {
	if state.Step == model.StepDone {
		fs.Clear(w)
		return nil
	}
	value, err := fs.codec.encode(FlowCookieName, state)
	if err != nil {
		return err
	}
	http.SetCookie(w, fs.cookie(value, int(flowMaxAge.Seconds())))
	return nil
}

// Clear expires the flow cookie.
func (fs *FlowStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, fs.cookie("", -1))
}

func (fs *FlowStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     FlowCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   fs.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
