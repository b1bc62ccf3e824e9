package session_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/wizeportal/internal/adapter/driving/session"
	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testKey() []byte {
	return bytes.Repeat([]byte{7}, session.KeySize)
}

// requestWithCookies replays the cookies set on rec into a new request.
func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		req.AddCookie(c)
	}
	return req
}

func sampleSession() *model.Session {
	return &model.Session{
		UserKey:   "user-1",
		ClientKey: "client-1",
		ClientID:  "77",
		FullName:  "Grace Hopper",
		Extra:     map[string]json.RawMessage{"tier": json.RawMessage(`"gold"`)},
	}
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	for name, key := range map[string][]byte{"plain": nil, "sealed": testKey()} {
		t.Run(name, func(t *testing.T) {
			store, err := session.NewStore(key, false, discardLogger())
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			require.NoError(t, store.Set(rec, sampleSession()))

			req := requestWithCookies(rec)
			assert.True(t, store.Has(req))
			got := store.Get(req)
			require.NotNil(t, got)
			if diff := cmp.Diff(sampleSession(), got); diff != "" {
				t.Errorf("session mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_CookieFlags(t *testing.T) {
	store, err := session.NewStore(nil, true, discardLogger())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, sampleSession()))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, session.CookieName, c.Name)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 7*24*60*60, c.MaxAge)
}

func TestStore_SetRejectsSessionWithoutKeys(t *testing.T) {
	store, err := session.NewStore(nil, false, discardLogger())
	require.NoError(t, err)

	rec := httptest.NewRecorder()

	assert.ErrorIs(t, store.Set(rec, nil), session.ErrInvalidSession)
	assert.ErrorIs(t, store.Set(rec, &model.Session{UserKey: "u"}), session.ErrInvalidSession)
	assert.Empty(t, rec.Result().Cookies())
}

func TestStore_GetWithoutCookie(t *testing.T) {
	store, err := session.NewStore(nil, false, discardLogger())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/home", nil)

	assert.Nil(t, store.Get(req))
	assert.False(t, store.Has(req))
}

func TestStore_MalformedCookiesFailClosed(t *testing.T) {
	plain, err := session.NewStore(nil, false, discardLogger())
	require.NoError(t, err)
	sealed, err := session.NewStore(testKey(), false, discardLogger())
	require.NoError(t, err)

	// A value sealed under a different key.
	other, err := session.NewStore(bytes.Repeat([]byte{9}, session.KeySize), false, discardLogger())
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, other.Set(rec, sampleSession()))
	foreign := rec.Result().Cookies()[0].Value

	tests := []struct {
		name  string
		store *session.Store
		value string
	}{
		{name: "not base64", store: plain, value: "%%%"},
		{name: "not json", store: plain, value: "bm90LWpzb24"},
		{name: "json array", store: plain, value: "WzEsMl0"},
		{name: "missing keys", store: plain, value: "eyJ1c2VyS2V5IjoidSJ9"},
		{name: "plain value on sealed store", store: sealed, value: "eyJ1c2VyS2V5IjoidSIsImNsaWVudEtleSI6ImMifQ"},
		{name: "wrong key", store: sealed, value: foreign},
		{name: "truncated", store: sealed, value: "AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tt.value})

			assert.Nil(t, tt.store.Get(req))
			assert.True(t, tt.store.Has(req))
		})
	}
}

func TestStore_SealedValueHidesPayload(t *testing.T) {
	store, err := session.NewStore(testKey(), false, discardLogger())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, sampleSession()))

	value := rec.Result().Cookies()[0].Value
	assert.NotContains(t, value, "user-1")
	assert.False(t, strings.ContainsAny(value, `";,\ `))
}

func TestStore_Delete(t *testing.T) {
	store, err := session.NewStore(nil, true, discardLogger())
	require.NoError(t, err)

	// Deleting twice, with or without a session, writes an expiring cookie each time.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		store.Delete(rec)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, session.CookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0)
	}
}

func TestNewStore_RejectsShortKey(t *testing.T) {
	_, err := session.NewStore([]byte("short"), false, discardLogger())
	assert.Error(t, err)
}
