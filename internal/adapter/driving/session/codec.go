// Package session keeps per-browser state in cookies: the authenticated
// Session and the in-progress OTP wizard. There is no server-side session
// table.
package session

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required length of a sealing key.
const KeySize = chacha20poly1305.KeySize

// maxCookieValue keeps the whole Set-Cookie header under the 4096-byte limit
// browsers enforce.
const maxCookieValue = 3800

var (
	// ErrCookieTooLarge is returned when an encoded value would not fit in a cookie.
	ErrCookieTooLarge = errors.New("encoded cookie value too large")
	// ErrInvalidSession is returned when asked to store a session without keys.
	ErrInvalidSession = errors.New("session has no user or client key")
)

// codec turns values into cookie-safe strings. With a key the JSON is sealed
// with XChaCha20-Poly1305 and bound to the cookie name; without one it is
// only base64url encoded.
type codec struct {
	aead cipher.AEAD
}

func newCodec(key []byte) (*codec, error) {
	if len(key) == 0 {
		return &codec{}, nil
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cookie cipher: %w", err)
	}
	return &codec{aead: aead}, nil
}

func (c *codec) encode(name string, v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}

	payload := plaintext
	if c.aead != nil {
		nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
		if _, err := rand.Read(nonce); err != nil {
			return "", fmt.Errorf("cookie nonce: %w", err)
		}
		payload = c.aead.Seal(nonce, nonce, plaintext, []byte(name))
	}

	value := base64.RawURLEncoding.EncodeToString(payload)
	if len(value) > maxCookieValue {
		return "", fmt.Errorf("%s: %w (%d bytes)", name, ErrCookieTooLarge, len(value))
	}
	return value, nil
}

func (c *codec) decode(name, value string, v any) error {
	payload, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return fmt.Errorf("base64 decode %s: %w", name, err)
	}

	if c.aead != nil {
		nonceSize := c.aead.NonceSize()
		if len(payload) < nonceSize+c.aead.Overhead() {
			return fmt.Errorf("%s: sealed value too short", name)
		}
		nonce, ciphertext := payload[:nonceSize], payload[nonceSize:]
		payload, err = c.aead.Open(nil, nonce, ciphertext, []byte(name))
		if err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
