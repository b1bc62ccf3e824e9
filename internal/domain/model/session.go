package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Session is the authenticated identity returned by the backend login call.
// The cookie holding it is the only proof of authentication the portal has.
//
// Login responses carry more fields than the portal reads; those are kept in
// Extra verbatim so that re-encoding a Session reproduces the payload.
type Session struct {
	UserKey   string
	ClientKey string
	ClientID  string
	Username  string
	FullName  string
	Email     string
	Extra     map[string]json.RawMessage
}

// Valid reports whether the session carries the keys every authenticated
// backend call needs.
func (s *Session) Valid() bool {
	return s != nil && s.UserKey != "" && s.ClientKey != ""
}

// DisplayName returns the best available human-readable name.
func (s *Session) DisplayName() string {
	switch {
	case s == nil:
		return ""
	case s.FullName != "":
		return s.FullName
	case s.Username != "":
		return s.Username
	default:
		return s.Email
	}
}

var sessionKnownFields = map[string]func(*Session) *string{
	"userKey":   func(s *Session) *string { return &s.UserKey },
	"clientKey": func(s *Session) *string { return &s.ClientKey },
	"clientId":  func(s *Session) *string { return &s.ClientID },
	"username":  func(s *Session) *string { return &s.Username },
	"fullName":  func(s *Session) *string { return &s.FullName },
	"email":     func(s *Session) *string { return &s.Email },
}

// MarshalJSON writes the known fields under their backend names and merges
// Extra into the same object.
func (s Session) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(s.Extra)+len(sessionKnownFields))
	for k, v := range s.Extra {
		obj[k] = v
	}
	for name, field := range sessionKnownFields {
		v := *field(&s)
		if v == "" {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal session field %s: %w", name, err)
		}
		obj[name] = raw
	}
	return json.Marshal(obj)
}

// UnmarshalJSON accepts any JSON object. Known string fields populate the
// struct; everything else lands in Extra. clientId may arrive as a number.
func (s *Session) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj == nil {
		return fmt.Errorf("session payload is not an object")
	}

	*s = Session{}
	for k, raw := range obj {
		field, known := sessionKnownFields[k]
		if !known {
			if s.Extra == nil {
				s.Extra = make(map[string]json.RawMessage)
			}
			var buf bytes.Buffer
			if err := json.Compact(&buf, raw); err != nil {
				return err
			}
			s.Extra[k] = json.RawMessage(buf.Bytes())
			continue
		}
		v, err := scalarString(raw)
		if err != nil {
			return fmt.Errorf("session field %s: %w", k, err)
		}
		*field(s) = v
	}
	return nil
}

// scalarString decodes a JSON string or number into its string form. null
// decodes to "".
func scalarString(raw json.RawMessage) (string, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, nil
	}
	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&num); err == nil {
		return num.String(), nil
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return "", nil
	}
	return "", fmt.Errorf("expected string or number, got %s", raw)
}
