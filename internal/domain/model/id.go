package model

import "encoding/json"

// ID is a backend entity identifier. The backend uses numeric ids for some
// resources and GUIDs for others, so both decode into the string form.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	s, err := scalarString(data)
	if err != nil {
		return err
	}
	*id = ID(s)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// String returns the identifier as a plain string.
func (id ID) String() string { return string(id) }
