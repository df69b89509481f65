package services

import (
	"bytes"
	"encoding/json"
)

// Content holds the steps of a service. Clients send either a JSON encoded
// string or the structure itself; both are stored as the JSON text.
type Content string

// UnmarshalJSON accepts a string, any JSON value, or null.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*c = Content(s)
		return nil
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return err
	}
	*c = Content(compact.String())
	return nil
}

// String returns the stored form, defaulting to an empty step list.
func (c Content) String() string {
	if c == "" {
		return "[]"
	}
	return string(c)
}
