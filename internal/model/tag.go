package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Tags is the ordered tag list of a task. It is stored as a JSON array in a
// single TEXT column. Duplicates and case are kept exactly as given.
type Tags []string

// Value encodes the tags as a JSON array for storage.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}
	return string(b), nil
}

// Scan decodes a stored tag list. A blob that cannot be decoded yields an
// empty list instead of an error, so one corrupt row never fails a read.
func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		slog.Debug("unexpected tag column type, using empty tags", "type", fmt.Sprintf("%T", src))
		*t = Tags{}
		return nil
	}

	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		slog.Debug("undecodable tag list, using empty tags", "raw", string(raw), "error", err)
		*t = Tags{}
		return nil
	}
	if decoded == nil {
		decoded = []string{}
	}
	*t = Tags(decoded)
	return nil
}

// MarshalJSON always renders an array, never null.
func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}
