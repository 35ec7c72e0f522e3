package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// storageLayout is fixed width so that stored values sort chronologically
// as plain text.
const storageLayout = "2006-01-02T15:04:05.000000"

// wireLayout renders fractional seconds only when they are nonzero.
const wireLayout = "2006-01-02T15:04:05.999999"

// inputLayouts are tried in order when parsing a naive timestamp.
var inputLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Timestamp is a timezone-naive date and time. Values parsed with a zone
// offset are converted to UTC and the zone is dropped.
type Timestamp struct {
	time.Time
}

// NewTimestamp strips the location from t, keeping the wall clock reading.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond()-t.Nanosecond()%1000,
		time.UTC,
	)}
}

// ParseTimestamp accepts ISO-8601 date-times with or without seconds,
// fractional seconds or a zone designator, and bare dates.
func ParseTimestamp(raw string) (Timestamp, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return NewTimestamp(t.UTC()), nil
	}
	if t, err := time.Parse("2006-01-02T15:04Z07:00", raw); err == nil {
		return NewTimestamp(t.UTC()), nil
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", raw)
}

// MustParseTimestamp is ParseTimestamp for literals known to be valid.
func MustParseTimestamp(raw string) Timestamp {
	ts, err := ParseTimestamp(raw)
	if err != nil {
		panic(err)
	}
	return ts
}

// String renders the wire form, e.g. 2024-01-01T09:00:00.
func (ts Timestamp) String() string {
	return ts.Format(wireLayout)
}

// StorageString renders the fixed-width stored form.
func (ts Timestamp) StorageString() string {
	return ts.Format(storageLayout)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

func (ts Timestamp) MarshalYAML() (any, error) {
	return ts.String(), nil
}

// Value stores the timestamp as fixed-width text.
func (ts Timestamp) Value() (driver.Value, error) {
	return ts.StorageString(), nil
}

// Scan reads a stored timestamp.
func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimestamp(v)
		if err != nil {
			return fmt.Errorf("scanning timestamp: %w", err)
		}
		*ts = parsed
	case []byte:
		return ts.Scan(string(v))
	case time.Time:
		*ts = NewTimestamp(v)
	default:
		return fmt.Errorf("scanning timestamp: unsupported type %T", src)
	}
	return nil
}
