package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// storedLayout matches the ISO-8601 strings the desktop shell writes (JavaScript toISOString)
const storedLayout = "2006-01-02T15:04:05.000Z"

var parseLayouts = []string{
	storedLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05", // datetime('now') defaults
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is an instant stored as ISO-8601 text
type Timestamp struct {
	time.Time
}

// Now returns the current instant truncated to the stored precision
func Now() Timestamp {
	return At(time.Now())
}

// At wraps t, truncated to milliseconds in UTC
func At(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Millisecond)}
}

// Value implements driver.Valuer
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC().Format(storedLayout), nil
}

// Scan implements sql.Scanner
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case int64:
		t.Time = time.Unix(v, 0).UTC()
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

func (t *Timestamp) parse(s string) error {
	for _, layout := range parseLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

// String renders the stored form
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(storedLayout)
}
