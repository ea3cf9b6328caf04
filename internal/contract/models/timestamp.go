package models

import (
	"fmt"
	"time"
)

// TimeLayout is the canonical wire format for every timestamp in a record:
// ISO-8601 without zone suffix or fractional seconds. All peers must produce
// the exact same bytes for the same instant, so the layout is fixed here and
// nowhere else.
const TimeLayout = "2006-01-02T15:04:05"

// Timestamp wraps time.Time with deterministic JSON encoding. Values are
// truncated to whole seconds and rendered in UTC so independent replicas
// serialize identically.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t into canonical precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Second)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(TimeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", s)
	}
	parsed, err := time.Parse(TimeLayout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	t.Time = parsed.UTC()
	return nil
}

// Equal compares at canonical (second) precision.
func (t Timestamp) Equal(other Timestamp) bool {
	return t.UTC().Truncate(time.Second).Equal(other.UTC().Truncate(time.Second))
}
