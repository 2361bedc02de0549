// Package timeutil fixes the timestamp precision used across the API so
// responses marshal identically regardless of the source clock.
package timeutil

import (
	"time"
)

// RFC3339Millis is RFC 3339 UTC at fixed millisecond precision, the format
// of every timestamp in API responses.
const RFC3339Millis = "2006-01-02T15:04:05.000Z"

// RFC3339Micros is RFC 3339 UTC at fixed microsecond precision, used for
// log timestamps.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// Time wraps time.Time so JSON output always carries exactly three fraction
// digits in UTC. Unmarshaling JSON null leaves the current value untouched,
// matching time.Time.
type Time struct {
	time.Time
}

// MarshalJSON emits the wrapped time as RFC3339Millis.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(RFC3339Millis) + `"`), nil
}

// UnmarshalJSON accepts any RFC 3339 variant; null is a no-op.
func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	t.Time = parsed
	return nil
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// Now returns the current instant wrapped as a Time.
func Now() Time {
	return Time{Time: time.Now()}
}
