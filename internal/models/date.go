package models

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire and display format for calendar dates.
const DateFormat = "2006-01-02"

// Date is a calendar date without a time component. Dates are normalized to
// UTC midnight so comparisons are date-only regardless of the zone the
// server happened to serialize.
type Date struct {
	time.Time
}

// NewDate constructs a Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a YYYY-MM-DD string, falling back to RFC 3339 for
// servers that serialize a full timestamp.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateFormat, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// Compare returns -1, 0 or 1 comparing d against other date-only.
func (d Date) Compare(other Date) int {
	switch {
	case d.Time.Before(other.Time):
		return -1
	case d.Time.After(other.Time):
		return 1
	default:
		return 0
	}
}

func (d Date) String() string {
	return d.Format(DateFormat)
}

// MarshalJSON serializes as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts YYYY-MM-DD or RFC 3339 strings.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
