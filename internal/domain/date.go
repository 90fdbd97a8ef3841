package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a calendar date.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Date is a calendar date without a time component. It is always stored as
// midnight UTC so that day arithmetic is exact regardless of the server's
// time zone.
type Date struct{ time.Time }

// NewDate returns the calendar date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// GoalDateForMonth derives a goal date from a "YYYY-MM" goal month: the last
// day of that month.
func GoalDateForMonth(month string) (Date, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return Date{}, fmt.Errorf("invalid goal month %q, expected YYYY-MM", month)
	}
	return Date{t.AddDate(0, 1, -1)}, nil
}

// String formats the date as "YYYY-MM-DD".
func (d Date) String() string {
	return d.Format(DateLayout)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to o. It is negative when
// o is before d.
func (d Date) DaysUntil(o Date) int {
	return int((o.Unix() - d.Unix()) / secondsPerDay)
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

// Equal reports whether d and o are the same calendar date.
func (d Date) Equal(o Date) bool { return d.Time.Equal(o.Time) }

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string. Timestamps with a time part
// (as produced by some exporters) are truncated to their date.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.New("date must be a string")
	}
	s = s[1 : len(s)-1]
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
