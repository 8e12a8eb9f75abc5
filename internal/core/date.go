package core

import (
	"strings"
	"time"
)

// ISODate is the wire form of every date in the document file.
const ISODate = "2006-01-02"

// dateFormats are the human inputs accepted at the boundary, tried in
// order before the separator-free YYYYMMDD fallback.
var dateFormats = []string{
	ISODate,
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
	"2006/01/02",
}

// Date is a calendar day. The time component is always midnight UTC.
type Date struct {
	time.Time
}

func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate normalizes the accepted input formats to a Date. Returns
// ErrInvalidDate when nothing matches.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	if len(s) == 8 && isDigits(s) {
		if t, err := time.Parse("20060102", s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, ErrInvalidDate
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ISO renders the wire form, or "" for the zero date.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(ISODate)
}

func (d Date) SameDay(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month() && d.Day() == other.Day()
}

// AfterDay reports whether d falls on a later calendar day than other,
// ignoring any time component.
func (d Date) AfterDay(other Date) bool {
	return DateOf(d.Time).Time.After(DateOf(other.Time).Time)
}

func (d Date) Month() int {
	return int(d.Time.Month())
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

// UnmarshalJSON is deliberately lenient: a malformed date inside an
// otherwise well-formed file is recoverable per entry (the recurrence
// engine treats it as "no history"), so it decodes to the zero Date
// instead of failing the whole document.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}
