package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the canonical string representation of a Date.
const DateFormat = "2006-01-02"

// readDateFormat is slightly more permissive so "2024-7-1" also parses.
const readDateFormat = "2006-1-2"

// Date represents a calendar date with day granularity and no time zone.
// Transactions, milestones and metrics buckets all work at this granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month and day.
// Out-of-range values are normalized the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

// Today returns the current calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// time returns the canonical time.Time for the date (midnight UTC).
func (d Date) time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

// Time returns the canonical time.Time representation (midnight UTC).
func (d Date) Time() time.Time { return d.time() }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return d == x }

// AddDays returns a new Date with the given number of days added.
func (d Date) AddDays(n int) Date { return NewDate(d.y, d.m, d.d+n) }

// AddMonths returns a new Date n months later, clamped to the last day of
// the target month so that Jan 31 + 1 month is Feb 28/29, not Mar 3.
func (d Date) AddMonths(n int) Date {
	first := NewDate(d.y, d.m+time.Month(n), 1)
	day := d.d
	if last := first.DaysInMonth(); day > last {
		day = last
	}
	return NewDate(first.y, first.m, day)
}

// StartOfMonth returns the first day of the date's month.
func (d Date) StartOfMonth() Date { return NewDate(d.y, d.m, 1) }

// EndOfMonth returns the last day of the date's month.
func (d Date) EndOfMonth() Date { return NewDate(d.y, d.m+1, 0) }

// DaysInMonth returns the number of days in the date's month.
func (d Date) DaysInMonth() int { return d.EndOfMonth().d }

// MonthKey returns the "YYYY-MM" bucket key for the date.
func (d Date) MonthKey() string { return fmt.Sprintf("%04d-%02d", d.y, int(d.m)) }

// YearKey returns the "YYYY" bucket key for the date.
func (d Date) YearKey() string { return fmt.Sprintf("%04d", d.y) }

// String formats the date in its canonical format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// ParseDate parses a Date from its canonical string form. It is lenient
// about zero padding.
func ParseDate(str string) (Date, error) {
	t, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return DateOf(t), nil
}

// MustParseDate is like ParseDate but panics on error. Intended for tests.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
