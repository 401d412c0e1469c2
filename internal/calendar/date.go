package calendar

import (
	"errors"
	"fmt"
	"time"
)

const layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a calendar date with no time of day or zone. The zero value is
// January 1, year 1.
type Date struct {
	t time.Time // always midnight UTC
}

// NewDate returns the date y-m-d. Dates that do not exist, such as
// 2023-02-30, are rejected instead of being normalised into the next month.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}

	return Date{t: t}, nil
}

// MustDate is NewDate for literals known to be valid.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the UTC calendar date of the instant t.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return Date{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return Date{t: t}, nil
}

func (d Date) Year() int { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int { return d.t.Day() }
func (d Date) YearDay() int { return d.t.YearDay() }
func (d Date) Time() time.Time { return d.t }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }
func (d Date) String() string { return d.t.Format(layout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: expected a YYYY-MM-DD string", ErrInvalidDate)
	}

	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b Date) int64 {
	return int64(b.t.Sub(a.t) / (24 * time.Hour))
}
