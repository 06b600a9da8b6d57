package dates

import (
	"encoding/json"
	"fmt"
	"time"
)

const isoLayout = "2006-01-02"

// Date is a resolved calendar day. The zero value is not a valid date; valid
// values are only produced by Resolver, FromTime, or arithmetic on an
// existing Date.
type Date struct {
	year  int
	month time.Month
	day   int
}

// newDate returns the date for y-m-d, or false when the triple is not a real
// calendar day (Feb 30, Apr 31 ...). time.Date would silently roll it over.
func newDate(year int, month time.Month, day int) (Date, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return Date{}, false
	}
	t := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, false
	}
	return Date{year: year, month: month, day: day}, true
}

// FromTime truncates t to its calendar day in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Time returns the date at noon UTC. Noon keeps date-only formatting stable
// in every time zone within ±12h.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 12, 0, 0, 0, time.UTC)
}

// AddDays moves the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// NextMonthStart returns the first day of the following month; December
// rolls over to January of the next year.
func (d Date) NextMonthStart() Date {
	if d.month == time.December {
		return Date{year: d.year + 1, month: time.January, day: 1}
	}
	return Date{year: d.year, month: d.month + 1, day: 1}
}

// InYear returns the same month and day in another year. Feb 29 falls on
// Mar 1 when the target year has no leap day.
func (d Date) InYear(year int) Date {
	if moved, ok := newDate(year, d.month, d.day); ok {
		return moved
	}
	return Date{year: year, month: time.March, day: 1}
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d.Compare(other) == 0 }

// SameMonth reports whether both dates fall in the same month of the same year.
func (d Date) SameMonth(other Date) bool {
	return d.year == other.year && d.month == other.month
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = FromTime(t)
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
