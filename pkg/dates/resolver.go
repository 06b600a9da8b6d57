package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoPattern     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	serialPattern  = regexp.MustCompile(`^\d+$`)
	separatorsExpr = regexp.MustCompile(`[/\-.]`)

	// day 0 of the spreadsheet serial calendar
	serialEpoch = time.Date(1899, time.December, 30, 12, 0, 0, 0, time.UTC)
)

const maxSerial = 100000

// Resolver turns loosely formatted date tokens into Dates. CurrentYear is
// used for day/month tokens that carry no year.
type Resolver struct {
	CurrentYear int
}

// NewResolver returns a Resolver whose implicit year is the year of today.
func NewResolver(today Date) Resolver {
	return Resolver{CurrentYear: today.Year()}
}

// Resolve parses token. The first matching form wins:
//
//	YYYY-MM-DD
//	spreadsheet serial day count, 0 < n < 100000
//	D/M, D/M/Y, Y/M/D (separators "/", "-" or ".")
//
// Anything else, including impossible calendar days, yields false.
func (r Resolver) Resolve(token string) (Date, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return Date{}, false
	}

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return newDate(y, time.Month(mo), d)
	}

	if serialPattern.MatchString(s) {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n < maxSerial {
			return FromSerial(n), true
		}
	}

	parts, ok := numericParts(s)
	if !ok {
		return Date{}, false
	}

	var year, month, day int
	switch len(parts) {
	case 2:
		day, month, year = parts[0], parts[1], r.CurrentYear
	case 3:
		if parts[0] > 31 {
			year, month, day = parts[0], parts[1], parts[2]
		} else {
			// covers both "third part > 31" and the all-small tie, which
			// is read as day/month/year by convention
			day, month, year = parts[0], parts[1], parts[2]
		}
		if year < 100 {
			year += 2000
		}
	default:
		return Date{}, false
	}

	return newDate(year, time.Month(month), day)
}

// FromSerial converts a spreadsheet serial day count to a Date.
func FromSerial(n int) Date {
	return FromTime(serialEpoch.AddDate(0, 0, n))
}

// numericParts splits s on date separators and parses each part as a
// non-negative integer. Only 2 or 3 parts are accepted.
func numericParts(s string) ([]int, bool) {
	raw := separatorsExpr.Split(s, -1)
	if len(raw) < 2 || len(raw) > 3 {
		return nil, false
	}
	parts := make([]int, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if !serialPattern.MatchString(p) {
			return nil, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		parts = append(parts, n)
	}
	return parts, true
}
