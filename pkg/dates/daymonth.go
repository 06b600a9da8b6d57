package dates

import (
	"strconv"
	"strings"
	"time"
)

// DayMonth is a partially resolved date used for display only. The year is
// never needed to label a range, so it is not carried.
type DayMonth struct {
	Day   int
	Month time.Month
}

// ParseDayMonth is a lenient parse for range labels. It accepts the ISO form,
// a spreadsheet serial, or separated numbers where a leading part above 31
// is taken as the year. A missing day in a "Y/M" token defaults to 1.
// Unlike Resolve it does not reject days that overflow their month.
func ParseDayMonth(token string) (DayMonth, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return DayMonth{}, false
	}

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return validDayMonth(d, mo)
	}

	if serialPattern.MatchString(s) {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n < maxSerial {
			d := FromSerial(n)
			return DayMonth{Day: d.Day(), Month: d.Month()}, true
		}
	}

	raw := separatorsExpr.Split(s, -1)
	if len(raw) < 2 {
		return DayMonth{}, false
	}
	parts := make([]int, 0, len(raw))
	for _, p := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return DayMonth{}, false
		}
		parts = append(parts, n)
	}

	if parts[0] > 31 {
		day := 1
		if len(parts) > 2 {
			day = parts[2]
		}
		return validDayMonth(day, parts[1])
	}
	return validDayMonth(parts[0], parts[1])
}

func validDayMonth(day, month int) (DayMonth, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return DayMonth{}, false
	}
	return DayMonth{Day: day, Month: time.Month(month)}, true
}
