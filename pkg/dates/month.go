package dates

import (
	"strings"
	"time"
)

// Unresolved is returned by MonthIndex for labels that name no month.
const Unresolved = -1

var monthLabels = map[string]int{
	"enero": 0, "ene": 0,
	"febrero": 1, "feb": 1, "february": 1,
	"marzo": 2, "mar": 2,
	"abril": 3, "abr": 3,
	"mayo": 4, "may": 4,
	"junio": 5, "jun": 5,
	"julio": 6, "jul": 6,
	"agosto": 7, "ago": 7,
	"septiembre": 8, "setiembre": 8, "sep": 8, "sept": 8, "set": 8,
	"octubre": 9, "oct": 9,
	"noviembre": 10, "nov": 10,
	"diciembre": 11, "dic": 11,
}

// MonthIndex maps a Spanish month name or its abbreviation, in any case, to
// a zero-based month index. Labels that only share the first three letters
// with a known abbreviation ("Sept.", "Agos") are accepted as well.
func MonthIndex(label string) int {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return Unresolved
	}
	if idx, ok := monthLabels[key]; ok {
		return idx
	}
	if runes := []rune(key); len(runes) > 3 {
		if idx, ok := monthLabels[string(runes[:3])]; ok {
			return idx
		}
	}
	return Unresolved
}

// MonthOf is MonthIndex expressed as a time.Month.
func MonthOf(label string) (time.Month, bool) {
	idx := MonthIndex(label)
	if idx == Unresolved {
		return 0, false
	}
	return time.Month(idx + 1), true
}
