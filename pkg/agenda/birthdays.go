package agenda

import (
	"slices"
	"time"

	"github.com/arboleda/arboleda/pkg/dates"
	"github.com/arboleda/arboleda/pkg/records"
)

// DefaultBirthdayWindow is the number of days after today that still count
// as upcoming.
const DefaultBirthdayWindow = 30

type Birthday struct {
	Name string     `json:"nombre"`
	Date dates.Date `json:"fecha"`
	// LeapDay marks a Feb 29 birth date, whatever day Date fell on.
	LeapDay bool `json:"-"`
}

// UpcomingBirthdays returns the birthdays whose date in today's year falls
// within [today, today+windowDays]. Records without a name or a resolvable
// birth date are dropped. Only today's year is considered, so in late
// December a January birthday is not upcoming. A Feb 29 birthday is
// celebrated on Mar 1 in common years.
func UpcomingBirthdays(recs []records.Record, today dates.Date, windowDays int) []Birthday {
	resolver := dates.NewResolver(today)
	end := today.AddDays(windowDays)

	out := make([]Birthday, 0)
	for _, rec := range recs {
		name := rec.Lookup(records.NameAliases...)
		if name == "" {
			continue
		}
		born, ok := resolver.Resolve(rec.Lookup(records.BirthdateAliases...))
		if !ok {
			continue
		}

		occurrence := born.InYear(today.Year())
		if occurrence.Before(today) || occurrence.After(end) {
			continue
		}
		out = append(out, Birthday{
			Name:    name,
			Date:    occurrence,
			LeapDay: born.Month() == time.February && born.Day() == 29,
		})
	}

	slices.SortStableFunc(out, func(a, b Birthday) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
