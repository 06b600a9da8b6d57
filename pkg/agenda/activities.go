package agenda

import (
	"github.com/arboleda/arboleda/pkg/dates"
	"github.com/arboleda/arboleda/pkg/records"
)

// ActiveActivities keeps the activities that end today or later. An
// activity whose end date is missing or unreadable is always kept.
func ActiveActivities(recs []records.Record, today dates.Date) []records.Record {
	resolver := dates.NewResolver(today)

	out := make([]records.Record, 0, len(recs))
	for _, rec := range recs {
		end, ok := resolver.Resolve(rec.Lookup(records.EndAliases...))
		if ok && end.Before(today) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
