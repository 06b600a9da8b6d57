// Package agenda selects the upcoming items shown on the board: the next
// batch of monthly retreats, birthdays in a forward window and activities
// that have not ended yet. Every function takes "today" explicitly.
package agenda

import (
	"slices"

	"github.com/arboleda/arboleda/pkg/dates"
	"github.com/arboleda/arboleda/pkg/records"
	log "github.com/sirupsen/logrus"
)

// retreat grid columns after the place column
const (
	firstRetreatColumn = 1
	lastRetreatColumn  = 11
)

type Retreat struct {
	Date  dates.Date `json:"fecha"`
	Place string     `json:"lugar"`
}

// CollectRetreats reads every dated cell of the retreat grid. Row 0 holds
// the month headers, column 0 the place. Cells that do not resolve to a date
// are skipped. The result is sorted by date, keeping row order for ties.
func CollectRetreats(grid records.Grid, resolver dates.Resolver) []Retreat {
	var out []Retreat
	for r := 1; r < len(grid); r++ {
		place := grid.Cell(r, 0)
		last := min(len(grid[r])-1, lastRetreatColumn)
		for c := firstRetreatColumn; c <= last; c++ {
			cell := grid.Cell(r, c)
			if cell == "" {
				continue
			}
			date, ok := resolver.Resolve(cell)
			if !ok {
				log.Debugf("skipping unparsable retreat date %q at row %d, column %d", cell, r, c)
				continue
			}
			if month, ok := dates.MonthOf(grid.Cell(0, c)); ok && month != date.Month() {
				log.Debugf("retreat date %s sits under the %q column", date, grid.Cell(0, c))
			}
			out = append(out, Retreat{Date: date, Place: place})
		}
	}
	slices.SortStableFunc(out, func(a, b Retreat) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// NextRetreats picks the retreats still ahead in today's month. Once the
// month has none left it returns every retreat of the following month.
// The input must be sorted by date.
func NextRetreats(sorted []Retreat, today dates.Date) []Retreat {
	current := make([]Retreat, 0)
	for _, r := range sorted {
		if r.Date.SameMonth(today) && !r.Date.Before(today) {
			current = append(current, r)
		}
	}
	if len(current) > 0 {
		return current
	}

	nextMonth := today.NextMonthStart()
	next := make([]Retreat, 0)
	for _, r := range sorted {
		if r.Date.SameMonth(nextMonth) {
			next = append(next, r)
		}
	}
	return next
}

// SelectRetreats runs CollectRetreats and NextRetreats.
func SelectRetreats(grid records.Grid, today dates.Date) []Retreat {
	return NextRetreats(CollectRetreats(grid, dates.NewResolver(today)), today)
}
