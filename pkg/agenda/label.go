package agenda

import "github.com/arboleda/arboleda/pkg/locale"

// MonthLabel names the month of a retreat batch, e.g. "Marzo 2026". It is
// nil for an empty batch. NextRetreats always returns a single month, so the
// first retreat decides.
func MonthLabel(batch []Retreat, loc *locale.Localizer) *string {
	if len(batch) == 0 {
		return nil
	}
	first := batch[0].Date
	label := loc.MonthYear(first.Month(), first.Year())
	return &label
}
