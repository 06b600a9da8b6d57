// Package daterange renders compact labels for start/end date pairs.
package daterange

import (
	"strings"

	"github.com/arboleda/arboleda/pkg/dates"
	"github.com/arboleda/arboleda/pkg/locale"
)

type Formatter struct {
	loc *locale.Localizer
}

func NewFormatter(loc *locale.Localizer) *Formatter {
	return &Formatter{loc: loc}
}

// FormatRange renders start and end as "Fechas: 5 al 8 de marzo" style
// labels. When start cannot be parsed the raw end token is shown, or a
// placeholder if there is none.
func (f *Formatter) FormatRange(start, end string) string {
	ini, ok := dates.ParseDayMonth(start)
	if !ok {
		if raw := strings.TrimSpace(end); raw != "" {
			return f.loc.Message("RangeRaw", map[string]any{"Raw": raw})
		}
		return f.loc.Message("RangeNoDates", nil)
	}

	data := map[string]any{
		"StartDay":   ini.Day,
		"StartMonth": f.loc.MonthName(ini.Month),
	}

	fin, ok := dates.ParseDayMonth(end)
	if !ok {
		return f.loc.Message("RangeStartOnly", data)
	}

	data["EndDay"] = fin.Day
	if ini.Month == fin.Month {
		return f.loc.Message("RangeSameMonth", data)
	}
	data["EndMonth"] = f.loc.MonthName(fin.Month)
	return f.loc.Message("RangeCrossMonth", data)
}
