// Package board assembles the community dashboard from the four spreadsheet
// ranges: upcoming retreats, study circles, courses and birthdays.
package board

import (
	"net/url"
	"strings"

	"github.com/arboleda/arboleda/pkg/agenda"
	"github.com/arboleda/arboleda/pkg/daterange"
	"github.com/arboleda/arboleda/pkg/dates"
	"github.com/arboleda/arboleda/pkg/locale"
	"github.com/arboleda/arboleda/pkg/records"
)

// Grids are the raw cells of the four source ranges.
type Grids struct {
	Retreats   records.Grid
	Activities records.Grid
	Circles    records.Grid
	Birthdays  records.Grid
}

type Board struct {
	Retreats       []agenda.Retreat
	MonthLabel     *string
	Circles        []records.Record
	Activities     []records.Record
	Birthdays      []agenda.Birthday
	ActivityViews  []ActivityView
	CircleViews    []CircleView
	OtherDatesLink string
	Today          dates.Date
}

// ActivityView is the presentation of one course or retreat offering.
type ActivityView struct {
	Title    string `json:"actividad"`
	Place    string `json:"lugar"`
	Dates    string `json:"fechas"`
	Priest   string `json:"sacerdote"`
	Director string `json:"director"`
	SignUp   string `json:"inscripcion"`
}

type CircleView struct {
	Place   string `json:"lugar"`
	Day     string `json:"dia"`
	Hour    string `json:"hora"`
	Manager string `json:"encargado"`
}

type Options struct {
	BirthdayWindowDays int
	OtherDatesLink     string
}

// Build runs the selection pipeline over already fetched grids.
func Build(grids Grids, today dates.Date, loc *locale.Localizer, opts Options) Board {
	window := opts.BirthdayWindowDays
	if window <= 0 {
		window = agenda.DefaultBirthdayWindow
	}

	retreats := agenda.SelectRetreats(grids.Retreats, today)
	circles := records.ToRecords(grids.Circles)
	activities := agenda.ActiveActivities(records.ToRecords(grids.Activities), today)
	birthdays := agenda.UpcomingBirthdays(records.ToRecords(grids.Birthdays), today, window)

	formatter := daterange.NewFormatter(loc)
	activityViews := make([]ActivityView, 0, len(activities))
	for _, rec := range activities {
		activityViews = append(activityViews, ActivityView{
			Title: rec.Lookup(records.TitleAliases...),
			Place: rec.Lookup(records.PlaceAliases...),
			Dates: formatter.FormatRange(
				rec.Lookup(records.StartAliases...),
				rec.Lookup(records.EndAliases...),
			),
			Priest:   rec.Lookup(records.PriestAliases...),
			Director: rec.Lookup(records.DirectorAliases...),
			SignUp:   normalizeLink(rec.Lookup(records.SignUpAliases...)),
		})
	}

	circleViews := make([]CircleView, 0, len(circles))
	for _, rec := range circles {
		circleViews = append(circleViews, CircleView{
			Place:   rec.Lookup(records.PlaceAliases...),
			Day:     rec.Lookup(records.DayAliases...),
			Hour:    rec.Lookup(records.HourAliases...),
			Manager: rec.Lookup(records.ManagerAliases...),
		})
	}

	return Board{
		Retreats:       retreats,
		MonthLabel:     agenda.MonthLabel(retreats, loc),
		Circles:        circles,
		Activities:     activities,
		Birthdays:      birthdays,
		ActivityViews:  activityViews,
		CircleViews:    circleViews,
		OtherDatesLink: normalizeLink(opts.OtherDatesLink),
		Today:          today,
	}
}

// normalizeLink prefixes https:// to links typed without a scheme.
func normalizeLink(raw string) string {
	link := strings.TrimSpace(raw)
	if link == "" {
		return ""
	}
	if u, err := url.Parse(link); err == nil && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "mailto") {
		return link
	}
	return "https://" + link
}
