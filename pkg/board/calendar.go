package board

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/arboleda/arboleda/pkg/dates"
	"github.com/arboleda/arboleda/pkg/records"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

const (
	calendarProductID   = "-//Arboleda//Agenda//ES"
	propCalendarName    = "X-WR-CALNAME"
	propRefreshInterval = "REFRESH-INTERVAL"
	refreshInterval     = time.Hour
)

// uidNamespace seeds the name-based event UIDs so an event keeps its UID
// across feed refreshes.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://arboleda/agenda"))

// Calendar renders the board as an iCalendar feed. Reading the feed does
// not count as a visit.
func (s *Service) Calendar(ctx context.Context) ([]byte, error) {
	b, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	return s.encodeCalendar(b, s.clock.Now())
}

func (s *Service) encodeCalendar(b Board, stamp time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, calendarProductID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(propCalendarName, s.loc.Message("CalendarName", nil))
	refresh := ical.NewProp(propRefreshInterval)
	refresh.SetDuration(refreshInterval)
	cal.Props.Set(refresh)

	stamp = stamp.UTC()
	for _, r := range b.Retreats {
		summary := s.loc.Message("RetreatSummary", nil)
		if r.Place != "" {
			summary = s.loc.Message("RetreatSummaryAt", map[string]any{"Place": r.Place})
		}
		event := allDayEvent("retreat|"+r.Date.String()+"|"+r.Place, summary, r.Date, stamp)
		if r.Place != "" {
			event.Props.SetText(ical.PropLocation, r.Place)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	for _, bd := range b.Birthdays {
		summary := s.loc.Message("BirthdaySummary", map[string]any{"Name": bd.Name})
		key := fmt.Sprintf("birthday|%s|%02d-%02d", bd.Name, bd.Date.Month(), bd.Date.Day())
		event := allDayEvent(key, summary, bd.Date, stamp)
		// a leap-day birthday moves between Feb 29 and Mar 1, so only this
		// year's occurrence is published
		if !bd.LeapDay {
			event.Props.SetRecurrenceRule(&rrule.ROption{Freq: rrule.YEARLY})
		}
		cal.Children = append(cal.Children, event.Component)
	}

	resolver := dates.NewResolver(b.Today)
	for _, rec := range b.Activities {
		start, ok := resolver.Resolve(rec.Lookup(records.StartAliases...))
		if !ok {
			continue
		}
		summary := rec.Lookup(records.TitleAliases...)
		if summary == "" {
			summary = s.loc.Message("ActivitySummary", nil)
		}
		place := rec.Lookup(records.PlaceAliases...)
		event := allDayEvent("activity|"+summary+"|"+start.String()+"|"+place, summary, start, stamp)
		if end, ok := resolver.Resolve(rec.Lookup(records.EndAliases...)); ok && !end.Before(start) {
			event.Props.SetDate(ical.PropDateTimeEnd, end.AddDays(1).Time())
		}
		if place != "" {
			event.Props.SetText(ical.PropLocation, place)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	// an empty VCALENDAR is rejected by the encoder
	if len(cal.Children) == 0 {
		return []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + calendarProductID + "\r\nEND:VCALENDAR\r\n"), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func allDayEvent(key, summary string, date dates.Date, stamp time.Time) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.NewSHA1(uidNamespace, []byte(key)).String())
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	event.Props.SetDate(ical.PropDateTimeStart, date.Time())
	return event
}
