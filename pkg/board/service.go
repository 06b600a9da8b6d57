package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arboleda/arboleda/internal/config"
	"github.com/arboleda/arboleda/internal/event_bus"
	"github.com/arboleda/arboleda/internal/utils"
	"github.com/arboleda/arboleda/pkg/dates"
	"github.com/arboleda/arboleda/pkg/locale"
	"github.com/arboleda/arboleda/pkg/records"
	"github.com/arboleda/arboleda/pkg/sheets"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrSourceNotConfigured means the board has no spreadsheet to read from.
var ErrSourceNotConfigured = errors.New("board source is not configured")

// SourceError wraps any failure to read one of the ranges.
type SourceError struct {
	Range string
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Range, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

type Service struct {
	source   sheets.Source
	ranges   config.Ranges
	options  Options
	location *time.Location
	loc      *locale.Localizer
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

// NewService reads the four ranges of cfg from source. A nil source makes
// every read fail with ErrSourceNotConfigured. Today is taken from clock in
// the configured timezone.
func NewService(source sheets.Source, cfg config.Application, loc *locale.Localizer, eventBus *event_bus.EventBus, clock utils.Clock) (*Service, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return &Service{
		source: source,
		ranges: cfg.Sheets.Ranges,
		options: Options{
			BirthdayWindowDays: cfg.Board.BirthdayWindowDays,
			OtherDatesLink:     cfg.Board.OtherDatesLink,
		},
		location: location,
		loc:      loc,
		eventBus: eventBus,
		clock:    clock,
	}, nil
}

// Today is the current calendar date in the configured timezone.
func (s *Service) Today() dates.Date {
	return dates.FromTime(s.clock.Now().In(s.location))
}

// Board builds the dashboard and records the visit.
func (s *Service) Board(ctx context.Context) (Board, error) {
	b, err := s.build(ctx)
	if err != nil {
		return Board{}, err
	}

	served := event_bus.BoardServed{
		Today:      b.Today.Time(),
		Retreats:   len(b.Retreats),
		Activities: len(b.Activities),
		Birthdays:  len(b.Birthdays),
	}
	if s.eventBus != nil {
		if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BoardServedEvent, served)); err != nil {
			log.Warnf("Board served but visit was not recorded: %v", err)
		}
	}
	return b, nil
}

func (s *Service) build(ctx context.Context) (Board, error) {
	grids, err := s.fetch(ctx)
	if err != nil {
		return Board{}, err
	}
	today := s.Today()
	log.Debugf("Building board for %s", today)
	return Build(grids, today, s.loc, s.options), nil
}

// fetch reads the four ranges concurrently. The first failure cancels the
// remaining reads.
func (s *Service) fetch(ctx context.Context) (Grids, error) {
	if s.source == nil {
		return Grids{}, ErrSourceNotConfigured
	}

	var grids Grids
	g, gctx := errgroup.WithContext(ctx)
	read := func(readRange string, dst *records.Grid) {
		g.Go(func() error {
			grid, err := s.source.Values(gctx, readRange)
			if err != nil {
				return &SourceError{Range: readRange, Err: err}
			}
			*dst = grid
			return nil
		})
	}
	read(s.ranges.Retreats, &grids.Retreats)
	read(s.ranges.Activities, &grids.Activities)
	read(s.ranges.Circles, &grids.Circles)
	read(s.ranges.Birthdays, &grids.Birthdays)

	if err := g.Wait(); err != nil {
		return Grids{}, err
	}
	return grids, nil
}
