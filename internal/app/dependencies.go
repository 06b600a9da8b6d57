package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/arboleda/arboleda/internal/config"
	"github.com/arboleda/arboleda/internal/database"
	"github.com/arboleda/arboleda/internal/event_bus"
	"github.com/arboleda/arboleda/internal/utils"
	"github.com/arboleda/arboleda/pkg/admin"
	"github.com/arboleda/arboleda/pkg/board"
	"github.com/arboleda/arboleda/pkg/locale"
	"github.com/arboleda/arboleda/pkg/sheets"
	"github.com/arboleda/arboleda/pkg/visits"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock
	Locale   *locale.Localizer

	Cache     *sheets.CachedSource
	Refresher *sheets.Refresher

	BoardService *board.Service
	BoardHandler *board.Handler

	VisitsRepo    visits.Repository
	VisitsService *visits.ServiceImpl

	AdminService *admin.Service
	AdminHandler *admin.Handler

	DB *pgxpool.Pool
}

// BuildDependencies opens the spreadsheet source and, when enabled, the
// database, then wires every service.
func BuildDependencies(ctx context.Context, cfg config.Application) (*Dependencies, error) {
	source, err := sheets.NewSource(ctx, cfg.Sheets)
	if errors.Is(err, sheets.ErrNotConfigured) {
		log.Warn("Spreadsheet is not configured; the board will answer 503 until it is")
		source = nil
	} else if err != nil {
		return nil, err
	}

	var db *pgxpool.Pool
	var visitsRepo visits.Repository
	if cfg.Database.Enabled {
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
		db, err = database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		visitsRepo = visits.NewRepository(db)
	} else {
		log.Info("Database disabled, visit count is kept in memory")
		visitsRepo = visits.NewMemoryRepository()
	}

	deps, err := NewDependencies(cfg, source, visitsRepo)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}
	deps.DB = db
	return deps, nil
}

// NewDependencies wires the services around an already built source and
// visit store. A nil source leaves the board unconfigured.
func NewDependencies(cfg config.Application, source sheets.Source, visitsRepo visits.Repository) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	loc, err := locale.New(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}
	deps.Locale = loc

	var boardSource sheets.Source
	var refresher admin.Refresher = unconfiguredRefresher{}
	if source != nil {
		deps.Cache = sheets.NewCachedSource(source, cfg.Sheets.CacheTTL, deps.Clock)
		deps.Refresher = sheets.NewRefresher(deps.Cache, deps.EventBus,
			cfg.Sheets.Ranges.Retreats,
			cfg.Sheets.Ranges.Activities,
			cfg.Sheets.Ranges.Circles,
			cfg.Sheets.Ranges.Birthdays,
		)
		boardSource = deps.Cache
		refresher = deps.Refresher
	}

	deps.BoardService, err = board.NewService(boardSource, cfg, deps.Locale, deps.EventBus, deps.Clock)
	if err != nil {
		return nil, err
	}
	deps.BoardHandler = board.NewHandler(deps.BoardService)

	deps.VisitsRepo = visitsRepo
	deps.VisitsService = visits.NewService(deps.VisitsRepo, deps.EventBus)

	deps.AdminService = admin.NewService(cfg.Admin.PasswordHash, deps.VisitsService, refresher)
	deps.AdminHandler = admin.NewHandler(deps.AdminService)

	return deps, nil
}

// Close releases the scheduler and the database pool.
func (d *Dependencies) Close() {
	if d.Refresher != nil {
		d.Refresher.Stop()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}

type unconfiguredRefresher struct{}

func (unconfiguredRefresher) Refresh(context.Context) error {
	return board.ErrSourceNotConfigured
}
