package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/arboleda/arboleda/internal/event_bus"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const warmTimeout = 30 * time.Second

// Refresher warms the grid cache on a cron schedule and on demand.
type Refresher struct {
	cache    *CachedSource
	ranges   []string
	eventBus *event_bus.EventBus
	cron     *cron.Cron
}

func NewRefresher(cache *CachedSource, eventBus *event_bus.EventBus, ranges ...string) *Refresher {
	return &Refresher{
		cache:    cache,
		ranges:   ranges,
		eventBus: eventBus,
	}
}

// Start schedules Warm with a standard five-field cron spec. An empty spec
// leaves the refresher idle.
func (r *Refresher) Start(spec string) error {
	if spec == "" {
		log.Debug("No refresh schedule configured")
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
		defer cancel()
		if err := r.Warm(ctx); err != nil {
			log.Errorf("Scheduled refresh failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	c.Start()
	r.cron = c
	log.Infof("Refreshing spreadsheet grids on schedule %q", spec)
	return nil
}

// Stop halts the schedule and waits for a running warm-up to finish.
func (r *Refresher) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}

// Warm re-reads every range into the cache.
func (r *Refresher) Warm(ctx context.Context) error {
	return r.reload(ctx, false)
}

// Refresh drops the cache before re-reading, so a failed read leaves no
// stale grid behind.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.cache.Invalidate()
	return r.reload(ctx, true)
}

func (r *Refresher) reload(ctx context.Context, forced bool) error {
	if err := r.cache.Reload(ctx, r.ranges...); err != nil {
		return err
	}
	log.Debugf("Reloaded %d ranges (forced: %t)", len(r.ranges), forced)
	if r.eventBus == nil {
		return nil
	}
	return r.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.GridsReloadedEvent, event_bus.GridsReloaded{
		Ranges: r.ranges,
		Forced: forced,
	}))
}
