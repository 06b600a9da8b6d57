package sheets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arboleda/arboleda/internal/utils"
	"github.com/arboleda/arboleda/pkg/records"
	log "github.com/sirupsen/logrus"
)

type cacheEntry struct {
	grid      records.Grid
	fetchedAt time.Time
}

// CachedSource keeps each range's last grid for ttl. A ttl of zero or less
// disables caching and every read goes to the wrapped source.
type CachedSource struct {
	source Source
	ttl    time.Duration
	clock  utils.Clock

	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewCachedSource(source Source, ttl time.Duration, clock utils.Clock) *CachedSource {
	return &CachedSource{
		source:  source,
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedSource) Values(ctx context.Context, readRange string) (records.Grid, error) {
	if c.ttl <= 0 {
		return c.source.Values(ctx, readRange)
	}

	if grid, ok := c.lookup(readRange); ok {
		return grid, nil
	}

	grid, err := c.source.Values(ctx, readRange)
	if err != nil {
		return nil, err
	}
	c.store(readRange, grid)
	return grid, nil
}

func (c *CachedSource) lookup(readRange string) (records.Grid, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[readRange]
	if !ok {
		return nil, false
	}
	if c.clock.Now().Sub(entry.fetchedAt) >= c.ttl {
		delete(c.entries, readRange)
		return nil, false
	}
	return entry.grid, true
}

func (c *CachedSource) store(readRange string, grid records.Grid) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[readRange] = cacheEntry{grid: grid, fetchedAt: c.clock.Now()}
}

// Invalidate drops every cached grid.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	log.Debugf("Dropped %d cached grids", dropped)
}

// Reload fetches the given ranges from the wrapped source and replaces their
// cached grids. Every range is attempted; ranges that fail keep their
// previous entry and their errors are joined.
func (c *CachedSource) Reload(ctx context.Context, readRanges ...string) error {
	var errs []error
	for _, readRange := range readRanges {
		grid, err := c.source.Values(ctx, readRange)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to reload %s: %w", readRange, err))
			continue
		}
		if c.ttl > 0 {
			c.store(readRange, grid)
		}
	}
	return errors.Join(errs...)
}
