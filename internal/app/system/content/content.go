// Package content owns the process-wide copy of the portfolio document.
//
// The cell is read-through at startup and write-through on every admin
// mutation: Update applies the change to the held copy, persists the whole
// document, then discards the held copy and reloads it from the store. The
// reload guarantees reads always reflect what the store actually holds, at
// the cost of one extra round trip per write.
//
// Consistency contract: one operator, serialized requests. Concurrent writers
// race with last-writer-wins semantics on whichever fields each touches; the
// RWMutex only protects the pointer swap, not the mutation interleaving.
package content

import (
	"context"
	"errors"
	"sync"

	"github.com/dalemusser/stratafolio/internal/app/system/timeouts"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"go.uber.org/zap"
)

// ErrNotLoaded is returned by Current before the first successful Load.
// Handlers answer service-unavailable rather than serving a missing document.
var ErrNotLoaded = errors.New("portfolio content not loaded")

// Store is the slice of the portfolio store the cache needs.
// *portfoliostore.Store satisfies it.
type Store interface {
	Get(ctx context.Context) (*models.Portfolio, error)
	Replace(ctx context.Context, p *models.Portfolio) error
}

// Cache is the held reference to the latest-read portfolio document.
type Cache struct {
	store  Store
	logger *zap.Logger

	mu  sync.RWMutex
	doc *models.Portfolio
}

// New creates an unloaded cache. Call Load during startup.
func New(store Store, logger *zap.Logger) *Cache {
	return &Cache{store: store, logger: logger}
}

// Load fetches the document from the store and installs it as the held copy.
func (c *Cache) Load(ctx context.Context) error {
	doc, err := c.store.Get(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.doc = doc
	c.mu.Unlock()
	return nil
}

// Loaded reports whether the cache holds a document.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.doc != nil
}

// Current returns the held document for read-only use.
// Returns ErrNotLoaded before the first Load.
func (c *Cache) Current() (*models.Portfolio, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.doc == nil {
		return nil, ErrNotLoaded
	}
	return c.doc, nil
}

// Update applies mutate to the held document, persists the whole document,
// then replaces the held copy with a fresh read from the store.
//
// If mutate returns an error nothing is persisted. If the persist fails the
// request errors and the held copy stays ahead of the store — an accepted
// inconsistency window that the next successful write re-converges. The
// reload step never runs after a failed persist.
func (c *Cache) Update(ctx context.Context, mutate func(p *models.Portfolio) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return ErrNotLoaded
	}

	if err := mutate(c.doc); err != nil {
		return err
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), c.logger, "portfolio write-through")
	defer cancel()

	if err := c.store.Replace(ctx, c.doc); err != nil {
		c.logger.Error("portfolio persist failed; in-memory copy is ahead of the store",
			zap.Error(err))
		return err
	}

	fresh, err := c.store.Get(ctx)
	if err != nil {
		// The write succeeded; only the refresh failed. Keep serving the
		// copy we just persisted and let the next write refresh.
		c.logger.Warn("portfolio reload after persist failed", zap.Error(err))
		return nil
	}
	c.doc = fresh
	return nil
}
