package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/deppfellow/webkit/internal/config"
	loggerConfig "github.com/deppfellow/webkit/internal/logger"
)

// ErrMissingDatabaseURL is returned when neither database.url nor
// database.host is configured.
var ErrMissingDatabaseURL = errors.New("database URL not configured")

// OpenFunc creates a new handle. Cache calls it at most once per successful
// initialisation.
type OpenFunc func(ctx context.Context) (*Database, error)

// Cache holds the process-wide database handle.
//
// The handle is created on the first Get and shared afterwards. A failed
// initialisation is not remembered, so the next Get tries again.
type Cache struct {
	mu   sync.Mutex
	db   atomic.Pointer[Database]
	open OpenFunc
}

// NewCache returns a Cache that opens the pool described by cfg.
func NewCache(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) *Cache {
	return NewCacheWithOpener(func(ctx context.Context) (*Database, error) {
		return New(ctx, cfg, logger, loggerService)
	})
}

// NewCacheWithOpener returns a Cache backed by a custom opener.
func NewCacheWithOpener(open OpenFunc) *Cache {
	return &Cache{open: open}
}

// Get returns the cached handle, opening it on first use.
func (c *Cache) Get(ctx context.Context) (*Database, error) {
	if db := c.db.Load(); db != nil {
		return db, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have opened it while we waited for the lock.
	if db := c.db.Load(); db != nil {
		return db, nil
	}

	db, err := c.open(ctx)
	if err != nil {
		return nil, err
	}

	c.db.Store(db)
	return db, nil
}

// Cached reports the handle without opening one.
func (c *Cache) Cached() (*Database, bool) {
	db := c.db.Load()
	return db, db != nil
}

// Close releases the cached handle, if any. A later Get opens a new one.
func (c *Cache) Close() error {
	c.mu.Lock()
	db := c.db.Swap(nil)
	c.mu.Unlock()

	if db == nil {
		return nil
	}
	return db.Close()
}
