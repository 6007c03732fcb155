// Package container provides dependency injection for spendlog.
// It builds the key-value substrate, the store and every component reading
// from it exactly once, and hands them out through getters.
package container

import (
	"fmt"
	"time"

	"fjacquet/spendlog/internal/config"
	"fjacquet/spendlog/internal/kvstore"
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/query"
	"fjacquet/spendlog/internal/search"
	"fjacquet/spendlog/internal/snapshot"
	"fjacquet/spendlog/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation; dependencies are reached through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	kv       kvstore.KeyValue
	store    *store.Store
	query    *query.Engine
	search   *search.Filter
	snapshot *snapshot.Service
}

// Option customises container construction, mostly for tests.
type Option func(*options)

type options struct {
	logger logging.Logger
	kv     kvstore.KeyValue
	now    func() time.Time
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithKeyValue injects a substrate instead of opening the configured backend.
func WithKeyValue(kv kvstore.KeyValue) Option {
	return func(o *options) { o.kv = kv }
}

// WithClock sets the clock shared by the store, queries and snapshots.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	kv := o.kv
	if kv == nil {
		var err error
		kv, err = OpenKeyValue(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
		}
	}

	st := store.New(kv,
		store.WithLogger(logger),
		store.WithClock(o.now))
	engine := query.New(st,
		query.WithLogger(logger),
		query.WithClock(o.now))
	filter := search.New(st, logger)
	snap := snapshot.New(st,
		snapshot.WithLogger(logger),
		snapshot.WithClock(o.now),
		snapshot.WithDelimiter(cfg.DelimiterRune()))

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldBackend, cfg.Storage.Backend))

	return &Container{
		logger:   logger,
		config:   cfg,
		kv:       kv,
		store:    st,
		query:    engine,
		search:   filter,
		snapshot: snap,
	}, nil
}

// OpenKeyValue opens the substrate named by cfg.Storage.Backend.
func OpenKeyValue(cfg *config.Config) (kvstore.KeyValue, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return kvstore.NewMemory(), nil
	case config.BackendSQLite:
		return kvstore.OpenSQLite(cfg.StoragePath())
	case config.BackendFile, "":
		return kvstore.NewFileStore(cfg.StoragePath())
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the ledger store.
func (c *Container) GetStore() *store.Store {
	return c.store
}

// GetQuery returns the query engine.
func (c *Container) GetQuery() *query.Engine {
	return c.query
}

// GetSearch returns the search filter.
func (c *Container) GetSearch() *search.Filter {
	return c.search
}

// GetSnapshot returns the snapshot import/export service.
func (c *Container) GetSnapshot() *snapshot.Service {
	return c.snapshot
}

// Close releases the storage backend.
func (c *Container) Close() error {
	if err := c.kv.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}

// NewMemoryContainer wires a container over an empty in-memory ledger with
// default configuration.
func NewMemoryContainer(opts ...Option) (*Container, error) {
	cfg := config.Defaults()
	cfg.Storage.Backend = config.BackendMemory
	return NewContainer(cfg, opts...)
}
