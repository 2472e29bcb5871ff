// Package di provides dependency injection container
package di

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ssargent/scratchlivedb/pkg/api" //nolint:depguard
	"github.com/ssargent/scratchlivedb/pkg/backup"
	"github.com/ssargent/scratchlivedb/pkg/config"
	"github.com/ssargent/scratchlivedb/pkg/library"
	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
)

// Container holds all the dependencies for the application
type Container struct {
	serverFactory api.ServerFactory

	mu      sync.Mutex
	config  *config.Config
	logger  *slog.Logger
	backups *backup.Store
	library *library.Library
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		serverFactory: api.NewServerFactory(),
		config:        config.DefaultConfig(),
		logger:        slog.Default(),
	}
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// Config returns the active configuration
func (c *Container) Config() *config.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// SetConfig replaces the configuration. A library built from the previous
// configuration is dropped.
func (c *Container) SetConfig(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = cfg
	c.library = nil
}

// Logger returns the application logger
func (c *Container) Logger() *slog.Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logger
}

// SetLogger replaces the application logger
func (c *Container) SetLogger(logger *slog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
	c.library = nil
}

// FileOptions returns the parse options implied by the configuration
func (c *Container) FileOptions() []scratchdb.Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fileOptions()
}

func (c *Container) fileOptions() []scratchdb.Option {
	opts := []scratchdb.Option{scratchdb.WithLogger(c.logger)}
	if len(c.config.Entries.AllowedExtensions) > 0 {
		opts = append(opts, scratchdb.WithAllowedExtensions(c.config.Entries.AllowedExtensions...))
	}
	if c.config.Entries.DefaultExtension != "" {
		opts = append(opts, scratchdb.WithDefaultExtension(c.config.Entries.DefaultExtension))
	}
	return opts
}

// Backups opens the snapshot store on first use. It returns nil when backups
// are disabled.
func (c *Container) Backups() (*backup.Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.openBackups()
}

func (c *Container) openBackups() (*backup.Store, error) {
	if !c.config.Backup.Enabled {
		return nil, nil
	}
	if c.backups != nil {
		return c.backups, nil
	}
	store, err := backup.Open(config.ExpandPath(c.config.Backup.Dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open backup store: %w", err)
	}
	c.backups = store
	return store, nil
}

// Library returns the file library built from the configuration
func (c *Container) Library() (*library.Library, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.library != nil {
		return c.library, nil
	}
	store, err := c.openBackups()
	if err != nil {
		return nil, err
	}
	c.library = library.New(library.Options{
		Backups:     store,
		Keep:        c.config.Backup.Keep,
		Logger:      c.logger,
		FileOptions: c.fileOptions(),
	})
	return c.library, nil
}

// Close releases the backup store if it was opened
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.library = nil
	if c.backups == nil {
		return nil
	}
	err := c.backups.Close()
	c.backups = nil
	return err
}
