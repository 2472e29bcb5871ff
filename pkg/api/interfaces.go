// Package api provides interfaces for dependency injection
package api

import (
	"context"
	"log/slog"

	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
)

// Loader reads a library file from disk
type Loader interface {
	Load(ctx context.Context, path string, format *scratchdb.Format) (*scratchdb.File, error)
}

// ServerStarter runs the API server until ctx is done
type ServerStarter interface {
	StartServer(ctx context.Context, loader Loader, config ServerConfig, logger *slog.Logger) error
}

// ServerFactory creates server starters
type ServerFactory interface {
	CreateServerStarter() ServerStarter
}
