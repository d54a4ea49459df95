// Package daemon configures and starts the kvboardd daemon.
package daemon

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/kvboard/kvboard/internal"
	"github.com/kvboard/kvboard/internal/http"
	"github.com/kvboard/kvboard/internal/http/html"
	"github.com/kvboard/kvboard/internal/logr"
	"github.com/kvboard/kvboard/internal/pair"
	"github.com/kvboard/kvboard/internal/sql"
)

type Daemon struct {
	Config
	logr.Logger

	*sql.DB

	Pairs *pair.Service
}

// New builds a new daemon and establishes a connection to the database and
// migrates it to the latest schema.
func New(ctx context.Context, logger logr.Logger, cfg Config) (*Daemon, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}

	db, err := sql.New(ctx, logger, cfg.Database)
	if err != nil {
		return nil, err
	}

	renderer, err := html.NewRenderer(cfg.DevMode)
	if err != nil {
		db.Close()
		return nil, err
	}

	pairs := pair.NewService(pair.Options{
		DB:       db,
		Renderer: renderer,
		Logger:   logger,
	})

	return &Daemon{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Pairs:  pairs,
	}, nil
}

// Start the daemon and block until the context is cancelled or an error
// occurs. The started channel is closed once the listener is bound.
func (d *Daemon) Start(ctx context.Context, started chan struct{}) error {
	// Close database connection pool on exit.
	defer d.Close()

	server, err := http.NewServer(d.Logger, http.ServerConfig{
		SSL:                  d.SSL,
		CertFile:             d.CertFile,
		KeyFile:              d.KeyFile,
		EnableRequestLogging: d.EnableRequestLogging,
		DevMode:              d.DevMode,
		Ping:                 d.Pairs.Ping,
		Handlers:             []internal.Handlers{d.Pairs},
	})
	if err != nil {
		return fmt.Errorf("setting up http server: %w", err)
	}

	ln, err := net.Listen("tcp", d.Address)
	if err != nil {
		return err
	}
	defer ln.Close()

	// Group web server and if it errors then terminate.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(ctx, ln); err != nil {
			return fmt.Errorf("http server terminated: %w", err)
		}
		return nil
	})

	// Inform the caller the daemon has started
	close(started)

	// Block until error or context cancelled.
	return g.Wait()
}
