package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/homeboard/internal/config"
	"github.com/vovakirdan/homeboard/internal/core"
	"github.com/vovakirdan/homeboard/internal/store"
	"github.com/vovakirdan/homeboard/internal/store/memory"
	"github.com/vovakirdan/homeboard/internal/store/sqlite"
	transporthttp "github.com/vovakirdan/homeboard/internal/transport/http"
	"github.com/vovakirdan/homeboard/internal/uploads"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	store           store.Store
	log             *zerolog.Logger
}

// New constructs the application with provided configuration, storing uploads
// in uploads.DefaultDir.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	return NewWithUploadDir(cfg, logger, uploads.DefaultDir)
}

// NewWithUploadDir is New with an explicit upload directory.
func NewWithUploadDir(cfg *config.Config, logger *zerolog.Logger, uploadDir string) (*App, error) {
	dir, err := uploads.New(uploadDir)
	if err != nil {
		return nil, fmt.Errorf("init uploads: %w", err)
	}
	logger.Info().Str("upload_dir", dir.Root()).Msg("upload directory ready")

	st, err := openStore(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	logger.Info().Str("driver", cfg.Store.Driver).Msg("list store initialized")

	hub := core.NewHub(st, logger)
	server := transporthttp.NewServer(hub, st, dir, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		store:           st,
		log:             logger,
	}, nil
}

func openStore(cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory, "":
		return memory.New(), nil
	case config.StoreDriverSQLite:
		st, err := sqlite.New()
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() stdhttp.Handler {
	return a.server.Handler
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go a.hub.Run(hubCtx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		stopHub()
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		// Stopping the hub first closes every client's event stream, which ends
		// the hijacked WebSocket handlers that Shutdown does not wait for.
		stopHub()
		<-a.hub.Done()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the store, dropping every list.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
