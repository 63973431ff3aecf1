package app

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/karelplanken/pourbaix/internal/cache"
	"github.com/karelplanken/pourbaix/internal/config"
	"github.com/karelplanken/pourbaix/internal/mpapi"
	"github.com/karelplanken/pourbaix/internal/pourbaix"
	"github.com/karelplanken/pourbaix/internal/view"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  config.Loader
	fetcher cache.Fetcher
	viewer  view.Viewer
}

// Option overrides one of the App's collaborators, primarily for testing.
type Option func(*App)

// WithFetcher replaces the remote entry source.
func WithFetcher(f cache.Fetcher) Option {
	return func(a *App) { a.fetcher = f }
}

// WithViewer replaces the diagram viewer.
func WithViewer(v view.Viewer) Option {
	return func(a *App) { a.viewer = v }
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loader:  loader,
		fetcher: &lazyFetcher{},
		viewer:  view.Nop{},
	}
	if cfg.Show {
		a.viewer = view.Window{}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// lazyFetcher creates the remote client on the first cache miss, so runs
// answered entirely from the cache never need credentials.
type lazyFetcher struct {
	mu     sync.Mutex
	client cache.Fetcher
}

func (f *lazyFetcher) PourbaixEntries(ctx context.Context, element string) ([]pourbaix.Entry, error) {
	f.mu.Lock()
	if f.client == nil {
		client, err := mpapi.NewClient("")
		if err != nil {
			f.mu.Unlock()
			return nil, err
		}
		f.client = client
	}
	client := f.client
	f.mu.Unlock()

	return client.PourbaixEntries(ctx, element)
}
