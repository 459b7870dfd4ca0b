package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/pulsartime/internal/config"
	"github.com/vk/pulsartime/internal/ctxlog"
	"github.com/vk/pulsartime/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	loader   config.Loader
	doc      *config.Document
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Results are written to outW and logs to logW. A nil loader selects one
// from the model path. A model that cannot be loaded is a fatal startup
// error and panics.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	reg.Install(modules...)
	logger.Debug("All component modules registered.", "count", len(modules))

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		registry: reg,
	}
	if appConfig.ListTypes {
		return a
	}

	if loader == nil {
		loader = LoaderFor(appConfig.ModelPath)
	}
	a.loader = loader
	if err := a.load(ctx); err != nil {
		panic(err)
	}

	return a
}

func (a *App) load(ctx context.Context) error {
	doc, err := a.loader.Load(ctx, a.config.ModelPath)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	a.logger.Debug("Model document loaded.", "name", doc.Name, "components", len(doc.Components))
	a.doc = doc
	return nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Document returns the loaded model document, or nil when listing types.
func (a *App) Document() *config.Document {
	return a.doc
}
