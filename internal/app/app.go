package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/bindery/internal/bundle"
	"github.com/vk/bindery/internal/ctxlog"
	"github.com/vk/bindery/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry,
// with all built-in packs registered and all declared bundle definitions
// loaded and layered.
func NewApp(outW io.Writer, appConfig *Config, loader bundle.Loader, packs ...registry.Pack) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(packs) == 0 {
		packs = corePacks
	}
	for _, p := range packs {
		p.Register(reg)
	}
	logger.Debug("All built-in packs registered.", "count", len(packs))

	if appConfig.BundlesPath != "" {
		defs, err := loader.Load(ctx, appConfig.BundlesPath)
		if err != nil {
			// A failure to load definitions is a fatal startup error.
			panic(fmt.Errorf("failed to load bundle definitions: %w", err))
		}
		if err := registerDefinitions(ctx, reg, defs); err != nil {
			panic(fmt.Errorf("failed to register bundle definitions: %w", err))
		}
	}
	logger.Debug("Registry populated.", "bundles", reg.Len())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
