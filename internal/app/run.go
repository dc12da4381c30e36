package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/bindery/internal/bundle"
	"github.com/vk/bindery/internal/ctxlog"
)

// Run executes the requested operation based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	switch {
	case appConfig.Show != "":
		return a.runShow(ctx, appConfig.Show)
	case len(appConfig.Use) > 0:
		return a.runCompose(ctx, appConfig.Use)
	default:
		return a.runList(ctx)
	}
}

// runList prints all registered bundle names, one per line.
func (a *App) runList(ctx context.Context) error {
	names := a.registry.Names()
	a.logger.Debug("Listing registered bundles.", "count", len(names))
	for _, name := range names {
		fmt.Fprintln(a.outW, name)
	}
	return nil
}

// runShow renders a single registered bundle.
func (a *App) runShow(ctx context.Context, name string) error {
	b, ok := a.registry.Lookup(name)
	if !ok {
		return a.unknownBundle(name)
	}
	a.logger.Debug("Rendering bundle.", "name", name)
	return renderBundle(a.outW, b)
}

// runCompose builds and renders the effective session configuration from
// the requested bundles, appended in order so the last one wins.
func (a *App) runCompose(ctx context.Context, names []string) error {
	logger := a.logger.With("session_id", uuid.NewString())
	logger.Info("Composing session configuration.", "bundles", names)

	session := bundle.New("session", bundle.Facets{})
	for _, name := range names {
		b, ok := a.registry.Lookup(name)
		if !ok {
			return a.unknownBundle(name)
		}
		session.Append(b)
	}

	logger.Debug("Session configuration composed.")
	return renderBundle(a.outW, session)
}

// unknownBundle builds the lookup-miss error, with a nearest-name hint when
// one is plausible.
func (a *App) unknownBundle(name string) error {
	if suggestion, ok := a.registry.Suggest(name); ok {
		return fmt.Errorf("bundle %q is not registered (did you mean %q?)", name, suggestion)
	}
	return fmt.Errorf("bundle %q is not registered", name)
}
