// Package app provides the central orchestrator for the location-notes application.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/illmade-knight/location-notes/pkg/locations"
	"github.com/illmade-knight/location-notes/pkg/providers"
	"github.com/rs/zerolog"
)

var (
	// ErrNoProvider is returned when no enabled positioning provider is available.
	ErrNoProvider = errors.New("no location provider available")
	// ErrNoFix is returned when a location is requested before any fix has arrived.
	ErrNoFix = errors.New("no location fix received yet")
)

// FixSource defines the interface for a component that can report the latest fix of a provider.
type FixSource interface {
	LatestFix(ctx context.Context, provider string) (locations.Fix, error)
}

// App is the central application struct. It reacts to provider and fix
// events and turns the latest fix into saved locations.
//
// App is not safe for concurrent use.
type App struct {
	Selector    *providers.Selector
	LocationSvc *locations.Service
	Tracker     *locations.Tracker
	Fixes       FixSource
	Logger      zerolog.Logger
}

// New creates a new, fully initialized App. fixes may be nil when fixes are pushed through OnFix.
func New(
	selector *providers.Selector,
	locationSvc *locations.Service,
	fixes FixSource,
	logger zerolog.Logger,
) *App {
	return &App{
		Selector:    selector,
		LocationSvc: locationSvc,
		Tracker:     locations.NewTracker(),
		Fixes:       fixes,
		Logger:      logger,
	}
}

// Start selects the provider to listen to.
func (a *App) Start(ctx context.Context) (string, error) {
	provider, ok, err := a.Selector.GetBestProvider(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoProvider
	}
	a.Logger.Info().Str("provider", provider).Msg("Listening for location updates")
	return provider, nil
}

// OnProviderDisabled reselects only when the disabled provider was the current one.
func (a *App) OnProviderDisabled(ctx context.Context, name string) (string, error) {
	if !a.Selector.IsCurrentProvider(name) {
		current, _ := a.Selector.Current()
		return current, nil
	}
	a.Logger.Warn().Str("provider", name).Msg("Current location provider disabled")
	a.Tracker.Reset()
	return a.Start(ctx)
}

// OnProviderEnabled always reselects, since the new provider may be better than the current one.
func (a *App) OnProviderEnabled(ctx context.Context, name string) (string, error) {
	a.Logger.Debug().Str("provider", name).Msg("Location provider enabled")
	return a.Start(ctx)
}

// OnFix records a fix pushed by the positioning service.
func (a *App) OnFix(fix locations.Fix) bool {
	return a.Tracker.Offer(fix)
}

// Refresh pulls the latest fix of the current provider from the fix source.
func (a *App) Refresh(ctx context.Context) (locations.Fix, error) {
	provider, ok := a.Selector.Current()
	if !ok {
		return locations.Fix{}, ErrNoProvider
	}
	if a.Fixes == nil {
		return locations.Fix{}, ErrNoFix
	}
	fix, err := a.Fixes.LatestFix(ctx, provider)
	if err != nil {
		return locations.Fix{}, fmt.Errorf("failed to refresh fix: %w", err)
	}
	a.Tracker.Offer(fix)
	return fix, nil
}

// AddCurrentLocation saves the latest fix as a new record. A blank title
// falls back to locations.DefaultTitle.
func (a *App) AddCurrentLocation(ctx context.Context, title, note string) (locations.Record, error) {
	fix, ok := a.Tracker.Latest()
	if !ok {
		return locations.Record{}, ErrNoFix
	}

	rec := a.LocationSvc.Capture(fix)
	if strings.TrimSpace(title) != "" {
		rec.Title = title
	}
	rec.Note = note
	if err := a.Submit(ctx, &rec); err != nil {
		return locations.Record{}, err
	}
	return rec, nil
}

// Submit inserts rec when the store does not know it yet and updates it otherwise.
func (a *App) Submit(ctx context.Context, rec *locations.Record) error {
	if err := a.LocationSvc.Save(ctx, rec); err != nil {
		return err
	}
	a.Logger.Info().Int64("location_id", rec.ID).Str("location", rec.String()).Msg("Location saved")
	return nil
}
