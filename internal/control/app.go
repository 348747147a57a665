// Package control holds the operations winlux offers to its user-facing
// surfaces, host-independent.
package control

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/winlux/internal/apperr"
	"github.com/ja-he/winlux/internal/autotheme"
	"github.com/ja-he/winlux/internal/events"
	"github.com/ja-he/winlux/internal/model"
	"github.com/ja-he/winlux/internal/solar"
	"github.com/ja-he/winlux/internal/storage"
)

// ConfigurationRequiredMessage is the payload of the
// auto-theme-configuration-required event.
const ConfigurationRequiredMessage = "Auto theme needs a location. Save a location first, then enable auto theme."

// Geocoder resolves addresses; *geocode.Client satisfies it.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (model.GeocodeResult, error)
}

// App wires stores, geocoder, resolver, event bus and the single auto-theme
// worker together.
type App struct {
	store    storage.Provider
	geocoder Geocoder
	resolver *solar.Resolver
	bus      *events.Bus
	clock    autotheme.Clock
	worker   *autotheme.Worker
}

// NewApp creates an App. A nil resolver, bus or clock selects the default.
func NewApp(
	store storage.Provider,
	geocoder Geocoder,
	resolver *solar.Resolver,
	bus *events.Bus,
	clock autotheme.Clock,
	intervals autotheme.Intervals,
) *App {
	if resolver == nil {
		resolver = solar.NewResolver(nil)
	}
	if bus == nil {
		bus = events.NewBus()
	}
	if clock == nil {
		clock = autotheme.SystemClock
	}
	a := &App{
		store:    store,
		geocoder: geocoder,
		resolver: resolver,
		bus:      bus,
		clock:    clock,
	}
	a.worker = autotheme.NewWorker(store, emittingThemeStore{a}, resolver, clock, intervals)
	return a
}

// Bus returns the bus the App emits its events on.
func (a *App) Bus() *events.Bus { return a.bus }

// StartWorker starts the auto-theme worker; only the first call does so.
func (a *App) StartWorker(ctx context.Context) bool {
	return a.worker.Start(ctx)
}

// GetThemeState reads the current OS theme.
func (a *App) GetThemeState() (model.ThemeState, error) {
	return a.store.GetThemeState()
}

// SetThemeState writes the OS theme and emits the state read back after the
// write.
func (a *App) SetThemeState(state model.ThemeState) (model.ThemeState, error) {
	next, err := a.store.SetThemeState(state)
	if err != nil {
		return model.ThemeState{}, err
	}
	a.bus.Emit(events.ThemeStateChanged, next)
	return next, nil
}

// ApplyAutoTheme runs one auto-theme tick right away.
func (a *App) ApplyAutoTheme(ctx context.Context) error {
	_, err := a.worker.Tick(ctx)
	return err
}

// Geocode resolves an address.
func (a *App) Geocode(ctx context.Context, address string) (model.GeocodeResult, error) {
	return a.geocoder.Geocode(ctx, address)
}

// GetSolarSettings reads the solar settings.
func (a *App) GetSolarSettings() (model.SolarSettings, error) {
	return a.store.GetSolarSettings()
}

// SaveSolarLocation geocodes the address and saves the result as the
// location. If auto-theme is enabled the theme is re-applied for the new
// location; a failure doing so does not fail the save.
func (a *App) SaveSolarLocation(ctx context.Context, address string) (model.SolarSettings, error) {
	location, err := a.geocoder.Geocode(ctx, address)
	if err != nil {
		return model.SolarSettings{}, err
	}
	if err := a.store.SaveLocation(location); err != nil {
		return model.SolarSettings{}, err
	}

	settings, err := a.store.GetSolarSettings()
	if err != nil {
		return model.SolarSettings{}, err
	}
	if settings.AutoThemeEnabled {
		if err := a.ApplyAutoTheme(ctx); err != nil {
			log.Warn().Err(err).Msg("could not apply auto theme for new location")
		}
	}

	a.bus.Emit(events.SolarSettingsChanged, settings)
	a.worker.Wake()
	return settings, nil
}

// SetAutoThemeEnabled switches auto-theme on or off. Enabling requires a
// saved location and applies the theme right away.
func (a *App) SetAutoThemeEnabled(ctx context.Context, enabled bool) (model.SolarSettings, error) {
	if enabled {
		settings, err := a.store.GetSolarSettings()
		if err != nil {
			return model.SolarSettings{}, err
		}
		if settings.Location == nil {
			return model.SolarSettings{}, apperr.New(apperr.Configuration, apperr.CodeLocationRequiredEnable)
		}
	}

	if err := a.store.SetAutoThemeEnabled(enabled); err != nil {
		return model.SolarSettings{}, err
	}
	if enabled {
		if err := a.ApplyAutoTheme(ctx); err != nil {
			return model.SolarSettings{}, err
		}
	}

	settings, err := a.store.GetSolarSettings()
	if err != nil {
		return model.SolarSettings{}, err
	}
	a.bus.Emit(events.SolarSettingsChanged, settings)
	a.worker.Wake()
	return settings, nil
}

// ToggleAutoTheme flips auto-theme. Without a saved location nothing is
// changed; the auto-theme-configuration-required event is emitted instead and
// the returned error says why.
func (a *App) ToggleAutoTheme(ctx context.Context) (model.SolarSettings, error) {
	settings, err := a.store.GetSolarSettings()
	if err != nil {
		return model.SolarSettings{}, err
	}
	if settings.Location == nil {
		a.bus.Emit(events.AutoThemeConfigurationRequired, ConfigurationRequiredMessage)
		return settings, apperr.New(apperr.Configuration, apperr.CodeLocationRequiredEnable)
	}
	return a.SetAutoThemeEnabled(ctx, !settings.AutoThemeEnabled)
}

// GetSunTimesByAddress geocodes the address and resolves its sun times on the
// given date (YYYY-MM-DD, empty for today).
func (a *App) GetSunTimesByAddress(ctx context.Context, address, date string) (model.SunTimes, error) {
	location, err := a.geocoder.Geocode(ctx, address)
	if err != nil {
		return model.SunTimes{}, err
	}
	now := a.clock.Now()
	target, err := solar.ResolveTargetDate(date, now)
	if err != nil {
		return model.SunTimes{}, err
	}
	return a.resolver.Resolve(location, target, now)
}

// GetSunTimesBySavedLocation resolves the sun times at the saved location on
// the given date (YYYY-MM-DD, empty for today).
func (a *App) GetSunTimesBySavedLocation(date string) (model.SunTimes, error) {
	settings, err := a.store.GetSolarSettings()
	if err != nil {
		return model.SunTimes{}, err
	}
	if settings.Location == nil {
		return model.SunTimes{}, apperr.New(apperr.Configuration, apperr.CodeLocationRequiredQuery)
	}
	now := a.clock.Now()
	target, err := solar.ResolveTargetDate(date, now)
	if err != nil {
		return model.SunTimes{}, err
	}
	return a.resolver.Resolve(*settings.Location, target, now)
}

// GetStartupState reads whether winlux runs at login.
func (a *App) GetStartupState() (model.StartupState, error) {
	return a.store.GetStartupState()
}

// SetStartupEnabled registers or unregisters winlux to run at login.
func (a *App) SetStartupEnabled(enabled bool) (model.StartupState, error) {
	if err := a.store.SetStartupEnabled(enabled); err != nil {
		return model.StartupState{}, err
	}
	state, err := a.store.GetStartupState()
	if err != nil {
		return model.StartupState{}, err
	}
	a.bus.Emit(events.StartupStateChanged, state)
	return state, nil
}

// emittingThemeStore routes the worker's theme writes through the App so they
// are announced like any other theme change.
type emittingThemeStore struct {
	app *App
}

func (s emittingThemeStore) GetThemeState() (model.ThemeState, error) {
	return s.app.GetThemeState()
}

func (s emittingThemeStore) SetThemeState(state model.ThemeState) (model.ThemeState, error) {
	return s.app.SetThemeState(state)
}
