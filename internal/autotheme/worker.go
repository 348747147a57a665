// Package autotheme keeps the OS theme in line with daylight at the saved
// location.
package autotheme

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/winlux/internal/apperr"
	"github.com/ja-he/winlux/internal/model"
	"github.com/ja-he/winlux/internal/solar"
	"github.com/ja-he/winlux/internal/storage"
)

// Intervals are the waits the worker chooses between ticks.
type Intervals struct {
	// Idle is waited while auto-theme is disabled.
	Idle time.Duration
	// ErrorRetry is waited after a failed tick.
	ErrorRetry time.Duration
	// MinRecheck is the lower bound of the wait until the next transition.
	MinRecheck time.Duration
}

// DefaultIntervals returns the intervals used when none are configured.
func DefaultIntervals() Intervals {
	return Intervals{
		Idle:       10 * time.Minute,
		ErrorRetry: 60 * time.Second,
		MinRecheck: 1 * time.Second,
	}
}

// Clock provides the current local instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to a Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock in the local time zone.
var SystemClock Clock = ClockFunc(time.Now)

// Worker is the auto-theme control loop.
//
// Each tick re-reads the settings and the current theme from the stores, so
// changes made elsewhere are picked up on the next tick at the latest.
type Worker struct {
	settings  storage.SettingsStore
	theme     storage.ThemeStore
	resolver  *solar.Resolver
	clock     Clock
	intervals Intervals

	// unbuffered: a wake only lands while Run is waiting
	wake      chan struct{}
	startOnce sync.Once
}

// NewWorker creates a worker. Theme writes go through theme, so whatever
// should happen on a theme change (e.g. notifying listeners) belongs there.
// A nil resolver or clock selects the default; zero intervals are replaced by
// their defaults.
func NewWorker(
	settings storage.SettingsStore,
	theme storage.ThemeStore,
	resolver *solar.Resolver,
	clock Clock,
	intervals Intervals,
) *Worker {
	if resolver == nil {
		resolver = solar.NewResolver(nil)
	}
	if clock == nil {
		clock = SystemClock
	}
	defaults := DefaultIntervals()
	if intervals.Idle <= 0 {
		intervals.Idle = defaults.Idle
	}
	if intervals.ErrorRetry <= 0 {
		intervals.ErrorRetry = defaults.ErrorRetry
	}
	if intervals.MinRecheck <= 0 {
		intervals.MinRecheck = defaults.MinRecheck
	}
	return &Worker{
		settings:  settings,
		theme:     theme,
		resolver:  resolver,
		clock:     clock,
		intervals: intervals,
		wake:      make(chan struct{}),
	}
}

// Tick runs the loop body once: if auto-theme is enabled, the theme
// recommended for the current instant at the saved location is applied
// (written only if it differs from the current one).
// It returns how long to wait before the next tick.
func (w *Worker) Tick(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	settings, err := w.settings.GetSolarSettings()
	if err != nil {
		return 0, err
	}
	if !settings.AutoThemeEnabled {
		return w.intervals.Idle, nil
	}
	if settings.Location == nil {
		return 0, apperr.New(apperr.Configuration, apperr.CodeLocationNotSaved)
	}

	now := w.clock.Now()
	sunTimes, err := w.resolver.Resolve(*settings.Location, model.DateFromGotime(now), now)
	if err != nil {
		return 0, err
	}

	desired := model.UniformThemeState(sunTimes.RecommendedTheme)
	current, err := w.theme.GetThemeState()
	if err != nil {
		return 0, err
	}
	if current != desired {
		log.Info().
			Str("from", current.Apps.String()).
			Str("to", desired.Apps.String()).
			Bool("daylight", sunTimes.IsDaylight).
			Msg("applying theme")
		if _, err := w.theme.SetThemeState(desired); err != nil {
			return 0, err
		}
	}

	secondsUntil := sunTimes.SecondsUntilNextTransition
	if secondsUntil < 0 {
		secondsUntil = 0
	}
	wait := time.Duration(secondsUntil+1) * time.Second
	if wait < w.intervals.MinRecheck {
		wait = w.intervals.MinRecheck
	}
	log.Debug().
		Str("next-transition", string(sunTimes.NextTransition)).
		Str("at", sunTimes.NextTransitionLocal).
		Dur("wait", wait).
		Msg("auto-theme tick done")
	return wait, nil
}

// Run loops until ctx is done. A failed tick never ends the loop; it is
// logged and retried after the error-retry interval.
func (w *Worker) Run(ctx context.Context) {
	log.Info().Msg("auto-theme worker running")
	for {
		wait := w.step(ctx)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info().Msg("auto-theme worker stopped")
			return
		case <-w.wake:
			timer.Stop()
			log.Debug().Msg("auto-theme worker woken")
		case <-timer.C:
		}
	}
}

func (w *Worker) step(ctx context.Context) time.Duration {
	wait, err := w.Tick(ctx)
	if err != nil {
		log.Warn().Err(err).Dur("retry-in", w.intervals.ErrorRetry).Msg("auto-theme tick failed")
		return w.intervals.ErrorRetry
	}
	return wait
}

// Wake cuts the current wait of Run short so the next tick happens
// immediately. If Run is not waiting at the moment, the wake is dropped.
func (w *Worker) Wake() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Start runs the worker in the background. Only the first call has an
// effect; it reports whether it started the worker.
func (w *Worker) Start(ctx context.Context) bool {
	started := false
	w.startOnce.Do(func() {
		started = true
		go w.Run(ctx)
	})
	return started
}
