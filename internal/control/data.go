package control

import (
	"github.com/ja-he/winlux/internal/autotheme"
	"github.com/ja-he/winlux/internal/config"
	"github.com/ja-he/winlux/internal/events"
	"github.com/ja-he/winlux/internal/geocode"
	"github.com/ja-he/winlux/internal/solar"
	"github.com/ja-he/winlux/internal/storage/providers"
)

// EnvData represents the environment data.
type EnvData struct {
	BaseDirPath string
	Config      config.Config
	Version     string
}

// NewAppFromEnv builds the App the way the environment configures it: the
// configured store backend, a Nominatim client and the configured worker
// intervals.
func NewAppFromEnv(env EnvData) (*App, error) {
	store, err := providers.Open(providers.Backend(env.Config.Store.Backend), env.BaseDirPath)
	if err != nil {
		return nil, err
	}

	userAgent := env.Config.Geocoder.UserAgent
	if userAgent == "" {
		userAgent = geocode.UserAgent(env.Version)
	}
	client := geocode.NewClient(
		env.Config.Geocoder.Endpoint,
		userAgent,
		nil,
		geocode.NewRateLimiter(env.Config.Geocoder.MinInterval.Std()),
	)

	intervals := autotheme.Intervals{
		Idle:       env.Config.AutoTheme.IdleInterval.Std(),
		ErrorRetry: env.Config.AutoTheme.ErrorRetryInterval.Std(),
		MinRecheck: env.Config.AutoTheme.MinRecheckInterval.Std(),
	}

	return NewApp(store, client, solar.NewResolver(nil), events.NewBus(), autotheme.SystemClock, intervals), nil
}
