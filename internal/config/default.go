package config

import (
	"runtime"
	"time"
)

// Default returns the default configuration for the current platform.
func Default() Config {
	return Config{
		Geocoder: Geocoder{
			Endpoint:    "https://nominatim.openstreetmap.org/search",
			MinInterval: Duration(1 * time.Second),
		},
		AutoTheme: AutoTheme{
			IdleInterval:       Duration(10 * time.Minute),
			ErrorRetryInterval: Duration(60 * time.Second),
			MinRecheckInterval: Duration(1 * time.Second),
		},
		Store: Store{
			Backend: defaultBackend(),
		},
	}
}

func defaultBackend() string {
	if runtime.GOOS == "windows" {
		return "registry"
	}
	return "files"
}
