package model

// GeocodeResult is a free-text address resolved to coordinates.
type GeocodeResult struct {
	Address     string  `json:"address" yaml:"address"`
	DisplayName string  `json:"display_name" yaml:"display-name"`
	Latitude    float64 `json:"latitude" yaml:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude"`
}

// SolarSettings are the persisted settings of the auto-theme feature.
//
// The zero value (no location, auto-theme disabled) is what a store returns
// when nothing has been saved yet.
type SolarSettings struct {
	Location         *GeocodeResult `json:"location" yaml:"location,omitempty"`
	AutoThemeEnabled bool           `json:"auto_theme_enabled" yaml:"auto-theme-enabled"`
}
