// Package storage defines the persistent stores winlux reads and writes.
//
// Implementations live in the providers subpackage. None of them cache:
// every call goes to the backing store, so a value changed by another process
// (or by the user via OS settings) is seen on the next read.
package storage

import (
	"github.com/ja-he/winlux/internal/model"
)

// ThemeStore persists the OS theme flags.
//
// SetThemeState returns the state as read back after the write, and notifies
// other OS surfaces that the theme changed.
type ThemeStore interface {
	GetThemeState() (model.ThemeState, error)
	SetThemeState(model.ThemeState) (model.ThemeState, error)
}

// SettingsStore persists the solar settings.
//
// Missing values read as the zero SolarSettings.
type SettingsStore interface {
	GetSolarSettings() (model.SolarSettings, error)
	SaveLocation(model.GeocodeResult) error
	SetAutoThemeEnabled(bool) error
}

// StartupStore persists whether the program runs at login.
type StartupStore interface {
	GetStartupState() (model.StartupState, error)
	SetStartupEnabled(bool) error
}

// Provider bundles all stores of one backend.
type Provider interface {
	ThemeStore
	SettingsStore
	StartupStore
}
