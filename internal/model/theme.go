package model

import (
	"fmt"
	"strings"
)

// ThemeMode is either light or dark.
type ThemeMode int

const (
	_ ThemeMode = iota
	Light
	Dark
)

// String returns "light" or "dark".
func (m ThemeMode) String() string {
	switch m {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseThemeMode parses "light" or "dark" (case-insensitive).
func ParseThemeMode(s string) (ThemeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return 0, fmt.Errorf("unknown theme mode '%s' (expected 'light' or 'dark')", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m ThemeMode) MarshalText() ([]byte, error) {
	if m != Light && m != Dark {
		return nil, fmt.Errorf("cannot marshal invalid theme mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ThemeMode) UnmarshalText(text []byte) error {
	parsed, err := ParseThemeMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ThemeState is the pair of independently settable OS theme flags.
type ThemeState struct {
	Apps   ThemeMode `json:"apps" yaml:"apps"`
	System ThemeMode `json:"system" yaml:"system"`
}

// UniformThemeState returns a state with both flags set to the given mode.
func UniformThemeState(mode ThemeMode) ThemeState {
	return ThemeState{Apps: mode, System: mode}
}

// StartupState tells whether the program is registered to run at login.
type StartupState struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}
