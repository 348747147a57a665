//go:build windows

package providers

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"unsafe"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/ja-he/winlux/internal/apperr"
	"github.com/ja-he/winlux/internal/model"
	"github.com/ja-he/winlux/internal/storage"
)

const (
	personalizeKey = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`
	settingsKey    = `Software\WinLux`
	runKey         = `Software\Microsoft\Windows\CurrentVersion\Run`

	valueAppsUseLightTheme    = "AppsUseLightTheme"
	valueSystemUsesLightTheme = "SystemUsesLightTheme"

	valueSolarAddress          = "SolarAddress"
	valueSolarDisplayName      = "SolarDisplayName"
	valueSolarLatitude         = "SolarLatitude"
	valueSolarLongitude        = "SolarLongitude"
	valueSolarAutoThemeEnabled = "SolarAutoThemeEnabled"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSendMessageTimeoutW = user32.NewProc("SendMessageTimeoutW")
)

const (
	hwndBroadcast      = 0xffff
	wmSettingChange    = 0x001a
	smtoAbortIfHung    = 0x0002
	broadcastTimeoutMS = 200
)

// RegistryProvider keeps state in the current user's registry hive, where
// Windows itself reads the theme flags from.
type RegistryProvider struct {
	executable func() (string, error)
}

var _ storage.Provider = (*RegistryProvider)(nil)

func newRegistryProvider() (storage.Provider, error) {
	return &RegistryProvider{executable: os.Executable}, nil
}

// GetThemeState reads the theme flags; missing values read as light.
func (p *RegistryProvider) GetThemeState() (model.ThemeState, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		return model.ThemeState{}, apperr.Wrap(apperr.Store, apperr.CodeRegistryOpenFailed, err)
	}
	defer k.Close()

	return model.ThemeState{
		Apps:   readThemeFlag(k, valueAppsUseLightTheme),
		System: readThemeFlag(k, valueSystemUsesLightTheme),
	}, nil
}

func readThemeFlag(k registry.Key, name string) model.ThemeMode {
	v, _, err := k.GetIntegerValue(name)
	if err == nil && v == 0 {
		return model.Dark
	}
	return model.Light
}

// SetThemeState writes the theme flags, broadcasts the change to all
// top-level windows and returns the flags as read back.
func (p *RegistryProvider) SetThemeState(state model.ThemeState) (model.ThemeState, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.SET_VALUE)
	if err != nil {
		return model.ThemeState{}, apperr.Wrap(apperr.Store, apperr.CodeRegistryOpenFailed, err)
	}
	defer k.Close()

	if err := k.SetDWordValue(valueAppsUseLightTheme, lightFlag(state.Apps)); err != nil {
		return model.ThemeState{}, apperr.Wrap(apperr.Store, apperr.CodeWriteAppsThemeFailed, err)
	}
	if err := k.SetDWordValue(valueSystemUsesLightTheme, lightFlag(state.System)); err != nil {
		return model.ThemeState{}, apperr.Wrap(apperr.Store, apperr.CodeWriteSystemThemeFailed, err)
	}

	broadcastThemeChanged()
	return p.GetThemeState()
}

func lightFlag(m model.ThemeMode) uint32 {
	if m == model.Dark {
		return 0
	}
	return 1
}

// broadcastThemeChanged sends WM_SETTINGCHANGE("ImmersiveColorSet") so that
// the taskbar, explorer and running apps repaint.
func broadcastThemeChanged() {
	param, err := windows.UTF16PtrFromString("ImmersiveColorSet")
	if err != nil {
		return
	}
	var result uintptr
	r, _, err := procSendMessageTimeoutW.Call(
		hwndBroadcast,
		wmSettingChange,
		0,
		uintptr(unsafe.Pointer(param)),
		smtoAbortIfHung,
		broadcastTimeoutMS,
		uintptr(unsafe.Pointer(&result)),
	)
	if r == 0 {
		log.Debug().Err(err).Msg("theme change broadcast did not complete")
	}
}

// GetSolarSettings reads the solar settings; a missing key or an incomplete
// location read as defaults.
func (p *RegistryProvider) GetSolarSettings() (model.SolarSettings, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, settingsKey, registry.QUERY_VALUE)
	if err != nil {
		return model.SolarSettings{}, nil
	}
	defer k.Close()

	str := func(name string) string {
		v, _, err := k.GetStringValue(name)
		if err != nil {
			return ""
		}
		return v
	}
	address := str(valueSolarAddress)
	displayName := str(valueSolarDisplayName)
	latitudeRaw := str(valueSolarLatitude)
	longitudeRaw := str(valueSolarLongitude)
	enabled, _, err := k.GetIntegerValue(valueSolarAutoThemeEnabled)
	if err != nil {
		enabled = 0
	}

	settings := model.SolarSettings{AutoThemeEnabled: enabled != 0}
	if strings.TrimSpace(address) == "" || strings.TrimSpace(displayName) == "" {
		return settings, nil
	}
	latitude, errLat := strconv.ParseFloat(strings.TrimSpace(latitudeRaw), 64)
	longitude, errLon := strconv.ParseFloat(strings.TrimSpace(longitudeRaw), 64)
	if errLat != nil || errLon != nil {
		log.Warn().Str("latitude", latitudeRaw).Str("longitude", longitudeRaw).Msg("stored location has invalid coordinates, ignoring it")
		return settings, nil
	}
	settings.Location = &model.GeocodeResult{
		Address:     address,
		DisplayName: displayName,
		Latitude:    latitude,
		Longitude:   longitude,
	}
	return settings, nil
}

// SaveLocation writes the location.
func (p *RegistryProvider) SaveLocation(location model.GeocodeResult) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, settingsKey, registry.SET_VALUE)
	if err != nil {
		return apperr.Wrap(apperr.Store, apperr.CodeRegistryCreateFailed, err)
	}
	defer k.Close()

	writes := []struct {
		name, value, code string
	}{
		{valueSolarAddress, location.Address, apperr.CodeSaveAddressFailed},
		{valueSolarDisplayName, location.DisplayName, apperr.CodeSaveDisplayNameFailed},
		{valueSolarLatitude, strconv.FormatFloat(location.Latitude, 'f', -1, 64), apperr.CodeSaveLatitudeFailed},
		{valueSolarLongitude, strconv.FormatFloat(location.Longitude, 'f', -1, 64), apperr.CodeSaveLongitudeFailed},
	}
	for _, w := range writes {
		if err := k.SetStringValue(w.name, w.value); err != nil {
			return apperr.Wrap(apperr.Store, w.code, err)
		}
	}
	return nil
}

// SetAutoThemeEnabled writes the auto-theme flag.
func (p *RegistryProvider) SetAutoThemeEnabled(enabled bool) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, settingsKey, registry.SET_VALUE)
	if err != nil {
		return apperr.Wrap(apperr.Store, apperr.CodeRegistryCreateFailed, err)
	}
	defer k.Close()

	var v uint32
	if enabled {
		v = 1
	}
	if err := k.SetDWordValue(valueSolarAutoThemeEnabled, v); err != nil {
		return apperr.Wrap(apperr.Store, apperr.CodeSaveAutoThemeFailed, err)
	}
	return nil
}

// GetStartupState tells whether a Run entry starts this executable.
func (p *RegistryProvider) GetStartupState() (model.StartupState, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return model.StartupState{Enabled: false}, nil
	}
	if err != nil {
		return model.StartupState{}, apperr.Wrap(apperr.Store, apperr.CodeRegistryOpenFailed, err)
	}
	defer k.Close()

	_, _, err = k.GetValue(RunValueName, nil)
	switch {
	case err == nil:
		return model.StartupState{Enabled: true}, nil
	case !errors.Is(err, registry.ErrNotExist):
		return model.StartupState{}, apperr.Wrap(apperr.Store, apperr.CodeRegistryOpenFailed, err)
	}

	exe, err := p.executable()
	if err != nil {
		return model.StartupState{Enabled: false}, nil
	}
	return model.StartupState{Enabled: len(p.foreignEntriesFor(k, exe)) > 0}, nil
}

// SetStartupEnabled adds or removes the Run entry. Disabling also removes any
// other Run entries that start this executable.
func (p *RegistryProvider) SetStartupEnabled(enabled bool) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKey, registry.SET_VALUE|registry.QUERY_VALUE)
	if err != nil {
		return apperr.Wrap(apperr.Store, apperr.CodeRegistryCreateFailed, err)
	}
	defer k.Close()

	exe, exeErr := p.executable()

	if enabled {
		if exeErr != nil {
			return apperr.Wrap(apperr.Store, apperr.CodeExecutablePathFailed, exeErr)
		}
		if err := k.SetStringValue(RunValueName, StartupCommand(exe)); err != nil {
			return apperr.Wrap(apperr.Store, apperr.CodeRegistryCreateFailed, err)
		}
		return nil
	}

	if err := k.DeleteValue(RunValueName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return apperr.Wrap(apperr.Store, apperr.CodeRegistryCreateFailed, err)
	}
	if exeErr != nil {
		return nil
	}
	for _, name := range p.foreignEntriesFor(k, exe) {
		if err := k.DeleteValue(name); err != nil && !errors.Is(err, registry.ErrNotExist) {
			return apperr.Wrap(apperr.Store, apperr.CodeRegistryCreateFailed, err)
		}
	}
	return nil
}

// foreignEntriesFor lists the names of Run values, other than our own, whose
// command starts the given executable at login.
func (p *RegistryProvider) foreignEntriesFor(k registry.Key, exe string) []string {
	names, err := k.ReadValueNames(0)
	if err != nil {
		log.Debug().Err(err).Msg("could not enumerate run entries")
		return nil
	}
	result := []string{}
	for _, name := range names {
		if strings.EqualFold(name, RunValueName) {
			continue
		}
		command, _, err := k.GetStringValue(name)
		if err != nil {
			continue
		}
		if StartupEntryTargets(command, exe) {
			result = append(result, name)
		}
	}
	return result
}
