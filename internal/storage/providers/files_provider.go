package providers

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/winlux/internal/apperr"
	"github.com/ja-he/winlux/internal/model"
	"github.com/ja-he/winlux/internal/storage"
)

// StateFileName is the name of the FilesProvider's document in its base
// directory.
const StateFileName = "state.yaml"

// FilesProvider keeps all state in a single YAML document.
//
// It stands in for the OS stores where there is no registry, and is what
// tests use.
type FilesProvider struct {
	BasePath string

	fh *fileHandler
}

var _ storage.Provider = (*FilesProvider)(nil)

// NewFilesProvider creates a FilesProvider storing its document in the given
// directory.
func NewFilesProvider(basePath string) *FilesProvider {
	return &FilesProvider{
		BasePath: basePath,
		fh:       newFileHandler(filepath.Join(basePath, StateFileName)),
	}
}

// GetThemeState returns the stored theme; missing flags read as light.
func (p *FilesProvider) GetThemeState() (model.ThemeState, error) {
	doc, err := p.fh.read()
	if err != nil {
		return model.ThemeState{}, apperr.Wrap(apperr.Store, apperr.CodeStateFileReadFailed, err)
	}
	state := model.UniformThemeState(model.Light)
	if doc.Theme != nil {
		if doc.Theme.Apps == model.Dark {
			state.Apps = model.Dark
		}
		if doc.Theme.System == model.Dark {
			state.System = model.Dark
		}
	}
	return state, nil
}

// SetThemeState stores the theme and returns it as read back.
func (p *FilesProvider) SetThemeState(state model.ThemeState) (model.ThemeState, error) {
	err := p.fh.update(func(doc *stateDocument) {
		doc.Theme = &state
	})
	if err != nil {
		return model.ThemeState{}, apperr.Wrap(apperr.Store, apperr.CodeStateFileWriteFailed, err)
	}
	log.Debug().Str("apps", state.Apps.String()).Str("system", state.System.String()).Msg("wrote theme state to file")
	return p.GetThemeState()
}

// GetSolarSettings returns the stored solar settings.
// An incomplete stored location reads as no location.
func (p *FilesProvider) GetSolarSettings() (model.SolarSettings, error) {
	doc, err := p.fh.read()
	if err != nil {
		return model.SolarSettings{}, apperr.Wrap(apperr.Store, apperr.CodeStateFileReadFailed, err)
	}
	settings := doc.Solar
	if l := settings.Location; l != nil && (strings.TrimSpace(l.Address) == "" || strings.TrimSpace(l.DisplayName) == "") {
		settings.Location = nil
	}
	return settings, nil
}

// SaveLocation stores the location.
func (p *FilesProvider) SaveLocation(location model.GeocodeResult) error {
	err := p.fh.update(func(doc *stateDocument) {
		doc.Solar.Location = &location
	})
	if err != nil {
		return apperr.Wrap(apperr.Store, apperr.CodeStateFileWriteFailed, err)
	}
	return nil
}

// SetAutoThemeEnabled stores the auto-theme flag.
func (p *FilesProvider) SetAutoThemeEnabled(enabled bool) error {
	err := p.fh.update(func(doc *stateDocument) {
		doc.Solar.AutoThemeEnabled = enabled
	})
	if err != nil {
		return apperr.Wrap(apperr.Store, apperr.CodeStateFileWriteFailed, err)
	}
	return nil
}

// GetStartupState returns the stored startup flag.
func (p *FilesProvider) GetStartupState() (model.StartupState, error) {
	doc, err := p.fh.read()
	if err != nil {
		return model.StartupState{}, apperr.Wrap(apperr.Store, apperr.CodeStateFileReadFailed, err)
	}
	return doc.Startup, nil
}

// SetStartupEnabled stores the startup flag.
func (p *FilesProvider) SetStartupEnabled(enabled bool) error {
	err := p.fh.update(func(doc *stateDocument) {
		doc.Startup.Enabled = enabled
	})
	if err != nil {
		return apperr.Wrap(apperr.Store, apperr.CodeStateFileWriteFailed, err)
	}
	return nil
}
