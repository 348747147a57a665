package providers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/winlux/internal/apperr"
	"github.com/ja-he/winlux/internal/model"
	"github.com/ja-he/winlux/internal/storage/providers"
)

func TestFilesProvider(t *testing.T) {

	t.Run("defaults without a file", func(t *testing.T) {
		p := providers.NewFilesProvider(t.TempDir())

		theme, err := p.GetThemeState()
		require.NoError(t, err)
		assert.Equal(t, model.UniformThemeState(model.Light), theme)

		settings, err := p.GetSolarSettings()
		require.NoError(t, err)
		assert.Nil(t, settings.Location)
		assert.False(t, settings.AutoThemeEnabled)

		startup, err := p.GetStartupState()
		require.NoError(t, err)
		assert.False(t, startup.Enabled)
	})

	t.Run("round trips through the file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "home")
		p := providers.NewFilesProvider(dir)

		written, err := p.SetThemeState(model.ThemeState{Apps: model.Dark, System: model.Light})
		require.NoError(t, err)
		assert.Equal(t, model.ThemeState{Apps: model.Dark, System: model.Light}, written)

		location := model.GeocodeResult{Address: "Berlin", DisplayName: "Berlin, Deutschland", Latitude: 52.517, Longitude: 13.3889}
		require.NoError(t, p.SaveLocation(location))
		require.NoError(t, p.SetAutoThemeEnabled(true))
		require.NoError(t, p.SetStartupEnabled(true))

		// a fresh provider on the same directory sees everything
		reopened := providers.NewFilesProvider(dir)
		theme, err := reopened.GetThemeState()
		require.NoError(t, err)
		assert.Equal(t, written, theme)

		settings, err := reopened.GetSolarSettings()
		require.NoError(t, err)
		require.NotNil(t, settings.Location)
		assert.Equal(t, location, *settings.Location)
		assert.True(t, settings.AutoThemeEnabled)

		startup, err := reopened.GetStartupState()
		require.NoError(t, err)
		assert.True(t, startup.Enabled)

		require.NoError(t, reopened.SetAutoThemeEnabled(false))
		settings, err = p.GetSolarSettings()
		require.NoError(t, err)
		assert.False(t, settings.AutoThemeEnabled)
		assert.NotNil(t, settings.Location)
	})

	t.Run("incomplete location reads as none", func(t *testing.T) {
		dir := t.TempDir()
		doc := "solar:\n  location:\n    address: Paris\n    display-name: \"  \"\n    latitude: 48.85\n    longitude: 2.35\n  auto-theme-enabled: true\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, providers.StateFileName), []byte(doc), 0o644))

		settings, err := providers.NewFilesProvider(dir).GetSolarSettings()
		require.NoError(t, err)
		assert.Nil(t, settings.Location)
		assert.True(t, settings.AutoThemeEnabled)
	})

	t.Run("corrupt file is a store error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, providers.StateFileName), []byte("theme: [unterminated"), 0o644))

		_, err := providers.NewFilesProvider(dir).GetThemeState()
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Store))
		assert.Equal(t, apperr.CodeStateFileReadFailed, apperr.CodeOf(err))
	})
}

func TestOpen(t *testing.T) {
	p, err := providers.Open(providers.BackendFiles, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &providers.FilesProvider{}, p)

	_, err = providers.Open("carrier-pigeon", "")
	assert.Error(t, err)
}

func TestStartupEntryTargets(t *testing.T) {
	exe := `C:\Program Files\WinLux\winlux.exe`

	assert.True(t, providers.StartupEntryTargets(providers.StartupCommand(exe), exe))
	assert.True(t, providers.StartupEntryTargets(`"c:\program files\winlux\WINLUX.EXE" --startup --lite`, exe))
	assert.False(t, providers.StartupEntryTargets(`"C:\Program Files\WinLux\winlux.exe"`, exe), "missing startup flag")
	assert.False(t, providers.StartupEntryTargets(`"C:\Other\tool.exe" --startup`, exe))
	assert.False(t, providers.StartupEntryTargets(`anything --startup`, ""))
	assert.Equal(t, `"C:\Program Files\WinLux\winlux.exe" run --startup`, providers.StartupCommand(exe))
}
