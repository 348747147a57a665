package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/winlux/internal/apperr"
	"github.com/ja-he/winlux/internal/config"
	"github.com/ja-he/winlux/internal/model"
)

// withHome points winlux at a fresh home using the files store and captures
// command output.
func withHome(t *testing.T) *bytes.Buffer {
	t.Helper()
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, config.FileName), []byte("store:\n  backend: files\n"), 0o644))
	t.Setenv(config.HomeEnvVar, home)

	buffer := &bytes.Buffer{}
	previous := out
	out = buffer
	t.Cleanup(func() { out = previous })
	return buffer
}

func TestThemeCommand(t *testing.T) {
	buffer := withHome(t)

	command := ThemeCommand{}
	require.NoError(t, command.Execute(nil))
	assert.Equal(t, "apps: light\nsystem: light\n", buffer.String())

	buffer.Reset()
	command.Args.Mode = "dark"
	require.NoError(t, command.Execute(nil))
	assert.Equal(t, "apps: dark\nsystem: dark\n", buffer.String())

	command.Args.Mode = "purple"
	assert.Error(t, command.Execute(nil))
}

func TestAutoCommand(t *testing.T) {
	buffer := withHome(t)

	command := AutoCommand{}
	require.NoError(t, command.Execute(nil))
	assert.Contains(t, buffer.String(), "auto-theme-enabled: false")

	command.Args.Action = "on"
	err := command.Execute(nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeLocationRequiredEnable, apperr.CodeOf(err))

	command.Args.Action = "toggle"
	assert.Error(t, command.Execute(nil))

	command.Args.Action = "sideways"
	assert.Error(t, command.Execute(nil))
}

func TestStartupCommand(t *testing.T) {
	buffer := withHome(t)

	command := StartupCommand{}
	command.Args.Action = "on"
	require.NoError(t, command.Execute(nil))
	assert.Equal(t, "enabled: true\n", buffer.String())

	buffer.Reset()
	command.Args.Action = ""
	require.NoError(t, command.Execute(nil))
	assert.Equal(t, "enabled: true\n", buffer.String())
}

func TestSunTimesCommandWithoutLocation(t *testing.T) {
	withHome(t)

	command := SunTimesCommand{JSON: true}
	err := command.Execute(nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeLocationRequiredQuery, apperr.CodeOf(err))
}

func TestPrintJSON(t *testing.T) {
	buffer := withHome(t)

	require.NoError(t, printJSON(model.UniformThemeState(model.Dark)))
	decoded := map[string]string{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
	assert.Equal(t, map[string]string{"apps": "dark", "system": "dark"}, decoded)
}
