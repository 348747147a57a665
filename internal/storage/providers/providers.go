package providers

import (
	"fmt"
	"strings"

	"github.com/ja-he/winlux/internal/storage"
)

// Backend names a kind of provider.
type Backend string

const (
	BackendRegistry Backend = "registry"
	BackendFiles    Backend = "files"
)

// RunValueName is the name of the Run entry that starts winlux at login.
const RunValueName = "WinLux"

// StartupFlag is passed to the executable when it is started at login.
const StartupFlag = "--startup"

// Open creates the provider for the given backend. basePath is only used by
// the files backend.
func Open(backend Backend, basePath string) (storage.Provider, error) {
	switch backend {
	case BackendRegistry:
		return newRegistryProvider()
	case BackendFiles:
		return NewFilesProvider(basePath), nil
	default:
		return nil, fmt.Errorf("unknown store backend '%s'", backend)
	}
}

// StartupCommand returns the Run entry command that starts the given
// executable's daemon at login.
func StartupCommand(exe string) string {
	return fmt.Sprintf("\"%s\" run %s", exe, StartupFlag)
}

// StartupEntryTargets tells whether a Run entry command starts the given
// executable at login, i.e. it names the executable and passes the startup
// flag. Comparison is case-insensitive, as paths on Windows are.
func StartupEntryTargets(command, exe string) bool {
	normalizedCommand := strings.ToLower(strings.TrimSpace(command))
	normalizedExe := strings.ToLower(exe)
	return normalizedExe != "" &&
		strings.Contains(normalizedCommand, normalizedExe) &&
		strings.Contains(normalizedCommand, StartupFlag)
}
