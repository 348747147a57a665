package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file within the winlux home directory.
const FileName = "config.yaml"

// HomeEnvVar names the environment variable overriding the home directory.
const HomeEnvVar = "WINLUX_HOME"

// Config is the configuration data as present in a config file at
// '${WINLUX_HOME}/config.yaml'.
type Config struct {
	Geocoder  Geocoder  `yaml:"geocoder"`
	AutoTheme AutoTheme `yaml:"auto-theme"`
	Store     Store     `yaml:"store"`
}

// Geocoder configures the address lookup service.
type Geocoder struct {
	Endpoint string `yaml:"endpoint"`
	// UserAgent is sent with every request. When empty, a default naming the
	// program version is used.
	UserAgent   string   `yaml:"user-agent"`
	MinInterval Duration `yaml:"min-interval"`
}

// AutoTheme configures the background worker's waits.
type AutoTheme struct {
	IdleInterval       Duration `yaml:"idle-interval"`
	ErrorRetryInterval Duration `yaml:"error-retry-interval"`
	MinRecheckInterval Duration `yaml:"min-recheck-interval"`
}

// Store selects where state is persisted.
type Store struct {
	// Backend is "registry" or "files".
	Backend string `yaml:"backend"`
}

// Duration is a time.Duration that reads from YAML in time.ParseDuration
// format (e.g. "10m", "1s").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration '%s' (%w)", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration '%s'", s)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ParseConfigAugmentDefaults parses the configuration specified in
// YAML-formatted data and uses it to augment the default configuration.
func ParseConfigAugmentDefaults(yamlData []byte) (Config, error) {
	defaultConfig := Default()

	parsedConfig := Config{}
	err := yaml.Unmarshal(yamlData, &parsedConfig)
	if err != nil {
		return defaultConfig, fmt.Errorf("error unmarshaling yaml (%s)", err)
	}

	result := defaultConfig.augmentWith(parsedConfig)

	switch result.Store.Backend {
	case "registry", "files":
	default:
		return defaultConfig, fmt.Errorf("unknown store backend '%s'", result.Store.Backend)
	}

	return result, nil
}

// Load reads the config file in the given home directory. A missing file is
// not an error; the defaults are returned.
func Load(home string) (Config, error) {
	yamlData, err := os.ReadFile(filepath.Join(home, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("can't read config file (%w)", err)
	}
	return ParseConfigAugmentDefaults(yamlData)
}

// HomeDir returns the winlux home directory, which holds the config file and
// the files store. It is ${WINLUX_HOME} if set, otherwise a per-user default.
func HomeDir() string {
	winluxHome := os.Getenv(HomeEnvVar)
	if winluxHome != "" {
		return strings.TrimRight(winluxHome, "/\\")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "WinLux")
		}
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "winlux")
}

func (base Config) augmentWith(augment Config) Config {
	result := base

	if augment.Geocoder.Endpoint != "" {
		result.Geocoder.Endpoint = augment.Geocoder.Endpoint
	}
	if augment.Geocoder.UserAgent != "" {
		result.Geocoder.UserAgent = augment.Geocoder.UserAgent
	}
	result.Geocoder.MinInterval.overwriteIfDefined(augment.Geocoder.MinInterval)

	result.AutoTheme.IdleInterval.overwriteIfDefined(augment.AutoTheme.IdleInterval)
	result.AutoTheme.ErrorRetryInterval.overwriteIfDefined(augment.AutoTheme.ErrorRetryInterval)
	result.AutoTheme.MinRecheckInterval.overwriteIfDefined(augment.AutoTheme.MinRecheckInterval)

	if augment.Store.Backend != "" {
		result.Store.Backend = augment.Store.Backend
	}

	return result
}

func (d *Duration) overwriteIfDefined(augment Duration) {
	if augment > 0 {
		*d = augment
	}
}
