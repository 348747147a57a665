// Package cli provides the command-line interface for winlux.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/winlux/internal/config"
	"github.com/ja-he/winlux/internal/control"
)

type CommandLineOpts struct {
	Version bool `short:"v" long:"version" description:"Show the program version"`

	RunCommand      RunCommand      `command:"run" description:"Run the auto-theme worker until interrupted"`
	ThemeCommand    ThemeCommand    `command:"theme" description:"Show or set the OS theme"`
	GeocodeCommand  GeocodeCommand  `command:"geocode" description:"Look up the coordinates of an address"`
	SunTimesCommand SunTimesCommand `command:"suntimes" description:"Show sunrise and sunset for an address or the saved location"`
	LocationCommand LocationCommand `command:"location" description:"Manage the saved location"`
	AutoCommand     AutoCommand     `command:"auto" description:"Show or switch auto-theme"`
	StartupCommand  StartupCommand  `command:"startup" description:"Show or switch running at login"`
	VersionCommand  VersionCommand  `command:"version" subcommands-optional:"true"`
}

var Opts CommandLineOpts

// out is where command results are written.
var out io.Writer = os.Stdout

// newApp sets up the App per the environment: ${WINLUX_HOME} (or the default
// home directory) and the config file in it.
func newApp() (*control.App, error) {
	var envData control.EnvData

	envData.BaseDirPath = config.HomeDir()
	envData.Version = version

	configData, err := config.Load(envData.BaseDirPath)
	if err != nil {
		return nil, fmt.Errorf("can't load config data (%w)", err)
	}
	envData.Config = configData

	return control.NewAppFromEnv(envData)
}

// interruptible returns a context that is cancelled on SIGINT or SIGTERM.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printYAML(v any) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

func printJSON(v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
