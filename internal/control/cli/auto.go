package cli

import (
	"fmt"

	"github.com/ja-he/winlux/internal/model"
)

// AutoCommand contains flags for the `auto` command line command, for
// `go-flags` to parse command line args into.
type AutoCommand struct {
	Args struct {
		Action string `positional-arg-name:"status|on|off|toggle"`
	} `positional-args:"yes"`
}

// Execute executes the auto command.
// (This gets called by `go-flags` when `auto` is provided on the command line)
func (command *AutoCommand) Execute(args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := interruptible()
	defer stop()

	var settings model.SolarSettings
	switch command.Args.Action {
	case "", "status":
		settings, err = app.GetSolarSettings()
	case "on":
		settings, err = app.SetAutoThemeEnabled(ctx, true)
	case "off":
		settings, err = app.SetAutoThemeEnabled(ctx, false)
	case "toggle":
		settings, err = app.ToggleAutoTheme(ctx)
	default:
		return fmt.Errorf("unknown action '%s', expected one of status, on, off or toggle", command.Args.Action)
	}
	if err != nil {
		return err
	}
	return printYAML(settings)
}
