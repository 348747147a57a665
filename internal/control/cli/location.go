package cli

import (
	"fmt"
	"strings"
)

// LocationCommand groups the `location` subcommands.
type LocationCommand struct {
	SetCommand  LocationSetCommand  `command:"set" description:"Geocode an address and save it as the location"`
	ShowCommand LocationShowCommand `command:"show" description:"Show the saved location and auto-theme flag"`
}

// LocationSetCommand contains flags for `location set`.
type LocationSetCommand struct {
	Args struct {
		Address []string `positional-arg-name:"address" required:"1"`
	} `positional-args:"yes"`
}

// Execute executes `location set`.
func (command *LocationSetCommand) Execute(args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := interruptible()
	defer stop()

	settings, err := app.SaveSolarLocation(ctx, strings.Join(command.Args.Address, " "))
	if err != nil {
		return err
	}
	return printYAML(settings)
}

// LocationShowCommand contains flags for `location show`.
type LocationShowCommand struct{}

// Execute executes `location show`.
func (command *LocationShowCommand) Execute(args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	settings, err := app.GetSolarSettings()
	if err != nil {
		return err
	}
	if settings.Location == nil {
		fmt.Fprintln(out, "no location saved")
	}
	return printYAML(settings)
}
