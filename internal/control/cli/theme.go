package cli

import (
	"fmt"

	"github.com/ja-he/winlux/internal/model"
)

// ThemeCommand contains flags for the `theme` command line command, for
// `go-flags` to parse command line args into.
type ThemeCommand struct {
	Args struct {
		Mode string `positional-arg-name:"get|light|dark" description:"show the theme (default) or set both apps and system to light or dark"`
	} `positional-args:"yes"`
}

// Execute executes the theme command.
// (This gets called by `go-flags` when `theme` is provided on the command line)
func (command *ThemeCommand) Execute(args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	switch command.Args.Mode {
	case "", "get":
		state, err := app.GetThemeState()
		if err != nil {
			return err
		}
		return printYAML(state)
	default:
		mode, err := model.ParseThemeMode(command.Args.Mode)
		if err != nil {
			return fmt.Errorf("expected one of get, light or dark (%w)", err)
		}
		state, err := app.SetThemeState(model.UniformThemeState(mode))
		if err != nil {
			return err
		}
		return printYAML(state)
	}
}
