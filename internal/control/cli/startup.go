package cli

import (
	"fmt"

	"github.com/ja-he/winlux/internal/model"
)

// StartupCommand contains flags for the `startup` command line command, for
// `go-flags` to parse command line args into.
type StartupCommand struct {
	Args struct {
		Action string `positional-arg-name:"status|on|off"`
	} `positional-args:"yes"`
}

// Execute executes the startup command.
// (This gets called by `go-flags` when `startup` is provided on the command
// line)
func (command *StartupCommand) Execute(args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	var state model.StartupState
	switch command.Args.Action {
	case "", "status":
		state, err = app.GetStartupState()
	case "on":
		state, err = app.SetStartupEnabled(true)
	case "off":
		state, err = app.SetStartupEnabled(false)
	default:
		return fmt.Errorf("unknown action '%s', expected one of status, on or off", command.Args.Action)
	}
	if err != nil {
		return err
	}
	return printYAML(state)
}
