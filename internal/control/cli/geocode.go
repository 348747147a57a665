package cli

import (
	"strings"
)

// GeocodeCommand contains flags for the `geocode` command line command, for
// `go-flags` to parse command line args into.
type GeocodeCommand struct {
	JSON bool `short:"j" long:"json" description:"print JSON instead of YAML"`
	Args struct {
		Address []string `positional-arg-name:"address" required:"1"`
	} `positional-args:"yes"`
}

// Execute executes the geocode command.
// (This gets called by `go-flags` when `geocode` is provided on the command line)
func (command *GeocodeCommand) Execute(args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := interruptible()
	defer stop()

	result, err := app.Geocode(ctx, strings.Join(command.Args.Address, " "))
	if err != nil {
		return err
	}
	if command.JSON {
		return printJSON(result)
	}
	return printYAML(result)
}
