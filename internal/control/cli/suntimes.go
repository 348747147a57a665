package cli

import (
	"fmt"

	"github.com/ja-he/winlux/internal/model"
)

// SunTimesCommand contains flags for the `suntimes` command line command, for
// `go-flags` to parse command line args into.
type SunTimesCommand struct {
	Address string `short:"a" long:"address" description:"look up this address instead of using the saved location" value-name:"<address>"`
	Date    string `short:"d" long:"date" description:"the date to compute for (default today)" value-name:"<yyyy-mm-dd>"`
	JSON    bool   `short:"j" long:"json" description:"print JSON"`
}

// Execute executes the suntimes command.
// (This gets called by `go-flags` when `suntimes` is provided on the command
// line)
func (command *SunTimesCommand) Execute(args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := interruptible()
	defer stop()

	var result model.SunTimes
	if command.Address != "" {
		result, err = app.GetSunTimesByAddress(ctx, command.Address, command.Date)
	} else {
		result, err = app.GetSunTimesBySavedLocation(command.Date)
	}
	if err != nil {
		return err
	}

	if command.JSON {
		return printJSON(result)
	}
	printSunTimes(result)
	return nil
}

func printSunTimes(s model.SunTimes) {
	daylight := "night"
	if s.IsDaylight {
		daylight = "daylight"
	}
	fmt.Fprintf(out, "%s (%.4f, %.4f) on %s\n", s.DisplayName, s.Latitude, s.Longitude, s.Date)
	fmt.Fprintf(out, "  sunrise  %s  (%s UTC)\n", s.SunriseLocal, s.SunriseUTC)
	fmt.Fprintf(out, "  sunset   %s  (%s UTC)\n", s.SunsetLocal, s.SunsetUTC)
	fmt.Fprintf(out, "  day      %s\n", s.DayLengthHMS)
	fmt.Fprintf(out, "  now      %s, %s theme recommended\n", daylight, s.RecommendedTheme)
	fmt.Fprintf(out, "  next     %s at %s (in %ds)\n", s.NextTransition, s.NextTransitionLocal, s.SecondsUntilNextTransition)
}
