package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/winlux/internal/events"
)

// RunCommand contains flags for the `run` command line command, for
// `go-flags` to parse command line args into.
type RunCommand struct {
	Startup       bool   `long:"startup" description:"mark this run as started at login"`
	LogOutputFile string `short:"l" long:"log-output-file" description:"specify a log output file (in addition to stderr)"`
	LogPretty     bool   `short:"p" long:"log-pretty" description:"prettify logs to file"`
}

// Execute executes the run command.
// (This gets called by `go-flags` when `run` is provided on the command line)
func (command *RunCommand) Execute(args []string) error {
	stderrLogger := zerolog.ConsoleWriter{Out: os.Stderr}
	if command.LogOutputFile != "" {
		var fileLogger io.Writer
		file, err := os.OpenFile(command.LogOutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatal().Err(err).Str("file", command.LogOutputFile).Msg("could not open file for logging")
		}
		defer file.Close()
		if command.LogPretty {
			fileLogger = zerolog.ConsoleWriter{Out: file, NoColor: true}
		} else {
			fileLogger = file
		}
		log.Logger = zerolog.New(zerolog.MultiLevelWriter(stderrLogger, fileLogger)).With().Timestamp().Logger()
	}

	app, err := newApp()
	if err != nil {
		return err
	}

	app.Bus().SubscribeAll(func(e events.Event) {
		log.Info().Str("event", string(e.Name)).Interface("payload", e.Payload).Msg("state changed")
	})

	ctx, stop := interruptible()
	defer stop()

	log.Info().Str("version", version).Bool("startup", command.Startup).Msg("winlux running")

	if err := app.ApplyAutoTheme(ctx); err != nil {
		log.Warn().Err(err).Msg("could not apply auto theme on start")
	}
	app.StartWorker(ctx)

	<-ctx.Done()
	log.Info().Msg("winlux stopping")
	return nil
}
