// Package logging configures the process-wide slog logger from command
// line flags.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/kortschak/utter"
	"github.com/urfave/cli/v2"
)

var Flags = []cli.Flag{
	&cli.BoolFlag{
		Name:        "verbose",
		Aliases:     []string{"v"},
		Usage:       "Set logging level more verbose to include info level logs",
		Destination: &Opts.Verbose,
	},
	&cli.BoolFlag{
		Name:        "debug",
		Aliases:     []string{"vv"},
		Usage:       "Set logging level more verbose to include debug level logs and render traces",
		Destination: &Opts.Debug,
	},
	&cli.BoolFlag{
		Name:        "log-json",
		Usage:       "Emit logs as JSON",
		Destination: &Opts.JSON,
	},
}

var Opts struct {
	Verbose bool
	Debug   bool
	JSON    bool
}

// Level returns the level selected by the flags.
func Level() slog.Level {
	switch {
	case Opts.Debug:
		return slog.LevelDebug
	case Opts.Verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// Setup installs the default logger, writing to stderr.
func Setup() {
	slog.SetDefault(New(os.Stderr))
}

// New creates a logger writing to w at the flag-selected level.
func New(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: Level()}
	if Opts.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

var (
	Default = slog.Default
	Debug   = slog.Debug
	Info    = slog.Info
	Warn    = slog.Warn
	Error   = slog.Error
	With    = slog.With
)

// Dump logs a readable rendering of v at debug level.
func Dump(msg string, v any) {
	switch vt := v.(type) {
	case string:
		slog.Debug(msg, "value", vt)
	default:
		slog.Debug(msg, "value", utter.Sdump(v))
	}
}
