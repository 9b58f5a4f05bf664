package lib

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const LogTimeFormat = "2006-01-02T15:04:05.000"

// LogOptions selects where the global logger writes and the minimum level it emits.
// An empty FilePath logs to the console only.
type LogOptions struct {
	Level    string
	Debug    bool
	FilePath string
}

// ParseLogLevel maps a configured level name to a zerolog level, falling back to info
func ParseLogLevel(name string, debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	if out == nil {
		out = os.Stderr
		if runtime.GOOS == "windows" {
			out = colorable.NewColorableStderr()
		}
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: LogTimeFormat}
}

// ConfigureLogging replaces the global logger. The console receives human readable lines
// and, when a file path is set, the file receives JSON lines. A file that cannot be opened
// leaves the console logger in place and is reported as an error.
func ConfigureLogging(options LogOptions, console io.Writer) error {
	zerolog.SetGlobalLevel(ParseLogLevel(options.Level, options.Debug))
	writer := consoleWriter(console)
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
	if options.FilePath == "" {
		return nil
	}

	logFile, err := os.OpenFile(options.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("could not open log file %s: %w", options.FilePath, err)
	}
	log.Logger = zerolog.New(io.MultiWriter(logFile, writer)).With().Timestamp().Logger()
	return nil
}
