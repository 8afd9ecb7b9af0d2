// Package logging configures the zerolog logger shared by the run.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the run's logger. Verbosity maps to the level (0 warn,
// 1 info, 2+ debug). With logFile set, output goes to that file instead of
// the console. The returned func closes the log file, if any.
func Setup(verbosity int, logFile string) (zerolog.Logger, func(), error) {
	var level zerolog.Level
	switch verbosity {
	case 0:
		level = zerolog.WarnLevel
	case 1:
		level = zerolog.InfoLevel
	default:
		level = zerolog.DebugLevel
	}

	var w io.Writer
	closer := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	} else {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	log := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return log, closer, nil
}
