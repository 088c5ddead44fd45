package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging points the global logger at logFile. Without a file logs are dropped,
// since the TUI owns the terminal. The returned func closes the file.
func SetupLogging(logFile string, pretty bool, debug bool) (func(), error) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if logFile == "" {
		log.Logger = zerolog.New(io.Discard).Level(level)
		return func() {}, nil
	}

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file %s: %w", logFile, err)
	}

	var w io.Writer = file
	if pretty {
		w = zerolog.ConsoleWriter{Out: file, NoColor: true}
	}
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Caller().Logger()
	log.Debug().Str("file", logFile).Msg("logger set up")

	return func() { file.Close() }, nil
}
