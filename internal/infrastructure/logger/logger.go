package logger

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
)

// GetLogger returns the process-wide logger. Until New runs it is a console
// logger at info level, which covers early startup (config parsing, wire
// assembly) before LOG_LEVEL and LOG_FORMAT are known.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		globalLogger = zerolog.New(consoleWriter).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	return globalLogger
}

// New builds a logger from the configured level and format ("json" or
// "console") and promotes it to the process-wide instance.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var writer zerolog.Logger
	switch strings.ToLower(format) {
	case "json":
		writer = zerolog.New(os.Stdout).With().Timestamp().Logger()
	case "console":
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		writer = zerolog.New(consoleWriter).With().Timestamp().Logger()
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}

	zerolog.SetGlobalLevel(lvl)

	// Later GetLogger calls must see the configured logger, not the
	// startup default.
	globalLogger = writer.Level(lvl)

	return globalLogger, nil
}
