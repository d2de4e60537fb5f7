// Package logger provides structured logging using zerolog.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// maxDocumentLog caps how much of a snapshot document is written at debug level.
const maxDocumentLog = 1000

// Init initializes the global logger from LOG_LEVEL, LOG_FILE and DEV.
// Logs go to stderr so scores printed on stdout stay machine-readable.
func Init() {
	initTo(os.Stderr)
}

func initTo(out io.Writer) {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	zerolog.CallerMarshalFunc = formatCaller

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: milliTimeFormat,
		NoColor:    !isDevelopmentMode(),
	}

	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		f, ferr := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if ferr == nil {
			output = io.MultiWriter(output, f)
		}
	}

	log.Logger = log.Output(output).With().Caller().Logger()

	log.Debug().
		Str("level", level.String()).
		Bool("dev", isDevelopmentMode()).
		Msg("Logger initialized")
}

const callerWidth = 30

// formatCaller renders file:line padded or cut to a fixed width.
func formatCaller(_ uintptr, file string, line int) string {
	path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
	if len(path) >= callerWidth {
		return path[len(path)-callerWidth:]
	}
	return path + strings.Repeat(" ", callerWidth-len(path))
}

func isDevelopmentMode() bool {
	return os.Getenv("DEV") == "true" ||
		os.Getenv("DEV_MODE") == "true" ||
		os.Getenv("DEVELOPMENT") == "true"
}

// SetDebug lowers the global level to debug regardless of LOG_LEVEL.
func SetDebug() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// Get returns the global logger instance.
func Get() zerolog.Logger {
	return log.Logger
}

// Component returns the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

// LogDocument logs a raw snapshot document at debug level, truncating if too long.
func LogDocument(logger zerolog.Logger, source string, body []byte) {
	if len(body) == 0 {
		return
	}
	if len(body) > maxDocumentLog {
		logger.Debug().Str("source", source).Int("bytes", len(body)).
			Str("document", string(body[:maxDocumentLog])).Bool("truncated", true).Msg("Snapshot document")
	} else {
		logger.Debug().Str("source", source).Int("bytes", len(body)).
			Str("document", string(body)).Msg("Snapshot document")
	}
}
