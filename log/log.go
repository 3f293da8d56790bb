package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a console logger tagged with the given component name.
func NewLogger(component string) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).With().Timestamp().Str("component", component).Logger()
}
