// Package zklog provides the package-wide structured logger, in the style
// of gnark's own logger package: a single zerolog.Logger guarded behind an
// accessor, defaulting to console output, replaceable by the host
// application and disable-able for silent embedding (grounded on
// okx-gnark/test/assert_checkcircuit.go's "log := logger.Logger()" idiom and
// the zerolog usage in the vocdoni EdDSA gadget).
package zklog

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
)

// Logger returns the current package-wide logger.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &log
}

// SetOutput redirects subsequent log records to w, keeping the console
// writer's timestamp field.
func SetOutput(w zerolog.ConsoleWriter) {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.New(w).With().Timestamp().Logger()
}

// SetLevel adjusts the minimum severity that is actually emitted.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = log.Level(level)
}

// Disable silences all log output, for embedding this module in a host
// that manages its own logging.
func Disable() {
	SetLevel(zerolog.Disabled)
}
