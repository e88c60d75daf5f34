package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a structured logger writing to w with the given prefix.
// The level is read from LOG_LEVEL (debug, info, warn, error); default info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
