// Package sheetzerolog bridges zerolog into the sheet logging contract.
package sheetzerolog

import (
	"github.com/rs/zerolog"
)

// Logger adapts a zerolog.Logger to the sheet.Logger interface.
type Logger struct {
	log zerolog.Logger
}

// New wraps a zerolog logger.
func New(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
