// Package logging wraps zap the way the teacher's internal/logging does:
// a thin struct over *zap.Logger configured from a text level, used for
// internal diagnostic traces of engine operations. It never substitutes
// for the literal user-channel strings the CLI prints directly.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.Logger
}

// New builds a Logger at the given text level ("debug", "info", "warn",
// "error"). An empty level defaults to "warn" so a plain CLI run stays
// quiet on stdout/stderr.
func New(level string) (*Logger, error) {
	if level == "" {
		level = "warn"
	}

	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.CallerKey = ""

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger}, nil
}

// Noop returns a Logger that discards everything, for tests and library
// callers that don't want console noise.
func Noop() *Logger {
	return &Logger{zap.NewNop()}
}
