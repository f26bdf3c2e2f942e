// Package logger builds the application's zap logger and adapts it for gorm.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap logger for the given level and environment.
// Production gets JSON output, everything else a console encoder.
func New(level string, production bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
}

// Must is like New but falls back to a no-op logger when the level is invalid
func Must(level string, production bool) *zap.Logger {
	l, err := New(level, production)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
