// Package logging wraps zap for the CLI. Logger satisfies the small
// Debugf/Infof/Warnf/Errorf interfaces the engine packages accept.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a zap sugared logger with printf-style and structured helpers.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// New builds a logger for mode ("development" or "production") at level
// ("debug", "info", "warn", "error"). An empty level means info.
func New(mode, level string) (*Logger, error) {
	cfg, err := modeConfig(mode)
	if err != nil {
		return nil, err
	}
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// Validate reports whether New would accept mode and level.
func Validate(mode, level string) error {
	if _, err := modeConfig(mode); err != nil {
		return err
	}
	_, err := parseLevel(level)
	return err
}

func modeConfig(mode string) (zap.Config, error) {
	switch strings.ToLower(mode) {
	case "prod", "production":
		return zap.NewProductionConfig(), nil
	case "", "dev", "development":
		return zap.NewDevelopmentConfig(), nil
	}
	return zap.Config{}, fmt.Errorf("unknown log mode %q", mode)
}

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level: %w", err)
	}
	return lvl, nil
}

// NewWithCore wraps an existing core, mainly for tests.
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

// Debug logs msg at debug level with structured key-value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
}

// Info logs msg at info level with structured key-value pairs.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
}

// Warn logs msg at warn level with structured key-value pairs.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
}

// Debugf logs a formatted message at debug level.
func (l *Logger) Debugf(format string, args ...any) { l.SugaredLogger.Debugf(format, args...) }

// Infof logs a formatted message at info level.
func (l *Logger) Infof(format string, args ...any) { l.SugaredLogger.Infof(format, args...) }

// Warnf logs a formatted message at warn level.
func (l *Logger) Warnf(format string, args ...any) { l.SugaredLogger.Warnf(format, args...) }

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...any) { l.SugaredLogger.Errorf(format, args...) }

// With returns a child logger that adds keysAndValues to every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(keysAndValues...)}
}
