package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	guard  sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = build(level, "console")
)

// Configure replaces the process logger with one at the given level and encoding ("console" or
// "json").
func Configure(l zapcore.Level, encoding string) {
	guard.Lock()
	defer guard.Unlock()

	level.SetLevel(l)
	logger = build(level, encoding)
}

// SetDebug lowers the level to debug, or restores info.
func SetDebug(debug bool) {
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}

// Logger returns the structured logger.
func Logger() *zap.Logger {
	guard.RLock()
	defer guard.RUnlock()

	return logger
}

// Sync flushes buffered log entries.
func Sync() {
	Logger().Sync()
}

func Debugf(format string, args ...any) {
	Logger().Sugar().Debugf(format, args...)
}

func Infof(format string, args ...any) {
	Logger().Sugar().Infof(format, args...)
}

func Warnf(format string, args ...any) {
	Logger().Sugar().Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	Logger().Sugar().Errorf(format, args...)
}

func build(l zap.AtomicLevel, encoding string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = l
	config.Encoding = encoding
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.Sampling = nil

	if encoding == "console" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.DisableCaller = true
	}

	if z, err := config.Build(); err == nil {
		return z
	}

	return zap.NewNop()
}
