package observability

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Use an atomic pointer for safe concurrent access.
	globalLogger atomic.Pointer[zap.Logger]
	once         sync.Once
)

// InitializeLogger sets up the global zap logger. Development mode gets a
// console encoder, everything else logs JSON.
func InitializeLogger(level, environment string) {
	once.Do(func() {
		lvl := zap.NewAtomicLevel()
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl.SetLevel(zap.InfoLevel)
		}

		var cfg zap.Config
		if environment == "development" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			cfg = zap.NewProductionConfig()
		}
		cfg.Level = lvl

		logger, err := cfg.Build(zap.AddCaller())
		if err != nil {
			logger = zap.NewNop()
		}
		globalLogger.Store(logger)
	})
}

// GetLogger returns the global logger, initializing a default one if
// InitializeLogger was never called (useful in tests).
func GetLogger() *zap.Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	InitializeLogger("info", "production")
	return globalLogger.Load()
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if l := globalLogger.Load(); l != nil {
		_ = l.Sync()
	}
}
