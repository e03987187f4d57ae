package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a global logger instance
var Logger *zap.Logger

// Options selects the encoder and verbosity of the global logger
type Options struct {
	Env   string // "production" selects JSON output
	Level string // overrides the env default when set: debug, info, warn, error
}

// Init builds the global logger. Production writes JSON at info, every other
// environment writes colored console lines at debug. A non-empty Level wins
// over either default.
func Init(opts Options) error {
	level, err := resolveLevel(opts)
	if err != nil {
		return err
	}

	config := zap.NewDevelopmentConfig()
	if opts.Env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := config.Build(zap.Fields(
		zap.String("service", "reddit-graph"),
		zap.String("env", opts.Env),
	))
	if err != nil {
		return err
	}
	Logger = built

	return nil
}

func resolveLevel(opts Options) (zapcore.Level, error) {
	if opts.Level == "" {
		if opts.Env == "production" {
			return zapcore.InfoLevel, nil
		}
		return zapcore.DebugLevel, nil
	}
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return level, fmt.Errorf("invalid LOG_LEVEL %q: %w", opts.Level, err)
	}
	return level, nil
}

// Sync flushes any buffered log entries
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Get returns the global logger instance
func Get() *zap.Logger {
	if Logger == nil {
		// Fallback to a basic logger if not initialized
		logger, _ := zap.NewDevelopment()
		return logger
	}
	return Logger
}

// Named returns the global logger scoped to one component (graph, ingest, http)
func Named(component string) *zap.Logger {
	return Get().Named(component)
}
