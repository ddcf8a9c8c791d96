package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ersonp/tag-core/internal/infrastructure/config"
)

// newLogger builds the process logger. --debug wins over the config file.
func newLogger(cfg config.LogConfig, debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zcfg.Build()
}

// syncLogger flushes buffered entries, ignoring errors from unsyncable
// outputs such as terminals.
func syncLogger(logger *zap.Logger) {
	_ = logger.Sync()
}
