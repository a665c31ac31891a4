// ABOUTME: Logger factory selecting the logrus or zap backend from configuration
// ABOUTME: Returns the logger together with a close function that flushes it

package logger

import (
	"fmt"

	"podfeed-api/core/interfaces"
	"podfeed-api/infrastructure/logger/logruslog"
	"podfeed-api/infrastructure/logger/zaplog"
	"podfeed-api/pkg/config"
)

// New builds the configured logger
func New(cfg config.LogConfig) (interfaces.Logger, func() error, error) {
	switch cfg.Backend {
	case "", "logrus":
		l := logruslog.New(logruslog.Options{Level: cfg.Level, Format: cfg.Format, File: cfg.File})
		return l, l.Close, nil
	case "zap":
		l, err := zaplog.New(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("build zap logger: %w", err)
		}
		return l, l.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown log backend %q", cfg.Backend)
	}
}
