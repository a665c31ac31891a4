// ABOUTME: Zap-backed implementation of interfaces.Logger
// ABOUTME: Production JSON encoding with fields passed through as zap.Any

package zaplog

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger adapts a zap.Logger to interfaces.Logger
type Logger struct {
	log *zap.Logger
}

// New builds a production zap logger at the given level
func New(level string) (*Logger, error) {
	cfg := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{log: log}, nil
}

// Wrap adapts an existing zap logger
func Wrap(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, toZapFields(fields)...)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, toZapFields(fields)...)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, toZapFields(fields)...)
}

func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.Error(msg, toZapFields(fields)...)
}

// Close flushes buffered entries
func (l *Logger) Close() error {
	_ = l.log.Sync()
	return nil
}

// toZapFields converts in key order so output is stable
func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(fields))
	for _, k := range keys {
		if err, ok := fields[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}
