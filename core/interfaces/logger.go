package interfaces

// Logger defines the interface for logging throughout the application.
// The logrus and zap backends in infrastructure/logger both satisfy it.
//
// Example usage:
//
//	logger.Warn("Dropped value recipients", map[string]interface{}{
//		"dropped": 2,
//		"kept":    3,
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	// Used for soft failures such as a proxy timing out or enrichment falling back.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. Handy as a default when no logger is injected.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{}) {}
func (NopLogger) Warn(string, map[string]interface{}) {}
func (NopLogger) Error(string, map[string]interface{}) {}
