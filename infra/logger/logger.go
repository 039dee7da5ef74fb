package logger

import corelogger "github.com/kilianp07/creator/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger is re-exported for callers that only import infra/logger.
type NopLogger = corelogger.NopLogger

// Config selects the level and output format of loggers built by NewWithConfig.
type Config struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string `json:"level"`
	// Format is json or console. Empty means json unless APP_ENV=dev.
	Format string `json:"format"`
}

// New returns a Logger for the given component. The environment is detected via
// the APP_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
