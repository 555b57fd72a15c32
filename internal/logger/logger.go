package logger

import (
	"io"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/aleister1102/snapgallery/internal/config"
	"github.com/rs/zerolog"
)

// Logger represents the main logger with configuration
type Logger struct {
	zerolog  zerolog.Logger
	settings Settings
	closers  []io.Closer
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// Config returns the effective settings
func (l *Logger) Config() Settings {
	return l.settings
}

// Close releases log files.
func (l *Logger) Close() error {
	errs := make([]error, 0, len(l.closers))
	for _, c := range l.closers {
		errs = append(errs, c.Close())
	}
	return common.CombineErrors(errs)
}

// New creates a zerolog.Logger from the application log config
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().WithConfig(cfg).Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}
