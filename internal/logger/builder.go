package logger

import (
	"io"
	stdlog "log" // Standard Go log package, aliased to avoid conflict with zerolog field

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/aleister1102/snapgallery/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	settings Settings
	factory  *WriterFactory
	// levelErr is reported through the built logger.
	levelErr error
}

// NewLoggerBuilder creates a builder with console output at info level.
func NewLoggerBuilder() *LoggerBuilder {
	settings, _ := SettingsFrom(config.LogConfig{})
	return &LoggerBuilder{
		settings: settings,
		factory:  NewWriterFactory(),
	}
}

// WithConfig applies the application log config.
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	console := lb.settings.Console
	lb.settings, lb.levelErr = SettingsFrom(cfg)
	lb.settings.Console = console
	return lb
}

// WithConsoleOutput sends console output to w instead of stderr
func (lb *LoggerBuilder) WithConsoleOutput(w io.Writer) *LoggerBuilder {
	lb.settings.Console = w
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (*Logger, error) {
	writers := []io.Writer{lb.factory.CreateConsoleWriter(lb.settings.Format, lb.settings.Console)}
	var closers []io.Closer

	if lb.settings.File != "" {
		fileWriter, closer, err := lb.factory.CreateFileWriter(lb.settings)
		if err != nil {
			return nil, common.WrapError(err, "failed to create log writers")
		}
		writers = append(writers, fileWriter)
		closers = append(closers, closer)
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lb.settings.Level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(lb.settings.Level)
	stdlog.SetOutput(zl)
	stdlog.SetFlags(0)

	if lb.levelErr != nil {
		zl.Warn().Err(lb.levelErr).Msg("Falling back to info log level")
	}

	return &Logger{
		zerolog:  zl,
		settings: lb.settings,
		closers:  closers,
	}, nil
}
