package logger

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// WriterFactory creates writers based on format
type WriterFactory struct {
	strategies map[Format]WriterStrategy
}

// NewWriterFactory creates a new writer factory
func NewWriterFactory() *WriterFactory {
	return &WriterFactory{
		strategies: map[Format]WriterStrategy{
			FormatJSON:    &JSONWriterStrategy{},
			FormatConsole: &ConsoleWriterStrategy{NoColor: false},
			FormatText:    &TextWriterStrategy{},
		},
	}
}

// CreateConsoleWriter creates a console writer on out
func (wf *WriterFactory) CreateConsoleWriter(format Format, out io.Writer) io.Writer {
	if out == nil {
		out = os.Stderr
	}
	strategy, exists := wf.strategies[format]
	if !exists {
		strategy = &ConsoleWriterStrategy{NoColor: false}
	}
	return strategy.CreateWriter(out)
}

// CreateFileWriter creates a rotating file writer. The returned closer
// releases the log file.
func (wf *WriterFactory) CreateFileWriter(s Settings) (io.Writer, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(s.File), 0755); err != nil {
		return nil, nil, err
	}

	lumberjackLogger := &lumberjack.Logger{
		Filename:   s.File,
		MaxSize:    s.MaxSizeMB,
		LocalTime:  true,
		MaxBackups: s.MaxBackups,
	}

	// Files never get color codes.
	if s.Format == FormatConsole {
		return (&ConsoleWriterStrategy{NoColor: true}).CreateWriter(lumberjackLogger), lumberjackLogger, nil
	}

	strategy, exists := wf.strategies[s.Format]
	if !exists {
		strategy = &JSONWriterStrategy{}
	}
	return strategy.CreateWriter(lumberjackLogger), lumberjackLogger, nil
}
