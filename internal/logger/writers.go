package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = time.RFC3339

// WriterStrategy defines interface for creating log writers
type WriterStrategy interface {
	CreateWriter(output io.Writer) io.Writer
}

// JSONWriterStrategy writes zerolog's native JSON lines
type JSONWriterStrategy struct{}

func (jws *JSONWriterStrategy) CreateWriter(output io.Writer) io.Writer {
	return output
}

// ConsoleWriterStrategy creates human-readable, optionally colored writers
type ConsoleWriterStrategy struct {
	NoColor bool
}

func (cws *ConsoleWriterStrategy) CreateWriter(output io.Writer) io.Writer {
	return newConsoleWriter(output, cws.NoColor)
}

// TextWriterStrategy is the console layout without color
type TextWriterStrategy struct{}

func (tws *TextWriterStrategy) CreateWriter(output io.Writer) io.Writer {
	return newConsoleWriter(output, true)
}

func newConsoleWriter(output io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: consoleTimeFormat,
		NoColor:    noColor,
	}
}
