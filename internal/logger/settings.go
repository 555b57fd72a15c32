package logger

import (
	"io"
	"strings"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/aleister1102/snapgallery/internal/config"
	"github.com/rs/zerolog"
)

// Format selects how log lines are laid out.
type Format int

const (
	FormatConsole Format = iota
	FormatJSON
	FormatText
)

var formatNames = map[Format]string{
	FormatConsole: "console",
	FormatJSON:    "json",
	FormatText:    "text",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return formatNames[FormatConsole]
}

// ParseFormat maps a config string to a Format; unknown names are console.
func ParseFormat(s string) Format {
	s = strings.ToLower(s)
	for f, name := range formatNames {
		if name == s {
			return f
		}
	}
	return FormatConsole
}

// ParseLevel parses a zerolog level name. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel, common.WrapError(err, "invalid log level")
	}
	return level, nil
}

// Settings is the resolved logger setup. Console output is always on; a
// non-empty File adds a rotating file sink.
type Settings struct {
	Level      zerolog.Level
	Format     Format
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Console defaults to stderr.
	Console io.Writer
}

// SettingsFrom resolves cfg. An unknown level yields info plus the parse error.
func SettingsFrom(cfg config.LogConfig) (Settings, error) {
	level, err := ParseLevel(cfg.LogLevel)
	s := Settings{
		Level:      level,
		Format:     ParseFormat(cfg.LogFormat),
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.MaxLogSizeMB,
		MaxBackups: cfg.MaxLogBackups,
	}
	if s.MaxSizeMB <= 0 {
		s.MaxSizeMB = config.DefaultMaxLogSizeMB
	}
	if s.MaxBackups <= 0 {
		s.MaxBackups = config.DefaultMaxLogBackups
	}
	return s, err
}
