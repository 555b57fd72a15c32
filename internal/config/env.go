package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides are the settings that can be replaced from the environment.
type envOverrides struct {
	ListenAddr  string `env:"SNAPGALLERY_LISTEN_ADDR"`
	SnapshotDir string `env:"SNAPGALLERY_SNAPSHOT_DIR"`
	LogLevel    string `env:"SNAPGALLERY_LOG_LEVEL"`
	SessionDB   string `env:"SNAPGALLERY_SESSION_DB"`
}

// ApplyEnvOverrides copies every set SNAPGALLERY_* variable over cfg.
func ApplyEnvOverrides(cfg *GlobalConfig) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.ListenAddr != "" {
		cfg.ServerConfig.ListenAddr = o.ListenAddr
	}
	if o.SnapshotDir != "" {
		cfg.GalleryConfig.SnapshotDir = o.SnapshotDir
	}
	if o.LogLevel != "" {
		cfg.LogConfig.LogLevel = o.LogLevel
	}
	if o.SessionDB != "" {
		cfg.SessionStoreConfig.SQLitePath = o.SessionDB
	}
	return nil
}
