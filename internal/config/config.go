package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	ServerConfig       ServerConfig       `json:"server_config,omitempty" yaml:"server_config,omitempty"`
	GalleryConfig      GalleryConfig      `json:"gallery_config,omitempty" yaml:"gallery_config,omitempty"`
	SessionStoreConfig SessionStoreConfig `json:"session_store_config,omitempty" yaml:"session_store_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:          NewDefaultLogConfig(),
		ServerConfig:       NewDefaultServerConfig(),
		GalleryConfig:      NewDefaultGalleryConfig(),
		SessionStoreConfig: NewDefaultSessionStoreConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations,
// then applies environment overrides. With no config file found it returns
// the defaults (plus overrides). YAML is used for .yaml/.yml files, JSON otherwise.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	if providedPath != "" && !fileExists(providedPath) {
		return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
	}

	filePath := GetConfigPath(providedPath)
	if filePath != "" {
		data, err := loadConfigFileContent(filePath)
		if err != nil {
			return nil, common.WrapError(err, "failed to load config file content")
		}
		if err := parseConfigContent(data, filePath, cfg); err != nil {
			return nil, common.WrapError(err, "failed to parse config content")
		}
		logger.Debug().Str("path", filePath).Msg("Loaded configuration file")
	} else {
		logger.Debug().Msg("No configuration file found, using defaults")
	}

	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFileContent reads the config file, refusing oversized files
func loadConfigFileContent(filePath string) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxConfigFileSize {
		return nil, common.NewError("config file '%s' is %d bytes, larger than the %d byte limit", filePath, info.Size(), maxConfigFileSize)
	}
	return os.ReadFile(filePath)
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
