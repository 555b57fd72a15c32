package config

import "time"

// ServerConfig defines the HTTP listener and rendering settings
type ServerConfig struct {
	ListenAddr          string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty" validate:"required,hostname_port"`
	ReadTimeoutSecs     int    `json:"read_timeout_secs,omitempty" yaml:"read_timeout_secs,omitempty" validate:"min=1"`
	WriteTimeoutSecs    int    `json:"write_timeout_secs,omitempty" yaml:"write_timeout_secs,omitempty" validate:"min=1"`
	ShutdownTimeoutSecs int    `json:"shutdown_timeout_secs,omitempty" yaml:"shutdown_timeout_secs,omitempty" validate:"min=1"`
	// TemplateDir overrides the embedded templates when set.
	TemplateDir string `json:"template_dir,omitempty" yaml:"template_dir,omitempty" validate:"omitempty,direxists"`
}

// NewDefaultServerConfig creates default server configuration
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:          DefaultListenAddr,
		ReadTimeoutSecs:     DefaultReadTimeoutSecs,
		WriteTimeoutSecs:    DefaultWriteTimeoutSecs,
		ShutdownTimeoutSecs: DefaultShutdownTimeoutSecs,
	}
}

func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSecs) * time.Second
}

func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSecs) * time.Second
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSecs) * time.Second
}
