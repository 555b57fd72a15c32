package config

import "time"

// SessionStoreConfig defines where pagination cursors are kept
type SessionStoreConfig struct {
	Driver          string `json:"driver,omitempty" yaml:"driver,omitempty" validate:"required,storedriver"`
	SQLitePath      string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" validate:"required_if=Driver sqlite"`
	SessionTTLHours int    `json:"session_ttl_hours,omitempty" yaml:"session_ttl_hours,omitempty" validate:"min=1"`
	CookieName      string `json:"cookie_name,omitempty" yaml:"cookie_name,omitempty" validate:"required,cookiename"`
}

// NewDefaultSessionStoreConfig creates default session store configuration
func NewDefaultSessionStoreConfig() SessionStoreConfig {
	return SessionStoreConfig{
		Driver:          DefaultStoreDriver,
		SQLitePath:      DefaultSessionSQLitePath,
		SessionTTLHours: DefaultSessionTTLHours,
		CookieName:      DefaultSessionCookieName,
	}
}

// SessionTTL is how long an untouched session cursor is kept.
func (c SessionStoreConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}
