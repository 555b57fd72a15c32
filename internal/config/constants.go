package config

const (
	// ConfigPathEnv names the environment variable holding the config file path.
	ConfigPathEnv = "SNAPGALLERY_CONFIG_PATH"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Server Defaults
	DefaultListenAddr          = ":8000"
	DefaultReadTimeoutSecs     = 10
	DefaultWriteTimeoutSecs    = 10
	DefaultShutdownTimeoutSecs = 5

	// Gallery Defaults
	DefaultSnapshotDir    = "./static/snapshots"
	DefaultImageExtension = ".png"
	DefaultPageSize       = 20
	DefaultRowWidth       = 2
	DefaultResolution     = 1
	DefaultCaptureStart   = "22:00"
	DefaultCaptureEnd     = "07:00"
	DefaultWatchDirectory = true
	// FixedNowLayout is the format of gallery_config.fixed_now.
	FixedNowLayout = "2006-01-02T15:04"

	// Session Store Defaults
	StoreDriverSQLite        = "sqlite"
	StoreDriverMemory        = "memory"
	DefaultStoreDriver       = StoreDriverSQLite
	DefaultSessionSQLitePath = "database/sessions.db"
	DefaultSessionTTLHours   = 24
	DefaultSessionCookieName = "snapgallery_session"

	maxConfigFileSize = 1 << 20
)

// DefaultTimeResolutions are the selectable sampling resolutions in minutes.
func DefaultTimeResolutions() []int {
	return []int{1, 2, 5, 10, 15}
}
