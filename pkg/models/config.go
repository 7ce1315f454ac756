package models

// GlobalConfig holds system-wide settings read from .bomreportrc via Viper.
type GlobalConfig struct {
	// DataDir is the directory holding the draft, history, and theme keys.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// StorageQuotaBytes caps the total size of the key-value store.
	// Zero means unlimited.
	StorageQuotaBytes int64 `yaml:"storage_quota_bytes" mapstructure:"storage_quota_bytes"`

	// HistoryCap overrides the default bound on retained history entries.
	HistoryCap int `yaml:"history_cap" mapstructure:"history_cap"`

	// DefaultTheme is used when no theme preference has been stored yet.
	DefaultTheme string `yaml:"default_theme" mapstructure:"default_theme"`

	// WebhookURL, when set, enables posting generated reports to a
	// Slack-compatible webhook via "generate --notify".
	WebhookURL string `yaml:"webhook_url,omitempty" mapstructure:"webhook_url"`

	// EventLogEnabled toggles the JSONL event log.
	EventLogEnabled bool `yaml:"event_log_enabled" mapstructure:"event_log_enabled"`
}
