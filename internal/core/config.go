package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/warit-s/bomreport/pkg/models"
	"gopkg.in/yaml.v3"
)

// validThemes is the set of accepted theme names.
var validThemes = map[string]bool{"light": true, "dark": true}

// ConfigurationManager defines the interface for loading, saving, and
// validating the .bomreportrc configuration file.
type ConfigurationManager interface {
	LoadConfig() (*models.GlobalConfig, error)
	SaveConfig(cfg *models.GlobalConfig) error
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for reads
// and yaml.v3 for writes.
type viperConfigManager struct {
	// basePath is the directory where .bomreportrc resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads the
// configuration file relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with sensible defaults.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		DataDir:           "",
		StorageQuotaBytes: 0,
		HistoryCap:        models.MaxHistoryEntries,
		DefaultTheme:      "light",
		EventLogEnabled:   true,
	}
}

// LoadConfig reads the .bomreportrc file from the base path. If the file
// does not exist, defaults are returned.
func (cm *viperConfigManager) LoadConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(".bomreportrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("storage_quota_bytes", cfg.StorageQuotaBytes)
	v.SetDefault("history_cap", cfg.HistoryCap)
	v.SetDefault("default_theme", cfg.DefaultTheme)
	v.SetDefault("webhook_url", cfg.WebhookURL)
	v.SetDefault("event_log_enabled", cfg.EventLogEnabled)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .bomreportrc: %w", err)
	}

	cfg.DataDir = v.GetString("data_dir")
	cfg.StorageQuotaBytes = v.GetInt64("storage_quota_bytes")
	cfg.DefaultTheme = v.GetString("default_theme")
	cfg.WebhookURL = v.GetString("webhook_url")
	cfg.EventLogEnabled = v.GetBool("event_log_enabled")

	// Use IsSet to distinguish "not set" from "explicitly set to 0".
	if v.IsSet("history_cap") {
		cfg.HistoryCap = v.GetInt("history_cap")
	}

	return cfg, nil
}

// SaveConfig writes the configuration back to .bomreportrc as YAML.
func (cm *viperConfigManager) SaveConfig(cfg *models.GlobalConfig) error {
	if err := cm.ValidateConfig(cfg); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(cm.basePath, ".bomreportrc")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ValidateConfig checks the configuration for invalid values and returns a
// clear error message identifying every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.StorageQuotaBytes < 0 {
		errs = append(errs, fmt.Sprintf("storage_quota_bytes must be non-negative, got %d", cfg.StorageQuotaBytes))
	}

	if cfg.HistoryCap < 1 {
		errs = append(errs, fmt.Sprintf("history_cap must be at least 1, got %d", cfg.HistoryCap))
	}

	if cfg.DefaultTheme != "" && !validThemes[cfg.DefaultTheme] {
		errs = append(errs, fmt.Sprintf("default_theme %q is invalid, must be light or dark", cfg.DefaultTheme))
	}

	if cfg.WebhookURL != "" && !strings.HasPrefix(cfg.WebhookURL, "https://") {
		errs = append(errs, fmt.Sprintf("webhook_url %q must use https", cfg.WebhookURL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
