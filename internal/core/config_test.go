package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/warit-s/bomreport/pkg/models"
)

func TestLoadConfigReturnsDefaultsWhenFileMissing(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	cfg, err := cm.LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HistoryCap != models.MaxHistoryEntries {
		t.Errorf("expected default history cap %d, got %d", models.MaxHistoryEntries, cfg.HistoryCap)
	}
	if cfg.DefaultTheme != "light" {
		t.Errorf("expected default theme light, got %q", cfg.DefaultTheme)
	}
	if !cfg.EventLogEnabled {
		t.Error("event log should be enabled by default")
	}
}

func TestLoadConfigReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	content := "history_cap: 5\ndefault_theme: dark\nstorage_quota_bytes: 1024\nevent_log_enabled: false\n"
	if err := os.WriteFile(filepath.Join(dir, ".bomreportrc"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := NewConfigurationManager(dir).LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HistoryCap != 5 {
		t.Errorf("expected history cap 5, got %d", cfg.HistoryCap)
	}
	if cfg.DefaultTheme != "dark" {
		t.Errorf("expected theme dark, got %q", cfg.DefaultTheme)
	}
	if cfg.StorageQuotaBytes != 1024 {
		t.Errorf("expected quota 1024, got %d", cfg.StorageQuotaBytes)
	}
	if cfg.EventLogEnabled {
		t.Error("event log should be disabled")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigurationManager(dir)

	cfg := DefaultGlobalConfig()
	cfg.HistoryCap = 7
	cfg.DefaultTheme = "dark"
	if err := cm.SaveConfig(cfg); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	loaded, err := cm.LoadConfig()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if loaded.HistoryCap != 7 || loaded.DefaultTheme != "dark" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestSaveConfigRejectsInvalidConfig(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	cfg := DefaultGlobalConfig()
	cfg.HistoryCap = 0
	if err := cm.SaveConfig(cfg); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
}

func TestValidateConfigCollectsAllProblems(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	err := cm.ValidateConfig(&models.GlobalConfig{
		StorageQuotaBytes: -1,
		HistoryCap:        0,
		DefaultTheme:      "sepia",
		WebhookURL:        "http://insecure.example.com",
	})
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	for _, fragment := range []string{"storage_quota_bytes", "history_cap", "default_theme", "webhook_url"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("expected %q mentioned in: %v", fragment, err)
		}
	}

	if err := cm.ValidateConfig(nil); err == nil {
		t.Error("nil config must be rejected")
	}
}
