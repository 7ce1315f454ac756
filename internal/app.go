// Package internal provides the App struct that wires all components of
// bomreport together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/warit-s/bomreport/internal/cli"
	"github.com/warit-s/bomreport/internal/core"
	"github.com/warit-s/bomreport/internal/observability"
	"github.com/warit-s/bomreport/internal/storage"
	"github.com/warit-s/bomreport/pkg/models"
)

// App holds all service dependencies for bomreport. Exactly one App is
// constructed per process, at startup; there is no other global state.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Storage layer
	KV    storage.KVStore
	Store storage.DraftStoreManager

	// Core services
	Reports core.ReportManager

	// Observability
	EventLog observability.EventLog
	Notifier observability.Notifier
}

// NewApp creates and wires all components of bomreport. basePath is the
// directory holding .bomreportrc and, by default, the data directory.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		// Unreadable config falls back to defaults.
		cfg = core.DefaultGlobalConfig()
	}

	// --- Observability ---
	if cfg.EventLogEnabled {
		eventLogPath := filepath.Join(basePath, ".bomreport_events.jsonl")
		app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
		if err != nil {
			// Non-fatal: disable event logging if the file can't be created.
			app.EventLog = nil
		}
	}
	if cfg.WebhookURL != "" {
		app.Notifier = observability.NewWebhookNotifier(cfg.WebhookURL)
	}

	// --- Storage layer ---
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(basePath, "data")
	}
	app.KV = storage.NewFileKVStore(dataDir, cfg.StorageQuotaBytes)

	var recorder storage.EventRecorder
	if app.EventLog != nil {
		recorder = &eventRecorderAdapter{log: app.EventLog}
	}
	app.Store = storage.NewDraftStore(app.KV, cfg.HistoryCap, recorder)

	// --- Core services ---
	app.Reports = core.NewReportManager(&draftPersisterAdapter{store: app.Store})
	if snapshot, ok := app.Store.LoadDraft(); ok {
		app.Reports.Restore(snapshot)
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = cfg
	cli.ConfigMgr = app.ConfigMgr
	cli.Reports = app.Reports
	cli.Store = app.Store
	cli.EventLog = app.EventLog
	cli.Notifier = app.Notifier

	return app, nil
}

// Close releases resources held by the App. It is safe to call when the
// event log is disabled.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base directory for bomreport data. It
// checks the BOMREPORT_HOME env var, then walks up from the current
// directory looking for a .bomreportrc file, and falls back to the cwd.
func ResolveBasePath() string {
	if home := os.Getenv("BOMREPORT_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".bomreportrc")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// --- Adapters ---

// draftPersisterAdapter adapts storage.DraftStoreManager to core.DraftPersister.
type draftPersisterAdapter struct {
	store storage.DraftStoreManager
}

func (a *draftPersisterAdapter) SaveDraft(snapshot models.ReportSnapshot) bool {
	return a.store.SaveDraft(snapshot)
}

// eventRecorderAdapter adapts observability.EventLog to storage.EventRecorder.
type eventRecorderAdapter struct {
	log observability.EventLog
}

func (a *eventRecorderAdapter) Record(eventType string, data map[string]any) {
	_ = a.log.Write(observability.Event{
		Time: time.Now().UTC(),
		Type: eventType,
		Data: data,
	})
}
