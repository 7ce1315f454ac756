package cli

import (
	"github.com/warit-s/bomreport/internal/core"
	"github.com/warit-s/bomreport/internal/observability"
	"github.com/warit-s/bomreport/internal/storage"
	"github.com/warit-s/bomreport/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath  string
	Config    *models.GlobalConfig
	ConfigMgr core.ConfigurationManager
	Reports   core.ReportManager
	Store     storage.DraftStoreManager
	EventLog  observability.EventLog
	Notifier  observability.Notifier
)
