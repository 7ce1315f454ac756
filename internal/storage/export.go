package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/warit-s/bomreport/pkg/models"
)

// ExportSnapshot wraps the snapshot in a versioned envelope and returns it
// as indented JSON.
func ExportSnapshot(snapshot models.ReportSnapshot, now time.Time) ([]byte, error) {
	data := snapshot.Clone()
	envelope := models.ExportEnvelope{
		Version:    models.ExportVersion,
		ExportDate: now.UTC().Format(time.RFC3339),
		Data:       &data,
	}
	out, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling export envelope: %w", err)
	}
	return out, nil
}

// ImportSnapshot parses an export envelope and returns the contained
// snapshot. It fails when the JSON is malformed or the data field is absent;
// the caller's state is never touched on failure.
func ImportSnapshot(raw []byte) (models.ReportSnapshot, error) {
	var envelope models.ExportEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return models.ReportSnapshot{}, fmt.Errorf("parsing import file: %w", err)
	}
	if envelope.Data == nil {
		return models.ReportSnapshot{}, fmt.Errorf("import file has no data field")
	}
	snapshot := envelope.Data.Clone()
	for i := range snapshot.Tasks {
		snapshot.Tasks[i].Status = models.NormalizeStatus(string(snapshot.Tasks[i].Status))
	}
	return snapshot, nil
}
