// Package models contains the plain data types shared between the core,
// storage, CLI, and MCP layers of bomreport.
package models

import "strings"

// TaskStatus represents the progress state of a single task entry.
type TaskStatus string

const (
	StatusOK         TaskStatus = "OK"
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusWaiting    TaskStatus = "Waiting"
	StatusNG         TaskStatus = "NG"
	StatusNone       TaskStatus = "None"
)

// AllStatuses lists the valid statuses in display order.
var AllStatuses = []TaskStatus{
	StatusOK,
	StatusPending,
	StatusInProgress,
	StatusWaiting,
	StatusNG,
	StatusNone,
}

// NormalizeStatus maps a status string to its canonical form, comparing
// case-insensitively. Unknown values are returned unchanged so that
// imported data is preserved rather than silently rewritten.
func NormalizeStatus(s string) TaskStatus {
	trimmed := strings.TrimSpace(s)
	for _, status := range AllStatuses {
		if strings.EqualFold(trimmed, string(status)) {
			return status
		}
	}
	return TaskStatus(trimmed)
}

// TaskEntry is a single line item in the report. Entries have no identity
// beyond their position in the task list.
type TaskEntry struct {
	Detail string     `json:"detail"`
	Status TaskStatus `json:"status"`
	Remark string     `json:"remark"`
}

// MaxDetailLen and MaxRemarkLen are the field length limits enforced at
// validation time. Longer values may transiently exist in the draft.
const (
	MaxDetailLen = 500
	MaxRemarkLen = 200
)

// ReportSnapshot is the combined scalar fields and task list at a point in
// time. It is the persisted draft shape and the input to report serialization.
type ReportSnapshot struct {
	WorkBOM     string      `json:"workBom"`
	ProjectName string      `json:"projectName"`
	Problems    string      `json:"problems"`
	Tasks       []TaskEntry `json:"tasks"`
}

// IsEmpty reports whether the snapshot is semantically empty: no BOM, no
// project name, and no task with non-empty detail. Empty snapshots are never
// recorded in history.
func (s ReportSnapshot) IsEmpty() bool {
	if strings.TrimSpace(s.WorkBOM) != "" || strings.TrimSpace(s.ProjectName) != "" {
		return false
	}
	for _, t := range s.Tasks {
		if strings.TrimSpace(t.Detail) != "" {
			return false
		}
	}
	return true
}

// Clone returns a structural deep copy of the snapshot: scalar fields plus
// a freshly allocated task slice. History entries store clones so that later
// mutation of the live draft can never leak into stored history.
func (s ReportSnapshot) Clone() ReportSnapshot {
	cp := s
	cp.Tasks = make([]TaskEntry, len(s.Tasks))
	copy(cp.Tasks, s.Tasks)
	return cp
}

// HistoryEntry is a timestamped, deep-copied snapshot retained after a
// successful generate action. The history list exclusively owns Data.
type HistoryEntry struct {
	Timestamp string         `json:"timestamp"`
	Data      ReportSnapshot `json:"data"`
}

// MaxHistoryEntries is the hard cap on retained history entries; the oldest
// entries are dropped first.
const MaxHistoryEntries = 20

// MinHistoryForEviction is the smallest history length at which the
// quota-overflow recovery will evict entries. Below this, eviction would
// thrash without freeing meaningful space.
const MinHistoryForEviction = 6

// ExportEnvelope is the versioned wrapper written by export and accepted by
// import.
type ExportEnvelope struct {
	Version    string          `json:"version"`
	ExportDate string          `json:"exportDate"`
	Data       *ReportSnapshot `json:"data"`
}

// ExportVersion is the current export envelope version.
const ExportVersion = "1.0"
