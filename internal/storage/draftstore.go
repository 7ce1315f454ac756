package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/warit-s/bomreport/internal/core"
	"github.com/warit-s/bomreport/pkg/models"
)

// Storage keys. The theme key is deliberately independent of the draft and
// history keys so that clearing all report data preserves the preference.
const (
	keyDraft   = "draft.json"
	keyHistory = "history.json"
	keyTheme   = "theme"
)

// EventRecorder receives operational events from the store (failed writes,
// evictions). A nil recorder disables event recording.
type EventRecorder interface {
	Record(eventType string, data map[string]any)
}

// DraftStoreManager defines the persistence interface for the current draft,
// the generated-report history, and the theme preference.
//
// No operation ever propagates an error: failures degrade to a false return
// or an empty result, and corrupt stored data reads as absent. When storage
// is unavailable every operation short-circuits.
type DraftStoreManager interface {
	SaveDraft(snapshot models.ReportSnapshot) bool
	LoadDraft() (models.ReportSnapshot, bool)
	AppendHistory(snapshot models.ReportSnapshot, now time.Time) bool
	LoadHistory() []models.HistoryEntry
	ClearHistory() bool
	ClearAll() bool
	Theme() string
	SetTheme(theme string) bool
	Available() bool
}

type kvDraftStore struct {
	kv       KVStore
	cap      int
	recorder EventRecorder
}

// NewDraftStore creates a DraftStoreManager over the given KVStore. cap
// bounds the history length; values below 1 fall back to the default cap.
// recorder may be nil.
func NewDraftStore(kv KVStore, cap int, recorder EventRecorder) DraftStoreManager {
	if cap < 1 {
		cap = models.MaxHistoryEntries
	}
	return &kvDraftStore{kv: kv, cap: cap, recorder: recorder}
}

func (s *kvDraftStore) record(eventType string, data map[string]any) {
	if s.recorder != nil {
		s.recorder.Record(eventType, data)
	}
}

// SaveDraft serializes the snapshot under the draft key. On a quota failure
// it runs the history eviction policy and retries the write once; any other
// failure is recorded and reported as false.
func (s *kvDraftStore) SaveDraft(snapshot models.ReportSnapshot) bool {
	if !s.kv.Available() {
		return false
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		s.record("draft.save_failed", map[string]any{"error": err.Error()})
		return false
	}
	err = s.kv.Set(keyDraft, data)
	if errors.Is(err, ErrQuotaExceeded) && s.evictHistoryForSpace() {
		err = s.kv.Set(keyDraft, data)
	}
	if err != nil {
		s.record("draft.save_failed", map[string]any{"error": err.Error()})
		return false
	}
	return true
}

// LoadDraft returns the stored draft, or (zero, false) when none exists or
// the stored data cannot be parsed.
func (s *kvDraftStore) LoadDraft() (models.ReportSnapshot, bool) {
	if !s.kv.Available() {
		return models.ReportSnapshot{}, false
	}
	data, err := s.kv.Get(keyDraft)
	if err != nil || data == nil {
		return models.ReportSnapshot{}, false
	}
	var snapshot models.ReportSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		// Corrupt draft reads as absent, never as a crash.
		return models.ReportSnapshot{}, false
	}
	return snapshot, true
}

// AppendHistory records a deep copy of the snapshot at the front of the
// history, truncated to the cap. Semantically empty snapshots are refused.
// On a quota failure the eviction policy halves the stored history and the
// write is retried once; any other failure is recorded without evicting.
func (s *kvDraftStore) AppendHistory(snapshot models.ReportSnapshot, now time.Time) bool {
	if !s.kv.Available() {
		return false
	}
	if snapshot.IsEmpty() {
		return false
	}

	entry := models.HistoryEntry{
		Timestamp: core.FormatThaiTimestamp(now),
		Data:      snapshot.Clone(),
	}

	history := append([]models.HistoryEntry{entry}, s.LoadHistory()...)
	if len(history) > s.cap {
		history = history[:s.cap]
	}

	err := s.writeHistory(history)
	if err == nil {
		return true
	}
	if !errors.Is(err, ErrQuotaExceeded) {
		// Eviction is a quota recovery; it must not run for other failures.
		s.record("history.append_failed", map[string]any{"error": err.Error()})
		return false
	}

	// Quota recovery: halve the previously stored history (newest kept),
	// rebuild with the new entry at the front, retry once.
	stored := s.LoadHistory()
	if len(stored) < models.MinHistoryForEviction {
		s.record("history.append_failed", map[string]any{"entries": len(stored)})
		return false
	}
	kept := stored[:len(stored)/2]
	s.record("history.evicted", map[string]any{"before": len(stored), "after": len(kept)})

	history = append([]models.HistoryEntry{entry}, kept...)
	if len(history) > s.cap {
		history = history[:s.cap]
	}
	if s.writeHistory(history) == nil {
		return true
	}
	s.record("history.append_failed", map[string]any{"entries": len(kept)})
	return false
}

// LoadHistory returns the stored history, most recent first. Missing or
// corrupt data yields an empty sequence.
func (s *kvDraftStore) LoadHistory() []models.HistoryEntry {
	if !s.kv.Available() {
		return nil
	}
	data, err := s.kv.Get(keyHistory)
	if err != nil || data == nil {
		return nil
	}
	var history []models.HistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		return nil
	}
	return history
}

// ClearHistory removes the history key.
func (s *kvDraftStore) ClearHistory() bool {
	if !s.kv.Available() {
		return false
	}
	return s.kv.Delete(keyHistory) == nil
}

// ClearAll removes the draft and history keys. The theme key is preserved.
func (s *kvDraftStore) ClearAll() bool {
	if !s.kv.Available() {
		return false
	}
	draftErr := s.kv.Delete(keyDraft)
	historyErr := s.kv.Delete(keyHistory)
	return draftErr == nil && historyErr == nil
}

// Theme returns the stored theme preference, or "" when unset.
func (s *kvDraftStore) Theme() string {
	if !s.kv.Available() {
		return ""
	}
	data, err := s.kv.Get(keyTheme)
	if err != nil || data == nil {
		return ""
	}
	return string(data)
}

// SetTheme stores the theme preference under its own key.
func (s *kvDraftStore) SetTheme(theme string) bool {
	if !s.kv.Available() {
		return false
	}
	return s.kv.Set(keyTheme, []byte(theme)) == nil
}

// Available reports whether the underlying storage medium is usable.
func (s *kvDraftStore) Available() bool {
	return s.kv.Available()
}

func (s *kvDraftStore) writeHistory(history []models.HistoryEntry) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	return s.kv.Set(keyHistory, data)
}

// evictHistoryForSpace applies the quota recovery policy on behalf of a
// non-history write: drop the oldest half of the stored history, keeping the
// most recent entries. Histories of fewer than MinHistoryForEviction entries
// are left alone to avoid thrashing on pathologically large single values.
func (s *kvDraftStore) evictHistoryForSpace() bool {
	stored := s.LoadHistory()
	if len(stored) < models.MinHistoryForEviction {
		return false
	}
	kept := stored[:len(stored)/2]
	if s.writeHistory(kept) != nil {
		return false
	}
	s.record("history.evicted", map[string]any{"before": len(stored), "after": len(kept)})
	return true
}
