package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/warit-s/bomreport/internal/core"
	"github.com/warit-s/bomreport/pkg/models"
)

// countingPersister counts SaveDraft calls and keeps the last snapshot.
type countingPersister struct {
	saves int
	last  models.ReportSnapshot
}

func (p *countingPersister) SaveDraft(snapshot models.ReportSnapshot) bool {
	p.saves++
	p.last = snapshot.Clone()
	return true
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newEditModelForTest(t *testing.T, persister core.DraftPersister) editModel {
	t.Helper()

	origStore, origConfig := Store, Config
	t.Cleanup(func() { Store, Config = origStore, origConfig })
	Store = nil
	Config = nil

	return newEditModel(core.NewReportManager(persister))
}

func TestEditPreviewToggleSyncsFieldsOnce(t *testing.T) {
	persister := &countingPersister{}
	m := newEditModelForTest(t, persister)

	m.bomInput.SetValue("WB-S2407-0105-A")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	em := updated.(editModel)
	if !em.preview {
		t.Fatal("ctrl+p must enable the preview")
	}
	if persister.last.WorkBOM != "WB-S2407-0105-A" {
		t.Errorf("toggling the preview must sync pending edits, got %q", persister.last.WorkBOM)
	}

	// Rendering must not persist anything.
	before := persister.saves
	view := em.View()
	_ = em.View()
	if persister.saves != before {
		t.Errorf("View must be side-effect free, saves went %d -> %d", before, persister.saves)
	}
	if !strings.Contains(view, "WB-S2407-0105-A") {
		t.Error("preview should render the synced draft")
	}
}

func TestEditMoveUpAtTopKeepsCursorAndOrder(t *testing.T) {
	m := newEditModelForTest(t, nil)
	first, second := "first", "second"
	m.reports.UpdateTask(0, core.TaskPatch{Detail: &first})
	m.reports.AddTask(core.TaskPatch{Detail: &second})
	m.focus = focusTasks

	updated, _ := m.Update(keyRunes('K'))
	em := updated.(editModel)
	if em.taskIdx != 0 {
		t.Errorf("cursor must stay at 0 after a boundary move, got %d", em.taskIdx)
	}
	if em.reports.Tasks()[0].Detail != "first" {
		t.Errorf("boundary move must not reorder: %+v", em.reports.Tasks())
	}
}

func TestEditMoveUpFollowsTheTask(t *testing.T) {
	m := newEditModelForTest(t, nil)
	first, second := "first", "second"
	m.reports.UpdateTask(0, core.TaskPatch{Detail: &first})
	m.reports.AddTask(core.TaskPatch{Detail: &second})
	m.focus = focusTasks
	m.taskIdx = 1

	updated, _ := m.Update(keyRunes('K'))
	em := updated.(editModel)
	if em.taskIdx != 0 {
		t.Errorf("cursor must follow the moved task, got %d", em.taskIdx)
	}
	if em.reports.Tasks()[0].Detail != "second" {
		t.Errorf("task not moved: %+v", em.reports.Tasks())
	}
}
