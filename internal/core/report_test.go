package core

import (
	"testing"

	"github.com/warit-s/bomreport/pkg/models"
)

// recordingPersister captures every draft handed to SaveDraft.
type recordingPersister struct {
	saves []models.ReportSnapshot
	fail  bool
}

func (p *recordingPersister) SaveDraft(snapshot models.ReportSnapshot) bool {
	p.saves = append(p.saves, snapshot.Clone())
	return !p.fail
}

func TestNewReportManagerStartsWithOneBlankTask(t *testing.T) {
	reports := NewReportManager(nil)

	tasks := reports.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 blank task, got %d", len(tasks))
	}
	if tasks[0] != DefaultTask() {
		t.Errorf("expected blank default task, got %+v", tasks[0])
	}
}

func TestSetFieldPersistsEveryChange(t *testing.T) {
	persister := &recordingPersister{}
	reports := NewReportManager(persister)

	if !reports.SetField(FieldWorkBOM, "WB-S2407-0105-A") {
		t.Fatal("expected SetField to succeed")
	}
	if !reports.SetField(FieldProjectName, "Retrofit") {
		t.Fatal("expected SetField to succeed")
	}
	if reports.SetField("nonsense", "x") {
		t.Error("unknown field must return false")
	}

	if len(persister.saves) != 2 {
		t.Fatalf("expected 2 persisted drafts, got %d", len(persister.saves))
	}
	last := persister.saves[len(persister.saves)-1]
	if last.WorkBOM != "WB-S2407-0105-A" || last.ProjectName != "Retrofit" {
		t.Errorf("persisted draft out of date: %+v", last)
	}

	if reports.Field(FieldProjectName) != "Retrofit" {
		t.Errorf("Field returned %q", reports.Field(FieldProjectName))
	}
}

func TestPersistenceFailureNeverBlocksMutation(t *testing.T) {
	persister := &recordingPersister{fail: true}
	reports := NewReportManager(persister)

	if !reports.SetField(FieldProblems, "quota full") {
		t.Error("mutation must succeed even when persistence fails")
	}
	if reports.Field(FieldProblems) != "quota full" {
		t.Error("in-memory state must reflect the mutation")
	}
}

func TestTaskMutationsPersist(t *testing.T) {
	persister := &recordingPersister{}
	reports := NewReportManager(persister)

	idx := reports.AddTask(TaskPatch{Detail: strPtr("a")})
	reports.AddTask(TaskPatch{Detail: strPtr("b")})
	reports.UpdateTask(idx, TaskPatch{Status: statusPtr(models.StatusWaiting)})
	reports.MoveTaskDown(idx)
	reports.RemoveTask(0)

	if len(persister.saves) != 5 {
		t.Fatalf("expected 5 persisted drafts, got %d", len(persister.saves))
	}

	// Failed operations do not persist.
	before := len(persister.saves)
	if reports.UpdateTask(99, TaskPatch{}) {
		t.Error("out-of-range update must fail")
	}
	if reports.MoveTaskUp(0) {
		t.Error("boundary move must fail")
	}
	if len(persister.saves) != before {
		t.Error("failed operations must not persist")
	}
}

func TestRestoreBuildSnapshotRoundTrip(t *testing.T) {
	original := NewReportManager(nil)
	original.SetField(FieldWorkBOM, "WB-S2407-0105-A")
	original.SetField(FieldProjectName, "Line 3")
	original.SetField(FieldProblems, "none")
	original.UpdateTask(0, TaskPatch{Detail: strPtr("first")})
	original.AddTask(TaskPatch{Detail: strPtr("second"), Status: statusPtr(models.StatusNG)})

	snapshot := original.BuildSnapshot().Clone()

	restored := NewReportManager(nil)
	restored.Restore(snapshot)

	got := restored.BuildSnapshot()
	if got.WorkBOM != snapshot.WorkBOM || got.ProjectName != snapshot.ProjectName || got.Problems != snapshot.Problems {
		t.Errorf("scalar fields not reproduced: %+v", got)
	}
	if len(got.Tasks) != len(snapshot.Tasks) {
		t.Fatalf("task count mismatch: %d vs %d", len(got.Tasks), len(snapshot.Tasks))
	}
	for i := range got.Tasks {
		if got.Tasks[i] != snapshot.Tasks[i] {
			t.Errorf("task %d not reproduced: %+v vs %+v", i, got.Tasks[i], snapshot.Tasks[i])
		}
	}
}

func TestRestoreWithZeroTasksSubstitutesBlankTask(t *testing.T) {
	reports := NewReportManager(nil)
	reports.Restore(models.ReportSnapshot{WorkBOM: "WB-S2407-0105-A"})

	tasks := reports.Tasks()
	if len(tasks) != 1 || tasks[0] != DefaultTask() {
		t.Errorf("expected single blank task, got %+v", tasks)
	}
	if reports.Field(FieldWorkBOM) != "WB-S2407-0105-A" {
		t.Error("scalar fields must still be restored")
	}
}

func TestResetAllClearsEverything(t *testing.T) {
	reports := NewReportManager(nil)
	reports.SetField(FieldWorkBOM, "WB-S2407-0105-A")
	reports.SetField(FieldProblems, "stuff")
	reports.AddTask(TaskPatch{Detail: strPtr("work")})

	reports.ResetAll()

	snapshot := reports.BuildSnapshot()
	if snapshot.WorkBOM != "" || snapshot.ProjectName != "" || snapshot.Problems != "" {
		t.Errorf("scalar fields not cleared: %+v", snapshot)
	}
	if len(snapshot.Tasks) != 1 || snapshot.Tasks[0] != DefaultTask() {
		t.Errorf("task list not reset to one blank task: %+v", snapshot.Tasks)
	}
}

func TestClearTasksOnlyKeepsIdentityFields(t *testing.T) {
	reports := NewReportManager(nil)
	reports.SetField(FieldWorkBOM, "WB-S2407-0105-A")
	reports.SetField(FieldProjectName, "Line 3")
	reports.SetField(FieldProblems, "delays")
	reports.AddTask(TaskPatch{Detail: strPtr("work")})

	reports.ClearTasksOnly()

	snapshot := reports.BuildSnapshot()
	if snapshot.WorkBOM != "WB-S2407-0105-A" || snapshot.ProjectName != "Line 3" {
		t.Errorf("identity fields must survive: %+v", snapshot)
	}
	if snapshot.Problems != "" {
		t.Error("problems must be cleared")
	}
	if len(snapshot.Tasks) != 1 || snapshot.Tasks[0] != DefaultTask() {
		t.Errorf("task list not reset: %+v", snapshot.Tasks)
	}
}

func TestClearTasksLeavesScalarFieldsAlone(t *testing.T) {
	reports := NewReportManager(nil)
	reports.SetField(FieldProblems, "delays")
	reports.AddTask(TaskPatch{Detail: strPtr("work")})

	reports.ClearTasks()

	if reports.Field(FieldProblems) != "delays" {
		t.Error("problems must survive ClearTasks")
	}
	tasks := reports.Tasks()
	if len(tasks) != 1 || tasks[0] != DefaultTask() {
		t.Errorf("task list not reset: %+v", tasks)
	}
}

func TestSubscribersNotifiedOnEveryMutation(t *testing.T) {
	reports := NewReportManager(nil)

	notified := 0
	reports.Subscribe(func() { notified++ })

	reports.SetField(FieldWorkBOM, "x")
	reports.AddTask(TaskPatch{})
	reports.ResetAll()

	if notified != 3 {
		t.Errorf("expected 3 notifications, got %d", notified)
	}
}
