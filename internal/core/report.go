package core

import "github.com/warit-s/bomreport/pkg/models"

// Scalar field names, matching the persisted JSON keys.
const (
	FieldWorkBOM     = "workBom"
	FieldProjectName = "projectName"
	FieldProblems    = "problems"
)

// DraftPersister receives the draft after every mutation. Persistence
// failures degrade to a false return; they never interrupt the mutation.
type DraftPersister interface {
	SaveDraft(snapshot models.ReportSnapshot) bool
}

// ReportManager holds the live draft: the scalar report fields plus the
// task list. Every mutating operation persists the draft synchronously
// before returning and then notifies subscribers.
type ReportManager interface {
	SetField(name, value string) bool
	Field(name string) string
	AddTask(patch TaskPatch) int
	UpdateTask(index int, patch TaskPatch) bool
	RemoveTask(index int) bool
	MoveTaskUp(index int) bool
	MoveTaskDown(index int) bool
	Tasks() []models.TaskEntry
	ClearTasks()
	Validate() ValidationResult
	BuildSnapshot() models.ReportSnapshot
	ResetAll()
	ClearTasksOnly()
	Restore(snapshot models.ReportSnapshot)
	Subscribe(listener func())
}

type reportManager struct {
	workBOM     string
	projectName string
	problems    string
	tasks       TaskListStore
	persister   DraftPersister
	listeners   []func()
}

// NewReportManager creates a ReportManager with a single blank task.
// persister may be nil when persistence is unavailable.
func NewReportManager(persister DraftPersister) ReportManager {
	m := &reportManager{
		tasks:     NewTaskListStore(),
		persister: persister,
	}
	m.tasks.Replace(nil)
	return m
}

func (m *reportManager) persist() {
	if m.persister != nil {
		m.persister.SaveDraft(m.BuildSnapshot())
	}
	for _, listener := range m.listeners {
		listener()
	}
}

// SetField sets one scalar field by name. Unknown names return false.
// The value is stored as given; format problems are advisory and surface
// through Validate.
func (m *reportManager) SetField(name, value string) bool {
	switch name {
	case FieldWorkBOM:
		m.workBOM = value
	case FieldProjectName:
		m.projectName = value
	case FieldProblems:
		m.problems = value
	default:
		return false
	}
	m.persist()
	return true
}

func (m *reportManager) Field(name string) string {
	switch name {
	case FieldWorkBOM:
		return m.workBOM
	case FieldProjectName:
		return m.projectName
	case FieldProblems:
		return m.problems
	}
	return ""
}

func (m *reportManager) AddTask(patch TaskPatch) int {
	index := m.tasks.Add(patch)
	m.persist()
	return index
}

func (m *reportManager) UpdateTask(index int, patch TaskPatch) bool {
	if !m.tasks.Update(index, patch) {
		return false
	}
	m.persist()
	return true
}

func (m *reportManager) RemoveTask(index int) bool {
	if !m.tasks.Remove(index) {
		return false
	}
	m.persist()
	return true
}

func (m *reportManager) MoveTaskUp(index int) bool {
	if !m.tasks.MoveUp(index) {
		return false
	}
	m.persist()
	return true
}

func (m *reportManager) MoveTaskDown(index int) bool {
	if !m.tasks.MoveDown(index) {
		return false
	}
	m.persist()
	return true
}

func (m *reportManager) Tasks() []models.TaskEntry {
	return m.tasks.Tasks()
}

// ClearTasks resets the task list to a single blank task, leaving every
// scalar field alone.
func (m *reportManager) ClearTasks() {
	m.tasks.Replace(nil)
	m.persist()
}

func (m *reportManager) Validate() ValidationResult {
	return ValidateSnapshot(m.BuildSnapshot())
}

// BuildSnapshot returns the current draft as a snapshot. The task slice is
// the live backing array, not a copy; callers needing isolation clone it,
// as the history store does before writing.
func (m *reportManager) BuildSnapshot() models.ReportSnapshot {
	return models.ReportSnapshot{
		WorkBOM:     m.workBOM,
		ProjectName: m.projectName,
		Problems:    m.problems,
		Tasks:       m.tasks.Tasks(),
	}
}

// ResetAll clears every scalar field and resets the task list to a single
// blank task.
func (m *reportManager) ResetAll() {
	m.workBOM = ""
	m.projectName = ""
	m.problems = ""
	m.tasks.Replace(nil)
	m.persist()
}

// ClearTasksOnly clears the problem notes and the task list but keeps the
// Work BOM and project name.
func (m *reportManager) ClearTasksOnly() {
	m.problems = ""
	m.tasks.Replace(nil)
	m.persist()
}

// Restore replaces the draft wholesale from a snapshot. A snapshot with
// zero tasks yields a single blank task.
func (m *reportManager) Restore(snapshot models.ReportSnapshot) {
	m.workBOM = snapshot.WorkBOM
	m.projectName = snapshot.ProjectName
	m.problems = snapshot.Problems
	m.tasks.Replace(snapshot.Tasks)
	m.persist()
}

func (m *reportManager) Subscribe(listener func()) {
	m.listeners = append(m.listeners, listener)
}
