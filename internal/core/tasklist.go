// Package core implements the report domain logic: the ordered task list,
// the report state and validation rules, report text serialization, and the
// configuration manager.
package core

import (
	"strings"

	"github.com/warit-s/bomreport/pkg/models"
)

// StructuralChange identifies the kind of list mutation a subscriber is
// being notified about. Field updates inside a record are not structural
// and do not notify.
type StructuralChange string

const (
	ChangeAdd     StructuralChange = "add"
	ChangeRemove  StructuralChange = "remove"
	ChangeMove    StructuralChange = "move"
	ChangeClear   StructuralChange = "clear"
	ChangeReplace StructuralChange = "replace"
)

// TaskPatch carries partial task fields. Nil fields are left untouched when
// the patch is applied, which is how both add defaults and in-place updates
// merge.
type TaskPatch struct {
	Detail *string
	Status *models.TaskStatus
	Remark *string
}

func (p TaskPatch) applyTo(task *models.TaskEntry) {
	if p.Detail != nil {
		task.Detail = *p.Detail
	}
	if p.Status != nil {
		task.Status = *p.Status
	}
	if p.Remark != nil {
		task.Remark = *p.Remark
	}
}

// DefaultTask returns the blank record appended by Add and substituted when
// a replacement list is empty.
func DefaultTask() models.TaskEntry {
	return models.TaskEntry{Detail: "", Status: models.StatusOK, Remark: ""}
}

// TaskListStore maintains the ordered task entries of the draft.
//
// Index-based operations fail silently: an out-of-range index yields a false
// return and no change. Structural mutations (add, remove, move, clear,
// replace) notify subscribers synchronously, in registration order; Update
// is a field-level mutation and deliberately does not.
type TaskListStore interface {
	Add(patch TaskPatch) int
	Update(index int, patch TaskPatch) bool
	Remove(index int) bool
	MoveUp(index int) bool
	MoveDown(index int) bool
	Clear()
	Replace(tasks []models.TaskEntry)
	Tasks() []models.TaskEntry
	Len() int
	IsEmpty() bool
	Validate() []FieldError
	Subscribe(listener func(change StructuralChange))
}

type taskListStore struct {
	tasks     []models.TaskEntry
	listeners []func(change StructuralChange)
}

// NewTaskListStore creates an empty TaskListStore.
func NewTaskListStore() TaskListStore {
	return &taskListStore{}
}

func (s *taskListStore) notify(change StructuralChange) {
	for _, listener := range s.listeners {
		listener(change)
	}
}

// Add appends a blank record merged with the patch and returns its index.
// Insertion is always at the tail.
func (s *taskListStore) Add(patch TaskPatch) int {
	task := DefaultTask()
	patch.applyTo(&task)
	s.tasks = append(s.tasks, task)
	s.notify(ChangeAdd)
	return len(s.tasks) - 1
}

func (s *taskListStore) Update(index int, patch TaskPatch) bool {
	if index < 0 || index >= len(s.tasks) {
		return false
	}
	patch.applyTo(&s.tasks[index])
	return true
}

func (s *taskListStore) Remove(index int) bool {
	if index < 0 || index >= len(s.tasks) {
		return false
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	s.notify(ChangeRemove)
	return true
}

// MoveUp swaps the record at index with its predecessor. A boundary index
// is a no-op.
func (s *taskListStore) MoveUp(index int) bool {
	if index <= 0 || index >= len(s.tasks) {
		return false
	}
	s.tasks[index-1], s.tasks[index] = s.tasks[index], s.tasks[index-1]
	s.notify(ChangeMove)
	return true
}

// MoveDown swaps the record at index with its successor. A boundary index
// is a no-op.
func (s *taskListStore) MoveDown(index int) bool {
	if index < 0 || index >= len(s.tasks)-1 {
		return false
	}
	s.tasks[index], s.tasks[index+1] = s.tasks[index+1], s.tasks[index]
	s.notify(ChangeMove)
	return true
}

func (s *taskListStore) Clear() {
	s.tasks = nil
	s.notify(ChangeClear)
}

// Replace substitutes the whole list. An empty or nil replacement yields a
// single blank task so the list is never left with nothing to edit.
func (s *taskListStore) Replace(tasks []models.TaskEntry) {
	if len(tasks) == 0 {
		s.tasks = []models.TaskEntry{DefaultTask()}
	} else {
		s.tasks = make([]models.TaskEntry, len(tasks))
		copy(s.tasks, tasks)
	}
	s.notify(ChangeReplace)
}

func (s *taskListStore) Tasks() []models.TaskEntry {
	return s.tasks
}

func (s *taskListStore) Len() int {
	return len(s.tasks)
}

// IsEmpty reports whether the list holds no meaningful content: zero records,
// or every record's trimmed detail is empty.
func (s *taskListStore) IsEmpty() bool {
	for _, t := range s.tasks {
		if strings.TrimSpace(t.Detail) != "" {
			return false
		}
	}
	return true
}

// Validate checks every record against the field length limits.
func (s *taskListStore) Validate() []FieldError {
	return validateTasks(s.tasks)
}

func (s *taskListStore) Subscribe(listener func(change StructuralChange)) {
	s.listeners = append(s.listeners, listener)
}
