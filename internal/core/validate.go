package core

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/warit-s/bomreport/pkg/models"
)

// workBOMPattern is the Work BOM identifier format: WB- plus one letter,
// four digits, a dash, four digits, a dash, and one letter. Matching is
// case-insensitive.
var workBOMPattern = regexp.MustCompile(`(?i)^WB-[A-Z]\d{4}-\d{4}-[A-Z]$`)

// Project name length limits, in runes, applied after trimming.
const (
	minProjectNameLen = 3
	maxProjectNameLen = 200
)

// FieldError is a single advisory validation finding. Index is the 0-based
// task index for task-level errors and -1 for scalar fields.
type FieldError struct {
	Field   string
	Index   int
	Message string
}

// ValidationResult is the union of all findings for a snapshot. Validation
// never blocks an operation; callers surface the errors as warnings.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// ValidateWorkBOM checks the Work BOM identifier format. An empty value is
// valid; the field is optional.
func ValidateWorkBOM(value string) *FieldError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if !workBOMPattern.MatchString(trimmed) {
		return &FieldError{
			Field:   FieldWorkBOM,
			Index:   -1,
			Message: "must match WB-A0000-0000-A (letter, 4 digits, 4 digits, letter)",
		}
	}
	return nil
}

// ValidateProjectName checks the project name length. An empty value is
// valid; the field is optional.
func ValidateProjectName(value string) *FieldError {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	n := utf8.RuneCountInString(trimmed)
	if n < minProjectNameLen || n > maxProjectNameLen {
		return &FieldError{
			Field:   FieldProjectName,
			Index:   -1,
			Message: fmt.Sprintf("must be %d-%d characters, got %d", minProjectNameLen, maxProjectNameLen, n),
		}
	}
	return nil
}

func validateScalars(snapshot models.ReportSnapshot) []FieldError {
	var errs []FieldError
	if fe := ValidateWorkBOM(snapshot.WorkBOM); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := ValidateProjectName(snapshot.ProjectName); fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}

func validateTasks(tasks []models.TaskEntry) []FieldError {
	var errs []FieldError
	for i, t := range tasks {
		if utf8.RuneCountInString(t.Detail) > models.MaxDetailLen {
			errs = append(errs, FieldError{
				Field:   "detail",
				Index:   i,
				Message: fmt.Sprintf("detail exceeds %d characters", models.MaxDetailLen),
			})
		}
		if utf8.RuneCountInString(t.Remark) > models.MaxRemarkLen {
			errs = append(errs, FieldError{
				Field:   "remark",
				Index:   i,
				Message: fmt.Sprintf("remark exceeds %d characters", models.MaxRemarkLen),
			})
		}
	}
	return errs
}

// ValidateSnapshot unions the scalar-field and task-level checks.
func ValidateSnapshot(snapshot models.ReportSnapshot) ValidationResult {
	errs := append(validateScalars(snapshot), validateTasks(snapshot.Tasks)...)
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
