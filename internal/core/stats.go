package core

import (
	"strings"

	"github.com/warit-s/bomreport/pkg/models"
)

// StatusSummary aggregates task counts by status. Only tasks with a
// non-empty trimmed detail are counted; blank placeholder rows are noise.
type StatusSummary struct {
	Total    int
	ByStatus map[models.TaskStatus]int
}

// SummarizeStatuses tallies the detailed tasks by normalized status.
func SummarizeStatuses(tasks []models.TaskEntry) StatusSummary {
	summary := StatusSummary{ByStatus: make(map[models.TaskStatus]int)}
	for _, t := range tasks {
		if strings.TrimSpace(t.Detail) == "" {
			continue
		}
		summary.Total++
		summary.ByStatus[models.NormalizeStatus(string(t.Status))]++
	}
	return summary
}

// DoneRatio is the fraction of counted tasks with status OK.
func (s StatusSummary) DoneRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.ByStatus[models.StatusOK]) / float64(s.Total)
}
