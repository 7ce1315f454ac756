package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/warit-s/bomreport/pkg/models"
)

const (
	separator          = "------------------------------"
	noTasksPlaceholder = "- ไม่มีรายการ -"
)

// thaiMonths holds the Thai month names, January first.
var thaiMonths = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน",
	"พฤษภาคม", "มิถุนายน", "กรกฎาคม", "สิงหาคม",
	"กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// FormatThaiDate renders a date in long Thai form with the Buddhist Era
// year, e.g. "31 สิงหาคม 2569".
func FormatThaiDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], t.Year()+543)
}

// FormatThaiTimestamp renders a short numeric timestamp with the Buddhist
// Era year, e.g. "31/8/2569 14:30:05". Used for history entry labels.
func FormatThaiTimestamp(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d %02d:%02d:%02d",
		t.Day(), int(t.Month()), t.Year()+543,
		t.Hour(), t.Minute(), t.Second())
}

// SerializeReport renders a snapshot into the canonical report text. It is
// a pure function of its inputs: the same snapshot and timestamp always
// produce byte-identical output.
//
// Tasks whose trimmed detail is empty are skipped, and numbering runs over
// the included tasks only, starting at 1.
func SerializeReport(snapshot models.ReportSnapshot, now time.Time) string {
	var lines []string

	lines = append(lines, "📅 รายงานวันที่: "+FormatThaiDate(now))

	bom := strings.TrimSpace(snapshot.WorkBOM)
	project := strings.TrimSpace(snapshot.ProjectName)
	if bom != "" {
		lines = append(lines, "🔖 Work BOM : "+bom)
	}
	if project != "" {
		lines = append(lines, "🏷️ Project : "+project)
	}
	if bom != "" || project != "" {
		lines = append(lines, separator)
	}

	lines = append(lines, "✅ **รายละเอียดงาน**")

	n := 0
	for _, task := range snapshot.Tasks {
		detail := strings.TrimSpace(task.Detail)
		if detail == "" {
			continue
		}
		n++
		lines = append(lines, fmt.Sprintf("%d. %s", n, detail))
		lines = append(lines, "   🚦 Status: "+string(task.Status))
		remark := strings.TrimSpace(task.Remark)
		if remark != "" && remark != "-" {
			lines = append(lines, "   💬 Remark: "+remark)
		}
	}
	if n == 0 {
		lines = append(lines, noTasksPlaceholder)
	}

	problems := strings.TrimSpace(snapshot.Problems)
	if problems != "" {
		lines = append(lines, separator)
		lines = append(lines, "📌 **ปัญหา**")
		lines = append(lines, problems)
	}

	return strings.TrimRight(strings.Join(lines, "\n"), " \t\n")
}
