package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/warit-s/bomreport/internal/core"
	"github.com/warit-s/bomreport/internal/observability"
	"github.com/warit-s/bomreport/pkg/models"
)

// Focus areas of the edit form.
const (
	focusBOM = iota
	focusProject
	focusTasks
	focusProblems
	focusCount
)

// editTheme holds the lipgloss styles for one theme.
type editTheme struct {
	title    lipgloss.Style
	label    lipgloss.Style
	active   lipgloss.Style
	cursor   lipgloss.Style
	status   lipgloss.Style
	help     lipgloss.Style
	feedback lipgloss.Style
}

func themeStyles(name string) editTheme {
	accent := lipgloss.Color("62")
	dim := lipgloss.Color("241")
	if name == "dark" {
		accent = lipgloss.Color("141")
		dim = lipgloss.Color("245")
	}
	return editTheme{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(accent).Padding(0, 1),
		label:    lipgloss.NewStyle().Foreground(dim),
		active:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		cursor:   lipgloss.NewStyle().Foreground(accent),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		help:     lipgloss.NewStyle().Foreground(dim),
		feedback: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}
}

type editModel struct {
	reports core.ReportManager
	styles  editTheme

	focus    int
	taskIdx  int
	editing  bool
	preview  bool
	feedback string

	bomInput     textinput.Model
	projectInput textinput.Model
	detailInput  textinput.Model
	remarkInput  textinput.Model
	problemsArea textarea.Model
}

func newEditModel(reports core.ReportManager) editModel {
	bom := textinput.New()
	bom.Placeholder = "WB-S2407-0105-A"
	bom.SetValue(reports.Field(core.FieldWorkBOM))
	bom.Focus()

	project := textinput.New()
	project.Placeholder = "Project name"
	project.SetValue(reports.Field(core.FieldProjectName))

	detail := textinput.New()
	detail.Placeholder = "Task detail"

	remark := textinput.New()
	remark.Placeholder = "Remark"

	problems := textarea.New()
	problems.Placeholder = "Problem notes"
	problems.SetValue(reports.Field(core.FieldProblems))
	problems.SetHeight(3)

	return editModel{
		reports:      reports,
		styles:       themeStyles(currentTheme()),
		bomInput:     bom,
		projectInput: project,
		detailInput:  detail,
		remarkInput:  remark,
		problemsArea: problems,
	}
}

func (m editModel) Init() tea.Cmd {
	return textinput.Blink
}

// syncFields pushes the input widget values into the report state, which
// persists the draft synchronously.
func (m *editModel) syncFields() {
	m.reports.SetField(core.FieldWorkBOM, m.bomInput.Value())
	m.reports.SetField(core.FieldProjectName, m.projectInput.Value())
	m.reports.SetField(core.FieldProblems, m.problemsArea.Value())
}

func (m *editModel) setFocus(focus int) {
	m.focus = focus
	m.bomInput.Blur()
	m.projectInput.Blur()
	m.problemsArea.Blur()
	switch focus {
	case focusBOM:
		m.bomInput.Focus()
	case focusProject:
		m.projectInput.Focus()
	case focusProblems:
		m.problemsArea.Focus()
	}
}

func (m *editModel) clampTaskIdx() {
	n := len(m.reports.Tasks())
	if m.taskIdx >= n {
		m.taskIdx = n - 1
	}
	if m.taskIdx < 0 {
		m.taskIdx = 0
	}
}

// cycleStatus advances the selected task's status through the display order.
func (m *editModel) cycleStatus() {
	tasks := m.reports.Tasks()
	if m.taskIdx >= len(tasks) {
		return
	}
	current := models.NormalizeStatus(string(tasks[m.taskIdx].Status))
	next := models.AllStatuses[0]
	for i, s := range models.AllStatuses {
		if s == current {
			next = models.AllStatuses[(i+1)%len(models.AllStatuses)]
			break
		}
	}
	m.reports.UpdateTask(m.taskIdx, core.TaskPatch{Status: &next})
}

func (m *editModel) startTaskEdit() {
	tasks := m.reports.Tasks()
	if m.taskIdx >= len(tasks) {
		return
	}
	m.editing = true
	m.detailInput.SetValue(tasks[m.taskIdx].Detail)
	m.remarkInput.SetValue(tasks[m.taskIdx].Remark)
	m.detailInput.Focus()
	m.remarkInput.Blur()
}

func (m *editModel) finishTaskEdit(save bool) {
	m.editing = false
	m.detailInput.Blur()
	m.remarkInput.Blur()
	if !save {
		return
	}
	detail := m.detailInput.Value()
	remark := m.remarkInput.Value()
	m.reports.UpdateTask(m.taskIdx, core.TaskPatch{Detail: &detail, Remark: &remark})
}

func (m *editModel) generate() {
	m.syncFields()
	now := time.Now()
	snapshot := m.reports.BuildSnapshot()
	text := core.SerializeReport(snapshot, now)
	if err := clipboard.WriteAll(text); err != nil {
		m.feedback = fmt.Sprintf("clipboard copy failed: %v", err)
	} else {
		m.feedback = "Report copied to clipboard."
	}
	if Store != nil && Store.AppendHistory(snapshot, now) {
		logEvent(observability.EventReportGenerated, map[string]any{
			"tasks": len(snapshot.Tasks),
		})
	}
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if isKey && m.editing {
		switch keyMsg.String() {
		case "esc":
			m.finishTaskEdit(false)
			return m, nil
		case "enter":
			m.finishTaskEdit(true)
			return m, nil
		case "tab":
			if m.detailInput.Focused() {
				m.detailInput.Blur()
				m.remarkInput.Focus()
			} else {
				m.remarkInput.Blur()
				m.detailInput.Focus()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.detailInput.Focused() {
			m.detailInput, cmd = m.detailInput.Update(msg)
		} else {
			m.remarkInput, cmd = m.remarkInput.Update(msg)
		}
		return m, cmd
	}

	if isKey {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.syncFields()
			return m, tea.Quit
		case "tab":
			m.syncFields()
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil
		case "shift+tab":
			m.syncFields()
			m.setFocus((m.focus - 1 + focusCount) % focusCount)
			return m, nil
		case "ctrl+g":
			m.generate()
			return m, nil
		case "ctrl+p":
			m.syncFields()
			m.preview = !m.preview
			return m, nil
		}

		if m.focus == focusTasks {
			switch keyMsg.String() {
			case "up", "k":
				m.taskIdx--
				m.clampTaskIdx()
				return m, nil
			case "down", "j":
				m.taskIdx++
				m.clampTaskIdx()
				return m, nil
			case "K":
				if m.reports.MoveTaskUp(m.taskIdx) {
					m.taskIdx--
				}
				return m, nil
			case "J":
				if m.reports.MoveTaskDown(m.taskIdx) {
					m.taskIdx++
				}
				return m, nil
			case "a", "+":
				m.taskIdx = m.reports.AddTask(core.TaskPatch{})
				m.startTaskEdit()
				return m, nil
			case "x", "delete":
				m.reports.RemoveTask(m.taskIdx)
				m.clampTaskIdx()
				return m, nil
			case "s":
				m.cycleStatus()
				return m, nil
			case "enter":
				m.startTaskEdit()
				return m, nil
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusBOM:
		m.bomInput, cmd = m.bomInput.Update(msg)
	case focusProject:
		m.projectInput, cmd = m.projectInput.Update(msg)
	case focusProblems:
		m.problemsArea, cmd = m.problemsArea.Update(msg)
	}
	return m, cmd
}

func (m editModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(" bomreport "))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLine(focusBOM, "Work BOM", m.bomInput.View()))
	b.WriteString(m.fieldLine(focusProject, "Project", m.projectInput.View()))
	b.WriteString("\n")

	b.WriteString(m.renderTasks())
	b.WriteString("\n")

	b.WriteString(m.fieldLine(focusProblems, "Problems", "\n"+m.problemsArea.View()))

	if m.preview {
		b.WriteString("\n")
		b.WriteString(m.styles.label.Render(separatorLine()))
		b.WriteString("\n")
		b.WriteString(core.SerializeReport(m.reports.BuildSnapshot(), time.Now()))
		b.WriteString("\n")
	}

	if m.feedback != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.feedback.Render(m.feedback))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(
		"tab: next field | tasks: a add, x delete, s status, K/J move, enter edit\n" +
			"ctrl+g: generate + copy | ctrl+p: preview | esc: save and quit"))
	b.WriteString("\n")
	return b.String()
}

func (m editModel) fieldLine(focus int, label, value string) string {
	style := m.styles.label
	if m.focus == focus {
		style = m.styles.active
	}
	return fmt.Sprintf("%s %s\n", style.Render(fmt.Sprintf("%-9s", label)), value)
}

func (m editModel) renderTasks() string {
	var b strings.Builder
	header := m.styles.label
	if m.focus == focusTasks {
		header = m.styles.active
	}
	b.WriteString(header.Render("Tasks"))
	b.WriteString("\n")

	tasks := m.reports.Tasks()
	for i, t := range tasks {
		cursor := "  "
		if m.focus == focusTasks && i == m.taskIdx {
			cursor = m.styles.cursor.Render("> ")
		}
		if m.editing && i == m.taskIdx {
			b.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, m.detailInput.View(), m.remarkInput.View()))
			continue
		}
		detail := t.Detail
		if strings.TrimSpace(detail) == "" {
			detail = m.styles.label.Render("(blank)")
		}
		line := fmt.Sprintf("%s%d. %s %s", cursor, i+1, m.styles.status.Render("["+string(t.Status)+"]"), detail)
		if strings.TrimSpace(t.Remark) != "" {
			line += m.styles.label.Render("  // " + t.Remark)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if summary := core.SummarizeStatuses(tasks); summary.Total > 0 {
		b.WriteString(m.styles.label.Render(
			fmt.Sprintf("%d task(s), %.0f%% done", summary.Total, summary.DoneRatio()*100)))
		b.WriteString("\n")
	}
	return b.String()
}

func separatorLine() string {
	return strings.Repeat("-", 30)
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the draft in an interactive form",
	Long: `Open an interactive form over the current draft. Field edits are
persisted on focus changes; task mutations are persisted immediately.

Generate the report without leaving the form with ctrl+g.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Reports == nil {
			return fmt.Errorf("report manager not initialized")
		}
		p := tea.NewProgram(newEditModel(Reports), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
