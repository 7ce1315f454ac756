// Package mcp provides an MCP (Model Context Protocol) server that exposes
// bomreport functionality as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/warit-s/bomreport/internal/core"
	"github.com/warit-s/bomreport/internal/storage"
	"github.com/warit-s/bomreport/pkg/models"
)

// Server wraps the report services and exposes them as MCP tools.
type Server struct {
	server  *gomcp.Server
	reports core.ReportManager
	store   storage.DraftStoreManager
}

// NewServer creates a new MCP server over the given report services.
// store may be nil when persistence is unavailable.
func NewServer(reports core.ReportManager, store storage.DraftStoreManager, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		reports: reports,
		store:   store,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "bomreport", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type taskOutput struct {
	Position int    `json:"position"`
	Detail   string `json:"detail"`
	Status   string `json:"status"`
	Remark   string `json:"remark,omitempty"`
}

type getReportInput struct{}

type reportOutput struct {
	WorkBOM     string       `json:"work_bom,omitempty"`
	ProjectName string       `json:"project_name,omitempty"`
	Problems    string       `json:"problems,omitempty"`
	Tasks       []taskOutput `json:"tasks"`
}

type setFieldInput struct {
	Field string `json:"field" jsonschema:"required,the field to set (workBom, projectName, or problems)"`
	Value string `json:"value" jsonschema:"the new value; an empty string clears the field"`
}

type messageOutput struct {
	Message string `json:"message"`
}

type addTaskInput struct {
	Detail string `json:"detail,omitempty" jsonschema:"task description text"`
	Status string `json:"status,omitempty" jsonschema:"task status (OK, Pending, In Progress, Waiting, NG, None). Defaults to OK."`
	Remark string `json:"remark,omitempty" jsonschema:"optional remark"`
}

type addTaskOutput struct {
	Position int `json:"position"`
	Count    int `json:"count"`
}

type updateTaskInput struct {
	Position int     `json:"position" jsonschema:"required,1-based task position"`
	Detail   *string `json:"detail,omitempty" jsonschema:"new task description; omit to keep the current one"`
	Status   *string `json:"status,omitempty" jsonschema:"new status (OK, Pending, In Progress, Waiting, NG, None); omit to keep"`
	Remark   *string `json:"remark,omitempty" jsonschema:"new remark; omit to keep"`
}

type removeTaskInput struct {
	Position int `json:"position" jsonschema:"required,1-based task position"`
}

type moveTaskInput struct {
	Position  int    `json:"position" jsonschema:"required,1-based task position"`
	Direction string `json:"direction" jsonschema:"required,either up or down"`
}

type generateReportInput struct {
	SkipHistory bool `json:"skip_history,omitempty" jsonschema:"when true the generated report is not recorded in history"`
}

type generateReportOutput struct {
	Report   string `json:"report"`
	Recorded bool   `json:"recorded"`
}

type validateReportInput struct{}

type fieldErrorOutput struct {
	Field    string `json:"field"`
	Position int    `json:"position,omitempty"`
	Message  string `json:"message"`
}

type validateReportOutput struct {
	Valid  bool               `json:"valid"`
	Errors []fieldErrorOutput `json:"errors,omitempty"`
}

type listHistoryInput struct{}

type historyEntryOutput struct {
	Position  int    `json:"position"`
	Timestamp string `json:"timestamp"`
	WorkBOM   string `json:"work_bom,omitempty"`
	Project   string `json:"project,omitempty"`
	TaskCount int    `json:"task_count"`
}

type listHistoryOutput struct {
	Entries []historyEntryOutput `json:"entries"`
	Count   int                  `json:"count"`
}

type restoreHistoryInput struct {
	Position int `json:"position" jsonschema:"required,1-based history position (1 is the most recent)"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_report",
		Description: "Get the current draft report: Work BOM, project name, problem notes, and the ordered task list.",
	}, s.handleGetReport)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "set_field",
		Description: "Set a scalar report field. Valid fields: workBom, projectName, problems.",
	}, s.handleSetField)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Append a task entry to the draft. Returns the new task's 1-based position.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_task",
		Description: "Update a task entry in place. Only the provided fields change.",
	}, s.handleUpdateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "remove_task",
		Description: "Remove a task entry by its 1-based position.",
	}, s.handleRemoveTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "move_task",
		Description: "Move a task entry one step up or down in the ordered list.",
	}, s.handleMoveTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "generate_report",
		Description: "Serialize the current draft into the final report text and record it in history.",
	}, s.handleGenerateReport)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "validate_report",
		Description: "Validate the current draft. Returns advisory field errors; they never block generation.",
	}, s.handleValidateReport)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_history",
		Description: "List recorded report snapshots, most recent first.",
	}, s.handleListHistory)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "restore_history",
		Description: "Replace the current draft with a recorded history snapshot.",
	}, s.handleRestoreHistory)
}

// --- Tool handlers ---

func (s *Server) handleGetReport(_ context.Context, _ *gomcp.CallToolRequest, _ getReportInput) (*gomcp.CallToolResult, reportOutput, error) {
	snapshot := s.reports.BuildSnapshot()
	return nil, snapshotToOutput(snapshot), nil
}

func (s *Server) handleSetField(_ context.Context, _ *gomcp.CallToolRequest, input setFieldInput) (*gomcp.CallToolResult, messageOutput, error) {
	switch input.Field {
	case core.FieldWorkBOM, core.FieldProjectName, core.FieldProblems:
	default:
		return errorResult(fmt.Sprintf("invalid field %q: must be one of workBom, projectName, problems", input.Field)), messageOutput{}, nil
	}

	s.reports.SetField(input.Field, input.Value)
	return nil, messageOutput{Message: fmt.Sprintf("%s set", input.Field)}, nil
}

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, addTaskOutput, error) {
	patch := core.TaskPatch{}
	if input.Detail != "" {
		patch.Detail = &input.Detail
	}
	if input.Status != "" {
		status := models.NormalizeStatus(input.Status)
		patch.Status = &status
	}
	if input.Remark != "" {
		patch.Remark = &input.Remark
	}

	idx := s.reports.AddTask(patch)
	return nil, addTaskOutput{Position: idx + 1, Count: len(s.reports.Tasks())}, nil
}

func (s *Server) handleUpdateTask(_ context.Context, _ *gomcp.CallToolRequest, input updateTaskInput) (*gomcp.CallToolResult, messageOutput, error) {
	patch := core.TaskPatch{Detail: input.Detail, Remark: input.Remark}
	if input.Status != nil {
		status := models.NormalizeStatus(*input.Status)
		patch.Status = &status
	}

	if !s.reports.UpdateTask(input.Position-1, patch) {
		return errorResult(fmt.Sprintf("no task at position %d", input.Position)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %d updated", input.Position)}, nil
}

func (s *Server) handleRemoveTask(_ context.Context, _ *gomcp.CallToolRequest, input removeTaskInput) (*gomcp.CallToolResult, messageOutput, error) {
	if !s.reports.RemoveTask(input.Position - 1) {
		return errorResult(fmt.Sprintf("no task at position %d", input.Position)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %d removed", input.Position)}, nil
}

func (s *Server) handleMoveTask(_ context.Context, _ *gomcp.CallToolRequest, input moveTaskInput) (*gomcp.CallToolResult, messageOutput, error) {
	var moved bool
	switch input.Direction {
	case "up":
		moved = s.reports.MoveTaskUp(input.Position - 1)
	case "down":
		moved = s.reports.MoveTaskDown(input.Position - 1)
	default:
		return errorResult(fmt.Sprintf("invalid direction %q: must be up or down", input.Direction)), messageOutput{}, nil
	}

	if !moved {
		return errorResult(fmt.Sprintf("cannot move task %d %s", input.Position, input.Direction)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %d moved %s", input.Position, input.Direction)}, nil
}

func (s *Server) handleGenerateReport(_ context.Context, _ *gomcp.CallToolRequest, input generateReportInput) (*gomcp.CallToolResult, generateReportOutput, error) {
	now := time.Now()
	snapshot := s.reports.BuildSnapshot()
	text := core.SerializeReport(snapshot, now)

	recorded := false
	if !input.SkipHistory && s.store != nil {
		recorded = s.store.AppendHistory(snapshot, now)
	}

	return nil, generateReportOutput{Report: text, Recorded: recorded}, nil
}

func (s *Server) handleValidateReport(_ context.Context, _ *gomcp.CallToolRequest, _ validateReportInput) (*gomcp.CallToolResult, validateReportOutput, error) {
	result := s.reports.Validate()

	out := validateReportOutput{Valid: result.Valid}
	for _, fe := range result.Errors {
		entry := fieldErrorOutput{Field: fe.Field, Message: fe.Message}
		if fe.Index >= 0 {
			entry.Position = fe.Index + 1
		}
		out.Errors = append(out.Errors, entry)
	}
	return nil, out, nil
}

func (s *Server) handleListHistory(_ context.Context, _ *gomcp.CallToolRequest, _ listHistoryInput) (*gomcp.CallToolResult, listHistoryOutput, error) {
	if s.store == nil {
		return errorResult("history store not available"), listHistoryOutput{}, nil
	}

	entries := s.store.LoadHistory()
	out := listHistoryOutput{
		Entries: make([]historyEntryOutput, len(entries)),
		Count:   len(entries),
	}
	for i, e := range entries {
		out.Entries[i] = historyEntryOutput{
			Position:  i + 1,
			Timestamp: e.Timestamp,
			WorkBOM:   e.Data.WorkBOM,
			Project:   e.Data.ProjectName,
			TaskCount: countDetailedTasks(e.Data.Tasks),
		}
	}
	return nil, out, nil
}

func (s *Server) handleRestoreHistory(_ context.Context, _ *gomcp.CallToolRequest, input restoreHistoryInput) (*gomcp.CallToolResult, messageOutput, error) {
	if s.store == nil {
		return errorResult("history store not available"), messageOutput{}, nil
	}

	entries := s.store.LoadHistory()
	if input.Position < 1 || input.Position > len(entries) {
		return errorResult(fmt.Sprintf("no history entry at position %d", input.Position)), messageOutput{}, nil
	}

	s.reports.Restore(entries[input.Position-1].Data)
	return nil, messageOutput{Message: fmt.Sprintf("draft restored from history entry %d", input.Position)}, nil
}

// --- Helpers ---

func snapshotToOutput(snapshot models.ReportSnapshot) reportOutput {
	out := reportOutput{
		WorkBOM:     snapshot.WorkBOM,
		ProjectName: snapshot.ProjectName,
		Problems:    snapshot.Problems,
		Tasks:       make([]taskOutput, len(snapshot.Tasks)),
	}
	for i, t := range snapshot.Tasks {
		out.Tasks[i] = taskOutput{
			Position: i + 1,
			Detail:   t.Detail,
			Status:   string(t.Status),
			Remark:   t.Remark,
		}
	}
	return out
}

func countDetailedTasks(tasks []models.TaskEntry) int {
	n := 0
	for _, t := range tasks {
		if strings.TrimSpace(t.Detail) != "" {
			n++
		}
	}
	return n
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
