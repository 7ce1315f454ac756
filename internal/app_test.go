package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/warit-s/bomreport/internal/core"
)

func newTestApp(t *testing.T, basePath string) *App {
	t.Helper()
	app, err := NewApp(basePath)
	if err != nil {
		t.Fatalf("creating app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewAppWiresServices(t *testing.T) {
	app := newTestApp(t, t.TempDir())

	if app.ConfigMgr == nil || app.KV == nil || app.Store == nil || app.Reports == nil {
		t.Fatal("expected all core services to be wired")
	}
	if !app.Store.Available() {
		t.Error("store should be available under a writable base path")
	}
	// Event logging defaults to enabled.
	if app.EventLog == nil {
		t.Error("expected an event log with default config")
	}
	// No webhook configured by default.
	if app.Notifier != nil {
		t.Error("expected no notifier without webhook_url")
	}
}

func TestDraftSurvivesAppRestart(t *testing.T) {
	base := t.TempDir()

	first := newTestApp(t, base)
	first.Reports.SetField(core.FieldProjectName, "persistent project")
	detail := "carry me over"
	first.Reports.UpdateTask(0, core.TaskPatch{Detail: &detail})

	second := newTestApp(t, base)
	if got := second.Reports.Field(core.FieldProjectName); got != "persistent project" {
		t.Errorf("project not restored: %q", got)
	}
	tasks := second.Reports.Tasks()
	if len(tasks) != 1 || tasks[0].Detail != "carry me over" {
		t.Errorf("tasks not restored: %+v", tasks)
	}
}

func TestResolveBasePathPrefersEnvVar(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOMREPORT_HOME", dir)

	if got := ResolveBasePath(); got != dir {
		t.Errorf("expected %q, got %q", dir, got)
	}
}

func TestResolveBasePathWalksUpToConfigFile(t *testing.T) {
	t.Setenv("BOMREPORT_HOME", "")

	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, ".bomreportrc"), []byte("history_cap: 5\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	nested := filepath.Join(base, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	got := ResolveBasePath()
	// Resolve symlinks before comparing; temp dirs may be linked.
	wantReal, _ := filepath.EvalSymlinks(base)
	gotReal, _ := filepath.EvalSymlinks(got)
	if gotReal != wantReal {
		t.Errorf("expected %q, got %q", wantReal, gotReal)
	}
}
