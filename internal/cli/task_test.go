package cli

import (
	"testing"

	"github.com/warit-s/bomreport/pkg/models"
)

func TestParseIndexConvertsOneBasedPositions(t *testing.T) {
	index, err := parseIndex("3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index != 2 {
		t.Errorf("expected index 2, got %d", index)
	}

	if _, err := parseIndex("abc"); err == nil {
		t.Error("expected error for non-numeric position")
	}
}

func TestPatchFromFlagsOnlyIncludesChangedFlags(t *testing.T) {
	cmd := taskUpdateCmd

	// Reset flag change tracking for a clean run.
	for _, name := range []string{"detail", "status", "remark"} {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("flag %s not registered", name)
		}
		f.Changed = false
	}

	if err := cmd.Flags().Set("status", "ng"); err != nil {
		t.Fatalf("setting flag: %v", err)
	}

	patch := patchFromFlags(cmd)
	if patch.Detail != nil || patch.Remark != nil {
		t.Error("unchanged flags must not appear in the patch")
	}
	if patch.Status == nil || *patch.Status != models.StatusNG {
		t.Errorf("expected normalized NG status, got %v", patch.Status)
	}
}
