package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileKVStoreMissingKeyReadsAsAbsent(t *testing.T) {
	kv := NewFileKVStore(t.TempDir(), 0)

	data, err := kv.Get("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil for missing key, got %q", data)
	}
}

func TestFileKVStoreSetGetDelete(t *testing.T) {
	kv := NewFileKVStore(t.TempDir(), 0)

	if err := kv.Set("k", []byte("value")); err != nil {
		t.Fatalf("set: %v", err)
	}
	data, err := kv.Get("k")
	if err != nil || string(data) != "value" {
		t.Fatalf("get: %q, %v", data, err)
	}

	if err := kv.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	data, err = kv.Get("k")
	if err != nil || data != nil {
		t.Errorf("deleted key should read as absent, got %q, %v", data, err)
	}

	// Deleting a missing key is not an error.
	if err := kv.Delete("k"); err != nil {
		t.Errorf("double delete: %v", err)
	}
}

func TestFileKVStoreEnforcesQuota(t *testing.T) {
	kv := NewFileKVStore(t.TempDir(), 10)

	if err := kv.Set("a", []byte("12345")); err != nil {
		t.Fatalf("first write within quota: %v", err)
	}

	err := kv.Set("b", []byte("123456789"))
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}

	// Overwriting a key excludes its current size from the usage sum.
	if err := kv.Set("a", []byte("1234567890")); err != nil {
		t.Errorf("overwrite within quota should succeed: %v", err)
	}
}

func TestFileKVStoreUnavailableDegradesToNoOps(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "file-not-dir")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	kv := NewFileKVStore(filepath.Join(blocked, "sub"), 0)
	if kv.Available() {
		t.Fatal("store under a regular file must be unavailable")
	}
	if data, err := kv.Get("k"); data != nil || err != nil {
		t.Errorf("get on unavailable store: %q, %v", data, err)
	}
	if err := kv.Set("k", []byte("v")); err == nil {
		t.Error("set on unavailable store must fail")
	}
	if err := kv.Delete("k"); err != nil {
		t.Errorf("delete on unavailable store must be a no-op: %v", err)
	}
}
