package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_FileNotExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if f.Token() != "" {
		t.Errorf("expected empty token, got %q", f.Token())
	}
	if f.ViewMode() != "" {
		t.Errorf("expected empty view mode, got %q", f.ViewMode())
	}
}

func TestOpen_FileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	buf, _ := json.Marshal(persisted{AccessToken: "tok1", ViewMode: "employee"})
	os.WriteFile(path, buf, 0o600)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if f.Token() != "tok1" {
		t.Errorf("expected token tok1, got %q", f.Token())
	}
	if f.ViewMode() != "employee" {
		t.Errorf("expected view mode employee, got %q", f.ViewMode())
	}
}

func TestSetToken_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := f.SetToken("tok2"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Token() != "tok2" {
		t.Errorf("expected token tok2 after reopen, got %q", reopened.Token())
	}
}

func TestClearToken_KeepsViewMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	f, _ := Open(path)
	if err := f.SetToken("tok3"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if err := f.SetViewMode("admin"); err != nil {
		t.Fatalf("SetViewMode failed: %v", err)
	}
	if err := f.ClearToken(); err != nil {
		t.Fatalf("ClearToken failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Token() != "" {
		t.Errorf("expected cleared token, got %q", reopened.Token())
	}
	if reopened.ViewMode() != "admin" {
		t.Errorf("expected view mode to survive, got %q", reopened.ViewMode())
	}
}
