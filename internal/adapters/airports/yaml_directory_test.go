package airports

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDirectoryDefaults(t *testing.T) {
	d := NewDirectory()

	a, ok := d.Lookup("DEN")
	if !ok {
		t.Fatal("expected DEN in default directory")
	}
	if a.Name != "Denver, USA" {
		t.Errorf("name = %q, want Denver, USA", a.Name)
	}

	// Lookup normalizes case and whitespace.
	if _, ok := d.Lookup(" den "); !ok {
		t.Error("expected case-insensitive lookup to succeed")
	}

	if _, ok := d.Lookup("XXX"); ok {
		t.Error("expected unknown code to miss")
	}
}

func TestDirectoryListSortedByCode(t *testing.T) {
	d := NewDirectory()

	list := d.List()
	if len(list) == 0 {
		t.Fatal("expected non-empty list")
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Code >= list[i].Code {
			t.Fatalf("list not sorted at %d: %q >= %q", i, list[i-1].Code, list[i].Code)
		}
	}
}

func TestLoadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.yaml")
	content := "- code: den\n  name: Denver, USA\n- code: SEA\n  name: Seattle, USA\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDirectory(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, ok := d.Lookup("DEN")
	if !ok {
		t.Fatal("expected DEN after load")
	}
	if a.Code != "DEN" {
		t.Errorf("code = %q, want DEN (uppercased)", a.Code)
	}
	if len(d.List()) != 2 {
		t.Errorf("expected 2 airports, got %d", len(d.List()))
	}
}

func TestLoadDirectoryRejectsBadCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.yaml")
	content := "- code: DENVER\n  name: Denver, USA\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadDirectory(path); err == nil {
		t.Fatal("expected error for non-3-letter code")
	}
}

func TestLoadDirectoryMissingFile(t *testing.T) {
	if _, err := LoadDirectory(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
