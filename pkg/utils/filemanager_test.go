package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "out.xlsx")

	if err := EnsureParentDir(path); err != nil {
		t.Fatalf("EnsureParentDir: %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("parent directory not created: %v", err)
	}

	if err := EnsureParentDir("relative.xlsx"); err != nil {
		t.Errorf("EnsureParentDir on bare name: %v", err)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x")
	if FileExists(path) {
		t.Fatal("file should not exist yet")
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("file should exist")
	}
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{index}_{date}", map[string]string{"index": "007"})

	if !strings.HasPrefix(name, "007_") {
		t.Errorf("expected index prefix, got %q", name)
	}
	if !strings.HasSuffix(name, ".xlsx") {
		t.Errorf("expected .xlsx suffix, got %q", name)
	}
	if strings.Contains(name, "{") {
		t.Errorf("unreplaced placeholder in %q", name)
	}

	a := GenerateOutputFileName("{uuid}.xlsx", nil)
	b := GenerateOutputFileName("{uuid}.xlsx", nil)
	if a == b {
		t.Errorf("uuid names should differ, both %q", a)
	}
}

func TestDestinationNames(t *testing.T) {
	names := DestinationNames("out", "{index}_{uuid}.xlsx", 3)

	if len(names) != 3 {
		t.Fatalf("len = %d, want 3", len(names))
	}
	for i, name := range names {
		if filepath.Dir(name) != "out" {
			t.Errorf("names[%d] = %q, want it inside out/", i, name)
		}
	}
	if !strings.HasPrefix(filepath.Base(names[1]), "002_") {
		t.Errorf("names[1] = %q, want 002_ prefix", names[1])
	}
}

func TestDestinationNamesAddsIndex(t *testing.T) {
	names := DestinationNames("", "report.xlsx", 2)

	if names[0] != "report_001.xlsx" || names[1] != "report_002.xlsx" {
		t.Errorf("names = %v", names)
	}
}

func TestDestinationNamesZero(t *testing.T) {
	if names := DestinationNames("out", "{index}.xlsx", 0); len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}
}
