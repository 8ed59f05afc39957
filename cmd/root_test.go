package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/usvtools/usv-to-xlsx/internal/types"
	"github.com/usvtools/usv-to-xlsx/internal/xlsxinspect"
)

const (
	oneGroup = "a␟b␟␞c␟d␟␞␝"
	twoFiles = oneGroup + "␜" + oneGroup + "␜"
)

var oneGroupBook = types.Book{Sheets: []types.Sheet{
	{Name: "Sheet1", Rows: [][]string{{"a", "b"}, {"c", "d"}}},
}}

// run executes the CLI from an empty working directory so no stray
// usv-to-xlsx.yaml is picked up.
func run(t *testing.T, input string, args ...string) (int, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	code := Run(args, strings.NewReader(input), &stdout, &stderr)
	return code, &stdout, &stderr
}

func TestRunWritesWorkbookToStdout(t *testing.T) {
	code, stdout, stderr := run(t, oneGroup)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr)
	}

	book, err := xlsxinspect.Bytes(stdout.Bytes())
	if err != nil {
		t.Fatalf("inspect stdout: %v", err)
	}
	if !book.Equal(oneGroupBook) {
		t.Errorf("workbook mismatch:\n%s", book.Summary())
	}
}

func TestRunEmptyInput(t *testing.T) {
	code, stdout, stderr := run(t, "")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if stdout.Len() == 0 {
		t.Error("expected a workbook on stdout")
	}
	if _, err := xlsxinspect.Bytes(stdout.Bytes()); err != nil {
		t.Errorf("stdout is not a workbook: %v", err)
	}
}

func TestRunSheetPrefix(t *testing.T) {
	code, stdout, stderr := run(t, oneGroup, "--sheet-prefix", "Group")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	book, err := xlsxinspect.Bytes(stdout.Bytes())
	if err != nil {
		t.Fatalf("inspect stdout: %v", err)
	}
	if len(book.Sheets) != 1 || book.Sheets[0].Name != "Group1" {
		t.Errorf("sheets = %+v, want one sheet named Group1", book.Sheets)
	}
}

func TestRunInvalidSheetPrefix(t *testing.T) {
	code, _, stderr := run(t, oneGroup, "--sheet-prefix", "a/b")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Errorf("stderr = %q, want an Error: line", stderr)
	}
}

func TestRunOutputs(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.xlsx")
	second := filepath.Join(dir, "nested", "second.xlsx")

	code, stdout, stderr := run(t, twoFiles, "-o", first, "--output", second)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout has %d bytes, want none", stdout.Len())
	}

	for _, path := range []string{first, second} {
		book, err := xlsxinspect.File(path)
		if err != nil {
			t.Fatalf("inspect %s: %v", path, err)
		}
		if !book.Equal(oneGroupBook) {
			t.Errorf("%s mismatch:\n%s", path, book.Summary())
		}
	}
}

func TestRunOutputCountMismatch(t *testing.T) {
	dir := t.TempDir()
	only := filepath.Join(dir, "only.xlsx")

	code, _, stderr := run(t, twoFiles, "-o", only)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Errorf("stderr = %q, want an Error: line", stderr)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("%d files written, want none", len(entries))
	}
}

func TestRunOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	code, _, stderr := run(t, twoFiles, "--output-dir", dir)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("%d files written, want 2", len(entries))
	}
	for i, prefix := range []string{"001_", "002_"} {
		name := entries[i].Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".xlsx") {
			t.Errorf("file %d = %q, want %s*.xlsx", i, name, prefix)
		}
	}
}

func TestRunOutputFlagsAreExclusive(t *testing.T) {
	dir := t.TempDir()
	code, _, _ := run(t, oneGroup, "-o", filepath.Join(dir, "a.xlsx"), "--output-dir", dir)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunTestFlag(t *testing.T) {
	code, _, stderr := run(t, oneGroup, "--test")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}

	out := stderr.String()
	for _, want := range []string{"args: ", "== stdout", "workbook: 1 sheet(s)", `row 1: ["c" "d"]`} {
		if !strings.Contains(out, want) {
			t.Errorf("stderr missing %q:\n%s", want, out)
		}
	}
}

func TestRunVerbose(t *testing.T) {
	code, _, stderr := run(t, oneGroup, "-vvv")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stderr.String(), "input read") {
		t.Errorf("stderr = %q, want info records", stderr)
	}
	if strings.Contains(stderr.String(), "level=DEBUG") {
		t.Errorf("stderr has debug records at -vvv:\n%s", stderr)
	}
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("log_level: info\nsheet_name_prefix: Data\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := run(t, oneGroup, "--config", path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stderr.String(), "input read") {
		t.Errorf("log_level from config not applied, stderr = %q", stderr)
	}

	book, err := xlsxinspect.Bytes(stdout.Bytes())
	if err != nil {
		t.Fatalf("inspect stdout: %v", err)
	}
	if book.Sheets[0].Name != "Data1" {
		t.Errorf("sheet name = %q, want Data1", book.Sheets[0].Name)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("log_level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := run(t, oneGroup, "--config", path)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stdout.Len() != 0 {
		t.Error("expected no workbook on stdout")
	}
	if !strings.Contains(stderr.String(), "Error: failed to load config") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := run(t, "", "version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "Version:    "+Version) {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRunRejectsArguments(t *testing.T) {
	code, _, stderr := run(t, oneGroup, "input.usv")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Errorf("stderr = %q", stderr)
	}
}
