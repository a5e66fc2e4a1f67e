package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatTclSource(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"set x 1  \r\nputs $x\t\n", "set x 1\nputs $x\n"},
		{"\n\nset x 1\n\n\n\nputs $x\n\n\n", "set x 1\n\nputs $x\n"},
		{"puts a\\ \nputs b", "puts a\\ \nputs b\n"},
		{"", ""},
		{"\n \n", ""},
	}
	for _, tt := range tests {
		if got := formatTclSource(tt.input); got != tt.want {
			t.Fatalf("formatTclSource(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFmtCommandRequiresPath(t *testing.T) {
	if _, err := executeCLI(t, "", "fmt"); err == nil {
		t.Fatalf("expected path required error")
	}
}

func TestFmtCommandCheckDetectsUnformattedFiles(t *testing.T) {
	path := writeScript(t, "set x 1  \nputs $x\t \n")
	out, err := executeCLI(t, "", "fmt", "--check", path)
	if err == nil || !strings.Contains(err.Error(), "need formatting") {
		t.Fatalf("expected formatting check failure, got %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Fatalf("expected the unformatted path to be listed, got %q", out)
	}
}

func TestFmtCommandWriteFormatsFileInPlace(t *testing.T) {
	path := writeScript(t, "set x 1  \nputs $x\t \n")
	if _, err := executeCLI(t, "", "fmt", "-w", path); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}
	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	if got := string(updated); got != "set x 1\nputs $x\n" {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtCommandPrintsFormattedOutput(t *testing.T) {
	path := writeScript(t, "puts a   \n\n\n\nputs b")
	out, err := executeCLI(t, "", "fmt", path)
	if err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	if out != "puts a\n\nputs b\n" {
		t.Fatalf("unexpected stdout output: %q", out)
	}
}

func TestFmtCommandFormatsDirectories(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "a.tcl")
	second := filepath.Join(root, "nested", "b.tcl")
	skipped := filepath.Join(root, "notes.txt")
	if err := os.MkdirAll(filepath.Dir(second), 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	for path, content := range map[string]string{
		first:   "puts 1  \n",
		second:  "puts 2\t\n",
		skipped: "left alone  \n",
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	if _, err := executeCLI(t, "", "fmt", "-w", root); err != nil {
		t.Fatalf("fmt directory failed: %v", err)
	}
	if _, err := executeCLI(t, "", "fmt", "--check", root); err != nil {
		t.Fatalf("expected no formatting diffs after write, got %v", err)
	}
	data, err := os.ReadFile(skipped)
	if err != nil {
		t.Fatalf("read skipped file: %v", err)
	}
	if string(data) != "left alone  \n" {
		t.Fatalf("non-tcl file was modified: %q", data)
	}
}
