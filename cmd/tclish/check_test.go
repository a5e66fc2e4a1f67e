package main

import (
	"strings"
	"testing"

	"github.com/mgomes/tclish/tcl"
)

func TestCheckScriptReportsIssues(t *testing.T) {
	interp := tcl.MustNewInterpreter(tcl.Config{})
	tree, err := tcl.ParseScript("set x 1\nputs\nnosuch a\nif {1} {bogus}\nputs [frob]\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	warnings := checkScript(interp, tree)
	want := []lintWarning{
		{Pos: tcl.Position{Line: 2, Column: 1}, Command: "puts", Message: "wrong # args: got 0, want 1 to 2"},
		{Pos: tcl.Position{Line: 3, Column: 1}, Command: "nosuch", Message: "unknown command"},
		{Pos: tcl.Position{Line: 4, Column: 9}, Command: "bogus", Message: "unknown command"},
		{Pos: tcl.Position{Line: 5, Column: 7}, Command: "frob", Message: "unknown command"},
	}
	if len(warnings) != len(want) {
		t.Fatalf("expected %d warnings, got %d: %+v", len(want), len(warnings), warnings)
	}
	for i := range want {
		if warnings[i] != want[i] {
			t.Fatalf("warning %d: expected %+v, got %+v", i, want[i], warnings[i])
		}
	}
}

func TestCheckScriptDescendsIntoControlBodies(t *testing.T) {
	interp := tcl.MustNewInterpreter(tcl.Config{})
	tree, err := tcl.ParseScript(`for {set i 0} {$i < 3} {incr i} {
  foreach x {a b} {
    if {$x eq "a"} then {puts $x} elseif {1} {nope1} else {nope2}
  }
}
while {1} {break extra}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	warnings := checkScript(interp, tree)
	var got []string
	for _, w := range warnings {
		got = append(got, w.Command+"@"+w.Pos.String())
	}
	joined := strings.Join(got, " ")
	if joined != "nope1@3:47 nope2@3:60 break@6:12" {
		t.Fatalf("unexpected warnings: %s", joined)
	}
}

func TestCheckScriptRespectsRegisteredCommands(t *testing.T) {
	interp := tcl.MustNewInterpreter(tcl.Config{})
	if err := interp.RegisterScript("greet", []string{"name", "args"}, "puts $name"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tree, err := tcl.ParseScript("greet a b c\ngreet")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	warnings := checkScript(interp, tree)
	if len(warnings) != 1 || warnings[0].Message != "wrong # args: got 0, want at least 1" {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
}

func TestCheckCommand(t *testing.T) {
	clean := writeScript(t, "set x 1\nputs $x\n")
	out, err := executeCLI(t, "", "check", clean)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if strings.TrimSpace(out) != "No issues found" {
		t.Fatalf("unexpected output: %q", out)
	}

	dirty := writeScript(t, "nosuch\n")
	out, err = executeCLI(t, "", "check", dirty)
	if err == nil || !strings.Contains(err.Error(), "check found 1 issue(s)") {
		t.Fatalf("expected issue count error, got %v", err)
	}
	if !strings.Contains(out, dirty+":1:1: unknown command (nosuch)") {
		t.Fatalf("unexpected output: %q", out)
	}
}
