package tcl

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestVariableCommands(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"set x 5", "5"},
		{"set x 5; set x", "5"},
		{"append s a b c", "abc"},
		{"set s x; append s y z", "xyz"},
		{"set x 5; unset x", "5"},
		{"set a(1) one; unset a(1)", "one"},
		{"incr n", "1"},
		{"set n 5; incr n -2", "3"},
		{"set x 1; info exists x", "1"},
		{"info exists nope", "0"},
		{"set a(k) 1; info exists a(k)", "1"},
		{"set a(f(1)) v; set a(f(1))", "v"},
		{"set a 1; subst {a=$a [set a]}", "a=1 1"},
		{"eval set x 9", "9"},
		{"concat { a b } {c} {}", "a b c"},
	}
	for _, tt := range tests {
		if got := runScript(t, tt.script); got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.script, tt.want, got)
		}
	}
}

func TestUnsetMissingVariable(t *testing.T) {
	interp, _ := newTestInterpreter(t, Config{})
	_, err := interp.Run(context.Background(), "unset nope")
	var ee *ExecutionError
	if !errors.As(err, &ee) || !strings.Contains(err.Error(), `can't unset "nope"`) {
		t.Fatalf("expected unset error, got %v", err)
	}
}

func TestIncrRequiresInteger(t *testing.T) {
	interp, _ := newTestInterpreter(t, Config{})
	_, err := interp.Run(context.Background(), "set n abc; incr n")
	if err == nil || !strings.Contains(err.Error(), "expected integer") {
		t.Fatalf("expected integer error, got %v", err)
	}
}

func TestLoops(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"set s 0; for {set i 0} {$i < 5} {incr i} {set s [expr {$s + $i}]}; set s", "10"},
		{"set i 0; while {$i < 3} {incr i}", "3"},
		{"set i 0; while {1} {incr i; if {$i == 4} {break}}; set i", "4"},
		{"set s {}; for {set i 0} {$i < 5} {incr i} {if {$i % 2} {continue}; append s $i}; set s", "024"},
		{"set s {}; foreach x {a b c} {append s $x}; set s", "abc"},
		{"set s {}; foreach {k v} {a 1 b 2} {append s $k=$v,}; set s", "a=1,b=2,"},
		{"set s {}; foreach x {1 2 3 4} {if {$x == 3} break; append s $x}; set s", "12"},
		{"set s {}; foreach x {1 2 3} {append s [if {$x == 2} continue; set x]}; set s", "13"},
	}
	for _, tt := range tests {
		if got := runScript(t, tt.script); got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.script, tt.want, got)
		}
	}
}

func TestLoopBodyErrorPropagates(t *testing.T) {
	interp, _ := newTestInterpreter(t, Config{})
	_, err := interp.Run(context.Background(), "for {set i 0} {$i < 3} {incr i} {nosuch}")
	if err == nil || !strings.Contains(err.Error(), "is not defined!") {
		t.Fatalf("expected body error to propagate, got %v", err)
	}
}

func TestStringCommands(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"string length héllo", "5"},
		{"string index abcdef 2", "c"},
		{"string index abcdef end", "f"},
		{"string index abcdef 10", ""},
		{"string range abcdef 1 3", "bcd"},
		{"string range abcdef 2 end-1", "cde"},
		{"string range abcdef 4 1", ""},
		{"string compare a b", "-1"},
		{"string compare b b", "0"},
		{"string match a*c abbbc", "1"},
		{"string match {a?c} abc", "1"},
		{"string match {[a-c]x} bx", "1"},
		{"string match {a\\*} a*", "1"},
		{"string match a*d abc", "0"},
		{"string first lo {hello lo}", "3"},
		{"string first lo {hello lo} 4", "6"},
		{"string first zz abc", "-1"},
		{"string last lo {hello lo}", "6"},
		{"string last lo {hello lo} 5", "3"},
		{"string wordstart {hello big_world} 10", "6"},
		{"string wordend {hello big_world} 7", "15"},
		{"string wordend {hello world} 5", "6"},
		{`string wordend "" end`, "0"},
		{`string wordend "" -1`, "0"},
		{`string wordstart "" end`, "0"},
		{"string tolower ABC", "abc"},
		{"string toupper abc", "ABC"},
		{"string trim {  abc  }", "abc"},
		{"string trim xxabcxx x", "abc"},
		{"string trimleft {  abc  }", "abc  "},
		{"string trimright {  abc  }", "  abc"},
	}
	for _, tt := range tests {
		if got := runScript(t, tt.script); got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.script, tt.want, got)
		}
	}
}

func TestStringErrors(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"string index abc x", "must be an integer number"},
		{"string range abc 0 y", "must be an integer number"},
		{"string nosuch abc", "unknown or ambiguous subcommand"},
		{"string length", "wrong # args"},
	}
	for _, tt := range tests {
		interp, _ := newTestInterpreter(t, Config{})
		_, err := interp.Run(context.Background(), tt.script)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%q: expected error containing %q, got %v", tt.script, tt.want, err)
		}
	}
}

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"*", "", true},
		{"*", "anything", true},
		{"a*b*c", "aXXbYYc", true},
		{"a*b*c", "aXXbYY", false},
		{"?", "", false},
		{"[!]", "!", true},
		{"[0-9][0-9]", "42", true},
		{"[0-9]", "x", false},
		{"*.go", "main.go", true},
	}
	for _, tt := range tests {
		if got := globMatch([]rune(tt.pattern), []rune(tt.s)); got != tt.want {
			t.Fatalf("globMatch(%q, %q) = %v", tt.pattern, tt.s, got)
		}
	}
}

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{`format "%d-%s" 3 "a"`, "3-a"},
		{`format "%5.2f|%-4s|" 3.14159 ab`, " 3.14|ab  |"},
		{`format "%x %X %o" 255 255 8`, "ff FF 10"},
		{`format "%c%c" 72 105`, "Hi"},
		{`format "%e" 12345.678`, "1.234568e+04"},
		{`format "%g" 0.5`, "0.5"},
		{`format "%i%%" 50`, "50%"},
		{`format "%05d" 42`, "00042"},
		{`format "%u" 7`, "7"},
		{`format "plain"`, "plain"},
	}
	for _, tt := range tests {
		if got := runScript(t, tt.script); got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.script, tt.want, got)
		}
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{`format "%d-%s" 3`, "not enough arguments"},
		{`format "%q" 1`, "bad field specifier"},
		{`format "%d" abc`, "expected integer"},
		{`format "%f" abc`, "expected floating-point"},
		{`format "%"`, "ended in middle"},
	}
	for _, tt := range tests {
		interp, _ := newTestInterpreter(t, Config{})
		_, err := interp.Run(context.Background(), tt.script)
		var ee *ExecutionError
		if !errors.As(err, &ee) || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%q: expected ExecutionError containing %q, got %v", tt.script, tt.want, err)
		}
	}
}

func TestListCommands(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"llength {a b c}", "3"},
		{"llength {}", "0"},
		{"lindex {a {b c} d} 1 0", "b"},
		{"lindex {a {b c} d} {1 1}", "c"},
		{"lindex {a b c} end", "c"},
		{"lindex {a b c}", "a b c"},
		{"list a {b c} d", "{a} {b c} {d}"},
		{"list", ""},
		{"split a,b,c ,", "{a} {b} {c}"},
		{"split {a b  c}", "{a} {b} {c}"},
		{"lappend l a; lappend l b c", "a b c"},
		{"join {a b c} -", "a-b-c"},
		{"join {a {b c}}", "a b c"},
		{"lrange {a b c d} 1 2", "{b} {c}"},
		{"lrange {a b c d} 2 end", "{c} {d}"},
		{"llength [list a {b c} d]", "3"},
		{"lindex [split x:y:z :] 2", "z"},
	}
	for _, tt := range tests {
		if got := runScript(t, tt.script); got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.script, tt.want, got)
		}
	}
}

func TestLindexErrors(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"lindex {a b} 5", "out of range"},
		{"lindex {a b} -1", "out of range"},
		{"lindex {a b} x", "must be an integer number"},
	}
	for _, tt := range tests {
		interp, _ := newTestInterpreter(t, Config{})
		_, err := interp.Run(context.Background(), tt.script)
		var ee *ExecutionError
		if !errors.As(err, &ee) || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%q: expected ExecutionError containing %q, got %v", tt.script, tt.want, err)
		}
	}
}

func TestInfoCommands(t *testing.T) {
	got := runScript(t, "info commands")
	for _, name := range []string{"set", "puts", "lindex", "string"} {
		if !strings.Contains(got, "{"+name+"}") {
			t.Fatalf("expected %s in %q", name, got)
		}
	}
}
