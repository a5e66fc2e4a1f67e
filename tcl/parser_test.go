package tcl

import (
	"errors"
	"strings"
	"testing"
)

func TestParseScriptCommands(t *testing.T) {
	program, err := ParseScript("set x 5; puts $x\n# done\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if program.Kind != NodeProgram || len(program.Children) != 2 {
		t.Fatalf("expected PROGRAM with 2 commands, got:\n%s", program.Dump())
	}

	set := program.Children[0]
	if set.Kind != NodeCommand || set.Value != "set" || len(set.Children) != 2 {
		t.Fatalf("unexpected set command:\n%s", set.Dump())
	}
	puts := program.Children[1]
	if puts.Value != "puts" || len(puts.Children) != 1 {
		t.Fatalf("unexpected puts command:\n%s", puts.Dump())
	}
	name := puts.Children[0].Children[0]
	if name.Kind != NodeName || name.Value != "x" {
		t.Fatalf("expected NAME x, got %s", name)
	}
}

func TestParseOperandConcatenation(t *testing.T) {
	program, err := ParseScript(`puts pre$a[b]{c}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	operand := program.Children[0].Children[0]
	var kinds []string
	for _, child := range operand.Children {
		kinds = append(kinds, child.Kind.String())
	}
	if got := strings.Join(kinds, " "); got != "WORD NAME PROGRAM WORD" {
		t.Fatalf("unexpected fragments: %s", got)
	}
}

func TestParseQuotedOperandIsSpliced(t *testing.T) {
	program, err := ParseScript(`puts "a $b [c]"`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	operand := program.Children[0].Children[0]
	if operand.Kind != NodeOperand || len(operand.Children) != 4 {
		t.Fatalf("expected 4 fragments, got:\n%s", operand.Dump())
	}
	if operand.Children[0].Kind != NodeSubstring || operand.Children[0].Value != "a " {
		t.Fatalf("unexpected first fragment %s", operand.Children[0])
	}
	if operand.Children[1].Kind != NodeName || operand.Children[2].Kind != NodeSubstring || operand.Children[3].Kind != NodeProgram {
		t.Fatalf("unexpected fragments:\n%s", operand.Dump())
	}
}

func TestParseEmptyQuotedOperand(t *testing.T) {
	program, err := ParseScript(`set x ""`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if n := len(program.Children[0].Children); n != 2 {
		t.Fatalf("expected 2 operands, got %d", n)
	}
}

func TestParseSubstitutedCommandName(t *testing.T) {
	program, err := ParseScript(`$cmd a`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	cmd := program.Children[0]
	if cmd.HasValue || len(cmd.Children) != 2 {
		t.Fatalf("expected unnamed command with name operand, got:\n%s", cmd.Dump())
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []string{
		"puts {unterminated",
		`puts "unterminated`,
		"puts [unterminated",
	}
	for _, src := range tests {
		_, err := ParseScript(src)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%q: expected ParseError, got %v", src, err)
		}
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 + 3 * 4", "(+ 2 (* 3 4))"},
		{"(2 + 3) * 4", "(* (+ 2 3) 4)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"2 ** 3 ** 2", "(** (** 2 3) 2)"},
		{"1 < 2 == 1", "(== (< 1 2) 1)"},
		{"a eq b && 1", "(&& (eq a b) 1)"},
		{"1 | 2 ^ 3 & 4", "(| 1 (^ 2 (& 3 4)))"},
		{"1 ? 2 : 3 ? 4 : 5", "(?: 1 2 (?: 3 4 5))"},
		{"-2 ** 2", "(** (- 2) 2)"},
		{"sqrt(4) + 1", "(+ (sqrt 4) 1)"},
		{"", "0"},
	}
	for _, tt := range tests {
		tree, err := ParseExpression(tt.input)
		if err != nil {
			t.Fatalf("%q: parse failed: %v", tt.input, err)
		}
		if got := sexpr(tree); got != tt.want {
			t.Fatalf("%q: expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func sexpr(n *Node) string {
	if len(n.Children) == 0 {
		return n.Value
	}
	parts := []string{n.Value}
	for _, child := range n.Children {
		parts = append(parts, sexpr(child))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func TestParseExpressionUnbalanced(t *testing.T) {
	for _, src := range []string{"(1 + 2", "1 + 2)", ")", "((1)"} {
		_, err := ParseExpression(src)
		if !errors.Is(err, ErrUnbalancedParentheses) {
			t.Fatalf("%q: expected unbalanced parentheses error, got %v", src, err)
		}
	}
}

func TestParseExpressionErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 ? 2", "expected :"},
		{"1 +", "expected NUMBER"},
		{"1 @ 2", `invalid character "@"`},
		{"1 2", "expected EOF"},
	}
	for _, tt := range tests {
		_, err := ParseExpression(tt.input)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%q: expected ParseError, got %v", tt.input, err)
		}
		if errors.Is(err, ErrUnbalancedParentheses) {
			t.Fatalf("%q: unexpected unbalanced parentheses error", tt.input)
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%q: expected error containing %q, got %v", tt.input, tt.want, err)
		}
	}
}

func TestParseErrorHasCodeFrame(t *testing.T) {
	_, err := ParseExpression("1 +\t* 2")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "--> line 1, column") || !strings.Contains(msg, "^") {
		t.Fatalf("expected code frame, got:\n%s", msg)
	}
}

func TestParseSubstitutionFragments(t *testing.T) {
	list, err := ParseSubstitution("x=$x, y=[set y]")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if list.Kind != NodeList || len(list.Children) != 4 {
		t.Fatalf("unexpected fragments:\n%s", list.Dump())
	}
	if list.Children[3].Kind != NodeProgram || list.Children[3].Value != "set y" {
		t.Fatalf("expected PROGRAM \"set y\", got %s", list.Children[3])
	}
}

func TestParseScriptParallelMatchesSequential(t *testing.T) {
	src := strings.Repeat("set x [expr {1 + 2}]; puts \"v=$x\"\n", 80)
	seq, err := parseScript(src, false)
	if err != nil {
		t.Fatalf("sequential parse failed: %v", err)
	}
	par, err := parseScript(src, true)
	if err != nil {
		t.Fatalf("parallel parse failed: %v", err)
	}
	if seq.Dump() != par.Dump() {
		t.Fatalf("parallel parse differs from sequential parse")
	}
}
