package tcl

import (
	"math"
	"strconv"
	"strings"
)

type opKind int

const (
	opInt opKind = iota
	opDouble
	opString
)

// OpResult is the intermediate value of expression evaluation: a 64-bit
// integer, a double or a string.
type OpResult struct {
	kind opKind
	i    int64
	f    float64
	s    string
}

func intResult(i int64) OpResult      { return OpResult{kind: opInt, i: i} }
func doubleResult(f float64) OpResult { return OpResult{kind: opDouble, f: f} }
func stringResult(s string) OpResult  { return OpResult{kind: opString, s: s} }

func boolResult(b bool) OpResult {
	if b {
		return intResult(1)
	}
	return intResult(0)
}

// inferResult types text as an integer, then a double, then a string.
func inferResult(text string) OpResult {
	trimmed := strings.TrimSpace(text)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return intResult(n)
	}
	if looksNumeric(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return doubleResult(f)
		}
	}
	return stringResult(text)
}

// looksNumeric rejects words strconv would read as Inf or NaN.
func looksNumeric(text string) bool {
	return strings.ContainsAny(text, "0123456789") && !strings.ContainsAny(text, "iInN")
}

func (r OpResult) IsInt() bool     { return r.kind == opInt }
func (r OpResult) IsDouble() bool  { return r.kind == opDouble }
func (r OpResult) IsNumeric() bool { return r.kind != opString }

// Float returns the numeric value as a double.
func (r OpResult) Float() float64 {
	if r.kind == opInt {
		return float64(r.i)
	}
	return r.f
}

// Truth interprets r as a boolean. Numbers are true when nonzero; the words
// true/yes/on and false/no/off are accepted in any case. ok is false for any
// other string.
func (r OpResult) Truth() (value bool, ok bool) {
	switch r.kind {
	case opInt:
		return r.i != 0, true
	case opDouble:
		return r.f != 0, true
	}
	switch strings.ToLower(strings.TrimSpace(r.s)) {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	}
	return false, false
}

// String returns the canonical text form. Doubles always carry a decimal
// point or an exponent so they read back as doubles.
func (r OpResult) String() string {
	switch r.kind {
	case opInt:
		return strconv.FormatInt(r.i, 10)
	case opDouble:
		return formatDouble(r.f)
	}
	return r.s
}

func formatDouble(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}
	return text
}

// evalExpr substitutes variables and commands in text, then parses and
// evaluates it as a pure expression.
func (exec *Execution) evalExpr(text string) (OpResult, error) {
	substituted, err := exec.substituteText(text)
	if err != nil {
		return OpResult{}, err
	}
	tree, err := exec.interp.parseExprCached(substituted)
	if err != nil {
		return OpResult{}, err
	}
	return EvalExpression(tree, substituted)
}

// EvalExpression evaluates a parsed expression tree. source is the text the
// tree was parsed from and is only used in error messages.
func EvalExpression(tree *Node, source string) (OpResult, error) {
	ev := &evaluator{source: source}
	return ev.eval(tree)
}

type evaluator struct {
	source string
}

func (ev *evaluator) errorf(node *Node, format string, args ...any) error {
	return newExecutionError(node, ev.source, format, args...)
}

func (ev *evaluator) eval(node *Node) (OpResult, error) {
	switch node.Kind {
	case NodeNumber, NodeQString, NodeString:
		return inferResult(node.Value), nil
	case NodeUnaryOp:
		return ev.unary(node)
	case NodeBinaryOp:
		return ev.binary(node)
	case NodeTernaryOp:
		return ev.ternary(node)
	case NodeFunc:
		return ev.call(node)
	case NodeName:
		return OpResult{}, ev.errorf(node, "variable %q was not substituted", node.Value)
	default:
		return OpResult{}, ev.errorf(node, "unexpected %s node in expression", node.Kind)
	}
}

func (ev *evaluator) ternary(node *Node) (OpResult, error) {
	cond, err := ev.eval(node.Children[0])
	if err != nil {
		return OpResult{}, err
	}
	if !cond.IsNumeric() {
		return OpResult{}, ev.errorf(node, "can't use non-numeric string %q as condition of \"?\"", cond.String())
	}
	if truth, _ := cond.Truth(); truth {
		return ev.eval(node.Children[1])
	}
	return ev.eval(node.Children[2])
}
