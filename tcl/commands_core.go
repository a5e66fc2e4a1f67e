package tcl

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const putsPrefix = "Tcl> "

func cmdSet(exec *Execution, args []string) (Result, error) {
	name := args[0]
	if len(args) == 1 {
		val, err := exec.readVariable(name)
		if err != nil {
			return NullResult(), err
		}
		exec.interp.tracef(" %s;\n", name)
		return NewResult(val), nil
	}
	exec.scope.Set(name, args[1])
	exec.interp.tracef(" %s=%s;\n", name, args[1])
	return NewResult(args[1]), nil
}

func cmdAppend(exec *Execution, args []string) (Result, error) {
	name := args[0]
	cur, _ := exec.scope.Get(name)
	var b strings.Builder
	b.WriteString(cur)
	for _, val := range args[1:] {
		b.WriteString(val)
	}
	exec.scope.Set(name, b.String())
	exec.interp.tracef(" %s=%s;\n", name, b.String())
	return NewResult(b.String()), nil
}

func cmdUnset(exec *Execution, args []string) (Result, error) {
	name := args[0]
	val, ok := exec.scope.Unset(name)
	if !ok {
		return NullResult(), exec.errorf("can't unset %q: no such variable", name)
	}
	exec.interp.tracef(" unset %s;\n", name)
	return NewResult(val), nil
}

func cmdIncr(exec *Execution, args []string) (Result, error) {
	name := args[0]
	step := int64(1)
	if len(args) == 2 {
		n, err := parseInteger(args[1])
		if err != nil {
			return NullResult(), exec.errorf("expected integer but got %q", args[1])
		}
		step = n
	}
	var cur int64
	if text, ok := exec.scope.Get(name); ok {
		n, err := parseInteger(text)
		if err != nil {
			return NullResult(), exec.errorf("expected integer but got %q", text)
		}
		cur = n
	}
	val := strconv.FormatInt(cur+step, 10)
	exec.scope.Set(name, val)
	exec.interp.tracef(" %s=%s;\n", name, val)
	return NewResult(val), nil
}

// cmdPuts writes its operand and a newline. "-nonewline" as the first of two
// operands drops the newline.
func cmdPuts(exec *Execution, args []string) (Result, error) {
	newline := true
	if len(args) == 2 {
		if args[0] != "-nonewline" {
			return NullResult(), exec.commandError("bad option %q: must be -nonewline", args[0])
		}
		newline = false
		args = args[1:]
	}
	val := args[0]

	var b strings.Builder
	if !exec.interp.config.Plain {
		b.WriteString(putsPrefix)
	}
	b.WriteString(val)
	if newline {
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(exec.out, b.String()); err != nil {
		return NullResult(), exec.commandError("write output: %v", err)
	}
	exec.interp.tracef("%s%s\n", putsPrefix, val)
	return NewResult(val), nil
}

func cmdExpr(exec *Execution, args []string) (Result, error) {
	text := strings.Join(args, " ")
	res, err := exec.evalExpr(text)
	if err != nil {
		return NullResult(), err
	}
	exec.interp.tracef(" expr %s = %s;\n", text, res)
	return NewResult(res.String()), nil
}

func cmdSubst(exec *Execution, args []string) (Result, error) {
	text, err := exec.substituteText(args[0])
	if err != nil {
		return NullResult(), err
	}
	return NewResult(text), nil
}

func cmdEval(exec *Execution, args []string) (Result, error) {
	return exec.evalScript(strings.Join(args, " "), exec.scope)
}

// cmdConcat joins its operands with single spaces after trimming surrounding
// whitespace, skipping operands that are empty after trimming.
func cmdConcat(exec *Execution, args []string) (Result, error) {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return NewResult(strings.Join(parts, " ")), nil
}

func cmdInfo(exec *Execution, args []string) (Result, error) {
	switch args[0] {
	case "exists":
		if len(args) != 2 {
			return NullResult(), exec.commandError(`wrong # args: should be "info exists varName"`)
		}
		return NewResult(boolText(exec.scope.Exists(args[1]))), nil
	case "vars":
		return NewResult(FormatList(exec.scope.Names())), nil
	case "commands":
		return NewResult(FormatList(exec.interp.Commands())), nil
	default:
		return NullResult(), exec.errorf("unknown or ambiguous subcommand %q: must be commands, exists or vars", args[0])
	}
}

func boolText(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// parseInteger accepts an optionally signed decimal integer, or a 0x
// hexadecimal one, surrounded by optional whitespace.
func parseInteger(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	n, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("expected integer but got %q", text)
	}
	return n, nil
}
