package tcl

import (
	"errors"
)

// cmdIf walks its clauses explicitly: cond ?then? body, then any number of
// elseif clauses and an optional else. A false condition with no clause
// left yields null.
func cmdIf(exec *Execution, args []string) (Result, error) {
	i := 0
	for {
		cond := args[i]
		i++
		if i < len(args) && args[i] == "then" {
			i++
		}
		if i >= len(args) {
			return NullResult(), exec.commandError("wrong # args: no script following %q argument", cond)
		}
		body := args[i]
		i++

		ok, err := exec.condition(cond)
		if err != nil {
			return NullResult(), err
		}
		exec.interp.tracef(" if {%s} %s;\n", cond, boolText(ok))
		if ok {
			return exec.evalScript(body, exec.scope)
		}
		if i >= len(args) {
			return NullResult(), nil
		}

		switch args[i] {
		case "elseif":
			i++
			if i >= len(args) {
				return NullResult(), exec.commandError(`wrong # args: no expression after "elseif" argument`)
			}
		case "else":
			i++
			if i != len(args)-1 {
				return NullResult(), exec.commandError(`wrong # args: expected exactly one script after "else"`)
			}
			return exec.evalScript(args[i], exec.scope)
		default:
			if i != len(args)-1 {
				return NullResult(), exec.commandError("wrong # args: extra words after if clause")
			}
			return exec.evalScript(args[i], exec.scope)
		}
	}
}

func cmdFor(exec *Execution, args []string) (Result, error) {
	init, cond, step, body := args[0], args[1], args[2], args[3]
	if _, err := exec.evalScript(init, exec.scope); err != nil {
		return NullResult(), err
	}
	return exec.loop(cond, body, step)
}

func cmdWhile(exec *Execution, args []string) (Result, error) {
	return exec.loop(args[0], args[1], "")
}

// loop runs body while cond holds, then step when one is given. break ends
// the loop; continue skips to step.
func (exec *Execution) loop(cond, body, step string) (Result, error) {
	last := NullResult()
	iterations := 0
	for {
		if err := exec.step(); err != nil {
			return NullResult(), err
		}
		ok, err := exec.condition(cond)
		if err != nil {
			return NullResult(), err
		}
		if !ok {
			break
		}
		res, err := exec.evalScript(body, exec.scope)
		switch {
		case errors.Is(err, errLoopBreak):
			exec.interp.tracef(" loop: %d iterations;\n", iterations)
			return last, nil
		case errors.Is(err, errLoopContinue):
		case err != nil:
			return NullResult(), err
		default:
			last = res
		}
		if step != "" {
			if _, err := exec.evalScript(step, exec.scope); err != nil {
				return NullResult(), err
			}
		}
		iterations++
	}
	exec.interp.tracef(" loop: %d iterations;\n", iterations)
	return last, nil
}

// cmdForeach binds each list element to the loop variable in turn. A list
// of several variable names consumes that many elements per iteration,
// padding the last round with empty strings.
func cmdForeach(exec *Execution, args []string) (Result, error) {
	names := ParseList(args[0], "")
	if len(names) == 0 {
		return NullResult(), exec.commandError("foreach varlist is empty")
	}
	elems := ParseList(args[1], "")
	body := args[2]

	last := NullResult()
	for start := 0; start < len(elems); start += len(names) {
		if err := exec.step(); err != nil {
			return NullResult(), err
		}
		for j, name := range names {
			val := ""
			if start+j < len(elems) {
				val = elems[start+j]
			}
			exec.scope.Set(name, val)
		}
		res, err := exec.evalScript(body, exec.scope)
		switch {
		case errors.Is(err, errLoopBreak):
			return last, nil
		case errors.Is(err, errLoopContinue):
		case err != nil:
			return NullResult(), err
		default:
			last = res
		}
	}
	return last, nil
}

func cmdBreak(exec *Execution, args []string) (Result, error) {
	return NullResult(), errLoopBreak
}

func cmdContinue(exec *Execution, args []string) (Result, error) {
	return NullResult(), errLoopContinue
}

// condition evaluates text as an expression and interprets the result as a
// boolean.
func (exec *Execution) condition(text string) (bool, error) {
	res, err := exec.evalExpr(text)
	if err != nil {
		return false, err
	}
	ok, valid := res.Truth()
	if !valid {
		return false, exec.errorf("expected boolean value but got %q", res.String())
	}
	return ok, nil
}
