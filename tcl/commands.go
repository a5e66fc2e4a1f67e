package tcl

import (
	"fmt"
	"io"
	"strings"
)

// Variadic as a MaxArity lifts the upper bound on operand count.
const Variadic = -1

// NativeFunc implements a command in Go. args holds the fully substituted
// operands, without the command name.
type NativeFunc func(exec *Execution, args []string) (Result, error)

// ScriptBody implements a command as a script. Each invocation runs Body in
// a fresh scope nested under Captured with Params bound to the operands. A
// trailing parameter named "args" collects the remaining operands as a list.
type ScriptBody struct {
	Params   []string
	Body     string
	Captured *Context
	// Output, when set, replaces the puts destination for the call.
	Output io.Writer
}

// Command is one entry of the command table. Exactly one of Native and
// Script is set.
type Command struct {
	Name     string
	MinArity int
	MaxArity int
	Native   NativeFunc
	Script   *ScriptBody
}

// Register adds cmd to the command table, replacing any command with the
// same name.
func (interp *Interpreter) Register(cmd Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("tcl: command name is required")
	}
	if (cmd.Native == nil) == (cmd.Script == nil) {
		return fmt.Errorf("tcl: command %q needs exactly one of Native or Script", cmd.Name)
	}
	if cmd.MinArity < 0 || (cmd.MaxArity != Variadic && cmd.MaxArity < cmd.MinArity) {
		return fmt.Errorf("tcl: command %q has invalid arity %d..%d", cmd.Name, cmd.MinArity, cmd.MaxArity)
	}
	interp.commands[cmd.Name] = &cmd
	return nil
}

// RegisterScript defines name as a script command over the root scope.
func (interp *Interpreter) RegisterScript(name string, params []string, body string) error {
	return interp.Register(scriptCommand(name, params, body, interp.root))
}

func scriptCommand(name string, params []string, body string, captured *Context) Command {
	cmd := Command{
		Name:     name,
		MinArity: len(params),
		MaxArity: len(params),
		Script: &ScriptBody{
			Params:   append([]string(nil), params...),
			Body:     body,
			Captured: captured,
		},
	}
	if n := len(params); n > 0 && params[n-1] == "args" {
		cmd.MinArity = n - 1
		cmd.MaxArity = Variadic
	}
	return cmd
}

func (interp *Interpreter) registerNative(name string, minArity, maxArity int, fn NativeFunc) {
	interp.commands[name] = &Command{Name: name, MinArity: minArity, MaxArity: maxArity, Native: fn}
}

func (c *Command) checkArity(n int) error {
	if n >= c.MinArity && (c.MaxArity == Variadic || n <= c.MaxArity) {
		return nil
	}
	var want string
	switch {
	case c.MaxArity == c.MinArity:
		want = fmt.Sprintf("exactly %d", c.MinArity)
	case n < c.MinArity:
		want = fmt.Sprintf("at least %d", c.MinArity)
	default:
		want = fmt.Sprintf("at most %d", c.MaxArity)
	}
	return &CommandError{
		Message: fmt.Sprintf("wrong # args: %q takes %s argument(s), got %d", c.Name, want, n),
		Command: c,
	}
}

func (c *Command) invoke(exec *Execution, args []string) (Result, error) {
	if c.Native != nil {
		return c.Native(exec, args)
	}
	return exec.callScript(c, args)
}

func (exec *Execution) callScript(cmd *Command, args []string) (Result, error) {
	body := cmd.Script
	scope := NewContext(body.Captured)
	for i, param := range body.Params {
		switch {
		case param == "args" && i == len(body.Params)-1:
			rest := []string{}
			if i < len(args) {
				rest = args[i:]
			}
			scope.Define(param, FormatList(rest))
		case i < len(args):
			scope.Define(param, args[i])
		default:
			scope.Define(param, "")
		}
	}

	prevOut := exec.out
	if body.Output != nil {
		exec.out = body.Output
	}
	defer func() { exec.out = prevOut }()

	exec.interp.tracef(" call %s {%s};\n", cmd.Name, strings.Join(args, " "))
	return exec.evalScript(body.Body, scope)
}

func (interp *Interpreter) registerBuiltins() {
	interp.registerNative("set", 1, 2, cmdSet)
	interp.registerNative("append", 1, Variadic, cmdAppend)
	interp.registerNative("unset", 1, 1, cmdUnset)
	interp.registerNative("incr", 1, 2, cmdIncr)
	interp.registerNative("puts", 1, 2, cmdPuts)
	interp.registerNative("expr", 1, Variadic, cmdExpr)
	interp.registerNative("subst", 1, 1, cmdSubst)
	interp.registerNative("eval", 1, Variadic, cmdEval)
	interp.registerNative("concat", 0, Variadic, cmdConcat)
	interp.registerNative("info", 1, 2, cmdInfo)

	interp.registerNative("if", 2, Variadic, cmdIf)
	interp.registerNative("for", 4, 4, cmdFor)
	interp.registerNative("while", 2, 2, cmdWhile)
	interp.registerNative("foreach", 3, 3, cmdForeach)
	interp.registerNative("break", 0, 0, cmdBreak)
	interp.registerNative("continue", 0, 0, cmdContinue)

	interp.registerNative("string", 2, Variadic, cmdString)
	interp.registerNative("format", 1, Variadic, cmdFormat)

	interp.registerNative("list", 0, Variadic, cmdList)
	interp.registerNative("lindex", 1, Variadic, cmdLindex)
	interp.registerNative("llength", 1, 1, cmdLlength)
	interp.registerNative("lappend", 1, Variadic, cmdLappend)
	interp.registerNative("lrange", 3, 3, cmdLrange)
	interp.registerNative("split", 1, 2, cmdSplit)
	interp.registerNative("join", 1, 2, cmdJoin)
}
