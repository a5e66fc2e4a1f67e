package tcl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultStepQuota      = 1_000_000
	defaultRecursionLimit = 200
	maxCachedTrees        = 512
)

// Config controls interpreter output, limits and diagnostics.
type Config struct {
	// Output receives puts output. Defaults to os.Stdout.
	Output io.Writer
	// Encoding names the output character set (any WHATWG label such as
	// "iso-8859-1" or "windows-1252"). Empty means UTF-8.
	Encoding string
	// Plain drops the "Tcl> " prefix puts writes before each value.
	Plain bool

	StepQuota      int
	RecursionLimit int

	// ParallelLex runs the script lexer on its own goroutine, feeding the
	// parser through a bounded token queue.
	ParallelLex bool
	// StrictSubstitution makes a failing [command] substitution abort the
	// enclosing command instead of substituting an empty string.
	StrictSubstitution bool

	Logger *slog.Logger
}

// Interpreter owns a command table, a root variable scope and the trace of
// everything it has run. An Interpreter is not safe for concurrent use.
type Interpreter struct {
	config   Config
	commands map[string]*Command
	root     *Context
	out      io.Writer
	logger   *slog.Logger
	trace    strings.Builder

	scripts map[string]*Node
	exprs   map[string]*Node
}

// NewInterpreter constructs an Interpreter with defaults applied and the
// built-in commands registered.
func NewInterpreter(cfg Config) (*Interpreter, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.StepQuota <= 0 {
		cfg.StepQuota = defaultStepQuota
	}
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	out, err := NewEncodedWriter(cfg.Output, cfg.Encoding)
	if err != nil {
		return nil, err
	}

	interp := &Interpreter{
		config:   cfg,
		commands: make(map[string]*Command),
		root:     NewContext(nil),
		out:      out,
		logger:   cfg.Logger,
		scripts:  make(map[string]*Node),
		exprs:    make(map[string]*Node),
	}
	interp.registerBuiltins()
	return interp, nil
}

// MustNewInterpreter panics if NewInterpreter returns an error.
func MustNewInterpreter(cfg Config) *Interpreter {
	interp, err := NewInterpreter(cfg)
	if err != nil {
		panic(err)
	}
	return interp
}

// Run parses and evaluates script in the root scope and returns the last
// non-null command result.
func (interp *Interpreter) Run(ctx context.Context, script string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	exec := &Execution{
		interp: interp,
		ctx:    ctx,
		logger: interp.logger.With("run", uuid.NewString()),
		scope:  interp.root,
		out:    interp.out,
		quota:  interp.config.StepQuota,
	}
	exec.logger.Debug("run started", "bytes", len(script))

	result, err := exec.evalScript(script, interp.root)
	if err != nil {
		exec.logger.Debug("run failed", "steps", exec.steps, "error", err)
		return NullResult(), err
	}
	exec.logger.Debug("run finished", "steps", exec.steps)
	return result, nil
}

// Trace returns the accumulated trace of every command run so far.
func (interp *Interpreter) Trace() string {
	return interp.trace.String()
}

// ResetTrace discards the accumulated trace.
func (interp *Interpreter) ResetTrace() {
	interp.trace.Reset()
}

// Context returns the root variable scope.
func (interp *Interpreter) Context() *Context {
	return interp.root
}

// Reset discards every variable binding. Registered commands are kept.
func (interp *Interpreter) Reset() {
	interp.root = NewContext(nil)
}

// Commands returns the registered command names, sorted.
func (interp *Interpreter) Commands() []string {
	return slices.Sorted(maps.Keys(interp.commands))
}

// Lookup returns a copy of the named command.
func (interp *Interpreter) Lookup(name string) (Command, bool) {
	cmd, ok := interp.commands[name]
	if !ok {
		return Command{}, false
	}
	return *cmd, true
}

func (interp *Interpreter) tracef(format string, args ...any) {
	fmt.Fprintf(&interp.trace, format, args...)
}

func (interp *Interpreter) parseScriptCached(source string) (*Node, error) {
	if tree, ok := interp.scripts[source]; ok {
		return tree, nil
	}
	tree, err := parseScript(source, interp.config.ParallelLex)
	if err != nil {
		return nil, err
	}
	if len(interp.scripts) >= maxCachedTrees {
		clear(interp.scripts)
	}
	interp.scripts[source] = tree
	return tree, nil
}

func (interp *Interpreter) parseExprCached(source string) (*Node, error) {
	if tree, ok := interp.exprs[source]; ok {
		return tree, nil
	}
	tree, err := ParseExpression(source)
	if err != nil {
		return nil, err
	}
	if len(interp.exprs) >= maxCachedTrees {
		clear(interp.exprs)
	}
	interp.exprs[source] = tree
	return tree, nil
}

// Execution carries the state of one Run: the active scope, the node being
// dispatched, the step counter and the run's logger. Native commands receive
// it to reach the interpreter.
type Execution struct {
	interp *Interpreter
	ctx    context.Context
	logger *slog.Logger

	scope   *Context
	out     io.Writer
	source  string
	node    *Node
	command *Command

	steps int
	quota int
	depth int
}

// Scope returns the variable scope commands currently operate on.
func (exec *Execution) Scope() *Context {
	return exec.scope
}

// Interpreter returns the interpreter running this execution.
func (exec *Execution) Interpreter() *Interpreter {
	return exec.interp
}

// Logger returns the run-scoped logger.
func (exec *Execution) Logger() *slog.Logger {
	return exec.logger
}

// Output returns the writer puts currently writes to.
func (exec *Execution) Output() io.Writer {
	return exec.out
}

// Eval evaluates script in the current scope.
func (exec *Execution) Eval(script string) (Result, error) {
	return exec.evalScript(script, exec.scope)
}

// Expr evaluates an expression after variable and command substitution.
func (exec *Execution) Expr(text string) (OpResult, error) {
	return exec.evalExpr(text)
}

// Tracef appends a formatted entry to the interpreter trace.
func (exec *Execution) Tracef(format string, args ...any) {
	exec.interp.tracef(format, args...)
}

func (exec *Execution) evalScript(source string, scope *Context) (Result, error) {
	if exec.depth >= exec.interp.config.RecursionLimit {
		return NullResult(), exec.wrap(ErrRecursionLimit, fmt.Sprintf("%s (limit %d)", ErrRecursionLimit, exec.interp.config.RecursionLimit))
	}
	program, err := exec.interp.parseScriptCached(source)
	if err != nil {
		return NullResult(), err
	}

	prevScope, prevSource := exec.scope, exec.source
	exec.scope, exec.source = scope, source
	exec.depth++
	defer func() {
		exec.scope, exec.source = prevScope, prevSource
		exec.depth--
	}()

	last := NullResult()
	for _, cmd := range program.Children {
		res, err := exec.evalCommand(cmd)
		if err != nil {
			return NullResult(), err
		}
		if !res.IsNull() {
			last = res
		}
	}
	return last, nil
}

func (exec *Execution) evalCommand(node *Node) (Result, error) {
	prevNode := exec.node
	exec.node = node
	defer func() { exec.node = prevNode }()

	if err := exec.step(); err != nil {
		return NullResult(), err
	}

	operands := node.Children
	name := node.Value
	if !node.HasValue {
		var err error
		name, err = exec.substitute(operands[0])
		if err != nil {
			return NullResult(), err
		}
		operands = operands[1:]
	}

	cmd, ok := exec.interp.commands[name]
	if !ok {
		return NullResult(), exec.errorf("invalid command name %q: %q is not defined!", name, name)
	}

	args := make([]string, len(operands))
	for i, operand := range operands {
		arg, err := exec.substitute(operand)
		if err != nil {
			return NullResult(), err
		}
		args[i] = arg
	}
	if err := cmd.checkArity(len(args)); err != nil {
		return NullResult(), err
	}

	exec.logger.Debug("dispatch", "command", name, "args", len(args), "depth", exec.depth)

	prevCommand := exec.command
	exec.command = cmd
	res, err := cmd.invoke(exec, args)
	exec.command = prevCommand
	if err != nil {
		return NullResult(), exec.wrap(err, err.Error())
	}
	return res, nil
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return exec.wrap(ErrStepQuotaExceeded, fmt.Sprintf("%s (%d)", ErrStepQuotaExceeded, exec.quota))
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.wrap(exec.ctx.Err(), exec.ctx.Err().Error())
		default:
		}
	}
	return nil
}

// isFatal reports whether err must stop evaluation even where failures are
// otherwise tolerated.
func isFatal(err error) bool {
	return errors.Is(err, ErrStepQuotaExceeded) ||
		errors.Is(err, ErrRecursionLimit) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// wrap turns an untyped error into an ExecutionError at the current node.
// Errors already in the taxonomy pass through unchanged.
func (exec *Execution) wrap(err error, message string) error {
	if isTypedError(err) {
		return err
	}
	return &ExecutionError{Message: message, Node: exec.node, Source: exec.source, Err: err}
}

func (exec *Execution) errorf(format string, args ...any) error {
	return newExecutionError(exec.node, exec.source, format, args...)
}

// commandError reports a failure of the command currently running.
func (exec *Execution) commandError(format string, args ...any) error {
	return &CommandError{Message: fmt.Sprintf(format, args...), Command: exec.command}
}
