package tcl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnbalancedParentheses marks expression parse failures caused by
	// mismatched parentheses rather than generic syntax errors.
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	// ErrStepQuotaExceeded is returned once a script dispatches more
	// commands than Config.StepQuota allows.
	ErrStepQuotaExceeded = errors.New("step quota exceeded")
	// ErrRecursionLimit is returned when nested script evaluation goes
	// deeper than Config.RecursionLimit.
	ErrRecursionLimit = errors.New("recursion limit exceeded")

	errIntegerRange = errors.New("integer value too large to represent")
	errLoopBreak    = errors.New(`invoked "break" outside of a loop`)
	errLoopContinue = errors.New(`invoked "continue" outside of a loop`)
)

// ParseError reports a lexical or grammatical mismatch.
type ParseError struct {
	Message  string
	Found    TokenKind
	Expected TokenKind
	Pos      Position
	Source   string
	Err      error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error: %s (at %s)", e.Message, e.Pos)
	if frame := formatCodeFrame(e.Source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExecutionError reports a semantic failure while evaluating a node.
type ExecutionError struct {
	Message string
	Node    *Node
	Source  string
	Err     error
}

func (e *ExecutionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Node != nil {
		fmt.Fprintf(&b, " (at %s)", e.Node)
		if frame := formatCodeFrame(e.Source, e.Node.Pos); frame != "" {
			b.WriteString("\n")
			b.WriteString(frame)
		}
	}
	return b.String()
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// CommandError reports an arity violation or an internal failure of a
// command implementation.
type CommandError struct {
	Message string
	Command *Command
	Err     error
}

func (e *CommandError) Error() string {
	if e.Command == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (in command %s)", e.Message, e.Command.Name)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func newExecutionError(node *Node, source string, format string, args ...any) *ExecutionError {
	return &ExecutionError{Message: fmt.Sprintf(format, args...), Node: node, Source: source}
}

// isTypedError reports whether err already belongs to the error taxonomy.
func isTypedError(err error) bool {
	var pe *ParseError
	var ee *ExecutionError
	var ce *CommandError
	return errors.As(err, &pe) || errors.As(err, &ee) || errors.As(err, &ce)
}

func isLoopSignal(err error) bool {
	return errors.Is(err, errLoopBreak) || errors.Is(err, errLoopContinue)
}
