package tcl

import (
	"strings"
)

// substitute reduces an operand to its string value by concatenating its
// fragments in order.
func (exec *Execution) substitute(operand *Node) (string, error) {
	if len(operand.Children) == 1 {
		return exec.fragment(operand.Children[0])
	}
	var b strings.Builder
	for _, child := range operand.Children {
		text, err := exec.fragment(child)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func (exec *Execution) fragment(node *Node) (string, error) {
	switch node.Kind {
	case NodeWord, NodeString, NodeSubstring:
		return node.Value, nil
	case NodeName:
		return exec.readName(node.Value)
	case NodeProgram:
		return exec.commandSubstitution(node)
	case NodeOperand, NodeList:
		return exec.substitute(node)
	default:
		return "", exec.errorf("cannot substitute %s node", node.Kind)
	}
}

// readName resolves $name, substituting inside an array index first.
func (exec *Execution) readName(name string) (string, error) {
	if array, index, ok := splitArrayName(name); ok {
		resolved, err := exec.substituteText(index)
		if err != nil {
			return "", err
		}
		return exec.readVariable(array + "(" + resolved + ")")
	}
	return exec.readVariable(name)
}

// readVariable looks name up in the current scope without further
// substitution.
func (exec *Execution) readVariable(name string) (string, error) {
	if val, ok := exec.scope.Get(name); ok {
		return val, nil
	}
	if array, _, ok := splitArrayName(name); ok {
		if exec.scope.IsArray(array) {
			return "", exec.errorf("can't read %q: no such element in array", name)
		}
		return "", exec.errorf("can't read %q: no such variable", name)
	}
	if exec.scope.IsArray(name) {
		return "", exec.errorf("can't read %q: variable is array", name)
	}
	return "", exec.errorf("can't read %q: no such variable", name)
}

// commandSubstitution runs a bracketed script in the current scope. A
// failure is logged and substitutes the empty string unless strict
// substitution is configured or the failure is fatal to the run.
func (exec *Execution) commandSubstitution(node *Node) (string, error) {
	res, err := exec.evalScript(node.Value, exec.scope)
	if err == nil {
		return res.String(), nil
	}
	if exec.interp.config.StrictSubstitution || isFatal(err) || isLoopSignal(err) {
		return "", err
	}
	exec.logger.Warn("command substitution failed", "script", node.Value, "error", err)
	return "", nil
}

// substituteText applies variable and command substitution to free text
// using the substitution grammar.
func (exec *Execution) substituteText(text string) (string, error) {
	if !strings.ContainsAny(text, "$[\\") {
		return text, nil
	}
	list, err := ParseSubstitution(text)
	if err != nil {
		return "", err
	}
	return exec.substitute(list)
}
