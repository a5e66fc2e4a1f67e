package tcl

import (
	"math"
	"slices"
)

func (ev *evaluator) unary(node *Node) (OpResult, error) {
	operand, err := ev.eval(node.Children[0])
	if err != nil {
		return OpResult{}, err
	}

	switch node.Value {
	case "+":
		if !operand.IsNumeric() {
			return OpResult{}, ev.nonNumeric(node, operand)
		}
		return operand, nil
	case "-":
		switch {
		case operand.IsInt():
			return intResult(-operand.i), nil
		case operand.IsDouble():
			return doubleResult(-operand.f), nil
		}
		return OpResult{}, ev.nonNumeric(node, operand)
	case "!":
		if !operand.IsNumeric() {
			return OpResult{}, ev.nonNumeric(node, operand)
		}
		truth, _ := operand.Truth()
		return boolResult(!truth), nil
	case "~":
		if !operand.IsInt() {
			return OpResult{}, ev.nonInteger(node, operand)
		}
		return intResult(^operand.i), nil
	}
	return OpResult{}, ev.errorf(node, "unknown unary operator %q", node.Value)
}

func (ev *evaluator) binary(node *Node) (OpResult, error) {
	left, err := ev.eval(node.Children[0])
	if err != nil {
		return OpResult{}, err
	}
	right, err := ev.eval(node.Children[1])
	if err != nil {
		return OpResult{}, err
	}

	op := node.Value
	switch op {
	case "+", "-", "*", "/", "%":
		if op == "+" && (!left.IsNumeric() || !right.IsNumeric()) {
			return stringResult(left.String() + right.String()), nil
		}
		return ev.arithmetic(node, left, right)
	case "**":
		if err := ev.requireNumeric(node, left, right); err != nil {
			return OpResult{}, err
		}
		return doubleResult(math.Pow(left.Float(), right.Float())), nil
	case "<<", ">>", "&", "^", "|":
		return ev.bitwise(node, left, right)
	case "<", ">", "<=", ">=":
		if err := ev.requireNumeric(node, left, right); err != nil {
			return OpResult{}, err
		}
		return boolResult(compareNumbers(op, left, right)), nil
	case "eq", "==":
		return boolResult(equalResults(left, right)), nil
	case "ne", "!=":
		return boolResult(!equalResults(left, right)), nil
	case "in":
		return boolResult(slices.Contains(ParseList(right.String(), ""), left.String())), nil
	case "ni":
		return boolResult(!slices.Contains(ParseList(right.String(), ""), left.String())), nil
	case "&&", "||":
		if err := ev.requireNumeric(node, left, right); err != nil {
			return OpResult{}, err
		}
		l, _ := left.Truth()
		r, _ := right.Truth()
		if op == "&&" {
			return boolResult(l && r), nil
		}
		return boolResult(l || r), nil
	}
	return OpResult{}, ev.errorf(node, "unknown binary operator %q", op)
}

// arithmetic keeps integer results for integer operands and double results
// for double operands. Only + accepts one of each, promoting to double.
func (ev *evaluator) arithmetic(node *Node, left, right OpResult) (OpResult, error) {
	if err := ev.requireNumeric(node, left, right); err != nil {
		return OpResult{}, err
	}
	op := node.Value
	if op != "+" && left.IsInt() != right.IsInt() {
		return OpResult{}, ev.errorf(node, "can't mix integer and floating-point operands of %q", op)
	}

	if left.IsInt() && right.IsInt() {
		l, r := left.i, right.i
		switch op {
		case "+":
			return intResult(l + r), nil
		case "-":
			return intResult(l - r), nil
		case "*":
			return intResult(l * r), nil
		case "/", "%":
			if r == 0 {
				return OpResult{}, ev.errorf(node, "divide by zero")
			}
			if op == "/" {
				return intResult(l / r), nil
			}
			return intResult(l % r), nil
		}
	}

	l, r := left.Float(), right.Float()
	switch op {
	case "+":
		return doubleResult(l + r), nil
	case "-":
		return doubleResult(l - r), nil
	case "*":
		return doubleResult(l * r), nil
	case "/":
		return doubleResult(l / r), nil
	}
	return OpResult{}, ev.errorf(node, "can't use floating-point value as operand of %q", op)
}

func (ev *evaluator) bitwise(node *Node, left, right OpResult) (OpResult, error) {
	if !left.IsInt() {
		return OpResult{}, ev.nonInteger(node, left)
	}
	if !right.IsInt() {
		return OpResult{}, ev.nonInteger(node, right)
	}
	l, r := left.i, right.i
	switch node.Value {
	case "<<", ">>":
		if r < 0 {
			return OpResult{}, ev.errorf(node, "negative shift argument")
		}
		if node.Value == "<<" {
			return intResult(l << uint64(r)), nil
		}
		return intResult(l >> uint64(r)), nil
	case "&":
		return intResult(l & r), nil
	case "^":
		return intResult(l ^ r), nil
	default:
		return intResult(l | r), nil
	}
}

func compareNumbers(op string, left, right OpResult) bool {
	var cmp int
	if left.IsInt() && right.IsInt() {
		switch {
		case left.i < right.i:
			cmp = -1
		case left.i > right.i:
			cmp = 1
		}
	} else {
		l, r := left.Float(), right.Float()
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		case l != r:
			return false
		}
	}
	switch op {
	case "<":
		return cmp < 0
	case ">":
		return cmp > 0
	case "<=":
		return cmp <= 0
	default:
		return cmp >= 0
	}
}

// equalResults compares numerically when both sides are numbers and as
// strings otherwise.
func equalResults(left, right OpResult) bool {
	switch {
	case left.IsInt() && right.IsInt():
		return left.i == right.i
	case left.IsNumeric() && right.IsNumeric():
		return left.Float() == right.Float()
	}
	return left.String() == right.String()
}

func (ev *evaluator) requireNumeric(node *Node, left, right OpResult) error {
	if !left.IsNumeric() {
		return ev.nonNumeric(node, left)
	}
	if !right.IsNumeric() {
		return ev.nonNumeric(node, right)
	}
	return nil
}

func (ev *evaluator) nonNumeric(node *Node, operand OpResult) error {
	return ev.errorf(node, "can't use non-numeric string %q as operand of %q", operand.String(), node.Value)
}

func (ev *evaluator) nonInteger(node *Node, operand OpResult) error {
	return ev.errorf(node, "can't use non-integer value %q as operand of %q", operand.String(), node.Value)
}
