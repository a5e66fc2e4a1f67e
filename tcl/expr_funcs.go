package tcl

import (
	"maps"
	"math"
	"slices"
)

// Math function tables, keyed by name and grouped by argument and result
// type. They are built once and never modified.
var (
	intToDoubleFuncs = map[string]func(int64) float64{
		"double": func(n int64) float64 { return float64(n) },
	}

	doubleToIntFuncs = map[string]func(float64) float64{
		"round":  math.Round,
		"int":    math.Trunc,
		"wide":   math.Trunc,
		"entier": math.Trunc,
	}

	doubleToDoubleFuncs = map[string]func(float64) float64{
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
		"sqrt":  math.Sqrt,
		"exp":   math.Exp,
		"log":   math.Log,
		"log10": math.Log10,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"abs":   math.Abs,
	}
)

// IsMathFunc reports whether name is a known expression function.
func IsMathFunc(name string) bool {
	_, a := intToDoubleFuncs[name]
	_, b := doubleToIntFuncs[name]
	_, c := doubleToDoubleFuncs[name]
	return a || b || c
}

// MathFuncs returns the names of every expression function, sorted.
func MathFuncs() []string {
	names := slices.Collect(maps.Keys(intToDoubleFuncs))
	names = slices.AppendSeq(names, maps.Keys(doubleToIntFuncs))
	names = slices.AppendSeq(names, maps.Keys(doubleToDoubleFuncs))
	slices.Sort(names)
	return names
}

func (ev *evaluator) call(node *Node) (OpResult, error) {
	name := node.Value
	arg, err := ev.eval(node.Children[0])
	if err != nil {
		return OpResult{}, err
	}

	if fn, ok := intToDoubleFuncs[name]; ok {
		if !arg.IsInt() {
			return OpResult{}, ev.badArgument(node, arg, "an integer")
		}
		return doubleResult(fn(arg.i)), nil
	}

	if fn, ok := doubleToIntFuncs[name]; ok {
		if !arg.IsDouble() {
			return OpResult{}, ev.badArgument(node, arg, "a floating-point value")
		}
		n, err := floatToInt64(fn(arg.f))
		if err != nil {
			return OpResult{}, ev.errorf(node, "%s: %v", name, err)
		}
		return intResult(n), nil
	}

	if fn, ok := doubleToDoubleFuncs[name]; ok {
		if !arg.IsDouble() {
			return OpResult{}, ev.badArgument(node, arg, "a floating-point value")
		}
		out := fn(arg.f)
		if math.IsNaN(out) && !math.IsNaN(arg.f) {
			return OpResult{}, ev.errorf(node, "domain error: argument not in valid range for %s", name)
		}
		return doubleResult(out), nil
	}

	return OpResult{}, ev.errorf(node, "unknown math function %q", name)
}

func (ev *evaluator) badArgument(node *Node, arg OpResult, want string) error {
	if !arg.IsNumeric() {
		return ev.errorf(node, "argument %q to math function %q didn't have numeric value", arg.String(), node.Value)
	}
	return ev.errorf(node, "argument %q to math function %q must be %s", arg.String(), node.Value, want)
}

func floatToInt64(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errIntegerRange
	}
	// float64(math.MaxInt64) rounds up to 2^63.
	if v < float64(math.MinInt64) || v >= math.Exp2(63) {
		return 0, errIntegerRange
	}
	return int64(v), nil
}
