package tcl

import (
	"strconv"
	"strings"
)

func cmdList(exec *Execution, args []string) (Result, error) {
	return NewResult(FormatList(args)), nil
}

func cmdLlength(exec *Execution, args []string) (Result, error) {
	return NewResult(strconv.Itoa(len(ParseList(args[0], "")))), nil
}

// cmdLindex drills into nested lists. Every index operand is itself a list
// of indices; all of them are applied in order.
func cmdLindex(exec *Execution, args []string) (Result, error) {
	var indices []string
	for _, arg := range args[1:] {
		indices = append(indices, ParseList(arg, "")...)
	}

	current := args[0]
	for _, text := range indices {
		elems := ParseList(current, "")
		idx, err := exec.index(text, len(elems))
		if err != nil {
			return NullResult(), err
		}
		if idx < 0 || idx >= len(elems) {
			return NullResult(), exec.errorf("list index %q out of range (list has %d elements)", text, len(elems))
		}
		current = elems[idx]
	}
	return NewResult(current), nil
}

func cmdLrange(exec *Execution, args []string) (Result, error) {
	elems := ParseList(args[0], "")
	first, err := exec.index(args[1], len(elems))
	if err != nil {
		return NullResult(), err
	}
	last, err := exec.index(args[2], len(elems))
	if err != nil {
		return NullResult(), err
	}
	first = max(first, 0)
	last = min(last, len(elems)-1)
	if first > last {
		return NewResult(""), nil
	}
	return NewResult(FormatList(elems[first : last+1])), nil
}

// cmdLappend appends each value to the variable, separating values with a
// single space.
func cmdLappend(exec *Execution, args []string) (Result, error) {
	name := args[0]
	cur, _ := exec.scope.Get(name)
	var b strings.Builder
	b.WriteString(cur)
	for _, val := range args[1:] {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(val)
	}
	exec.scope.Set(name, b.String())
	exec.interp.tracef(" %s=%s;\n", name, b.String())
	return NewResult(b.String()), nil
}

func cmdSplit(exec *Execution, args []string) (Result, error) {
	chars := ""
	if len(args) == 2 {
		chars = args[1]
	}
	return NewResult(FormatList(ParseList(args[0], chars))), nil
}

func cmdJoin(exec *Execution, args []string) (Result, error) {
	sep := " "
	if len(args) == 2 {
		sep = args[1]
	}
	return NewResult(strings.Join(ParseList(args[0], ""), sep)), nil
}
