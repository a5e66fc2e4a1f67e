package tcl

import (
	"fmt"
	"strconv"
	"strings"
)

// formatSpec is one conversion of a format string, %[flags][width][.prec]conv.
type formatSpec struct {
	flags     string
	width     string
	precision string
	hasPrec   bool
	conv      rune
}

// verb renders the spec as a Go format verb.
func (spec formatSpec) verb() string {
	var b strings.Builder
	b.WriteByte('%')
	b.WriteString(spec.flags)
	b.WriteString(spec.width)
	if spec.hasPrec {
		b.WriteByte('.')
		b.WriteString(spec.precision)
	} else if spec.conv == 'g' || spec.conv == 'G' {
		b.WriteString(".6")
	}
	switch spec.conv {
	case 'i', 'u':
		b.WriteByte('d')
	default:
		b.WriteRune(spec.conv)
	}
	return b.String()
}

// formatPiece is either literal text or a conversion.
type formatPiece struct {
	literal string
	spec    *formatSpec
}

func parseFormat(format string) ([]formatPiece, error) {
	runes := []rune(format)
	var pieces []formatPiece
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			pieces = append(pieces, formatPiece{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' {
			lit.WriteRune(runes[i])
			continue
		}
		i++
		if i >= len(runes) {
			return nil, fmt.Errorf("format string ended in middle of field specifier")
		}
		if runes[i] == '%' {
			lit.WriteRune('%')
			continue
		}

		spec := &formatSpec{}
		start := i
		for i < len(runes) && strings.ContainsRune("-+ 0#", runes[i]) {
			i++
		}
		spec.flags = string(runes[start:i])
		start = i
		for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
			i++
		}
		spec.width = string(runes[start:i])
		if i < len(runes) && runes[i] == '.' {
			i++
			start = i
			for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
				i++
			}
			spec.precision = string(runes[start:i])
			spec.hasPrec = true
		}
		for i < len(runes) && (runes[i] == 'l' || runes[i] == 'h') {
			i++
		}
		if i >= len(runes) {
			return nil, fmt.Errorf("format string ended in middle of field specifier")
		}
		spec.conv = runes[i]
		if !strings.ContainsRune("sgGeEfidouxXc", spec.conv) {
			return nil, fmt.Errorf("bad field specifier %q", spec.conv)
		}
		flush()
		pieces = append(pieces, formatPiece{spec: spec})
	}
	flush()
	return pieces, nil
}

func cmdFormat(exec *Execution, args []string) (Result, error) {
	pieces, err := parseFormat(args[0])
	if err != nil {
		return NullResult(), exec.errorf("%v", err)
	}
	values := args[1:]

	var b strings.Builder
	next := 0
	for _, piece := range pieces {
		if piece.spec == nil {
			b.WriteString(piece.literal)
			continue
		}
		if next >= len(values) {
			return NullResult(), exec.errorf("not enough arguments for all format specifiers")
		}
		arg := values[next]
		next++

		spec := piece.spec
		switch spec.conv {
		case 's':
			fmt.Fprintf(&b, spec.verb(), arg)
		case 'g', 'G', 'e', 'E', 'f':
			f, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
			if err != nil || !looksNumeric(arg) {
				return NullResult(), exec.errorf("expected floating-point number but got %q", arg)
			}
			fmt.Fprintf(&b, spec.verb(), f)
		case 'c':
			n, err := parseInteger(arg)
			if err != nil {
				return NullResult(), exec.errorf("expected integer but got %q", arg)
			}
			fmt.Fprintf(&b, spec.verb(), rune(n))
		default:
			n, err := parseInteger(arg)
			if err != nil {
				return NullResult(), exec.errorf("expected integer but got %q", arg)
			}
			fmt.Fprintf(&b, spec.verb(), n)
		}
	}
	return NewResult(b.String()), nil
}
