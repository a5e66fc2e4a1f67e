package tcl

import (
	"strconv"
	"strings"
	"unicode"
)

type stringSubcommand struct {
	usage string
	min   int
	max   int
	fn    func(exec *Execution, args []string) (Result, error)
}

var stringSubcommands = map[string]stringSubcommand{
	"length":    {"string length string", 1, 1, stringLength},
	"index":     {"string index string charIndex", 2, 2, stringIndex},
	"range":     {"string range string first last", 3, 3, stringRange},
	"compare":   {"string compare string1 string2", 2, 2, stringCompare},
	"match":     {"string match pattern string", 2, 2, stringMatch},
	"first":     {"string first needleString haystackString ?startIndex?", 2, 3, stringFirst},
	"last":      {"string last needleString haystackString ?lastIndex?", 2, 3, stringLast},
	"wordstart": {"string wordstart string charIndex", 2, 2, stringWordStart},
	"wordend":   {"string wordend string charIndex", 2, 2, stringWordEnd},
	"tolower":   {"string tolower string", 1, 1, stringMapper(strings.ToLower)},
	"toupper":   {"string toupper string", 1, 1, stringMapper(strings.ToUpper)},
	"trim":      {"string trim string ?chars?", 1, 2, stringTrimmer(strings.Trim, strings.TrimSpace)},
	"trimleft":  {"string trimleft string ?chars?", 1, 2, stringTrimmer(strings.TrimLeft, trimLeftSpace)},
	"trimright": {"string trimright string ?chars?", 1, 2, stringTrimmer(strings.TrimRight, trimRightSpace)},
}

func cmdString(exec *Execution, args []string) (Result, error) {
	sub, ok := stringSubcommands[args[0]]
	if !ok {
		return NullResult(), exec.errorf("unknown or ambiguous subcommand %q of string", args[0])
	}
	rest := args[1:]
	if len(rest) < sub.min || len(rest) > sub.max {
		return NullResult(), exec.commandError("wrong # args: should be %q", sub.usage)
	}
	return sub.fn(exec, rest)
}

// parseIndex reads an index that is an integer, "end" or "end-N", relative
// to a sequence of length n.
func parseIndex(text string, n int) (int, bool) {
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "end"); ok {
		if rest == "" {
			return n - 1, true
		}
		if len(rest) < 2 || (rest[0] != '-' && rest[0] != '+') {
			return 0, false
		}
		offset, err := strconv.Atoi(rest[1:])
		if err != nil {
			return 0, false
		}
		if rest[0] == '-' {
			return n - 1 - offset, true
		}
		return n - 1 + offset, true
	}
	idx, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return idx, true
}

func (exec *Execution) index(text string, n int) (int, error) {
	idx, ok := parseIndex(text, n)
	if !ok {
		return 0, exec.errorf("bad index %q: must be an integer number", text)
	}
	return idx, nil
}

func stringLength(exec *Execution, args []string) (Result, error) {
	return NewResult(strconv.Itoa(len([]rune(args[0])))), nil
}

func stringIndex(exec *Execution, args []string) (Result, error) {
	runes := []rune(args[0])
	idx, err := exec.index(args[1], len(runes))
	if err != nil {
		return NullResult(), err
	}
	if idx < 0 || idx >= len(runes) {
		return NewResult(""), nil
	}
	return NewResult(string(runes[idx])), nil
}

func stringRange(exec *Execution, args []string) (Result, error) {
	runes := []rune(args[0])
	first, err := exec.index(args[1], len(runes))
	if err != nil {
		return NullResult(), err
	}
	last, err := exec.index(args[2], len(runes))
	if err != nil {
		return NullResult(), err
	}
	first = max(first, 0)
	last = min(last, len(runes)-1)
	if first > last {
		return NewResult(""), nil
	}
	return NewResult(string(runes[first : last+1])), nil
}

func stringCompare(exec *Execution, args []string) (Result, error) {
	return NewResult(strconv.Itoa(strings.Compare(args[0], args[1]))), nil
}

func stringMatch(exec *Execution, args []string) (Result, error) {
	return NewResult(boolText(globMatch([]rune(args[0]), []rune(args[1])))), nil
}

func stringFirst(exec *Execution, args []string) (Result, error) {
	needle, hay := []rune(args[0]), []rune(args[1])
	if len(needle) == 0 {
		return NewResult("-1"), nil
	}
	start := 0
	if len(args) == 3 {
		idx, err := exec.index(args[2], len(hay))
		if err != nil {
			return NullResult(), err
		}
		start = max(idx, 0)
	}
	for i := start; i+len(needle) <= len(hay); i++ {
		if runesEqual(hay[i:i+len(needle)], needle) {
			return NewResult(strconv.Itoa(i)), nil
		}
	}
	return NewResult("-1"), nil
}

func stringLast(exec *Execution, args []string) (Result, error) {
	needle, hay := []rune(args[0]), []rune(args[1])
	if len(needle) == 0 {
		return NewResult("-1"), nil
	}
	last := len(hay) - 1
	if len(args) == 3 {
		idx, err := exec.index(args[2], len(hay))
		if err != nil {
			return NullResult(), err
		}
		last = min(idx, len(hay)-1)
	}
	for i := last - len(needle) + 1; i >= 0; i-- {
		if runesEqual(hay[i:i+len(needle)], needle) {
			return NewResult(strconv.Itoa(i)), nil
		}
	}
	return NewResult("-1"), nil
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func stringWordStart(exec *Execution, args []string) (Result, error) {
	runes := []rune(args[0])
	idx, err := exec.index(args[1], len(runes))
	if err != nil {
		return NullResult(), err
	}
	if len(runes) == 0 {
		return NewResult("0"), nil
	}
	idx = min(max(idx, 0), len(runes)-1)
	if !isWordRune(runes[idx]) {
		return NewResult(strconv.Itoa(idx)), nil
	}
	for idx > 0 && isWordRune(runes[idx-1]) {
		idx--
	}
	return NewResult(strconv.Itoa(idx)), nil
}

func stringWordEnd(exec *Execution, args []string) (Result, error) {
	runes := []rune(args[0])
	idx, err := exec.index(args[1], len(runes))
	if err != nil {
		return NullResult(), err
	}
	if len(runes) == 0 {
		return NewResult("0"), nil
	}
	if idx >= len(runes) {
		return NewResult(strconv.Itoa(len(runes))), nil
	}
	idx = max(idx, 0)
	if !isWordRune(runes[idx]) {
		return NewResult(strconv.Itoa(idx + 1)), nil
	}
	for idx < len(runes) && isWordRune(runes[idx]) {
		idx++
	}
	return NewResult(strconv.Itoa(idx)), nil
}

func stringMapper(fn func(string) string) func(*Execution, []string) (Result, error) {
	return func(exec *Execution, args []string) (Result, error) {
		return NewResult(fn(args[0])), nil
	}
}

func stringTrimmer(withChars func(string, string) string, whitespace func(string) string) func(*Execution, []string) (Result, error) {
	return func(exec *Execution, args []string) (Result, error) {
		if len(args) == 2 {
			return NewResult(withChars(args[0], args[1])), nil
		}
		return NewResult(whitespace(args[0])), nil
	}
}

func trimLeftSpace(s string) string  { return strings.TrimLeftFunc(s, unicode.IsSpace) }
func trimRightSpace(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }

// globMatch matches s against a glob pattern: '*' matches any run, '?' any
// single character, [a-z] a character class and a backslash escapes the
// next character.
func globMatch(pattern, s []rune) bool {
	p, i := 0, 0
	starP, starI := -1, 0
	for i < len(s) {
		if p < len(pattern) {
			switch pattern[p] {
			case '*':
				starP, starI = p, i
				p++
				continue
			case '?':
				p++
				i++
				continue
			case '[':
				if end, ok := matchClass(pattern, p, s[i]); ok {
					p = end
					i++
					continue
				}
			case '\\':
				if p+1 < len(pattern) && pattern[p+1] == s[i] {
					p += 2
					i++
					continue
				}
			default:
				if pattern[p] == s[i] {
					p++
					i++
					continue
				}
			}
		}
		if starP < 0 {
			return false
		}
		starI++
		p, i = starP+1, starI
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}

// matchClass tests r against the bracket expression starting at pattern[p]
// and returns the index just past its closing ']'.
func matchClass(pattern []rune, p int, r rune) (int, bool) {
	matched := false
	j := p + 1
	for j < len(pattern) && pattern[j] != ']' {
		lo := pattern[j]
		if lo == '\\' && j+1 < len(pattern) {
			j++
			lo = pattern[j]
		}
		hi := lo
		if j+2 < len(pattern) && pattern[j+1] == '-' && pattern[j+2] != ']' {
			hi = pattern[j+2]
			j += 2
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		if r >= lo && r <= hi {
			matched = true
		}
		j++
	}
	if j >= len(pattern) {
		return 0, false
	}
	return j + 1, matched
}
