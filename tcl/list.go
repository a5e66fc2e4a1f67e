package tcl

import (
	"strings"
	"unicode"
)

// ParseList splits s into list elements. splitChars lists the separator
// characters; when empty, any Unicode whitespace separates elements.
//
// An element that starts with '{' runs until its braces balance and is
// returned without the outer braces. Inside it an opening brace nests only
// when it follows a separator or another '{', and a closing brace unnests
// only when a separator, another '}' or the end of input follows it.
// Backslash-escaped braces never count. An unbalanced element runs to the
// end of input.
func ParseList(s string, splitChars string) []string {
	isSplit := unicode.IsSpace
	if splitChars != "" {
		isSplit = func(r rune) bool { return strings.ContainsRune(splitChars, r) }
	}

	runes := []rune(s)
	n := len(runes)
	elems := []string{}
	i := 0
	for i < n {
		for i < n && isSplit(runes[i]) {
			i++
		}
		if i >= n {
			break
		}

		if runes[i] != '{' {
			start := i
			for i < n && !isSplit(runes[i]) {
				i++
			}
			elems = append(elems, string(runes[start:i]))
			continue
		}

		start := i + 1
		end := n
		depth := 1
		for i++; i < n && depth > 0; i++ {
			switch runes[i] {
			case '\\':
				i++
			case '{':
				if prev := runes[i-1]; isSplit(prev) || prev == '{' {
					depth++
				}
			case '}':
				if i+1 == n || isSplit(runes[i+1]) || runes[i+1] == '}' {
					depth--
					if depth == 0 {
						end = i
					}
				}
			}
		}
		elems = append(elems, string(runes[start:min(end, n)]))
		i = min(i, n)
	}
	return elems
}

// FormatList wraps each element in braces and joins them with spaces.
func FormatList(elems []string) string {
	if len(elems) == 0 {
		return ""
	}
	var b strings.Builder
	for i, elem := range elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('{')
		b.WriteString(elem)
		b.WriteByte('}')
	}
	return b.String()
}
