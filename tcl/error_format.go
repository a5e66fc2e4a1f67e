package tcl

import (
	"fmt"
	"strconv"
	"strings"
)

// formatCodeFrame renders the source line at pos with a caret under the
// offending column. Tabs are widened so the caret lines up.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineRunes := []rune(lines[pos.Line-1])
	column := min(max(pos.Column, 1), len(lineRunes)+1)

	var text, caret strings.Builder
	for i, r := range lineRunes {
		width := 1
		if r == '\t' {
			width = 4
			text.WriteString("    ")
		} else {
			text.WriteRune(r)
		}
		if i < column-1 {
			caret.WriteString(strings.Repeat(" ", width))
		}
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		text.String(),
		gutterPad,
		caret.String(),
	)
}
