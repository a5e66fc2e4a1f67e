package tcl

import "strings"

func (l *lexer) nextSubstToken() Token {
	if tok, ok := l.regionToken(); ok {
		return tok
	}

	pos := l.position()
	if l.eof() {
		return l.token(tokenEOF, pos)
	}

	switch {
	case l.atNameStart():
		return l.textToken(tokenName, l.readName(), pos)
	case l.ch == '[':
		l.advance()
		l.inBrackets = true
		return l.token(tokenLeftBr, pos)
	}

	var sb strings.Builder
	for !l.eof() && l.ch != '[' && !l.atNameStart() {
		if l.ch == '\\' {
			sb.WriteString(l.readEscape())
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	return l.textToken(tokenString, sb.String(), pos)
}
