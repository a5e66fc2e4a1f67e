package tcl

import "strings"

func (l *lexer) nextScriptToken() Token {
	if tok, ok := l.regionToken(); ok {
		return tok
	}

	pos := l.position()
	if l.eof() {
		return l.token(tokenEOF, pos)
	}

	switch {
	case l.ch == '\n':
		l.advance()
		l.atCommandStart = true
		l.wordStart = true
		return l.token(tokenEOL, pos)
	case l.ch == ';':
		l.advance()
		l.atCommandStart = true
		l.wordStart = true
		return l.token(tokenSemi, pos)
	case isSpace(l.ch) || l.atContinuation():
		l.skipBlanks()
		l.wordStart = true
		return l.textToken(tokenWhitespace, " ", pos)
	case l.ch == '#' && l.atCommandStart:
		return l.readComment(pos)
	}

	l.atCommandStart = false
	switch {
	case l.ch == '{' && l.wordStart:
		l.advance()
		l.inCurly = true
		l.wordStart = false
		return l.token(tokenLeftCurl, pos)
	case l.ch == '"' && l.wordStart && !l.inQuotes:
		l.advance()
		l.inQuotes = true
		l.wordStart = false
		return l.token(tokenLeftQ, pos)
	case l.ch == '[':
		l.advance()
		l.inBrackets = true
		l.wordStart = false
		return l.token(tokenLeftBr, pos)
	case l.atNameStart():
		l.wordStart = false
		return l.textToken(tokenName, l.readName(), pos)
	}

	l.wordStart = false
	return l.textToken(tokenWord, l.readWord(), pos)
}

// skipBlanks consumes non-newline whitespace and line continuations.
func (l *lexer) skipBlanks() {
	for !l.eof() {
		switch {
		case isSpace(l.ch):
			l.advance()
		case l.atContinuation():
			l.advance()
			l.skipContinuation()
		default:
			return
		}
	}
}

// readWord scans a bare word, applying backslash escapes, up to the next
// separator or substitution.
func (l *lexer) readWord() string {
	var sb strings.Builder
	for !l.eof() {
		switch {
		case l.ch == '\n', l.ch == ';', isSpace(l.ch), l.atContinuation():
			return sb.String()
		case l.ch == '[':
			return sb.String()
		case l.atNameStart():
			return sb.String()
		case l.ch == '\\':
			sb.WriteString(l.readEscape())
		default:
			sb.WriteRune(l.ch)
			l.advance()
		}
	}
	return sb.String()
}
