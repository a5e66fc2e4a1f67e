package tcl

import (
	"strconv"
	"strings"
	"unicode"
)

// LexMode selects the grammar the lexer tokenizes for.
type LexMode int

const (
	// ModeScript tokenizes command scripts: words, substitutions, braces,
	// quotes, brackets, comments and command separators.
	ModeScript LexMode = iota
	// ModeExpr tokenizes arithmetic/logical expressions.
	ModeExpr
	// ModeSubst tokenizes text for substitution only: literal runs,
	// variable references and bracketed scripts.
	ModeSubst
)

func (m LexMode) String() string {
	switch m {
	case ModeScript:
		return "script"
	case ModeExpr:
		return "expr"
	case ModeSubst:
		return "subst"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// tokenSource is anything that hands out tokens one at a time until EOF.
type tokenSource interface {
	NextToken() Token
}

type lexer struct {
	input []rune
	mode  LexMode

	offset int
	ch     rune

	line   int
	column int

	inQuotes   bool
	inCurly    bool
	inBrackets bool
	closing    TokenKind

	atCommandStart bool
	wordStart      bool
}

func newLexer(input string, mode LexMode) *lexer {
	l := &lexer{
		input:          []rune(input),
		mode:           mode,
		line:           1,
		column:         1,
		atCommandStart: true,
		wordStart:      true,
	}
	l.ch = l.at(0)
	return l
}

// Tokenize lexes the whole input in the given mode, including the final EOF.
func Tokenize(input string, mode LexMode) []Token {
	l := newLexer(input, mode)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == tokenEOF {
			return toks
		}
	}
}

// NextToken returns the next token. After EOF it keeps returning EOF.
func (l *lexer) NextToken() Token {
	switch l.mode {
	case ModeExpr:
		return l.nextExprToken()
	case ModeSubst:
		return l.nextSubstToken()
	default:
		return l.nextScriptToken()
	}
}

func (l *lexer) at(i int) rune {
	if i < 0 || i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *lexer) eof() bool {
	return l.offset >= len(l.input)
}

func (l *lexer) peek() rune {
	return l.at(l.offset + 1)
}

func (l *lexer) prev() rune {
	return l.at(l.offset - 1)
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.offset++
	l.ch = l.at(l.offset)
}

func (l *lexer) position() Position {
	return Position{Line: l.line, Column: l.column}
}

func (l *lexer) token(kind TokenKind, pos Position) Token {
	return Token{Kind: kind, Pos: pos}
}

func (l *lexer) textToken(kind TokenKind, text string, pos Position) Token {
	return Token{Kind: kind, Text: text, HasText: true, Pos: pos}
}

// regionToken continues a quoted, braced or bracketed region opened by the
// previous call: first the raw interior as STRING, then the closing token.
func (l *lexer) regionToken() (Token, bool) {
	pos := l.position()
	switch {
	case l.inCurly:
		l.inCurly = false
		l.closing = tokenRightCurl
		return l.textToken(tokenString, l.scanBraced(), pos), true
	case l.inQuotes:
		l.inQuotes = false
		l.closing = tokenRightQ
		return l.textToken(tokenString, l.scanQuoted(), pos), true
	case l.inBrackets:
		l.inBrackets = false
		l.closing = tokenRightBr
		var sb strings.Builder
		l.copyBracketBody(&sb)
		return l.textToken(tokenString, sb.String(), pos), true
	case l.closing != tokenNull:
		want := l.closing
		l.closing = tokenNull
		if !l.eof() && l.ch == closingRune(want) {
			l.advance()
			l.wordStart = false
			return l.token(want, pos), true
		}
	}
	return Token{}, false
}

func closingRune(kind TokenKind) rune {
	switch kind {
	case tokenRightCurl:
		return '}'
	case tokenRightQ:
		return '"'
	case tokenRightBr:
		return ']'
	}
	return 0
}

// scanBraced returns the literal interior of a braced word, stopping before
// the matching close brace.
func (l *lexer) scanBraced() string {
	var sb strings.Builder
	depth := 1
	for !l.eof() {
		switch l.ch {
		case '\\':
			sb.WriteRune(l.ch)
			l.advance()
			if l.eof() {
				return sb.String()
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return sb.String()
			}
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	return sb.String()
}

// scanQuoted returns the raw interior of a quoted word. Quotes nested inside
// bracketed scripts do not terminate it.
func (l *lexer) scanQuoted() string {
	var sb strings.Builder
	for !l.eof() && l.ch != '"' {
		switch l.ch {
		case '\\':
			sb.WriteRune(l.ch)
			l.advance()
			if !l.eof() {
				sb.WriteRune(l.ch)
				l.advance()
			}
		case '[':
			l.copyBrackets(&sb)
		default:
			sb.WriteRune(l.ch)
			l.advance()
		}
	}
	return sb.String()
}

// copyBracketBody copies a bracketed script up to, not including, its
// matching close bracket.
func (l *lexer) copyBracketBody(sb *strings.Builder) {
	last := '['
	for !l.eof() && l.ch != ']' {
		switch {
		case l.ch == '\\':
			sb.WriteRune(l.ch)
			l.advance()
			if !l.eof() {
				sb.WriteRune(l.ch)
				l.advance()
			}
			last = 'x'
			continue
		case l.ch == '[':
			l.copyBrackets(sb)
		case l.ch == '{':
			l.copyBraces(sb)
		case l.ch == '"' && (isSpace(last) || last == '[' || last == ';'):
			l.copyQuotes(sb)
		default:
			sb.WriteRune(l.ch)
			l.advance()
			last = l.prev()
			continue
		}
		last = l.prev()
	}
}

func (l *lexer) copyBrackets(sb *strings.Builder) {
	sb.WriteRune('[')
	l.advance()
	l.copyBracketBody(sb)
	if !l.eof() {
		sb.WriteRune(']')
		l.advance()
	}
}

func (l *lexer) copyBraces(sb *strings.Builder) {
	sb.WriteRune('{')
	l.advance()
	sb.WriteString(l.scanBraced())
	if !l.eof() {
		sb.WriteRune('}')
		l.advance()
	}
}

func (l *lexer) copyQuotes(sb *strings.Builder) {
	sb.WriteRune('"')
	l.advance()
	sb.WriteString(l.scanQuoted())
	if !l.eof() {
		sb.WriteRune('"')
		l.advance()
	}
}

// readEscape consumes a backslash sequence and returns its replacement.
func (l *lexer) readEscape() string {
	l.advance()
	if l.eof() {
		return "\\"
	}
	c := l.ch
	switch c {
	case 'a':
		l.advance()
		return "\a"
	case 'b':
		l.advance()
		return "\b"
	case 'f':
		l.advance()
		return "\f"
	case 'n':
		l.advance()
		return "\n"
	case 'r':
		l.advance()
		return "\r"
	case 't':
		l.advance()
		return "\t"
	case 'v':
		l.advance()
		return "\v"
	case 'x':
		l.advance()
		digits := l.readDigits(isHexDigit, 8)
		if digits == "" {
			return "x"
		}
		v, _ := strconv.ParseUint(digits, 16, 32)
		return string(rune(v))
	case 'u':
		l.advance()
		digits := l.readDigits(isHexDigit, 4)
		if digits == "" {
			return "u"
		}
		v, _ := strconv.ParseUint(digits, 16, 32)
		return string(rune(v))
	case '\n', '\r':
		l.skipContinuation()
		return ""
	}
	if isOctalDigit(c) {
		digits := l.readDigits(isOctalDigit, 3)
		v, _ := strconv.ParseUint(digits, 8, 32)
		return string(rune(v))
	}
	l.advance()
	return string(c)
}

// skipContinuation consumes a line terminator and the blanks after it.
func (l *lexer) skipContinuation() {
	if l.ch == '\r' {
		l.advance()
	}
	if l.ch == '\n' {
		l.advance()
	}
	for !l.eof() && (l.ch == ' ' || l.ch == '\t') {
		l.advance()
	}
}

func (l *lexer) atContinuation() bool {
	if l.ch != '\\' {
		return false
	}
	next := l.peek()
	return next == '\n' || (next == '\r' && l.at(l.offset+2) == '\n')
}

func (l *lexer) readDigits(accept func(rune) bool, max int) string {
	var sb strings.Builder
	for n := 0; !l.eof() && accept(l.ch) && (max < 0 || n < max); n++ {
		sb.WriteRune(l.ch)
		l.advance()
	}
	return sb.String()
}

// readNumber scans an octal, hex or decimal literal. Octal and hex values
// are normalised to decimal text. An exponent needs an explicit sign.
func (l *lexer) readNumber() string {
	if l.ch == '0' && (l.peek() == 'x' || l.peek() == 'X') && isHexDigit(l.at(l.offset+2)) {
		l.advance()
		l.advance()
		digits := l.readDigits(isHexDigit, -1)
		if v, err := strconv.ParseUint(digits, 16, 64); err == nil {
			return strconv.FormatUint(v, 10)
		}
		return "0x" + digits
	}
	if l.ch == '0' && isOctalDigit(l.peek()) {
		l.advance()
		digits := l.readDigits(isOctalDigit, -1)
		if v, err := strconv.ParseUint(digits, 8, 64); err == nil {
			return strconv.FormatUint(v, 10)
		}
		return "0" + digits
	}

	var sb strings.Builder
	sb.WriteString(l.readDigits(unicode.IsDigit, -1))
	if l.ch == '.' && !l.eof() {
		sb.WriteRune('.')
		l.advance()
		sb.WriteString(l.readDigits(unicode.IsDigit, -1))
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peek()
		if (next == '+' || next == '-') && unicode.IsDigit(l.at(l.offset+2)) {
			sb.WriteRune(l.ch)
			l.advance()
			sb.WriteRune(l.ch)
			l.advance()
			sb.WriteString(l.readDigits(unicode.IsDigit, -1))
		}
	}
	return sb.String()
}

// readName scans a variable reference after '$'. The result is the bare
// name, optionally followed by a literal "(index)" suffix.
func (l *lexer) readName() string {
	l.advance()
	if l.ch == '{' {
		l.advance()
		var sb strings.Builder
		for !l.eof() && l.ch != '}' {
			sb.WriteRune(l.ch)
			l.advance()
		}
		l.advance()
		return sb.String()
	}

	var sb strings.Builder
	for !l.eof() && isNameRune(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}
	if l.ch != '(' {
		return sb.String()
	}

	depth := 0
	for !l.eof() {
		switch l.ch {
		case '\\':
			sb.WriteRune(l.ch)
			l.advance()
			if l.eof() {
				return sb.String()
			}
		case '(':
			depth++
		case ')':
			depth--
		}
		sb.WriteRune(l.ch)
		l.advance()
		if depth == 0 {
			break
		}
	}
	return sb.String()
}

func (l *lexer) atNameStart() bool {
	if l.ch != '$' {
		return false
	}
	next := l.peek()
	return next == '{' || isNameRune(next)
}

func (l *lexer) readComment(pos Position) Token {
	l.advance()
	var sb strings.Builder
	for !l.eof() && l.ch != '\n' {
		if l.atContinuation() {
			l.advance()
			l.skipContinuation()
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	return l.textToken(tokenComment, strings.TrimRight(sb.String(), "\r"), pos)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\v' || r == '\f'
}

func isNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isOctalDigit(r rune) bool {
	return r >= '0' && r <= '7'
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
