package tcl

import (
	"strings"
	"unicode"
)

// exprOperators is ordered so that longer operators match first.
var exprOperators = []struct {
	text string
	kind TokenKind
}{
	{"**", tokenPow},
	{"<<", tokenShl},
	{">>", tokenShr},
	{"<=", tokenLE},
	{">=", tokenGE},
	{"==", tokenEQ},
	{"!=", tokenNE},
	{"&&", tokenAnd},
	{"||", tokenOr},
	{"+", tokenPlus},
	{"-", tokenMinus},
	{"*", tokenMul},
	{"/", tokenDiv},
	{"%", tokenMod},
	{"<", tokenLT},
	{">", tokenGT},
	{"&", tokenBitAnd},
	{"^", tokenBitXor},
	{"|", tokenBitOr},
	{"~", tokenBitNot},
	{"!", tokenNot},
	{"?", tokenQuestion},
	{":", tokenColon},
	{"(", tokenLeftPar},
	{")", tokenRightPar},
}

var exprWordOperators = map[string]TokenKind{
	"eq": tokenStrEQ,
	"ne": tokenStrNE,
	"in": tokenIn,
	"ni": tokenNi,
}

func (l *lexer) nextExprToken() Token {
	l.skipExprSpace()

	pos := l.position()
	if l.eof() {
		return l.token(tokenEOF, pos)
	}

	switch {
	case unicode.IsDigit(l.ch) || (l.ch == '.' && unicode.IsDigit(l.peek())):
		return l.textToken(tokenNumber, l.readNumber(), pos)
	case l.ch == '"':
		l.advance()
		text, ok := l.readExprString()
		if !ok {
			return l.textToken(tokenUnknown, "\""+text, pos)
		}
		return l.textToken(tokenString, text, pos)
	case l.ch == '{':
		l.advance()
		text := l.scanBraced()
		if l.eof() {
			return l.textToken(tokenUnknown, "{"+text, pos)
		}
		l.advance()
		return l.textToken(tokenString, text, pos)
	case l.ch == '$':
		if l.atNameStart() {
			return l.textToken(tokenName, l.readName(), pos)
		}
		l.advance()
		return l.token(tokenDollar, pos)
	case l.ch == '_' || unicode.IsLetter(l.ch):
		word := l.readIdentifier()
		if kind, ok := exprWordOperators[word]; ok {
			return l.textToken(kind, word, pos)
		}
		return l.textToken(tokenWord, word, pos)
	}

	for _, op := range exprOperators {
		if l.hasPrefix(op.text) {
			for range op.text {
				l.advance()
			}
			return l.textToken(op.kind, op.text, pos)
		}
	}

	bad := l.ch
	l.advance()
	return l.textToken(tokenUnknown, string(bad), pos)
}

func (l *lexer) skipExprSpace() {
	for !l.eof() {
		switch {
		case isSpace(l.ch) || l.ch == '\n':
			l.advance()
		case l.atContinuation():
			l.advance()
			l.skipContinuation()
		default:
			return
		}
	}
}

func (l *lexer) hasPrefix(s string) bool {
	i := l.offset
	for _, r := range s {
		if l.at(i) != r || i >= len(l.input) {
			return false
		}
		i++
	}
	return true
}

func (l *lexer) readIdentifier() string {
	var sb strings.Builder
	for !l.eof() && isNameRune(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}
	return sb.String()
}

// readExprString scans a quoted expression operand after its opening quote,
// applying escapes. ok is false when the closing quote is missing.
func (l *lexer) readExprString() (string, bool) {
	var sb strings.Builder
	for !l.eof() {
		switch l.ch {
		case '"':
			l.advance()
			return sb.String(), true
		case '\\':
			sb.WriteString(l.readEscape())
		default:
			sb.WriteRune(l.ch)
			l.advance()
		}
	}
	return sb.String(), false
}
