package tcl

import "strconv"

// TokenKind identifies the lexical category of a token.
type TokenKind int

const (
	tokenNull TokenKind = iota
	tokenEOF
	tokenUnknown

	tokenNumber
	tokenString
	tokenWord
	tokenName

	tokenPlus
	tokenMinus
	tokenMul
	tokenDiv
	tokenMod
	tokenPow
	tokenShl
	tokenShr
	tokenLT
	tokenGT
	tokenLE
	tokenGE
	tokenEQ
	tokenNE
	tokenStrEQ
	tokenStrNE
	tokenIn
	tokenNi
	tokenBitAnd
	tokenBitXor
	tokenBitOr
	tokenBitNot
	tokenAnd
	tokenOr
	tokenNot
	tokenQuestion
	tokenColon

	tokenLeftPar
	tokenRightPar
	tokenLeftBr
	tokenRightBr
	tokenLeftCurl
	tokenRightCurl
	tokenLeftQ
	tokenRightQ

	tokenSemi
	tokenEOL
	tokenWhitespace
	tokenDollar
	tokenComment
)

var tokenNames = map[TokenKind]string{
	tokenNull:       "NULL",
	tokenEOF:        "EOF",
	tokenUnknown:    "UNKNOWN",
	tokenNumber:     "NUMBER",
	tokenString:     "STRING",
	tokenWord:       "WORD",
	tokenName:       "NAME",
	tokenPlus:       "+",
	tokenMinus:      "-",
	tokenMul:        "*",
	tokenDiv:        "/",
	tokenMod:        "%",
	tokenPow:        "**",
	tokenShl:        "<<",
	tokenShr:        ">>",
	tokenLT:         "<",
	tokenGT:         ">",
	tokenLE:         "<=",
	tokenGE:         ">=",
	tokenEQ:         "==",
	tokenNE:         "!=",
	tokenStrEQ:      "eq",
	tokenStrNE:      "ne",
	tokenIn:         "in",
	tokenNi:         "ni",
	tokenBitAnd:     "&",
	tokenBitXor:     "^",
	tokenBitOr:      "|",
	tokenBitNot:     "~",
	tokenAnd:        "&&",
	tokenOr:         "||",
	tokenNot:        "!",
	tokenQuestion:   "?",
	tokenColon:      ":",
	tokenLeftPar:    "LEFTPAR",
	tokenRightPar:   "RIGHTPAR",
	tokenLeftBr:     "LEFTBR",
	tokenRightBr:    "RIGHTBR",
	tokenLeftCurl:   "LEFTCURL",
	tokenRightCurl:  "RIGHTCURL",
	tokenLeftQ:      "LEFTQ",
	tokenRightQ:     "RIGHTQ",
	tokenSemi:       "SEMI",
	tokenEOL:        "EOL",
	tokenWhitespace: "WHITESPACE",
	tokenDollar:     "DOLLAR",
	tokenComment:    "CMT",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// IsOperator reports whether the kind is an expression operator.
func (k TokenKind) IsOperator() bool {
	return k >= tokenPlus && k <= tokenColon
}

// Token captures lexical information for the parser. Tokens are values and
// are never mutated after the lexer hands them out.
type Token struct {
	Kind    TokenKind
	Text    string
	HasText bool
	Pos     Position
}

// Position identifies a line and column in the source, both 1-based.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

func (t Token) String() string {
	if t.HasText {
		return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
	}
	return t.Kind.String()
}
