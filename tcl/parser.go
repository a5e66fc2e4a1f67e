package tcl

import "fmt"

type parser struct {
	src    tokenSource
	stream *tokenStream
	source string

	cur Token

	parens int
}

func newParser(input string, mode LexMode, parallel bool) *parser {
	p := &parser{source: input}
	lex := newLexer(input, mode)
	if parallel {
		p.stream = newTokenStream(lex, DefaultStreamCapacity)
		p.src = p.stream
	} else {
		p.src = lex
	}
	p.next()
	return p
}

func (p *parser) next() {
	p.cur = p.src.NextToken()
}

func (p *parser) close() {
	if p.stream != nil {
		p.stream.Close()
	}
}

// ParseScript parses a command script into a PROGRAM node.
func ParseScript(input string) (*Node, error) {
	return parseScript(input, false)
}

func parseScript(input string, parallel bool) (*Node, error) {
	p := newParser(input, ModeScript, parallel)
	defer p.close()
	return p.parseProgram()
}

// ParseExpression parses an arithmetic/logical expression. An empty
// expression parses as the number 0.
func ParseExpression(input string) (*Node, error) {
	p := newParser(input, ModeExpr, false)
	defer p.close()
	return p.parseExpressionTree()
}

// ParseSubstitution parses text for variable and command substitution only,
// returning a LIST node of fragments in source order.
func ParseSubstitution(input string) (*Node, error) {
	p := newParser(input, ModeSubst, false)
	defer p.close()
	return p.parseSubstitution()
}

// parseRegion consumes an opening delimiter, the STRING interior the lexer
// produces for it and the matching closing delimiter.
func (p *parser) parseRegion(closing TokenKind) (string, error) {
	p.next()
	text := ""
	if p.cur.Kind == tokenString {
		text = p.cur.Text
		p.next()
	}
	if p.cur.Kind != closing {
		return "", p.errorExpected(p.cur, closing)
	}
	p.next()
	return text, nil
}

func (p *parser) errorExpected(tok Token, expected TokenKind) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok)),
		Found:    tok.Kind,
		Expected: expected,
		Pos:      tok.Pos,
		Source:   p.source,
	}
}

func (p *parser) errorUnbalanced(tok Token) *ParseError {
	err := p.errorExpected(tok, tokenRightPar)
	err.Message = fmt.Sprintf("unbalanced parentheses near %s", tokenLabel(tok))
	err.Err = ErrUnbalancedParentheses
	return err
}

func tokenLabel(tok Token) string {
	switch tok.Kind {
	case tokenEOF:
		return "end of input"
	case tokenUnknown:
		return fmt.Sprintf("invalid character %q", tok.Text)
	}
	if tok.HasText && tok.Text != "" {
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	}
	return tok.Kind.String()
}
