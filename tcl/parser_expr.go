package tcl

func (p *parser) parseExpressionTree() (*Node, error) {
	if p.cur.Kind == tokenEOF {
		return newValueNode(NodeNumber, "0", p.cur.Pos), nil
	}

	expr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	switch p.cur.Kind {
	case tokenEOF:
		return expr, nil
	case tokenRightPar:
		return nil, p.errorUnbalanced(p.cur)
	default:
		return nil, p.errorExpected(p.cur, tokenEOF)
	}
}

// parseTernary handles cond ? a : b, which binds looser than every binary
// level and associates to the right.
func (p *parser) parseTernary() (*Node, error) {
	cond, err := p.parseLevel(len(binaryLevels) - 1)
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != tokenQuestion {
		return cond, nil
	}

	node := newValueNode(NodeTernaryOp, "?:", p.cur.Pos)
	p.next()
	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != tokenColon {
		return nil, p.errorExpected(p.cur, tokenColon)
	}
	p.next()
	otherwise, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	node.add(cond, then, otherwise)
	return node, nil
}

func (p *parser) parseLevel(level int) (*Node, error) {
	if level < 0 {
		return p.parseExponent()
	}

	left, err := p.parseLevel(level - 1)
	if err != nil {
		return nil, err
	}
	for inLevel(p.cur.Kind, level) {
		op := p.cur
		p.next()
		right, err := p.parseLevel(level - 1)
		if err != nil {
			return nil, err
		}
		left = binaryNode(op, left, right)
	}
	return left, nil
}

// parseExponent folds ** applications left to right, so 2**3**2 is
// (2**3)**2.
func (p *parser) parseExponent() (*Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == tokenPow {
		op := p.cur
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = binaryNode(op, left, right)
	}
	return left, nil
}

func (p *parser) parseFactor() (*Node, error) {
	tok := p.cur
	switch {
	case tok.Kind == tokenNumber:
		p.next()
		return newValueNode(NodeNumber, tok.Text, tok.Pos), nil
	case tok.Kind == tokenString:
		p.next()
		return newValueNode(NodeQString, tok.Text, tok.Pos), nil
	case tok.Kind == tokenName:
		p.next()
		return newValueNode(NodeName, tok.Text, tok.Pos), nil
	case tok.Kind == tokenLeftPar:
		p.next()
		return p.parseParenthesized()
	case unaryOperators[tok.Kind]:
		p.next()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		node := newValueNode(NodeUnaryOp, tok.Text, tok.Pos)
		node.add(operand)
		return node, nil
	case tok.Kind == tokenWord:
		p.next()
		if p.cur.Kind != tokenLeftPar {
			return newValueNode(NodeString, tok.Text, tok.Pos), nil
		}
		p.next()
		arg, err := p.parseParenthesized()
		if err != nil {
			return nil, err
		}
		fn := newValueNode(NodeFunc, tok.Text, tok.Pos)
		fn.add(arg)
		return fn, nil
	case tok.Kind == tokenRightPar && p.parens == 0:
		return nil, p.errorUnbalanced(tok)
	case tok.Kind == tokenEOF && p.parens > 0:
		return nil, p.errorUnbalanced(tok)
	default:
		return nil, p.errorExpected(tok, tokenNumber)
	}
}

// parseParenthesized parses the inside of ( ... ) after the open paren has
// been consumed, keeping the open/close counter balanced.
func (p *parser) parseParenthesized() (*Node, error) {
	p.parens++
	inner, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	switch p.cur.Kind {
	case tokenRightPar:
	case tokenEOF:
		return nil, p.errorUnbalanced(p.cur)
	default:
		return nil, p.errorExpected(p.cur, tokenRightPar)
	}
	p.parens--
	p.next()
	return inner, nil
}

func binaryNode(op Token, left, right *Node) *Node {
	node := newValueNode(NodeBinaryOp, op.Text, op.Pos)
	node.add(left, right)
	return node
}
