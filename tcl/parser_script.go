package tcl

import "strings"

func (p *parser) parseProgram() (*Node, error) {
	program := newNode(NodeProgram, Position{Line: 1, Column: 1})
	for {
		p.skipSeparators()
		if p.cur.Kind == tokenEOF {
			return program, nil
		}
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		if cmd != nil {
			program.add(cmd)
		}
	}
}

func (p *parser) skipSeparators() {
	for {
		switch p.cur.Kind {
		case tokenWhitespace, tokenEOL, tokenSemi, tokenComment:
			p.next()
		default:
			return
		}
	}
}

// parseCommand reads whitespace-separated operands up to EOL, SEMI or EOF.
// A literal first word becomes the command's value; otherwise the name stays
// as the first operand and is substituted at run time.
func (p *parser) parseCommand() (*Node, error) {
	cmd := newNode(NodeCommand, p.cur.Pos)
	var words []*Node
	for {
		operand, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		if operand != nil {
			words = append(words, operand)
		}
		if p.cur.Kind == tokenWhitespace {
			p.next()
			continue
		}
		break
	}

	switch p.cur.Kind {
	case tokenEOL, tokenSemi, tokenEOF:
	default:
		return nil, p.errorExpected(p.cur, tokenEOL)
	}
	if len(words) == 0 {
		return nil, nil
	}

	if name, ok := literalText(words[0]); ok {
		cmd.Value = name
		cmd.HasValue = true
		cmd.add(words[1:]...)
	} else {
		cmd.add(words...)
	}
	return cmd, nil
}

func (p *parser) parseOperand() (*Node, error) {
	operand := newNode(NodeOperand, p.cur.Pos)
	for {
		tok := p.cur
		switch tok.Kind {
		case tokenWord:
			operand.add(newValueNode(NodeWord, tok.Text, tok.Pos))
			p.next()
		case tokenName:
			operand.add(newValueNode(NodeName, tok.Text, tok.Pos))
			p.next()
		case tokenLeftCurl:
			text, err := p.parseRegion(tokenRightCurl)
			if err != nil {
				return nil, err
			}
			operand.add(newValueNode(NodeString, text, tok.Pos))
		case tokenLeftQ:
			text, err := p.parseRegion(tokenRightQ)
			if err != nil {
				return nil, err
			}
			fragments, err := ParseSubstitution(text)
			if err != nil {
				return nil, err
			}
			if len(fragments.Children) == 0 {
				operand.add(newValueNode(NodeString, "", tok.Pos))
			}
			for _, frag := range fragments.Children {
				frag.Pos = tok.Pos
				operand.add(frag)
			}
		case tokenLeftBr:
			text, err := p.parseRegion(tokenRightBr)
			if err != nil {
				return nil, err
			}
			operand.add(newValueNode(NodeProgram, text, tok.Pos))
		case tokenWhitespace, tokenEOL, tokenSemi, tokenEOF:
			if len(operand.Children) == 0 {
				return nil, nil
			}
			return operand, nil
		default:
			return nil, p.errorExpected(tok, tokenWord)
		}
	}
}

// literalText returns the operand's text when it needs no substitution.
func literalText(operand *Node) (string, bool) {
	var b strings.Builder
	for _, child := range operand.Children {
		switch child.Kind {
		case NodeWord, NodeString, NodeSubstring:
			b.WriteString(child.Value)
		default:
			return "", false
		}
	}
	return b.String(), true
}
