package tcl

func (p *parser) parseSubstitution() (*Node, error) {
	list := newNode(NodeList, p.cur.Pos)
	for p.cur.Kind != tokenEOF {
		tok := p.cur
		switch tok.Kind {
		case tokenString:
			list.add(newValueNode(NodeSubstring, tok.Text, tok.Pos))
			p.next()
		case tokenName:
			list.add(newValueNode(NodeName, tok.Text, tok.Pos))
			p.next()
		case tokenLeftBr:
			text, err := p.parseRegion(tokenRightBr)
			if err != nil {
				return nil, err
			}
			list.add(newValueNode(NodeProgram, text, tok.Pos))
		default:
			return nil, p.errorExpected(tok, tokenString)
		}
	}
	return list, nil
}
