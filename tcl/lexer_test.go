package tcl

import (
	"testing"
)

type tokenWant struct {
	kind TokenKind
	text string
}

func tokenKinds(toks []Token) []tokenWant {
	out := make([]tokenWant, len(toks))
	for i, tok := range toks {
		out[i] = tokenWant{kind: tok.Kind, text: tok.Text}
	}
	return out
}

func assertTokens(t *testing.T, input string, mode LexMode, want []tokenWant) {
	t.Helper()
	got := tokenKinds(Tokenize(input, mode))
	if len(got) != len(want) {
		t.Fatalf("%q: expected %d tokens, got %d: %v", input, len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d: expected %v %q, got %v %q", input, i, want[i].kind, want[i].text, got[i].kind, got[i].text)
		}
	}
}

func TestLexScriptCommands(t *testing.T) {
	assertTokens(t, "set x 5; puts $x", ModeScript, []tokenWant{
		{tokenWord, "set"},
		{tokenWhitespace, " "},
		{tokenWord, "x"},
		{tokenWhitespace, " "},
		{tokenWord, "5"},
		{tokenSemi, ""},
		{tokenWhitespace, " "},
		{tokenWord, "puts"},
		{tokenWhitespace, " "},
		{tokenName, "x"},
		{tokenEOF, ""},
	})
}

func TestLexScriptRegions(t *testing.T) {
	assertTokens(t, `puts {a {b} c} "q $v" [expr 1]`, ModeScript, []tokenWant{
		{tokenWord, "puts"},
		{tokenWhitespace, " "},
		{tokenLeftCurl, ""},
		{tokenString, "a {b} c"},
		{tokenRightCurl, ""},
		{tokenWhitespace, " "},
		{tokenLeftQ, ""},
		{tokenString, "q $v"},
		{tokenRightQ, ""},
		{tokenWhitespace, " "},
		{tokenLeftBr, ""},
		{tokenString, "expr 1"},
		{tokenRightBr, ""},
		{tokenEOF, ""},
	})
}

func TestLexScriptCommentOnlyAtCommandStart(t *testing.T) {
	assertTokens(t, "# note\nputs a#b", ModeScript, []tokenWant{
		{tokenComment, " note"},
		{tokenEOL, ""},
		{tokenWord, "puts"},
		{tokenWhitespace, " "},
		{tokenWord, "a#b"},
		{tokenEOF, ""},
	})
}

func TestLexLineContinuation(t *testing.T) {
	assertTokens(t, "puts \\\n    a", ModeScript, []tokenWant{
		{tokenWord, "puts"},
		{tokenWhitespace, " "},
		{tokenWord, "a"},
		{tokenEOF, ""},
	})
}

func TestLexBackslashEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`a\nb`, "a\nb"},
		{`\x41`, "A"},
		{`\101`, "A"},
		{`é`, "é"},
		{`\t`, "\t"},
		{`\$x`, "$x"},
		{`\q`, "q"},
	}
	for _, tt := range tests {
		toks := Tokenize(tt.input, ModeScript)
		if toks[0].Kind != tokenWord || toks[0].Text != tt.want {
			t.Fatalf("%q: expected WORD %q, got %v %q", tt.input, tt.want, toks[0].Kind, toks[0].Text)
		}
	}
}

func TestLexArrayName(t *testing.T) {
	assertTokens(t, "puts $a(f(1))x", ModeScript, []tokenWant{
		{tokenWord, "puts"},
		{tokenWhitespace, " "},
		{tokenName, "a(f(1))"},
		{tokenWord, "x"},
		{tokenEOF, ""},
	})
	assertTokens(t, "${long name}", ModeScript, []tokenWant{
		{tokenName, "long name"},
		{tokenEOF, ""},
	})
}

func TestLexExpressionOperators(t *testing.T) {
	assertTokens(t, "2**3 << 1 <= 4 && x eq y || !~1", ModeExpr, []tokenWant{
		{tokenNumber, "2"},
		{tokenPow, "**"},
		{tokenNumber, "3"},
		{tokenShl, "<<"},
		{tokenNumber, "1"},
		{tokenLE, "<="},
		{tokenNumber, "4"},
		{tokenAnd, "&&"},
		{tokenWord, "x"},
		{tokenStrEQ, "eq"},
		{tokenWord, "y"},
		{tokenOr, "||"},
		{tokenNot, "!"},
		{tokenBitNot, "~"},
		{tokenNumber, "1"},
		{tokenEOF, ""},
	})
}

func TestLexWordOperatorsAreExact(t *testing.T) {
	assertTokens(t, "equal in inner", ModeExpr, []tokenWant{
		{tokenWord, "equal"},
		{tokenIn, "in"},
		{tokenWord, "inner"},
		{tokenEOF, ""},
	})
}

func TestLexUnsignedExponentEndsNumber(t *testing.T) {
	toks := Tokenize("1e5", ModeExpr)
	if toks[0].Kind != tokenNumber || toks[0].Text != "1" {
		t.Fatalf("expected NUMBER 1, got %v", toks[0])
	}
	if toks[1].Kind != tokenWord || toks[1].Text != "e5" {
		t.Fatalf("expected WORD e5, got %v", toks[1])
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"017", "15"},
		{"0x1F", "31"},
		{"3.25", "3.25"},
		{"1e+3", "1e+3"},
		{"2.5E-2", "2.5E-2"},
		{".5", ".5"},
	}
	for _, tt := range tests {
		toks := Tokenize(tt.input, ModeExpr)
		if toks[0].Kind != tokenNumber || toks[0].Text != tt.want {
			t.Fatalf("%q: expected NUMBER %q, got %v %q", tt.input, tt.want, toks[0].Kind, toks[0].Text)
		}
		if toks[1].Kind != tokenEOF {
			t.Fatalf("%q: expected EOF after number, got %v", tt.input, toks[1].Kind)
		}
	}
}

func TestLexUnknownAdvances(t *testing.T) {
	assertTokens(t, "1 @ 2", ModeExpr, []tokenWant{
		{tokenNumber, "1"},
		{tokenUnknown, "@"},
		{tokenNumber, "2"},
		{tokenEOF, ""},
	})
}

func TestLexSubstitution(t *testing.T) {
	assertTokens(t, `a$b[c d]e\t`, ModeSubst, []tokenWant{
		{tokenString, "a"},
		{tokenName, "b"},
		{tokenLeftBr, ""},
		{tokenString, "c d"},
		{tokenRightBr, ""},
		{tokenString, "e\t"},
		{tokenEOF, ""},
	})
}

func TestLexPositions(t *testing.T) {
	toks := Tokenize("set a 1\n  puts $a", ModeScript)
	var name Token
	for _, tok := range toks {
		if tok.Kind == tokenName {
			name = tok
		}
	}
	if name.Pos.Line != 2 || name.Pos.Column != 8 {
		t.Fatalf("expected NAME at 2:8, got %s", name.Pos)
	}
}

func TestLexEOFIsSticky(t *testing.T) {
	l := newLexer("a", ModeScript)
	for range 3 {
		l.NextToken()
	}
	if tok := l.NextToken(); tok.Kind != tokenEOF {
		t.Fatalf("expected EOF to repeat, got %v", tok.Kind)
	}
}
