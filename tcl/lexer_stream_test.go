package tcl

import (
	"slices"
	"testing"
	"time"
)

type endlessSource struct {
	n int
}

func (s *endlessSource) NextToken() Token {
	s.n++
	return Token{Kind: tokenWord, Text: "w", HasText: true}
}

func TestTokenStreamPreservesOrder(t *testing.T) {
	input := "set x 5; puts [expr {$x + 1}] \"a $b\"\n# done\n"
	want := Tokenize(input, ModeScript)

	stream := newTokenStream(newLexer(input, ModeScript), 4)
	defer stream.Close()
	var got []Token
	for {
		tok := stream.NextToken()
		got = append(got, tok)
		if tok.Kind == tokenEOF {
			break
		}
	}
	if !slices.Equal(got, want) {
		t.Fatalf("stream tokens differ:\nwant %v\ngot  %v", want, got)
	}

	for range 3 {
		if tok := stream.NextToken(); tok.Kind != tokenEOF {
			t.Fatalf("expected sticky EOF, got %v", tok)
		}
	}
}

func TestTokenStreamDefaultCapacity(t *testing.T) {
	stream := newTokenStream(newLexer("", ModeScript), 0)
	defer stream.Close()
	if got := cap(stream.tokens); got != DefaultStreamCapacity {
		t.Fatalf("expected capacity %d, got %d", DefaultStreamCapacity, got)
	}
	if tok := stream.NextToken(); tok.Kind != tokenEOF {
		t.Fatalf("expected EOF, got %v", tok)
	}
}

func TestTokenStreamCloseReleasesProducer(t *testing.T) {
	stream := newTokenStream(&endlessSource{}, 2)
	for range 5 {
		if tok := stream.NextToken(); tok.Kind != tokenWord {
			t.Fatalf("expected word, got %v", tok)
		}
	}
	stream.Close()
	stream.Close()

	drained := make(chan struct{})
	go func() {
		for range stream.tokens {
		}
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(2 * time.Second):
		t.Fatalf("producer did not exit after Close")
	}
}
