package tcl

import "sync"

// DefaultStreamCapacity bounds the token queue between the background lexer
// and the parser.
const DefaultStreamCapacity = 100

// tokenStream lexes ahead on a background goroutine and hands tokens to the
// parser through a bounded channel. Token order is preserved and exactly one
// EOF is delivered by the producer, after which it exits.
type tokenStream struct {
	tokens chan Token
	done   chan struct{}
	once   sync.Once

	finished bool
	eof      Token
}

func newTokenStream(src tokenSource, capacity int) *tokenStream {
	if capacity <= 0 {
		capacity = DefaultStreamCapacity
	}
	s := &tokenStream{
		tokens: make(chan Token, capacity),
		done:   make(chan struct{}),
	}
	go s.produce(src)
	return s
}

func (s *tokenStream) produce(src tokenSource) {
	defer close(s.tokens)
	for {
		tok := src.NextToken()
		select {
		case s.tokens <- tok:
		case <-s.done:
			return
		}
		if tok.Kind == tokenEOF {
			return
		}
	}
}

// NextToken blocks until the producer has a token available.
func (s *tokenStream) NextToken() Token {
	if s.finished {
		return s.eof
	}
	tok, ok := <-s.tokens
	if !ok {
		s.finished = true
		s.eof = Token{Kind: tokenEOF}
		return s.eof
	}
	if tok.Kind == tokenEOF {
		s.finished = true
		s.eof = tok
	}
	return tok
}

// Close releases the producer when the consumer stops before EOF.
func (s *tokenStream) Close() {
	s.once.Do(func() { close(s.done) })
}
