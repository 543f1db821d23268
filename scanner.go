// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"io"
	"iter"
)

// A Scanner reads lexical tokens from an input stream. Each call to Next
// advances the scanner to the next token, or reports that no further tokens
// are available.
type Scanner struct {
	next func() (Token, error, bool)
	stop func()
	tok  Token
	err  error
}

// NewScanner constructs a new scanner that consumes input from r.
// It panics if opts has a negative BufferSize.
func NewScanner(r io.Reader, opts *Options) *Scanner {
	return newScanner(TokenizeReader(r, opts))
}

// NewChunkScanner constructs a new scanner that consumes input from chunks.
// It panics if opts has a negative BufferSize.
func NewChunkScanner(chunks iter.Seq[string], opts *Options) *Scanner {
	return newScanner(Tokenize(chunks, opts))
}

func newScanner(seq iter.Seq2[Token, error]) *Scanner {
	next, stop := iter.Pull2(seq)
	return &Scanner{next: next, stop: stop}
}

// Next advances s to the next token of the input and reports whether a
// token is available. When Next returns false, the input is exhausted, the
// scanner was closed, or an error occurred; check Err to distinguish.
func (s *Scanner) Next() bool {
	if s.next == nil {
		return false
	}
	tok, err, ok := s.next()
	if !ok || err != nil {
		s.tok, s.err = Token{}, err
		s.Close()
		return false
	}
	s.tok = tok
	return true
}

// Token returns the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the error that ended the scan, or nil if the scan ended at
// the end of the input.
func (s *Scanner) Err() error { return s.err }

// Close abandons any remaining input. After Close, Next reports false.
// It is safe to call Close more than once.
func (s *Scanner) Close() {
	if s.stop != nil {
		s.stop()
		s.next, s.stop = nil, nil
	}
}
