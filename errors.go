// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"fmt"

	"github.com/creachadair/mds/mstr"
)

// ErrorKind classifies the lexical errors reported by the tokenizer.
// Each kind is itself an error, so callers may test for a particular kind
// with errors.Is.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	ErrUnexpectedEnd    ErrorKind = iota + 1 // input ended inside a production
	ErrUnexpectedChar                        // character not valid at this position
	ErrInvalidEscape                         // unknown character after "\"
	ErrInvalidCodepoint                      // "\u" not followed by four hex digits
)

var errorKindStr = [...]string{
	ErrUnexpectedEnd:    "unexpected end of input",
	ErrUnexpectedChar:   "unexpected character",
	ErrInvalidEscape:    "invalid escape character",
	ErrInvalidCodepoint: "invalid codepoint",
}

// Error satisfies the error interface.
func (e ErrorKind) Error() string {
	if e == 0 || int(e) >= len(errorKindStr) {
		return fmt.Sprintf("ErrorKind(%d)", e)
	}
	return errorKindStr[e]
}

// maxErrorText is the longest offending text quoted in an error message.
const maxErrorText = 32

// SyntaxError is the concrete type of lexical errors reported by the
// tokenizer.
type SyntaxError struct {
	Kind ErrorKind

	// Text is the offending character or substring. It is empty for
	// ErrUnexpectedEnd.
	Text string

	Offset   int     // byte offset of the offending text
	Location LineCol // line and column of the offending text
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("at %s: %v", e.Location, e.Kind)
	}
	return fmt.Sprintf("at %s: %v %q", e.Location, e.Kind, mstr.Trunc(e.Text, maxErrorText))
}

// Unwrap reports the kind of e, so that errors.Is(err, ErrInvalidEscape)
// and similar tests work.
func (e *SyntaxError) Unwrap() error { return e.Kind }
