// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"fmt"
	"io"
)

// A cursor holds a single character of lookahead from an input source, or
// marks the end of the input.
type cursor struct {
	r io.RuneReader

	ch    rune // the lookahead character; meaningful only if !end
	width int  // size in bytes of ch
	end   bool // input is exhausted

	pos       int // byte offset of ch
	line, col int // 0-based line and byte column of ch
}

func newCursor(r io.RuneReader) *cursor {
	c := &cursor{r: r}
	c.read()
	return c
}

// advance moves past the lookahead character, which must be pending, and
// reads the next one.
func (c *cursor) advance() {
	c.pos += c.width
	if c.ch == '\n' {
		c.line++
		c.col = 0
	} else {
		c.col += c.width
	}
	c.read()
}

func (c *cursor) read() {
	ch, nb, err := c.r.ReadRune()
	if err == io.EOF {
		c.ch, c.width, c.end = 0, 0, true
		return
	} else if err != nil {
		panic(readError{fmt.Errorf("offset %d: %w", c.pos, err)})
	}
	c.ch, c.width = ch, nb
}

// location reports the line and column of the lookahead.
func (c *cursor) location() LineCol { return LineCol{Line: c.line + 1, Column: c.col} }

// readError reports a failure of the input source other than io.EOF.
type readError struct{ error }

func (r readError) Unwrap() error { return r.error }
