// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"io"
	"iter"
	"unicode/utf8"
)

// A ChunkReader delivers the characters of a sequence of text chunks one at
// a time. It implements io.RuneReader.
//
// Chunk boundaries are not visible to the reader: a UTF-8 encoding split
// between two chunks decodes as the same rune it would have if it were not
// split. Invalid UTF-8 is decoded as utf8.RuneError one byte at a time.
type ChunkReader struct {
	next func() (string, bool)
	stop func()
	cur  string // undelivered text of the current chunk
	done bool   // no more chunks
}

// NewChunkReader constructs a ChunkReader that reads from chunks. The caller
// should call Close when it is finished with the reader, unless the reader
// has been read to the end.
func NewChunkReader(chunks iter.Seq[string]) *ChunkReader {
	next, stop := iter.Pull(chunks)
	return &ChunkReader{next: next, stop: stop}
}

// ReadRune reads the next character of the input and reports its size in
// bytes. At the end of input it returns io.EOF, and continues to do so on
// all subsequent calls.
func (c *ChunkReader) ReadRune() (rune, int, error) {
	for !c.done && !utf8.FullRuneInString(c.cur) {
		s, ok := c.next()
		if !ok {
			c.Close()
			break
		}
		if c.cur == "" {
			c.cur = s
		} else {
			c.cur += s // complete a rune split between chunks
		}
	}
	if c.cur == "" {
		return 0, 0, io.EOF
	}
	r, n := utf8.DecodeRuneInString(c.cur)
	c.cur = c.cur[n:]
	return r, n, nil
}

// Close releases the chunk sequence. After Close, ReadRune delivers any
// text already buffered and then reports io.EOF. Close is idempotent.
func (c *ChunkReader) Close() {
	if !c.done {
		c.done = true
		c.stop()
	}
}
