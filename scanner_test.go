// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok_test

import (
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/creachadair/jtok"
	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jtok.Kind
	}{
		// Empty inputs
		{"", nil},
		{"\n\n  \n", []jtok.Kind{jtok.Whitespace}},

		// Constants
		{"true false null", []jtok.Kind{
			jtok.True, jtok.Whitespace, jtok.False, jtok.Whitespace, jtok.Null,
		}},

		// Mixed types
		{`{"a": true, "b":[null, 1, 0.5]}`, []jtok.Kind{
			jtok.ObjectOpen,
			jtok.StringOpen, jtok.StringChunk, jtok.StringClose, jtok.Colon, jtok.Whitespace,
			jtok.True, jtok.Comma, jtok.Whitespace,
			jtok.StringOpen, jtok.StringChunk, jtok.StringClose, jtok.Colon,
			jtok.ArrayOpen,
			jtok.Null, jtok.Comma, jtok.Whitespace, jtok.Number, jtok.Comma, jtok.Whitespace,
			jtok.Number,
			jtok.ArrayClose,
			jtok.ObjectClose,
		}},
		{"\"a\"1\n[\"b\"]", []jtok.Kind{
			jtok.StringOpen, jtok.StringChunk, jtok.StringClose, jtok.Number, jtok.Whitespace,
			jtok.ArrayOpen, jtok.StringOpen, jtok.StringChunk, jtok.StringClose, jtok.ArrayClose,
		}},
	}

	for _, test := range tests {
		var got []jtok.Kind
		s := jtok.NewScanner(strings.NewReader(test.input), nil)
		for s.Next() {
			got = append(got, s.Token().Kind)
		}
		if s.Err() != nil {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestChunkScanner(t *testing.T) {
	chunks := []string{`{"greet`, `ing": "hel`, `lo"}`}
	s := jtok.NewChunkScanner(slices.Values(chunks), &jtok.Options{BufferSize: 4})
	defer s.Close()

	var got []jtok.Token
	for s.Next() {
		got = append(got, s.Token())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	want := []jtok.Token{
		objOpen,
		strOpen, chunk("gree"), chunk("ting"), strClose, colon, ws(" "),
		strOpen, chunk("hell"), chunk("o"), strClose,
		objClose,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens: (-want, +got)\n%s", diff)
	}
}

func TestScannerError(t *testing.T) {
	s := jtok.NewScanner(strings.NewReader(`[1, "\u00zz"]`), nil)
	var n int
	for s.Next() {
		n++
	}
	if n != 5 {
		t.Errorf("Got %d tokens before the error, want 5", n)
	}
	if !errors.Is(s.Err(), jtok.ErrInvalidCodepoint) {
		t.Errorf("Err: got %v, want %v", s.Err(), jtok.ErrInvalidCodepoint)
	}
	if got := s.Token(); got != (jtok.Token{}) {
		t.Errorf("Token after error: got %v, want zero", got)
	}

	// Once the scanner has stopped, it stays stopped.
	if s.Next() {
		t.Error("Next after error: got true, want false")
	}
	if !errors.Is(s.Err(), jtok.ErrInvalidCodepoint) {
		t.Errorf("Err after Next: got %v, want %v", s.Err(), jtok.ErrInvalidCodepoint)
	}
}

func TestScannerClose(t *testing.T) {
	var pulled int
	var done bool
	chunks := []string{"[1,", "2,", "3]"}
	s := jtok.NewChunkScanner(countingChunks(chunks, &pulled, &done), nil)

	if !s.Next() || s.Token() != arrOpen {
		t.Fatalf("Next: got %v, %v; want %v", s.Token(), s.Err(), arrOpen)
	}
	s.Close()
	if !done {
		t.Error("Chunk sequence was not released by Close")
	}
	if pulled != 1 {
		t.Errorf("Pulled %d chunks, want 1", pulled)
	}
	if s.Next() {
		t.Error("Next after Close: got true, want false")
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err after Close: got %v, want nil", err)
	}
	s.Close() // safe to repeat
}

func TestChunkReader(t *testing.T) {
	tests := []struct {
		chunks []string
		want   []rune
	}{
		{nil, nil},
		{[]string{"", "", ""}, nil},
		{[]string{"abc"}, []rune("abc")},
		{[]string{"a", "", "bc", "d"}, []rune("abcd")},

		// A multi-byte encoding split between chunks.
		{[]string{"x\xe4", "\xb8", "\x96y"}, []rune("x世y")},
		{[]string{"\xf0\x9f", "\x98\x80"}, []rune("😀")},

		// Invalid and truncated encodings.
		{[]string{"a\xffb"}, []rune{'a', 0xfffd, 'b'}},
		{[]string{"a\xe4\xb8"}, []rune{'a', 0xfffd, 0xfffd}},
	}
	for _, test := range tests {
		cr := jtok.NewChunkReader(slices.Values(test.chunks))
		var got []rune
		for {
			r, n, err := cr.ReadRune()
			if err == io.EOF {
				break
			} else if err != nil {
				t.Fatalf("ReadRune: unexpected error: %v", err)
			} else if n == 0 {
				t.Fatalf("ReadRune: got %q with size 0", r)
			}
			got = append(got, r)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Chunks: %#q\nRunes: (-want, +got)\n%s", test.chunks, diff)
		}

		// The end of input is sticky.
		for range 3 {
			if r, n, err := cr.ReadRune(); err != io.EOF {
				t.Errorf("ReadRune after end: got (%q, %d, %v), want io.EOF", r, n, err)
			}
		}
	}
}

func TestChunkReaderClose(t *testing.T) {
	var pulled int
	var done bool
	cr := jtok.NewChunkReader(countingChunks([]string{"ab", "cd"}, &pulled, &done))
	if r, _, err := cr.ReadRune(); err != nil || r != 'a' {
		t.Fatalf("ReadRune: got (%q, %v), want 'a'", r, err)
	}
	cr.Close()
	if !done {
		t.Error("Chunk sequence was not released by Close")
	}

	// Text already buffered is still delivered, but nothing further.
	if r, _, err := cr.ReadRune(); err != nil || r != 'b' {
		t.Errorf("ReadRune: got (%q, %v), want 'b'", r, err)
	}
	if _, _, err := cr.ReadRune(); err != io.EOF {
		t.Errorf("ReadRune: got %v, want io.EOF", err)
	}
	if pulled != 1 {
		t.Errorf("Pulled %d chunks, want 1", pulled)
	}
	cr.Close() // safe to repeat
}
