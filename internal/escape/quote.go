// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting of token text for display.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Append appends the JSON string literal encoding of src to dst, including
// the enclosing quotation marks, and returns the extended slice.
//
// Control characters, quotation marks and backslashes are escaped. Invalid
// UTF-8 bytes and the line and paragraph separators are written as \u
// escapes so that the result is safe to print on a single line.
func Append(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		switch {
		case r == utf8.RuneError && n <= 1:
			dst = appendU4(dst, rune(src.At(0)))
			n = 1
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				dst = append(dst, '\\', b)
			} else {
				dst = appendU4(dst, r)
			}
		case r == '\\' || r == '"':
			dst = append(dst, '\\', byte(r))
		case r == '\u2028' || r == '\u2029' || r == 0x7f:
			dst = appendU4(dst, r)
		default:
			dst = mem.Append(dst, src.SliceTo(n))
		}
		src = src.SliceFrom(n)
	}
	return append(dst, '"')
}

func appendU4(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u',
		hexDigit[(r>>12)&15], hexDigit[(r>>8)&15], hexDigit[(r>>4)&15], hexDigit[r&15])
}
