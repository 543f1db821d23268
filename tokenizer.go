// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// DefaultBufferSize is the maximum number of decoded characters delivered in
// a single StringChunk token, if Options do not specify otherwise.
const DefaultBufferSize = 1024

// Options control the behavior of the tokenizer. A nil *Options is ready for
// use and provides default values.
type Options struct {
	// BufferSize is the maximum number of decoded characters of string
	// content delivered in one StringChunk token. Longer strings are split
	// into multiple chunks. If zero, DefaultBufferSize is used. It is a
	// programming error for BufferSize to be negative.
	BufferSize int

	// StrictNumbers, if true, rejects a digit following a leading zero in the
	// integer part of a number. Otherwise, a run such as "00" is reported as
	// two adjacent Number tokens.
	StrictNumbers bool
}

type config struct {
	bufSize int
	strict  bool
}

func (o *Options) config() config {
	if o == nil {
		return config{bufSize: DefaultBufferSize}
	} else if o.BufferSize < 0 {
		panic(fmt.Sprintf("jtok: invalid buffer size %d", o.BufferSize))
	}
	cfg := config{bufSize: o.BufferSize, strict: o.StrictNumbers}
	if cfg.bufSize == 0 {
		cfg.bufSize = DefaultBufferSize
	}
	return cfg
}

// Tokenize returns a sequence of the tokens of the JSON text delivered by
// chunks. The boundaries between chunks have no effect on the result.
//
// Tokens are produced lazily as the sequence is consumed. If the input is
// not valid, the last pair of the sequence is a zero Token and an error of
// concrete type *SyntaxError. Breaking out of the sequence early abandons
// the remaining input.
//
// Tokenize panics if opts has a negative BufferSize.
func Tokenize(chunks iter.Seq[string], opts *Options) iter.Seq2[Token, error] {
	cfg := opts.config()
	return func(yield func(Token, error) bool) {
		cr := NewChunkReader(chunks)
		defer cr.Close()
		cfg.run(cr, yield)
	}
}

// TokenizeReader returns a sequence of the tokens of the JSON text read from
// r, as Tokenize does. If r does not implement io.RuneReader, it is wrapped
// in a bufio.Reader. A read error other than io.EOF ends the sequence with
// that error. The sequence consumes r, and is meant to be ranged over once.
//
// TokenizeReader panics if opts has a negative BufferSize.
func TokenizeReader(r io.Reader, opts *Options) iter.Seq2[Token, error] {
	cfg := opts.config()
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return func(yield func(Token, error) bool) { cfg.run(rr, yield) }
}

// All collects the tokens of seq. If seq reports an error, All returns the
// tokens delivered before the error, together with the error.
func All(seq iter.Seq2[Token, error]) ([]Token, error) {
	var out []Token
	for tok, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
	return out, nil
}

// A tokenizer holds the state of a single tokenization run.
type tokenizer struct {
	config
	cur   *cursor
	yield func(Token, error) bool

	text  []byte          // text of the current number, keyword, or whitespace run
	sbuf  strings.Builder // pending decoded string content
	nrune int             // number of runes in sbuf
	hi    rune            // pending high surrogate from a \u escape, or 0
}

func (c config) run(r io.RuneReader, yield func(Token, error) bool) {
	t := &tokenizer{config: c, yield: yield}
	defer t.recoverStop()

	t.cur = newCursor(r)
	t.emitRoot()
}

// stopped is panicked when the consumer declines further tokens.
type stopped struct{}

func (t *tokenizer) recoverStop() {
	if x := recover(); x != nil {
		switch err := x.(type) {
		case stopped:
			// The consumer is done; nothing more to report.
		case *SyntaxError:
			t.yield(Token{}, err)
		case readError:
			t.yield(Token{}, err.error)
		default:
			panic(x)
		}
	}
}

func (t *tokenizer) emit(kind Kind, value string) {
	if !t.yield(Token{Kind: kind, Value: value}, nil) {
		panic(stopped{})
	}
}

func (t *tokenizer) failAt(kind ErrorKind, text string, pos int, loc LineCol) {
	panic(&SyntaxError{Kind: kind, Text: text, Offset: pos, Location: loc})
}

func (t *tokenizer) fail(kind ErrorKind, text string) {
	t.failAt(kind, text, t.cur.pos, t.cur.location())
}

// unexpected reports the lookahead as an unexpected character.
func (t *tokenizer) unexpected() { t.fail(ErrUnexpectedChar, string(t.cur.ch)) }

// need returns the lookahead, or fails if the input is exhausted.
func (t *tokenizer) need() rune {
	if t.cur.end {
		t.fail(ErrUnexpectedEnd, "")
	}
	return t.cur.ch
}

// peekIs reports whether the lookahead is pending and equal to ch.
func (t *tokenizer) peekIs(ch rune) bool { return !t.cur.end && t.cur.ch == ch }

// emitChar emits the lookahead, which must be want, as a token of the given
// kind and advances past it.
func (t *tokenizer) emitChar(want rune, kind Kind) {
	if t.need() != want {
		t.unexpected()
	}
	t.emit(kind, string(want))
	t.cur.advance()
}

// take appends the lookahead to the text buffer and advances.
func (t *tokenizer) take() {
	t.text = utf8.AppendRune(t.text, t.cur.ch)
	t.cur.advance()
}

// takeWhile consumes characters matching f into the text buffer until the
// end of input or a character not matching f. It reports the number of
// characters consumed.
func (t *tokenizer) takeWhile(f func(rune) bool) int {
	var nr int
	for !t.cur.end && f(t.cur.ch) {
		t.take()
		nr++
	}
	return nr
}

// takeDigits consumes one or more decimal digits into the text buffer.
func (t *tokenizer) takeDigits() {
	if !isDigit(t.need()) {
		t.unexpected()
	}
	t.takeWhile(isDigit)
}

func (t *tokenizer) emitRoot() {
	t.emitWhitespace()
	for !t.cur.end {
		t.emitValue()
		t.emitWhitespace()
	}
}

// emitValue consumes a single value of any type.
func (t *tokenizer) emitValue() {
	switch ch := t.need(); {
	case ch == '{':
		t.emitObject()
	case ch == '[':
		t.emitArray()
	case ch == '"':
		t.emitString()
	case isNumStart(ch):
		t.emitNumber()
	case isLowerAlpha(ch):
		t.emitKeyword()
	default:
		t.unexpected()
	}
}

// emitObject consumes an object.
// Precondition: lookahead == '{'.
func (t *tokenizer) emitObject() {
	t.emitChar('{', ObjectOpen)
	t.emitWhitespace()
	for member := true; t.need() != '}'; member = !member {
		if member {
			t.emitString()
			t.emitWhitespace()
			t.emitChar(':', Colon)
			t.emitWhitespace()
			t.emitValue()
		} else {
			t.emitChar(',', Comma)
		}
		t.emitWhitespace()
	}
	t.emitChar('}', ObjectClose)
}

// emitArray consumes an array.
// Precondition: lookahead == '['.
func (t *tokenizer) emitArray() {
	t.emitChar('[', ArrayOpen)
	t.emitWhitespace()
	for elem := true; t.need() != ']'; elem = !elem {
		if elem {
			t.emitValue()
		} else {
			t.emitChar(',', Comma)
		}
		t.emitWhitespace()
	}
	t.emitChar(']', ArrayClose)
}

// emitString consumes a quoted string, delivering its decoded content in
// chunks of at most bufSize runes.
// Precondition: lookahead == '"'.
func (t *tokenizer) emitString() {
	t.emitChar('"', StringOpen)
	for {
		ch := t.need()
		if ch == '"' {
			break
		}
		t.cur.advance()
		if ch != '\\' {
			t.putRune(ch)
			continue
		}

		// We are awaiting the completion of a \-escape.
		switch ch = t.need(); ch {
		case '"', '\\', '/':
			t.putRune(ch)
		case 'b':
			t.putRune('\b')
		case 'f':
			t.putRune('\f')
		case 'n':
			t.putRune('\n')
		case 'r':
			t.putRune('\r')
		case 't':
			t.putRune('\t')
		case 'u':
			t.cur.advance()
			t.putUnit(t.readHex4())
			continue
		default:
			t.fail(ErrInvalidEscape, string(ch))
		}
		t.cur.advance()
	}
	t.flushSurrogate()
	if t.nrune > 0 {
		t.flush()
	}
	t.emitChar('"', StringClose)
}

// readHex4 reads the four characters of a \u escape and returns the 16-bit
// code unit they encode.
func (t *tokenizer) readHex4() rune {
	pos, loc := t.cur.pos, t.cur.location()
	var digits [4]rune
	for i := range digits {
		digits[i] = t.need()
		t.cur.advance()
	}
	var v rune
	for _, ch := range digits {
		d, ok := hexValue(ch)
		if !ok {
			t.failAt(ErrInvalidCodepoint, string(digits[:]), pos, loc)
		}
		v = v<<4 | d
	}
	return v
}

// putUnit adds a UTF-16 code unit from a \u escape to the string content.
// A high surrogate is held until the next character shows whether it begins
// a valid pair.
func (t *tokenizer) putUnit(u rune) {
	switch {
	case t.hi != 0 && isLowSurrogate(u):
		r := utf16.DecodeRune(t.hi, u)
		t.hi = 0
		t.putRune(r)
	case isHighSurrogate(u):
		t.flushSurrogate()
		t.hi = u
	case isLowSurrogate(u):
		t.putRune(utf8.RuneError)
	default:
		t.putRune(u)
	}
}

// flushSurrogate replaces an unpaired high surrogate, if any, with
// utf8.RuneError.
func (t *tokenizer) flushSurrogate() {
	if t.hi != 0 {
		t.hi = 0
		t.putRune(utf8.RuneError)
	}
}

// putRune adds r to the string content, emitting a StringChunk if the
// buffer is full.
func (t *tokenizer) putRune(r rune) {
	t.flushSurrogate()
	t.sbuf.WriteRune(r)
	t.nrune++
	if t.nrune >= t.bufSize {
		t.flush()
	}
}

func (t *tokenizer) flush() {
	chunk := t.sbuf.String()
	t.sbuf.Reset()
	t.nrune = 0
	t.emit(StringChunk, chunk)
}

// emitNumber consumes a number: an optional sign, an integer part, and
// optional fraction and exponent parts.
// Precondition: lookahead is '-' or a digit.
func (t *tokenizer) emitNumber() {
	if !isNumStart(t.need()) {
		t.unexpected()
	}
	t.text = t.text[:0]
	if t.cur.ch == '-' {
		t.take()
	}

	// A leading zero is the whole integer part. Any digits after it begin a
	// separate token, unless strict numbers are required.
	switch ch := t.need(); {
	case ch == '0':
		t.take()
		if t.strict && !t.cur.end && isDigit(t.cur.ch) {
			t.unexpected()
		}
	case isDigit(ch):
		t.takeWhile(isDigit)
	default:
		t.unexpected()
	}

	if t.peekIs('.') {
		t.take()
		t.takeDigits()
	}
	if t.peekIs('e') || t.peekIs('E') {
		t.take()
		if t.peekIs('+') || t.peekIs('-') {
			t.take()
		}
		t.takeDigits()
	}
	t.emit(Number, string(t.text))
}

var keywords = [...]struct {
	name string
	kind Kind
}{
	{"true", True},
	{"false", False},
	{"null", Null},
}

// emitKeyword consumes a run of lowercase letters, which must spell one of
// the constants true, false, or null.
func (t *tokenizer) emitKeyword() {
	if !isLowerAlpha(t.need()) {
		t.unexpected()
	}
	pos, loc := t.cur.pos, t.cur.location()
	t.text = t.text[:0]
	t.takeWhile(isLowerAlpha)

	got := mem.B(t.text)
	for _, kw := range keywords {
		if got.EqualString(kw.name) {
			t.emit(kw.kind, kw.name)
			return
		}
	}
	t.failAt(ErrUnexpectedChar, got.StringCopy(), pos, loc)
}

// emitWhitespace consumes a possibly-empty run of whitespace, emitting a
// token only if the run is not empty.
func (t *tokenizer) emitWhitespace() {
	t.text = t.text[:0]
	if t.takeWhile(isSpace) > 0 {
		t.emit(Whitespace, string(t.text))
	}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool   { return ch == '-' || isDigit(ch) }
func isDigit(ch rune) bool      { return '0' <= ch && ch <= '9' }
func isLowerAlpha(ch rune) bool { return 'a' <= ch && ch <= 'z' }

func isHighSurrogate(u rune) bool { return 0xd800 <= u && u < 0xdc00 }
func isLowSurrogate(u rune) bool  { return 0xdc00 <= u && u < 0xe000 }

func hexValue(ch rune) (rune, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return ch - '0', true
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10, true
	case 'A' <= ch && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}
