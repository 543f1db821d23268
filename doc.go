// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jtok implements a streaming lexical scanner for JSON.
//
// The scanner converts text that arrives incrementally, in chunks of any
// size, into a lazy sequence of tokens. It never holds the whole input in
// memory and builds no syntax tree. String escapes are decoded as they are
// scanned, and long strings are delivered in bounded pieces.
//
// # Tokenizing
//
// Tokenize consumes a sequence of text chunks; TokenizeReader consumes an
// io.Reader. Both return an iter.Seq2[Token, error]:
//
//	for tok, err := range jtok.TokenizeReader(input, nil) {
//	   if err != nil {
//	      log.Fatalf("Tokenize failed: %v", err)
//	   }
//	   log.Printf("Next token: %v", tok)
//	}
//
// The boundaries between chunks are not significant: any way of splitting
// the same text yields the same tokens.
//
// # Tokens
//
// Every character of the input belongs to exactly one token, with one
// exception: the content of a string is reported with escapes undone.
//
//	Kind                     | Value
//	------------------------ | -------------------------------------------
//	Whitespace               | a maximal run of space, tab, CR, and LF
//	ObjectOpen, ObjectClose  | "{", "}"
//	ArrayOpen, ArrayClose    | "[", "]"
//	StringOpen, StringClose  | the quotation marks of a string
//	StringChunk              | decoded string content, at most BufferSize runes
//	Number                   | the text of a number, e.g. "-1.5e+3"
//	True, False, Null        | "true", "false", "null"
//	Comma, Colon             | ",", ":"
//
// A string with non-empty content produces one or more StringChunk tokens
// between its StringOpen and StringClose. The boundaries between chunks carry
// no meaning.
//
// # Scanning
//
// The Scanner type provides the same tokens as a pull iterator:
//
//	s := jtok.NewScanner(input, nil)
//	defer s.Close()
//	for s.Next() {
//	   log.Printf("Next token: %v", s.Token())
//	}
//	if err := s.Err(); err != nil {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// # Errors
//
// Tokenizing stops at the first lexical error, which is reported as a
// *SyntaxError. Its Kind is one of ErrUnexpectedEnd, ErrUnexpectedChar,
// ErrInvalidEscape, or ErrInvalidCodepoint, and can be tested with errors.Is.
//
// The scanner accepts a sequence of concatenated top-level values, and does
// not check structure beyond what is needed to find the tokens.
package jtok
