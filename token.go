// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import "fmt"

// Kind is the type of a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Whitespace  Kind = iota // run of space, tab, CR, LF
	ObjectOpen              // left brace "{"
	ObjectClose             // right brace "}"
	ArrayOpen               // left square bracket "["
	ArrayClose              // right square bracket "]"
	StringOpen              // opening quotation mark
	StringClose             // closing quotation mark
	StringChunk             // decoded string content
	Number                  // number
	True                    // constant: true
	False                   // constant: false
	Null                    // constant: null
	Comma                   // comma ","
	Colon                   // colon ":"
)

var kindStr = [...]string{
	Whitespace:  "whitespace",
	ObjectOpen:  `"{"`,
	ObjectClose: `"}"`,
	ArrayOpen:   `"["`,
	ArrayClose:  `"]"`,
	StringOpen:  "string open",
	StringClose: "string close",
	StringChunk: "string chunk",
	Number:      "number",
	True:        "true",
	False:       "false",
	Null:        "null",
	Comma:       `","`,
	Colon:       `":"`,
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// A Token is a single lexical unit of JSON input.
//
// For StringChunk tokens, Value is the decoded content of (part of) a string,
// with escapes undone. For all other kinds, Value is the exact source text of
// the token, including delimiters.
type Token struct {
	Kind  Kind
	Value string
}

// String renders t as its kind followed by its quoted value.
func (t Token) String() string { return t.Kind.String() + " " + Quote(t.Value) }
