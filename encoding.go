// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"github.com/creachadair/jtok/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSON string literal. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	buf := make([]byte, 0, len(src)+2)
	return string(escape.Append(buf, mem.S(src)))
}
