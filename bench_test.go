package jtok_test

import (
	"bytes"
	"encoding/json"
	"io"
	"iter"
	"os"
	"testing"

	"github.com/creachadair/jtok"
	"github.com/google/go-cmp/cmp"
)

func readInput(tb testing.TB) []byte {
	tb.Helper()
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		tb.Fatalf("Reading test input: %v", err)
	}
	return input
}

// byteChunks returns a sequence of the contents of input in chunks of n
// bytes.
func byteChunks(input []byte, n int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(input) > 0 {
			m := min(n, len(input))
			if !yield(string(input[:m])) {
				return
			}
			input = input[m:]
		}
	}
}

// decoderTokens returns the tokens of input reported by the standard library
// JSON decoder, with strings rendered as themselves and other values in
// their source form.
func decoderTokens(tb testing.TB, input []byte) []string {
	tb.Helper()
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()
	var out []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out
		} else if err != nil {
			tb.Fatalf("Decoder: unexpected error: %v", err)
		}
		switch v := tok.(type) {
		case json.Delim:
			out = append(out, v.String())
		case string:
			out = append(out, v)
		case json.Number:
			out = append(out, v.String())
		case bool:
			if v {
				out = append(out, "true")
			} else {
				out = append(out, "false")
			}
		case nil:
			out = append(out, "null")
		}
	}
}

// valueTokens returns the tokens of seq in the form decoderTokens does.
func valueTokens(tb testing.TB, seq iter.Seq2[jtok.Token, error]) []string {
	tb.Helper()
	var out []string
	var str []byte
	for tok, err := range seq {
		if err != nil {
			tb.Fatalf("Tokenize: unexpected error: %v", err)
		}
		switch tok.Kind {
		case jtok.Whitespace, jtok.Comma, jtok.Colon:
			// not reported by the decoder
		case jtok.StringOpen:
			str = str[:0]
		case jtok.StringChunk:
			str = append(str, tok.Value...)
		case jtok.StringClose:
			out = append(out, string(str))
		default:
			out = append(out, tok.Value)
		}
	}
	return out
}

func TestInputFile(t *testing.T) {
	input := readInput(t)
	want := decoderTokens(t, input)

	t.Run("Reader", func(t *testing.T) {
		got := valueTokens(t, jtok.TokenizeReader(bytes.NewReader(input), nil))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Tokens: (-want, +got)\n%s", diff)
		}
	})
	for _, n := range []int{1, 7, 64, 4096} {
		got := valueTokens(t, jtok.Tokenize(byteChunks(input, n), &jtok.Options{BufferSize: 5}))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Chunk size %d: tokens (-want, +got)\n%s", n, diff)
		}
	}

	var objects int
	for tok, err := range jtok.TokenizeReader(bytes.NewReader(input), nil) {
		if err != nil {
			t.Fatalf("Tokenize: unexpected error: %v", err)
		}
		if tok.Kind == jtok.ObjectOpen {
			objects++
		}
	}
	if objects != 123 {
		t.Errorf("Found %d objects, want 123", objects)
	}
}

func BenchmarkTokenize(b *testing.B) {
	input := readInput(b)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Reader", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			for _, err := range jtok.TokenizeReader(bytes.NewReader(input), nil) {
				if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Chunks", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			for _, err := range jtok.Tokenize(byteChunks(input, 512), nil) {
				if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Scanner", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			s := jtok.NewScanner(bytes.NewReader(input), nil)
			for s.Next() {
			}
			if err := s.Err(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
