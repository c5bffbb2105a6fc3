package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/blepscan/scanner"
)

// scanAll runs a buffer to completion against a fixed-answer oracle and
// returns every token plus the terminal error.
func scanAll(t *testing.T, input string, oracle scanner.Oracle) ([]scanner.Token, error) {
	t.Helper()
	s := scanner.New([]byte(input))
	var toks []scanner.Token
	for {
		tok, err := s.Next(oracle)
		toks = append(toks, tok)
		if err != nil {
			return toks, err
		}
		if tok.Kind == scanner.EOF {
			return toks, nil
		}
	}
}

var invariantBuffers = []string{
	"",
	"   ",
	"a/b/c;",
	"let x = { a: 1, b: [1, 2, 3] };",
	"`template ${a + b} literal`",
	"/regex/gi + 1",
	"// line comment\nvar x",
	"/* block\ncomment */ y",
	"...rest",
	">>>= <<= **=",
}

// TestLineNumbersAreMonotonic checks the universal invariant that Line never
// decreases from one token to the next.
func TestLineNumbersAreMonotonic(t *testing.T) {
	for _, input := range invariantBuffers {
		toks, _ := scanAll(t, input, scanner.AlwaysDivide)
		last := 1
		for _, tok := range toks {
			require.GreaterOrEqualf(t, tok.Line, last, "buffer %q: line went backwards at offset %d", input, tok.Offset)
			last = tok.Line
		}
	}
}

// TestDepthZeroIffWellFormed checks that well-bracketed input returns the
// stack to depth zero exactly at EOF, and that EOF with nonzero depth always
// comes with ErrUnterminatedInput.
func TestDepthZeroIffWellFormed(t *testing.T) {
	cases := map[string]bool{
		"(a + b)":       true,
		"{ a: [1, 2] }": true,
		"`a${b}c`":      true,
		"(a + b":        false,
		"`a${b}":        true, // the template literal is unterminated, but its brackets balance
		"[a, b)":        true, // mismatched bracket kinds still balance the depth counter
	}

	for input, wellFormed := range cases {
		s := scanner.New([]byte(input))
		var lastErr error
		for {
			tok, err := s.Next(scanner.AlwaysDivide)
			if tok.Kind == scanner.EOF {
				lastErr = err
				break
			}
			if err != nil {
				lastErr = err
				break
			}
		}
		if wellFormed {
			if lastErr != nil {
				if se, ok := lastErr.(*scanner.ScanError); !ok || se.Kind != scanner.ErrUnterminatedInput {
					t.Errorf("input %q: expected well-formed, got error %v", input, lastErr)
				}
			}
			require.Equal(t, 0, s.Depth(), "input %q", input)
		} else {
			require.NotEqual(t, 0, s.Depth(), "input %q: expected nonzero depth", input)
			se, ok := lastErr.(*scanner.ScanError)
			require.True(t, ok, "input %q: expected a ScanError", input)
			require.Equal(t, scanner.ErrUnterminatedInput, se.Kind)
			require.True(t, se.Soft())
		}
	}
}

// TestCommentsAreRemovableWithoutChangingStructuralTokens verifies that
// deleting every COMMENT token's text from a buffer (replacing it with
// nothing) and rescanning yields the same non-comment token kinds in the
// same order.
func TestCommentsAreRemovableWithoutChangingStructuralTokens(t *testing.T) {
	input := "a /* c1 */ = b; // trailing\nc"
	toks, err := scanAll(t, input, scanner.AlwaysDivide)
	require.Nil(t, err)

	buf := []byte(input)
	var stripped []byte
	var structuralKinds []scanner.Kind
	for _, tok := range toks {
		if tok.Kind == scanner.COMMENT {
			continue
		}
		stripped = append(stripped, tok.Text(buf)...)
		stripped = append(stripped, ' ')
		if tok.Kind != scanner.EOF {
			structuralKinds = append(structuralKinds, tok.Kind)
		}
	}

	rescanned, err := scanAll(t, string(stripped), scanner.AlwaysDivide)
	require.Nil(t, err)

	var rescannedKinds []scanner.Kind
	for _, tok := range rescanned {
		if tok.Kind != scanner.EOF {
			rescannedKinds = append(rescannedKinds, tok.Kind)
		}
	}

	require.Equal(t, structuralKinds, rescannedKinds)
}

// TestTokenTextRoundTripsBufferContent checks that concatenating every
// token's Text reproduces the buffer with only whitespace removed.
func TestTokenTextRoundTripsBufferContent(t *testing.T) {
	input := "  a  +  b  "
	buf := []byte(input)
	s := scanner.New(buf)

	var reconstructed []byte
	for {
		tok, err := s.Next(scanner.AlwaysDivide)
		require.NoError(t, err)
		if tok.Kind == scanner.EOF {
			break
		}
		reconstructed = append(reconstructed, tok.Text(buf)...)
	}
	require.Equal(t, "a+b", string(reconstructed))
}
