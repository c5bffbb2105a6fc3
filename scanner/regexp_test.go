package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/blepscan/scanner"
)

func TestRegexpWithCharacterClassContainingSlash(t *testing.T) {
	// The '/' inside the character class must not terminate the literal.
	s := scanner.New([]byte("/[a/b]/"))
	tok, err := s.Next(scanner.AlwaysRegexp)
	require.NoError(t, err)
	require.Equal(t, scanner.REGEXP, tok.Kind)
	require.Equal(t, 7, tok.Length)

	tok, err = s.Next(scanner.AlwaysRegexp)
	require.NoError(t, err)
	require.Equal(t, scanner.EOF, tok.Kind)
}

func TestRegexpWithEscapedSlash(t *testing.T) {
	s := scanner.New([]byte(`/a\/b/`))
	tok, err := s.Next(scanner.AlwaysRegexp)
	require.NoError(t, err)
	require.Equal(t, scanner.REGEXP, tok.Kind)
	require.Equal(t, 6, tok.Length)
}

func TestRegexpWithTrailingFlags(t *testing.T) {
	s := scanner.New([]byte("/ab/gim"))
	tok, err := s.Next(scanner.AlwaysRegexp)
	require.NoError(t, err)
	require.Equal(t, scanner.REGEXP, tok.Kind)
	require.Equal(t, 7, tok.Length)
	require.Equal(t, "/ab/gim", string(tok.Text([]byte("/ab/gim"))))
}

func TestRegexpUnterminatedAtEOFIsNotAnError(t *testing.T) {
	s := scanner.New([]byte("/abc"))
	tok, err := s.Next(scanner.AlwaysRegexp)
	require.NoError(t, err)
	require.Equal(t, scanner.REGEXP, tok.Kind)
	require.Equal(t, 4, tok.Length)
}
