// Package snapshot encodes a full token stream into a deterministic,
// byte-stable form for golden-file regression testing.
//
// Adapted from core/planfmt's CanonicalPlan.MarshalBinary: CBOR's canonical
// encoding options guarantee the same Go value always serializes to the
// same bytes, so a snapshot file is diffable and its fingerprint
// (internal/fingerprint) is stable across machines and Go versions.
package snapshot

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/aledsdavies/blepscan/scanner"
)

// Entry is one recorded token, flattened out of scanner.Token plus whatever
// text it covers, so a snapshot is self-contained and doesn't need the
// original buffer to be read back meaningfully.
type Entry struct {
	Kind         string `cbor:"kind"`
	Offset       int    `cbor:"offset"`
	Length       int    `cbor:"length"`
	Line         int    `cbor:"line"`
	Text         string `cbor:"text"`
	LitNextColon bool   `cbor:"lit_next_colon,omitempty"`
}

// Stream is the full recorded run: every token plus the terminal error, if
// any (ErrUnterminatedInput is recorded like any other outcome — a snapshot
// captures what actually happened, not just the happy path).
type Stream struct {
	Entries  []Entry `cbor:"entries"`
	FinalErr string  `cbor:"final_err,omitempty"`
}

// Of drains every token oracle produces for buf using a freshly constructed
// scanner.Scanner and records it as a Stream.
func Of(buf []byte, oracle scanner.Oracle, opts ...scanner.Option) Stream {
	s := scanner.New(buf, opts...)
	var stream Stream

	for {
		tok, err := s.Next(oracle)
		stream.Entries = append(stream.Entries, Entry{
			Kind:         tok.Kind.String(),
			Offset:       tok.Offset,
			Length:       tok.Length,
			Line:         tok.Line,
			Text:         string(tok.Text(buf)),
			LitNextColon: tok.LitNextColon,
		})
		if err != nil {
			if se, ok := err.(*scanner.ScanError); ok && se.Soft() {
				stream.FinalErr = se.Error()
				break
			}
			stream.FinalErr = err.Error()
			break
		}
		if tok.Kind == scanner.EOF {
			break
		}
	}
	return stream
}

// MarshalBinary produces deterministic CBOR encoding of the stream, suitable
// for writing to a golden file and diffing byte-for-byte between runs.
func (s Stream) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("snapshot: create CBOR encoder: %w", err)
	}
	data, err := encMode.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot: CBOR encoding failed: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes a previously recorded snapshot.
func (s *Stream) UnmarshalBinary(data []byte) error {
	if err := cbor.Unmarshal(data, s); err != nil {
		return fmt.Errorf("snapshot: CBOR decoding failed: %w", err)
	}
	return nil
}
