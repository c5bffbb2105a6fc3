// Package fingerprint derives short, deterministic, content-addressed names
// for scanner inputs and outputs. It is a naming convenience for test and
// fuzz tooling, never consulted by the scanner itself.
//
// Adapted from core/sdk/secret's keyed-hash DisplayID scheme
// (idfactory.go, base58.go): BLAKE2b-256 the content, take the leading
// bytes, encode them Base58 so the result is safe to use as a file name or
// to read aloud over a bug report.
package fingerprint

import "golang.org/x/crypto/blake2b"

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Of returns a short content fingerprint for data: an 8-byte prefix of its
// BLAKE2b-256 digest, Base58-encoded. Two equal inputs always produce the
// same fingerprint; a one-byte change almost always produces a different
// one.
func Of(data []byte) string {
	digest := blake2b.Sum256(data)
	return encodeBase58(digest[:8])
}

// encodeBase58 encodes an 8-byte slice, treating it as a big-endian integer.
// Mirrors the teacher's little-endian long-division encoder but walks the
// input most-significant-byte-first, which is the natural order for a hash
// prefix rather than a fixed-width counter.
func encodeBase58(data []byte) string {
	if len(data) != 8 {
		panic("fingerprint: encodeBase58 requires exactly 8 bytes")
	}

	var num [8]byte
	copy(num[:], data)

	var result []byte
	allZero := true
	for _, b := range num {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return string(base58Alphabet[0])
	}

	for {
		zero := true
		for _, b := range num {
			if b != 0 {
				zero = false
				break
			}
		}
		if zero {
			break
		}

		var remainder int
		for i := 0; i < len(num); i++ {
			acc := remainder*256 + int(num[i])
			num[i] = byte(acc / 58)
			remainder = acc % 58
		}
		result = append([]byte{base58Alphabet[remainder]}, result...)
	}

	for _, b := range data {
		if b != 0 {
			break
		}
		result = append([]byte{base58Alphabet[0]}, result...)
	}

	return string(result)
}
