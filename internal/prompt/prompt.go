// Package prompt canonicalizes challenge text and derives its content hash.
// Two prompts are the same challenge iff their normalized digests match; the
// raw surface text is never hashed or compared directly.
package prompt

import (
	"crypto/sha256"
	"errors"
	"fmt"
)

// ErrEncoding reports prompt text outside the ASCII policy.
var ErrEncoding = errors.New("prompt: text is not ASCII")

// HashSize is the digest length in bytes.
const HashSize = sha256.Size

// Normalize returns the canonical byte form of raw challenge text: uppercase
// ASCII letters folded to lowercase by the fixed +32 offset, every run of
// whitespace (0x20 and the 0x09-0x0D control range) collapsed to one space,
// and boundary spaces removed entirely. Any code point above 0x7F is
// rejected.
func Normalize(raw string) ([]byte, error) {
	out := make([]byte, 0, len(raw))
	inSpace := true
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if b > 0x7F {
			return nil, fmt.Errorf("%w: byte 0x%02x at offset %d", ErrEncoding, b, i)
		}
		if isWhitespace(b) {
			if !inSpace {
				out = append(out, ' ')
				inSpace = true
			}
			continue
		}
		if b >= 'A' && b <= 'Z' {
			b += 32
		}
		out = append(out, b)
		inSpace = false
	}
	if n := len(out); n > 0 && out[n-1] == ' ' {
		out = out[:n-1]
	}
	return out, nil
}

// Hash computes the SHA-256 digest of normalized prompt bytes. This is the
// prompt's on-the-wire identity everywhere: client, relay, and guest.
func Hash(normalized []byte) [HashSize]byte {
	return sha256.Sum256(normalized)
}

func isWhitespace(b byte) bool {
	return b == ' ' || (b >= 0x09 && b <= 0x0D)
}
