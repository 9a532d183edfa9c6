// Package identity parses player identities into their canonical 32-byte
// form. Two encodings are recognized: a 64-character hex string and the
// base32 account-address form used by the target ledger (a 'G' version
// prefix over an ed25519 public key with a CRC16-XModem checksum). All
// comparisons elsewhere happen on the decoded bytes, so the two encodings
// of the same key are interchangeable.
package identity

import (
	"encoding/base32"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Size is the canonical identity length in bytes.
const Size = 32

// ErrInvalid reports an identity in neither recognized encoding.
var ErrInvalid = errors.New("identity: not a 64-char hex string or account address")

// accountVersion is the strkey version byte for an ed25519 public key
// account; it base32-encodes to the leading 'G'.
const accountVersion = 6 << 3

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// Parse decodes a player identity from either recognized encoding.
func Parse(s string) ([Size]byte, error) {
	var out [Size]byte
	if len(s) == 2*Size {
		raw, err := hex.DecodeString(s)
		if err == nil {
			copy(out[:], raw)
			return out, nil
		}
	}
	if strings.HasPrefix(s, "G") {
		raw, err := decodeAddress(s)
		if err == nil {
			return raw, nil
		}
		return out, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return out, fmt.Errorf("%w: %q", ErrInvalid, s)
}

// Hex returns the lowercase hex form of a canonical identity.
func Hex(id [Size]byte) string {
	return hex.EncodeToString(id[:])
}

func decodeAddress(s string) ([Size]byte, error) {
	var out [Size]byte
	raw, err := b32.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("base32: %w", err)
	}
	// version byte + 32-byte key + 2-byte checksum
	if len(raw) != 1+Size+2 {
		return out, fmt.Errorf("decoded length %d", len(raw))
	}
	if raw[0] != accountVersion {
		return out, fmt.Errorf("version byte 0x%02x", raw[0])
	}
	payload := raw[:1+Size]
	sum := uint16(raw[1+Size]) | uint16(raw[2+Size])<<8
	if crc16(payload) != sum {
		return out, errors.New("checksum mismatch")
	}
	copy(out[:], raw[1:1+Size])
	return out, nil
}

// Encode renders a canonical identity in the account-address form.
func Encode(id [Size]byte) string {
	payload := make([]byte, 0, 1+Size+2)
	payload = append(payload, accountVersion)
	payload = append(payload, id[:]...)
	sum := crc16(payload)
	payload = append(payload, byte(sum), byte(sum>>8))
	return b32.EncodeToString(payload)
}

// crc16 is the XModem polynomial variant used by the address checksum.
func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
