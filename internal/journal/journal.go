// Package journal encodes and decodes the proof system's committed public
// outputs. The fixed 88-byte layout is shared with the proving guest; the
// digest of these bytes is what the on-chain verifier binds the seal to.
package journal

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
)

// Size is the exact encoded length in bytes.
const Size = 88

// ErrLength reports an encoded journal of the wrong size.
var ErrLength = errors.New("journal: length mismatch")

// Journal is the decoded public-output record.
//
// Layout: challenge_id u32 LE | player 32 | prompt_hash 32 | score u64 LE |
// wpm_x100 u32 LE | accuracy_bps u32 LE | duration_ms u32 LE.
type Journal struct {
	ChallengeID uint32
	Player      [32]byte
	PromptHash  [32]byte
	Score       uint64
	WpmX100     uint32
	AccuracyBps uint32
	DurationMs  uint32
}

// Encode serializes the journal into its fixed wire form.
func Encode(j Journal) [Size]byte {
	var out [Size]byte
	binary.LittleEndian.PutUint32(out[0:4], j.ChallengeID)
	copy(out[4:36], j.Player[:])
	copy(out[36:68], j.PromptHash[:])
	binary.LittleEndian.PutUint64(out[68:76], j.Score)
	binary.LittleEndian.PutUint32(out[76:80], j.WpmX100)
	binary.LittleEndian.PutUint32(out[80:84], j.AccuracyBps)
	binary.LittleEndian.PutUint32(out[84:88], j.DurationMs)
	return out
}

// Decode parses an encoded journal, requiring the exact fixed length.
func Decode(data []byte) (Journal, error) {
	if len(data) != Size {
		return Journal{}, fmt.Errorf("%w: got %d bytes, want %d", ErrLength, len(data), Size)
	}
	var j Journal
	j.ChallengeID = binary.LittleEndian.Uint32(data[0:4])
	copy(j.Player[:], data[4:36])
	copy(j.PromptHash[:], data[36:68])
	j.Score = binary.LittleEndian.Uint64(data[68:76])
	j.WpmX100 = binary.LittleEndian.Uint32(data[76:80])
	j.AccuracyBps = binary.LittleEndian.Uint32(data[80:84])
	j.DurationMs = binary.LittleEndian.Uint32(data[84:88])
	return j, nil
}

// Hash computes the SHA-256 digest of the encoded journal bytes.
func Hash(j Journal) [sha256.Size]byte {
	encoded := Encode(j)
	return sha256.Sum256(encoded[:])
}
