// Package binding cross-checks a prover-returned artifact against the
// request that produced it. These checks are a fast local sanity gate before
// the expensive on-chain step; the cryptographic commitment inside the seal
// remains the authoritative binding and is verified downstream.
package binding

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/typeproof/typeproof/internal/identity"
	"github.com/typeproof/typeproof/internal/score"
	"github.com/typeproof/typeproof/internal/validator"
)

// DefaultMaxSealBytes bounds the proof seal so the downstream transaction
// stays under the ledger's size ceiling.
const DefaultMaxSealBytes = 16 * 1024

var (
	// ErrBinding reports any artifact field disagreeing with the request.
	// Always fatal, never retried.
	ErrBinding = errors.New("binding: artifact does not match request")
	// ErrOversizedArtifact reports a seal above the configured transport limit.
	ErrOversizedArtifact = errors.New("binding: seal exceeds size limit")
)

// Artifact is the opaque prover output. The Journal* fields are the
// artifact's self-declared public outputs; each is optional and only checked
// when present.
type Artifact struct {
	Score       uint64 `json:"score"`
	WpmX100     uint32 `json:"wpm_x100"`
	AccuracyBps uint32 `json:"accuracy_bps"`
	DurationMs  uint32 `json:"duration_ms"`
	ImageID     string `json:"image_id"`
	JournalHash string `json:"journal_hash"`
	Seal        []byte `json:"seal"`

	JournalChallengeID *uint32 `json:"journal_challenge_id,omitempty"`
	JournalPlayerHex   string  `json:"journal_player,omitempty"`
	JournalPromptHex   string  `json:"journal_prompt_hash,omitempty"`
}

// Checker holds the configured artifact limits.
type Checker struct {
	maxSealBytes int
}

// NewChecker constructs a checker. A non-positive limit falls back to the
// default; there is no way to disable the ceiling because the downstream
// transaction size is always bounded.
func NewChecker(maxSealBytes int) *Checker {
	if maxSealBytes <= 0 {
		maxSealBytes = DefaultMaxSealBytes
	}
	return &Checker{maxSealBytes: maxSealBytes}
}

// Check confirms that every public output the artifact declares agrees with
// the original request. Absent fields are not an error; a present mismatch
// is fatal and the artifact must not be forwarded.
func (c *Checker) Check(req *validator.ProofRequest, art *Artifact) error {
	if len(art.Seal) > c.maxSealBytes {
		return fmt.Errorf("%w: %d > %d bytes", ErrOversizedArtifact, len(art.Seal), c.maxSealBytes)
	}
	if art.JournalPromptHex != "" {
		declared, err := hex.DecodeString(art.JournalPromptHex)
		if err != nil || len(declared) != len(req.PromptHash) {
			return fmt.Errorf("%w: prompt hash mismatch", ErrBinding)
		}
		if [32]byte(declared) != req.PromptHash {
			return fmt.Errorf("%w: prompt hash mismatch", ErrBinding)
		}
	}
	if art.JournalChallengeID != nil && *art.JournalChallengeID != req.ChallengeID {
		return fmt.Errorf("%w: challenge mismatch", ErrBinding)
	}
	if art.JournalPlayerHex != "" {
		declared, err := identity.Parse(art.JournalPlayerHex)
		if err != nil || declared != req.Player {
			return fmt.Errorf("%w: player mismatch", ErrBinding)
		}
	}
	return nil
}

// CheckStats confirms the artifact's declared metrics against locally
// recomputed stats. Both sides run the same deterministic integer
// computation, so any disagreement means a bug or a substitution attempt.
func (c *Checker) CheckStats(stats score.Stats, art *Artifact) error {
	if art.Score != stats.Score ||
		art.WpmX100 != stats.WpmX100 ||
		art.AccuracyBps != stats.AccuracyBps ||
		uint64(art.DurationMs) != stats.DurationMs {
		return fmt.Errorf("%w: stats mismatch", ErrBinding)
	}
	return nil
}
