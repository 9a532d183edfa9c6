package prover

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/typeproof/typeproof/internal/binding"
	"github.com/typeproof/typeproof/internal/journal"
	"github.com/typeproof/typeproof/internal/prompt"
	"github.com/typeproof/typeproof/internal/score"
	"github.com/typeproof/typeproof/internal/validator"
)

// Local is a development prover that applies the same rules as the zkVM
// guest and fabricates an artifact with an empty seal. It produces no
// cryptographic proof; it exists so the full validate-prove-bind-relay
// pipeline can run without a proving backend, and so tests can exercise
// binding against honestly computed public outputs.
type Local struct {
	// ImageID is the guest image identifier to declare, hex-encoded.
	ImageID string
}

// NewLocal returns a Local prover declaring the given image id.
func NewLocal(imageID string) *Local {
	return &Local{ImageID: imageID}
}

// Prove mirrors the guest: it re-derives the prompt hash, rejects an empty
// prompt, enforces the per-event delta floor and the per-character duration
// floor, and commits the journal over the recomputed stats.
func (l *Local) Prove(ctx context.Context, req *validator.ProofRequest) (*binding.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProve, err)
	}
	stats, err := score.Compute(req.Prompt, req.Events)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProve, err)
	}
	if len(stats.NormalizedPrompt) == 0 {
		return nil, fmt.Errorf("%w: prompt length is zero", ErrProve)
	}
	if got := prompt.Hash(stats.NormalizedPrompt); got != req.PromptHash {
		return nil, fmt.Errorf("%w: prompt hash mismatch", ErrProve)
	}
	for i, ev := range req.Events {
		if ev.DtMs < score.MinEventGapMs {
			return nil, fmt.Errorf("%w: event %d dt %dms below minimum %dms", ErrProve, i, ev.DtMs, score.MinEventGapMs)
		}
	}
	if stats.BelowMinDuration() {
		return nil, fmt.Errorf("%w: duration %dms below minimum %dms", ErrProve, stats.DurationMs, stats.MinDurationMs)
	}

	j := journal.Journal{
		ChallengeID: req.ChallengeID,
		Player:      req.Player,
		PromptHash:  req.PromptHash,
		Score:       stats.Score,
		WpmX100:     stats.WpmX100,
		AccuracyBps: stats.AccuracyBps,
		DurationMs:  uint32(stats.DurationMs),
	}
	jh := journal.Hash(j)

	cid := req.ChallengeID
	return &binding.Artifact{
		Score:              stats.Score,
		WpmX100:            stats.WpmX100,
		AccuracyBps:        stats.AccuracyBps,
		DurationMs:         uint32(stats.DurationMs),
		ImageID:            l.ImageID,
		JournalHash:        hex.EncodeToString(jh[:]),
		Seal:               nil, // no proof in dev mode
		JournalChallengeID: &cid,
		JournalPlayerHex:   hex.EncodeToString(req.Player[:]),
		JournalPromptHex:   hex.EncodeToString(req.PromptHash[:]),
	}, nil
}
