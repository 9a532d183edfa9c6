// Package validator gates inbound proof submissions before they reach the
// external proving collaborator. All limits are explicit construction-time
// values, never ambient globals, so validators with different limits can
// coexist.
package validator

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"

	"github.com/typeproof/typeproof/internal/identity"
	"github.com/typeproof/typeproof/internal/prompt"
	"github.com/typeproof/typeproof/internal/replay"
	"github.com/typeproof/typeproof/internal/score"
)

// Default limits consumed when the config file leaves them unset.
const (
	DefaultMaxPromptChars = 280
	DefaultMaxEvents      = 4096
	DefaultMaxBodyBytes   = 1 << 20
)

var (
	// ErrChallengeID reports a challenge identifier outside the u32 range.
	ErrChallengeID = errors.New("validator: challenge id is not a non-negative 32-bit integer")
	// ErrPromptTooLong reports a prompt above the configured character limit.
	ErrPromptTooLong = errors.New("validator: prompt exceeds maximum length")
	// ErrEmptyPrompt reports a prompt that normalizes to nothing.
	ErrEmptyPrompt = errors.New("validator: prompt is empty after normalization")
	// ErrReplayBase64 reports a replay payload that is not strict base64.
	ErrReplayBase64 = errors.New("validator: replay payload is not valid base64")
	// ErrTooManyEvents reports a decoded event count above the configured limit.
	ErrTooManyEvents = errors.New("validator: event count exceeds maximum")
	// ErrDurationTooShort is the server-side enforcement of the per-character
	// minimum duration. The client treats the same bound as a warning only.
	ErrDurationTooShort = errors.New("validator: duration below minimum for prompt length")
)

// Limits bounds what a single submission may carry.
type Limits struct {
	MaxPromptChars int
	MaxEvents      int
	MaxBodyBytes   int64
}

// DefaultLimits returns the documented defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxPromptChars: DefaultMaxPromptChars,
		MaxEvents:      DefaultMaxEvents,
		MaxBodyBytes:   DefaultMaxBodyBytes,
	}
}

// Submission is the raw inbound form, before any validation.
type Submission struct {
	ChallengeID int64  `json:"challenge_id"`
	Player      string `json:"player"`
	Prompt      string `json:"prompt"`
	Replay      string `json:"replay"`
}

// ProofRequest is the validated, immutable value handed to the prover and
// later threaded to the binding checker. The prompt digest is computed here,
// never trusted from the caller.
type ProofRequest struct {
	ChallengeID   uint32
	Player        [identity.Size]byte
	Prompt        string
	PromptHash    [prompt.HashSize]byte
	Events        []replay.Event
	EncodedReplay []byte
	Stats         score.Stats
}

// Validator checks submissions against its limits.
type Validator struct {
	limits Limits
}

// New constructs a validator; zero or negative limits fall back to defaults.
func New(limits Limits) *Validator {
	def := DefaultLimits()
	if limits.MaxPromptChars <= 0 {
		limits.MaxPromptChars = def.MaxPromptChars
	}
	if limits.MaxEvents <= 0 {
		limits.MaxEvents = def.MaxEvents
	}
	if limits.MaxBodyBytes <= 0 {
		limits.MaxBodyBytes = def.MaxBodyBytes
	}
	return &Validator{limits: limits}
}

// Limits returns the effective limits.
func (v *Validator) Limits() Limits {
	return v.limits
}

// Validate checks a submission and constructs the ProofRequest. Every
// rejection is a distinct, reportable error kind; nothing is defaulted or
// downgraded. On success the request carries the locally computed stats and
// prompt digest for the downstream binding checks.
func (v *Validator) Validate(sub Submission) (*ProofRequest, error) {
	if sub.ChallengeID < 0 || sub.ChallengeID > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d", ErrChallengeID, sub.ChallengeID)
	}
	player, err := identity.Parse(sub.Player)
	if err != nil {
		return nil, err
	}
	if len(sub.Prompt) > v.limits.MaxPromptChars {
		return nil, fmt.Errorf("%w: %d > %d", ErrPromptTooLong, len(sub.Prompt), v.limits.MaxPromptChars)
	}

	encoded, err := decodeStrictBase64(sub.Replay)
	if err != nil {
		return nil, err
	}
	events, err := replay.Decode(encoded)
	if err != nil {
		return nil, err
	}
	if len(events) > v.limits.MaxEvents {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyEvents, len(events), v.limits.MaxEvents)
	}

	stats, err := score.Compute(sub.Prompt, events)
	if err != nil {
		return nil, err
	}
	if len(stats.NormalizedPrompt) == 0 {
		return nil, ErrEmptyPrompt
	}
	if stats.BelowMinDuration() {
		return nil, fmt.Errorf("%w: %dms < %dms", ErrDurationTooShort, stats.DurationMs, stats.MinDurationMs)
	}

	return &ProofRequest{
		ChallengeID:   uint32(sub.ChallengeID),
		Player:        player,
		Prompt:        sub.Prompt,
		PromptHash:    prompt.Hash(stats.NormalizedPrompt),
		Events:        events,
		EncodedReplay: encoded,
		Stats:         stats,
	}, nil
}

// decodeStrictBase64 accepts standard base64 with or without padding, but
// requires the canonical form: re-encoding the decoded bytes must reproduce
// the input modulo padding.
func decodeStrictBase64(s string) ([]byte, error) {
	if decoded, err := base64.StdEncoding.Strict().DecodeString(s); err == nil {
		if base64.StdEncoding.EncodeToString(decoded) == s {
			return decoded, nil
		}
		return nil, fmt.Errorf("%w: non-canonical encoding", ErrReplayBase64)
	}
	decoded, err := base64.RawStdEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReplayBase64, err)
	}
	if base64.RawStdEncoding.EncodeToString(decoded) != s {
		return nil, fmt.Errorf("%w: non-canonical encoding", ErrReplayBase64)
	}
	return decoded, nil
}
