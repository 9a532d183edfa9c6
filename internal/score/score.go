// Package score computes typing metrics under strict integer arithmetic.
// The same computation runs on the client for preview and inside the proving
// guest; a single rounding discrepancy between the two breaks proof-to-
// artifact matching, so no floating point is permitted anywhere here.
package score

import (
	"github.com/typeproof/typeproof/internal/prompt"
	"github.com/typeproof/typeproof/internal/replay"
)

// wpmFactor encodes the standard 5-chars-per-word, 60000-ms-per-minute
// constant scaled by 100 for fixed point: (chars/5) / (ms/60000) * 100.
const wpmFactor = 1_200_000

// MinMsPerChar is the per-character floor used to derive MinDurationMs.
const MinMsPerChar = 40

// MinEventGapMs is the per-event delta floor the proving guest enforces.
// The pure computation here does not enforce it; prover collaborators do.
const MinEventGapMs = 10

// Stats is a pure function of (prompt, events). Recomputing it on the same
// inputs yields identical values; nothing in it is cached or stateful.
type Stats struct {
	NormalizedPrompt  []byte
	ReconstructedText string
	DurationMs        uint64
	TypedChars        int
	CorrectChars      int
	AccuracyBps       uint32
	WpmX100           uint32
	Score             uint64
	MinDurationMs     uint64
}

// BelowMinDuration reports whether the session finished implausibly fast.
// This is advisory data: the server-side validator treats it as a rejection,
// the client TUI as a warning only.
func (s Stats) BelowMinDuration() bool {
	return s.DurationMs < s.MinDurationMs
}

// Compute normalizes the prompt, replays the events, and derives the metric
// set. Division is integer floor division throughout; the zero denominators
// (empty prompt, zero duration) are defined as zero rather than errors.
func Compute(rawPrompt string, events []replay.Event) (Stats, error) {
	normalized, err := prompt.Normalize(rawPrompt)
	if err != nil {
		return Stats{}, err
	}
	text, err := replay.Apply(events)
	if err != nil {
		return Stats{}, err
	}

	durationMs := replay.Duration(events)
	promptLen := uint64(len(normalized))
	typed := len(text)

	correct := 0
	cmpLen := len(text)
	if len(normalized) < cmpLen {
		cmpLen = len(normalized)
	}
	for i := 0; i < cmpLen; i++ {
		if text[i] == normalized[i] {
			correct++
		}
	}

	var accuracyBps uint32
	if promptLen > 0 {
		accuracyBps = uint32(uint64(correct) * 10000 / promptLen)
	}
	var wpmX100 uint32
	if durationMs > 0 {
		wpmX100 = uint32(uint64(typed) * wpmFactor / durationMs)
	}
	scoreVal := uint64(wpmX100) * uint64(accuracyBps) / 10000

	return Stats{
		NormalizedPrompt:  normalized,
		ReconstructedText: text,
		DurationMs:        durationMs,
		TypedChars:        typed,
		CorrectChars:      correct,
		AccuracyBps:       accuracyBps,
		WpmX100:           wpmX100,
		Score:             scoreVal,
		MinDurationMs:     promptLen * MinMsPerChar,
	}, nil
}
