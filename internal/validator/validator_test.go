package validator

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/typeproof/typeproof/internal/identity"
	"github.com/typeproof/typeproof/internal/prompt"
	"github.com/typeproof/typeproof/internal/replay"
)

func validSubmission(t *testing.T) Submission {
	t.Helper()
	events := []replay.Event{
		{DtMs: 120, Key: 0},
		{DtMs: 130, Key: 1},
		{DtMs: 110, Key: 2},
	}
	encoded, err := replay.Encode(events)
	if err != nil {
		t.Fatalf("encode events: %v", err)
	}
	return Submission{
		ChallengeID: 1,
		Player:      strings.Repeat("07", identity.Size),
		Prompt:      "abc",
		Replay:      base64.StdEncoding.EncodeToString(encoded),
	}
}

func TestValidateSuccess(t *testing.T) {
	v := New(DefaultLimits())
	req, err := v.Validate(validSubmission(t))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.ChallengeID != 1 {
		t.Fatalf("challenge id = %d", req.ChallengeID)
	}
	if len(req.Events) != 3 {
		t.Fatalf("events = %d, want 3", len(req.Events))
	}
	norm, err := prompt.Normalize("abc")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if req.PromptHash != prompt.Hash(norm) {
		t.Fatalf("prompt hash not computed from the normalized prompt")
	}
	if req.Stats.AccuracyBps != 10000 {
		t.Fatalf("stats accuracy = %d", req.Stats.AccuracyBps)
	}
}

func TestValidateUnpaddedBase64(t *testing.T) {
	v := New(DefaultLimits())
	sub := validSubmission(t)
	sub.Replay = strings.TrimRight(sub.Replay, "=")
	if _, err := v.Validate(sub); err != nil {
		t.Fatalf("unpadded canonical base64 must be accepted: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	base := validSubmission(t)

	cases := []struct {
		name   string
		limits Limits
		mutate func(*Submission)
		want   error
	}{
		{"negative challenge", Limits{}, func(s *Submission) { s.ChallengeID = -1 }, ErrChallengeID},
		{"challenge overflow", Limits{}, func(s *Submission) { s.ChallengeID = 1 << 33 }, ErrChallengeID},
		{"bad player", Limits{}, func(s *Submission) { s.Player = "nobody" }, identity.ErrInvalid},
		{"prompt too long", Limits{MaxPromptChars: 2}, func(s *Submission) {}, ErrPromptTooLong},
		{"empty prompt", Limits{}, func(s *Submission) { s.Prompt = "  \t " }, ErrEmptyPrompt},
		{"bad base64", Limits{}, func(s *Submission) { s.Replay = "!!!" }, ErrReplayBase64},
		{"truncated payload", Limits{}, func(s *Submission) {
			s.Replay = base64.StdEncoding.EncodeToString([]byte{3, 0, 1})
		}, replay.ErrFormat},
		{"too many events", Limits{MaxEvents: 2}, func(s *Submission) {}, ErrTooManyEvents},
		{"invalid key in replay", Limits{}, func(s *Submission) {
			s.Replay = base64.StdEncoding.EncodeToString([]byte{1, 0, 100, 0, 29})
		}, replay.ErrInvalidKey},
		{"too fast", Limits{}, func(s *Submission) {
			events := []replay.Event{{DtMs: 1, Key: 0}}
			encoded, err := replay.Encode(events)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			s.Prompt = "a"
			s.Replay = base64.StdEncoding.EncodeToString(encoded)
		}, ErrDurationTooShort},
	}
	for _, tc := range cases {
		sub := base
		tc.mutate(&sub)
		if _, err := New(tc.limits).Validate(sub); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestValidateRejectsNonCanonicalBase64(t *testing.T) {
	v := New(DefaultLimits())
	sub := validSubmission(t)
	// "AQ==" and "AR==" decode to overlapping bit patterns; only the
	// canonical spelling survives a re-encode comparison.
	sub.Replay = "AAE=" // decodes to {0,1}: count 256 with no records → format error path
	if _, err := v.Validate(sub); err == nil {
		t.Fatalf("expected rejection for truncated canonical payload")
	}
	sub.Replay = "AB=="
	if _, err := v.Validate(sub); !errors.Is(err, ErrReplayBase64) {
		t.Fatalf("expected ErrReplayBase64 for non-canonical input, got %v", err)
	}
}

func TestDefaultLimitsApplied(t *testing.T) {
	v := New(Limits{})
	if v.Limits() != DefaultLimits() {
		t.Fatalf("zero limits must fall back to defaults: %+v", v.Limits())
	}
}
