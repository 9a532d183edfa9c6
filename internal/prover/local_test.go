package prover

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/typeproof/typeproof/internal/binding"
	"github.com/typeproof/typeproof/internal/identity"
	"github.com/typeproof/typeproof/internal/replay"
	"github.com/typeproof/typeproof/internal/validator"
)

func request(t *testing.T, prompt string, events []replay.Event) *validator.ProofRequest {
	t.Helper()
	encoded, err := replay.Encode(events)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	req, err := validator.New(validator.DefaultLimits()).Validate(validator.Submission{
		ChallengeID: 3,
		Player:      strings.Repeat("09", identity.Size),
		Prompt:      prompt,
		Replay:      base64.StdEncoding.EncodeToString(encoded),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	return req
}

func TestLocalProveBindsToRequest(t *testing.T) {
	req := request(t, "abc", []replay.Event{
		{DtMs: 100, Key: 0},
		{DtMs: 100, Key: 1},
		{DtMs: 100, Key: 2},
	})
	art, err := NewLocal(strings.Repeat("33", 32)).Prove(context.Background(), req)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if art.AccuracyBps != 10000 {
		t.Fatalf("accuracy = %d, want 10000", art.AccuracyBps)
	}
	if art.JournalPromptHex != hex.EncodeToString(req.PromptHash[:]) {
		t.Fatalf("artifact prompt hash not bound to request")
	}
	checker := binding.NewChecker(0)
	if err := checker.Check(req, art); err != nil {
		t.Fatalf("artifact must pass binding: %v", err)
	}
	if err := checker.CheckStats(req.Stats, art); err != nil {
		t.Fatalf("artifact stats must match request stats: %v", err)
	}
	if len(art.Seal) != 0 {
		t.Fatalf("dev prover must not fabricate a seal")
	}
}

func TestLocalProveDeterministic(t *testing.T) {
	req := request(t, "abc", []replay.Event{
		{DtMs: 100, Key: 0},
		{DtMs: 100, Key: 1},
		{DtMs: 100, Key: 2},
	})
	local := NewLocal("00")
	first, err := local.Prove(context.Background(), req)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	second, err := local.Prove(context.Background(), req)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if first.JournalHash != second.JournalHash {
		t.Fatalf("journal hash must be deterministic: %q vs %q", first.JournalHash, second.JournalHash)
	}
}

func TestLocalProveRejectsFastKeystrokes(t *testing.T) {
	req := request(t, "ab", []replay.Event{
		{DtMs: 5, Key: 0}, // below the per-event floor
		{DtMs: 500, Key: 1},
	})
	if _, err := NewLocal("00").Prove(context.Background(), req); !errors.Is(err, ErrProve) {
		t.Fatalf("expected ErrProve for sub-floor dt, got %v", err)
	}
}

func TestLocalProveHonorsCancellation(t *testing.T) {
	req := request(t, "abc", []replay.Event{
		{DtMs: 100, Key: 0},
		{DtMs: 100, Key: 1},
		{DtMs: 100, Key: 2},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLocal("00").Prove(ctx, req); !errors.Is(err, ErrProve) {
		t.Fatalf("expected ErrProve on cancelled context, got %v", err)
	}
}
