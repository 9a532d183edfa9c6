package prover

import (
	"strings"
	"testing"
)

const hostReport = `image_id: 1111111111111111111111111111111111111111111111111111111111111111
seal: 0102030405
journal_sha256: 2222222222222222222222222222222222222222222222222222222222222222
journal.challenge_id: 7
journal.player_pubkey: 0707070707070707070707070707070707070707070707070707070707070707
journal.prompt_hash: 3333333333333333333333333333333333333333333333333333333333333333
journal.score: 98765
journal.wpm_x100: 8350
journal.accuracy_bps: 9875
journal.duration_ms: 61250
`

func TestParseHostOutput(t *testing.T) {
	art, err := ParseHostOutput([]byte(hostReport))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if art.Score != 98765 || art.WpmX100 != 8350 || art.AccuracyBps != 9875 || art.DurationMs != 61250 {
		t.Fatalf("metrics not parsed: %+v", art)
	}
	if art.JournalChallengeID == nil || *art.JournalChallengeID != 7 {
		t.Fatalf("challenge id not parsed: %+v", art.JournalChallengeID)
	}
	if len(art.Seal) != 5 || art.Seal[0] != 1 {
		t.Fatalf("seal not parsed: %v", art.Seal)
	}
	if art.JournalPromptHex != strings.Repeat("33", 32) {
		t.Fatalf("prompt hash not parsed: %q", art.JournalPromptHex)
	}
}

func TestParseHostOutputIgnoresUnknownLines(t *testing.T) {
	report := "banner line without separator\nnew_field: whatever\n" + hostReport
	if _, err := ParseHostOutput([]byte(report)); err != nil {
		t.Fatalf("unknown lines must be ignored: %v", err)
	}
}

func TestParseHostOutputMissingRequired(t *testing.T) {
	report := strings.Replace(hostReport, "journal.score: 98765\n", "", 1)
	if _, err := ParseHostOutput([]byte(report)); err == nil {
		t.Fatalf("expected error for missing journal.score")
	}
}

func TestParseHostOutputEmptySealAllowed(t *testing.T) {
	report := strings.Replace(hostReport, "seal: 0102030405", "seal: ", 1)
	art, err := ParseHostOutput([]byte(report))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(art.Seal) != 0 {
		t.Fatalf("expected empty seal, got %v", art.Seal)
	}
}
