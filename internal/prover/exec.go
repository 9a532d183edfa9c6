package prover

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/typeproof/typeproof/internal/binding"
	"github.com/typeproof/typeproof/internal/validator"
)

// Exec invokes the proving host binary as a subprocess. The binary takes
// `<challenge_id> <player_hex> <prompt> <events_hex>` and reports the
// artifact as `key: value` lines on stdout.
type Exec struct {
	// Binary is the path to the proving host executable.
	Binary string
}

// NewExec returns an Exec prover for the given binary path.
func NewExec(binary string) *Exec {
	return &Exec{Binary: binary}
}

// Prove runs the host binary for one submission. Cancellation of ctx kills
// the subprocess; a proof can run for minutes, so callers own the timeout.
func (e *Exec) Prove(ctx context.Context, req *validator.ProofRequest) (*binding.Artifact, error) {
	cmd := exec.CommandContext(ctx, e.Binary,
		strconv.FormatUint(uint64(req.ChallengeID), 10),
		hex.EncodeToString(req.Player[:]),
		req.Prompt,
		hex.EncodeToString(req.EncodedReplay),
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrProve, msg)
	}
	art, err := ParseHostOutput(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProve, err)
	}
	return art, nil
}

// ParseHostOutput decodes the host binary's `key: value` report into an
// artifact. Unknown keys are ignored so the host can grow its report without
// breaking older relays; missing required keys are an error.
func ParseHostOutput(out []byte) (*binding.Artifact, error) {
	fields := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for _, key := range []string{"image_id", "journal_sha256", "journal.score", "journal.wpm_x100", "journal.accuracy_bps", "journal.duration_ms"} {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("host output missing %q", key)
		}
	}

	scoreVal, err := strconv.ParseUint(fields["journal.score"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("journal.score: %w", err)
	}
	wpm, err := parseUint32(fields["journal.wpm_x100"])
	if err != nil {
		return nil, fmt.Errorf("journal.wpm_x100: %w", err)
	}
	acc, err := parseUint32(fields["journal.accuracy_bps"])
	if err != nil {
		return nil, fmt.Errorf("journal.accuracy_bps: %w", err)
	}
	dur, err := parseUint32(fields["journal.duration_ms"])
	if err != nil {
		return nil, fmt.Errorf("journal.duration_ms: %w", err)
	}
	seal, err := hex.DecodeString(fields["seal"])
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	art := &binding.Artifact{
		Score:            scoreVal,
		WpmX100:          wpm,
		AccuracyBps:      acc,
		DurationMs:       dur,
		ImageID:          fields["image_id"],
		JournalHash:      fields["journal_sha256"],
		Seal:             seal,
		JournalPlayerHex: fields["journal.player_pubkey"],
		JournalPromptHex: fields["journal.prompt_hash"],
	}
	if raw, ok := fields["journal.challenge_id"]; ok {
		cid, err := parseUint32(raw)
		if err != nil {
			return nil, fmt.Errorf("journal.challenge_id: %w", err)
		}
		art.JournalChallengeID = &cid
	}
	return art, nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
