package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeproof/typeproof/internal/binding"
	"github.com/typeproof/typeproof/internal/identity"
	"github.com/typeproof/typeproof/internal/logger"
	"github.com/typeproof/typeproof/internal/prover"
	"github.com/typeproof/typeproof/internal/replay"
	"github.com/typeproof/typeproof/internal/store"
	"github.com/typeproof/typeproof/internal/validator"
)

// tamperingProver wraps the local prover and corrupts a declared output.
type tamperingProver struct {
	inner  prover.Prover
	mutate func(*binding.Artifact)
}

func (p *tamperingProver) Prove(ctx context.Context, req *validator.ProofRequest) (*binding.Artifact, error) {
	art, err := p.inner.Prove(ctx, req)
	if err != nil {
		return nil, err
	}
	p.mutate(art)
	return art, nil
}

// failingProver always reports an opaque failure.
type failingProver struct{}

func (failingProver) Prove(ctx context.Context, req *validator.ProofRequest) (*binding.Artifact, error) {
	return nil, fmt.Errorf("%w: out of cycles", prover.ErrProve)
}

func newTestServer(t *testing.T, pv prover.Prover) *Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "typeproof.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	if pv == nil {
		pv = prover.NewLocal(strings.Repeat("11", 32))
	}
	return New(Options{RateLimit: 1000}, pv, st, logger.New("test"))
}

func submission(t *testing.T) validator.Submission {
	t.Helper()
	events := []replay.Event{
		{DtMs: 120, Key: 0},
		{DtMs: 130, Key: 1},
		{DtMs: 110, Key: 2},
	}
	encoded, err := replay.Encode(events)
	require.NoError(t, err)
	return validator.Submission{
		ChallengeID: 5,
		Player:      strings.Repeat("07", identity.Size),
		Prompt:      "abc",
		Replay:      base64.StdEncoding.EncodeToString(encoded),
	}
}

func postSubmit(t *testing.T, s *Server, sub validator.Submission) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(sub)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestSubmitAccepted(t *testing.T) {
	s := newTestServer(t, nil)
	w := postSubmit(t, s, submission(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp submitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint32(5), resp.ChallengeID)
	assert.Equal(t, uint32(10000), resp.AccuracyBps)
	assert.Equal(t, strings.Repeat("07", identity.Size), resp.Player)
	assert.Len(t, resp.PromptHash, 64)
	assert.Len(t, resp.JournalHash, 64)

	// Accepted submission lands in the leaderboard cache.
	lw := httptest.NewRecorder()
	s.Handler().ServeHTTP(lw, httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard/5", nil))
	require.Equal(t, http.StatusOK, lw.Code)
	assert.Contains(t, lw.Body.String(), resp.Player)
}

func TestSubmitValidationRejections(t *testing.T) {
	s := newTestServer(t, nil)

	cases := []struct {
		name     string
		mutate   func(*validator.Submission)
		wantCode string
	}{
		{"bad player", func(sub *validator.Submission) { sub.Player = "zz" }, "invalid_player"},
		{"bad base64", func(sub *validator.Submission) { sub.Replay = "%%%" }, "malformed_replay"},
		{"negative challenge", func(sub *validator.Submission) { sub.ChallengeID = -4 }, "invalid_challenge_id"},
		{"non ascii prompt", func(sub *validator.Submission) { sub.Prompt = "héllo" }, "prompt_not_ascii"},
		{"too fast", func(sub *validator.Submission) {
			encoded, err := replay.Encode([]replay.Event{{DtMs: 1, Key: 0}})
			require.NoError(t, err)
			sub.Prompt = "a"
			sub.Replay = base64.StdEncoding.EncodeToString(encoded)
		}, "duration_too_short"},
	}
	for _, tc := range cases {
		sub := submission(t)
		tc.mutate(&sub)
		w := postSubmit(t, s, sub)
		require.Equal(t, http.StatusBadRequest, w.Code, tc.name)
		assert.Contains(t, w.Body.String(), tc.wantCode, tc.name)
	}
}

func TestSubmitBindingMismatchNotForwarded(t *testing.T) {
	pv := &tamperingProver{
		inner: prover.NewLocal(strings.Repeat("11", 32)),
		mutate: func(art *binding.Artifact) {
			art.JournalPromptHex = strings.Repeat("00", 32)
		},
	}
	s := newTestServer(t, pv)
	w := postSubmit(t, s, submission(t))
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "binding_mismatch")

	// Nothing may reach the store when binding fails.
	rw := httptest.NewRecorder()
	s.Handler().ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/api/v1/submissions/recent", nil))
	require.Equal(t, http.StatusOK, rw.Code)
	assert.NotContains(t, rw.Body.String(), strings.Repeat("07", identity.Size))
}

func TestSubmitTamperedScoreRejected(t *testing.T) {
	pv := &tamperingProver{
		inner:  prover.NewLocal(strings.Repeat("11", 32)),
		mutate: func(art *binding.Artifact) { art.Score += 1000 },
	}
	s := newTestServer(t, pv)
	w := postSubmit(t, s, submission(t))
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "binding_mismatch")
}

func TestSubmitProverFailure(t *testing.T) {
	s := newTestServer(t, failingProver{})
	w := postSubmit(t, s, submission(t))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "prover_failed")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
