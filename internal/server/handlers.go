package server

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/typeproof/typeproof/internal/binding"
	"github.com/typeproof/typeproof/internal/identity"
	"github.com/typeproof/typeproof/internal/model"
	"github.com/typeproof/typeproof/internal/prompt"
	"github.com/typeproof/typeproof/internal/replay"
	"github.com/typeproof/typeproof/internal/validator"
)

// submitResponse is the relay handoff: the artifact fields plus the original
// request's challenge id, prompt digest, and player identity. Hashes and the
// seal are lowercase hex.
type submitResponse struct {
	ChallengeID uint32 `json:"challenge_id"`
	Player      string `json:"player"`
	PromptHash  string `json:"prompt_hash"`
	Score       uint64 `json:"score"`
	WpmX100     uint32 `json:"wpm_x100"`
	AccuracyBps uint32 `json:"accuracy_bps"`
	DurationMs  uint32 `json:"duration_ms"`
	ImageID     string `json:"image_id"`
	JournalHash string `json:"journal_hash"`
	Seal        string `json:"seal"`
}

func (s *Server) handleSubmit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.validator.Limits().MaxBodyBytes)

	var sub validator.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		submissionsTotal.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	req, err := s.validator.Validate(sub)
	if err != nil {
		submissionsTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": rejectionKind(err), "message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if s.opts.ProveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.ProveTimeout)
		defer cancel()
	}
	art, err := s.prover.Prove(ctx, req)
	if err != nil {
		submissionsTotal.WithLabelValues("prover_failed").Inc()
		s.log.Error("Prover failed", "challenge_id", req.ChallengeID, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "prover_failed", "message": err.Error()})
		return
	}

	if err := s.bind(req, art); err != nil {
		submissionsTotal.WithLabelValues("binding_failed").Inc()
		// A mismatch here means a bug or an attempted substitution; the
		// artifact must not be forwarded.
		s.log.Error("Binding check failed",
			"challenge_id", req.ChallengeID,
			"player", identity.Hex(req.Player),
			"error", err,
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": bindingKind(err), "message": err.Error()})
		return
	}

	if s.store != nil {
		rec := model.SubmissionRecord{
			CreatedAt:   time.Now().UTC(),
			ChallengeID: req.ChallengeID,
			Player:      identity.Hex(req.Player),
			PromptHash:  hex.EncodeToString(req.PromptHash[:]),
			Score:       art.Score,
			WpmX100:     art.WpmX100,
			AccuracyBps: art.AccuracyBps,
			DurationMs:  art.DurationMs,
			ImageID:     art.ImageID,
			JournalHash: art.JournalHash,
			SealBytes:   len(art.Seal),
		}
		if _, err := s.store.InsertSubmission(c.Request.Context(), rec); err != nil {
			s.log.Error("Failed to record submission", "error", err)
		}
	}

	submissionsTotal.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, submitResponse{
		ChallengeID: req.ChallengeID,
		Player:      identity.Hex(req.Player),
		PromptHash:  hex.EncodeToString(req.PromptHash[:]),
		Score:       art.Score,
		WpmX100:     art.WpmX100,
		AccuracyBps: art.AccuracyBps,
		DurationMs:  art.DurationMs,
		ImageID:     art.ImageID,
		JournalHash: art.JournalHash,
		Seal:        hex.EncodeToString(art.Seal),
	})
}

// bind runs the artifact-to-request checks plus the metric cross-check.
func (s *Server) bind(req *validator.ProofRequest, art *binding.Artifact) error {
	if err := s.checker.Check(req, art); err != nil {
		return err
	}
	return s.checker.CheckStats(req.Stats, art)
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no_store", "message": "leaderboard cache disabled"})
		return
	}
	cid, err := strconv.ParseUint(c.Param("challenge_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_challenge_id", "message": err.Error()})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	rows, err := s.store.TopScores(c.Request.Context(), uint32(cid), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query_failed", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenge_id": cid, "rows": rows})
}

func (s *Server) handleRecent(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no_store", "message": "submission log disabled"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	recs, err := s.store.RecentSubmissions(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query_failed", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": recs})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

// rejectionKind maps a validation error to its stable error code.
func rejectionKind(err error) string {
	switch {
	case errors.Is(err, validator.ErrChallengeID):
		return "invalid_challenge_id"
	case errors.Is(err, identity.ErrInvalid):
		return "invalid_player"
	case errors.Is(err, validator.ErrPromptTooLong):
		return "prompt_too_long"
	case errors.Is(err, validator.ErrEmptyPrompt):
		return "empty_prompt"
	case errors.Is(err, validator.ErrReplayBase64), errors.Is(err, replay.ErrFormat):
		return "malformed_replay"
	case errors.Is(err, validator.ErrTooManyEvents), errors.Is(err, replay.ErrRange):
		return "replay_out_of_range"
	case errors.Is(err, replay.ErrInvalidKey):
		return "invalid_key"
	case errors.Is(err, prompt.ErrEncoding):
		return "prompt_not_ascii"
	case errors.Is(err, validator.ErrDurationTooShort):
		return "duration_too_short"
	default:
		return "invalid_submission"
	}
}

func bindingKind(err error) string {
	switch {
	case errors.Is(err, binding.ErrOversizedArtifact):
		return "oversized_artifact"
	case errors.Is(err, binding.ErrBinding):
		return "binding_mismatch"
	default:
		return "relay_failed"
	}
}
