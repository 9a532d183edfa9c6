// Package store handles SQLite persistence of accepted submissions.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/typeproof/typeproof/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the submission log and leaderboard cache.
// The on-chain ledger stays authoritative; this cache only serves local
// queries and the top view.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			challenge_id INTEGER NOT NULL,
			player TEXT NOT NULL,
			prompt_hash TEXT NOT NULL,
			score INTEGER NOT NULL,
			wpm_x100 INTEGER NOT NULL,
			accuracy_bps INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			image_id TEXT NOT NULL,
			journal_hash TEXT NOT NULL,
			seal_bytes INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_challenge ON submissions(challenge_id, score);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSubmission stores one accepted submission.
func (s *Store) InsertSubmission(ctx context.Context, rec model.SubmissionRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (created_at, challenge_id, player, prompt_hash, score, wpm_x100, accuracy_bps, duration_ms, image_id, journal_hash, seal_bytes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt.Format(time.RFC3339Nano),
		rec.ChallengeID,
		rec.Player,
		rec.PromptHash,
		int64(rec.Score),
		rec.WpmX100,
		rec.AccuracyBps,
		rec.DurationMs,
		rec.ImageID,
		rec.JournalHash,
		rec.SealBytes,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// TopScores returns each player's best accepted score for a challenge,
// highest first.
func (s *Store) TopScores(ctx context.Context, challengeID uint32, limit int) ([]model.LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player, MAX(score) AS best, wpm_x100, accuracy_bps, duration_ms, created_at
		 FROM submissions
		 WHERE challenge_id = ?
		 GROUP BY player
		 ORDER BY best DESC, created_at ASC
		 LIMIT ?`,
		challengeID, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.LeaderboardRow
	for rows.Next() {
		var row model.LeaderboardRow
		var score int64
		var createdAt string
		if err := rows.Scan(&row.Player, &score, &row.WpmX100, &row.AccuracyBps, &row.DurationMs, &createdAt); err != nil {
			return nil, err
		}
		row.Score = uint64(score)
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		row.AchievedAt = parsed
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RecentSubmissions returns the latest accepted submissions, newest first.
func (s *Store) RecentSubmissions(ctx context.Context, limit int) ([]model.SubmissionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, challenge_id, player, prompt_hash, score, wpm_x100, accuracy_bps, duration_ms, image_id, journal_hash, seal_bytes
		 FROM submissions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SubmissionRecord
	for rows.Next() {
		var rec model.SubmissionRecord
		var score int64
		var createdAt string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.ChallengeID, &rec.Player, &rec.PromptHash, &score, &rec.WpmX100, &rec.AccuracyBps, &rec.DurationMs, &rec.ImageID, &rec.JournalHash, &rec.SealBytes); err != nil {
			return nil, err
		}
		rec.Score = uint64(score)
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// BestScore returns a player's best accepted score for a challenge, or nil
// when the player has no accepted submission yet.
func (s *Store) BestScore(ctx context.Context, challengeID uint32, player string) (*model.LeaderboardRow, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT player, score, wpm_x100, accuracy_bps, duration_ms, created_at
		 FROM submissions
		 WHERE challenge_id = ? AND player = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT 1`,
		challengeID, player)
	var result model.LeaderboardRow
	var score int64
	var createdAt string
	if err := row.Scan(&result.Player, &score, &result.WpmX100, &result.AccuracyBps, &result.DurationMs, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	result.Score = uint64(score)
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}
	result.AchievedAt = parsed
	return &result, nil
}
