// Package model defines shared data structures.
package model

import "time"

// SubmissionRecord captures one accepted, bound submission as persisted in
// the local log. Player and hash fields are lowercase hex.
type SubmissionRecord struct {
	ID          int64
	CreatedAt   time.Time
	ChallengeID uint32
	Player      string
	PromptHash  string
	Score       uint64
	WpmX100     uint32
	AccuracyBps uint32
	DurationMs  uint32
	ImageID     string
	JournalHash string
	SealBytes   int
}

// LeaderboardRow is a player's best accepted score for one challenge.
type LeaderboardRow struct {
	Player      string
	Score       uint64
	WpmX100     uint32
	AccuracyBps uint32
	DurationMs  uint32
	AchievedAt  time.Time
}
