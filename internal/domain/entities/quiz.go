package entities

import (
	"time"
)

// GameResult is a finished game session stored in the results log.
type GameResult struct {
	ID             int64     // unique result ID
	UserID         int64     // player who played the game
	SessionID      string    // session identifier assigned by the orchestrator
	Score          int       // number of correct answers
	TotalQuestions int       // number of questions in the session
	StartedAt      time.Time // when the question batch was loaded
	FinishedAt     time.Time // when the last answer was revealed
	Answers        []AnswerRecord
}

// NewGameResult builds a result from a finished session snapshot.
func NewGameResult(userID int64, s Snapshot) *GameResult {
	answers := make([]AnswerRecord, len(s.History))
	copy(answers, s.History)

	return &GameResult{
		UserID:         userID,
		SessionID:      s.SessionID,
		Score:          s.Score,
		TotalQuestions: s.Total(),
		StartedAt:      s.StartedAt,
		FinishedAt:     time.Now(),
		Answers:        answers,
	}
}

// Accuracy returns the share of correct answers in percent.
func (r *GameResult) Accuracy() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions) * 100
}

// PlayerStats aggregates all recorded games of a player.
type PlayerStats struct {
	GamesPlayed   int
	BestScore     int
	BestTotal     int // question count of the best game
	TotalCorrect  int
	TotalAnswered int
	LastPlayedAt  *time.Time
}

// Accuracy returns the share of correct answers over all games in percent.
func (s *PlayerStats) Accuracy() float64 {
	if s.TotalAnswered == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalAnswered) * 100
}
