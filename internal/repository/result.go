package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-bot/internal/infra/postgres"
)

var ErrResultExists = errors.New("game result already recorded")

// ResultRepository stores finished games and their answers.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository on a pool or a transaction.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create inserts a game result and returns its ID.
// A second result for the same session yields ErrResultExists.
func (r *ResultRepository) Create(ctx context.Context, res *entities.GameResult) (int64, error) {
	query := `
		INSERT INTO game_results (
			user_id, session_id, score, total_questions, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(
		ctx,
		query,
		res.UserID,
		res.SessionID,
		res.Score,
		res.TotalQuestions,
		res.StartedAt,
		res.FinishedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrResultExists
		}
		return 0, fmt.Errorf("create game result: %w", err)
	}

	return id, nil
}

// SaveAnswers inserts the answer history of a result in one round trip.
func (r *ResultRepository) SaveAnswers(ctx context.Context, resultID int64, answers []entities.AnswerRecord) error {
	if len(answers) == 0 {
		return nil
	}

	query := `
		INSERT INTO game_answers (
			result_id, question_index, category, difficulty,
			selected_answer, correct_answer, is_correct
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, a := range answers {
		batch.Queue(query, resultID, a.QuestionIndex, a.Category, a.Difficulty, a.Selected, a.Correct, a.IsCorrect)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save game answers: %w", err)
	}

	return nil
}

// GetStats aggregates all recorded games of a user.
func (r *ResultRepository) GetStats(ctx context.Context, userID int64) (*entities.PlayerStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(score), 0),
			COALESCE(SUM(total_questions), 0),
			MAX(finished_at)
		FROM game_results
		WHERE user_id = $1
	`

	var stats entities.PlayerStats
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.GamesPlayed,
		&stats.TotalCorrect,
		&stats.TotalAnswered,
		&stats.LastPlayedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	if stats.GamesPlayed == 0 {
		return &stats, nil
	}

	bestQuery := `
		SELECT score, total_questions
		FROM game_results
		WHERE user_id = $1
		ORDER BY score::float / total_questions DESC, total_questions DESC, finished_at DESC
		LIMIT 1
	`

	err = r.db.QueryRow(ctx, bestQuery, userID).Scan(&stats.BestScore, &stats.BestTotal)
	if err != nil {
		return nil, fmt.Errorf("get best result: %w", err)
	}

	return &stats, nil
}

// ListRecent returns the latest results of a user, newest first, without answers.
func (r *ResultRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]entities.GameResult, error) {
	query := `
		SELECT id, user_id, session_id::text, score, total_questions, started_at, finished_at
		FROM game_results
		WHERE user_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.GameResult, error) {
		var res entities.GameResult
		err := row.Scan(&res.ID, &res.UserID, &res.SessionID, &res.Score, &res.TotalQuestions, &res.StartedAt, &res.FinishedAt)
		return res, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan results: %w", err)
	}

	return results, nil
}
