package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-bot/internal/infra/postgres"
	"github.com/aliskhannn/trivia-bot/internal/repository"
)

const defaultHistoryLimit = 5

var ErrGameNotFinished = errors.New("game is not finished")

// ResultService writes finished games to the results log and reads player statistics.
type ResultService struct {
	tr      Transactor
	results ResultRepository
}

func NewResultService(tr Transactor, results ResultRepository) *ResultService {
	return &ResultService{tr: tr, results: results}
}

// Record stores a finished game with its answers. Recording the same session
// twice is a no-op.
func (s *ResultService) Record(ctx context.Context, user *entities.User, snap entities.Snapshot) error {
	if snap.State != entities.StateFinished {
		return fmt.Errorf("%w: state %s", ErrGameNotFinished, snap.State)
	}
	if snap.SessionID == "" || snap.Total() == 0 {
		return fmt.Errorf("%w: no questions were played", ErrGameNotFinished)
	}

	result := entities.NewGameResult(user.ID, snap)

	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		userRepo := repository.NewUserRepository(tx)
		resultRepo := repository.NewResultRepository(tx)

		if _, err := userRepo.Save(ctx, user); err != nil {
			return err
		}

		id, err := resultRepo.Create(ctx, result)
		if err != nil {
			return err
		}

		return resultRepo.SaveAnswers(ctx, id, result.Answers)
	})
	if errors.Is(err, repository.ErrResultExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("record game %s: %w", snap.SessionID, err)
	}

	return nil
}

// Stats returns aggregated statistics of a player.
func (s *ResultService) Stats(ctx context.Context, userID int64) (*entities.PlayerStats, error) {
	stats, err := s.results.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("stats for user %d: %w", userID, err)
	}
	return stats, nil
}

// History returns the latest games of a player, newest first.
func (s *ResultService) History(ctx context.Context, userID int64, limit int) ([]entities.GameResult, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	results, err := s.results.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("history for user %d: %w", userID, err)
	}
	return results, nil
}
