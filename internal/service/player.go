package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
)

// PlayerService registers bot users.
type PlayerService struct {
	repository UserRepository
}

func NewPlayerService(repository UserRepository) *PlayerService {
	return &PlayerService{repository: repository}
}

// EnsureUser creates the player on first contact and refreshes chat data after that.
// It reports whether the player is new.
func (s *PlayerService) EnsureUser(ctx context.Context, userID, chatID int64, username string) (bool, error) {
	created, err := s.repository.Save(ctx, entities.NewUser(userID, chatID, username))
	if err != nil {
		return false, fmt.Errorf("ensure user %d: %w", userID, err)
	}

	return created, nil
}
