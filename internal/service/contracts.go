package service

import (
	"context"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-bot/internal/infra/gateway"
	"github.com/aliskhannn/trivia-bot/internal/infra/postgres"
)

// Fetcher performs one request against a trivia or image source.
type Fetcher interface {
	Fetch(ctx context.Context, req gateway.Request) (gateway.Payload, error)
}

// Shuffler returns a display order for the answers of one question.
type Shuffler interface {
	Shuffle(correct string, incorrect []string) []string
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
}

type ResultRepository interface {
	GetStats(ctx context.Context, userID int64) (*entities.PlayerStats, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]entities.GameResult, error)
}

// Transactor runs fn inside a database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx postgres.DBTX) error) error
}
