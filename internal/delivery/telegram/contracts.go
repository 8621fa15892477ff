package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-bot/internal/storage"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type GameStorage interface {
	GetOrCreate(chatID int64) (*storage.Table, bool)
}

type PlayerService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, username string) (bool, error)
}

type ResultService interface {
	Record(ctx context.Context, user *entities.User, snap entities.Snapshot) error
	Stats(ctx context.Context, userID int64) (*entities.PlayerStats, error)
	History(ctx context.Context, userID int64, limit int) ([]entities.GameResult, error)
}
