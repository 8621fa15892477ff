package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-bot/internal/storage"
)

type Handler struct {
	bot    BotAPI
	logger *zap.Logger
	games  GameStorage

	// players and results are nil when no database is configured.
	players PlayerService
	results ResultService

	inflight sync.WaitGroup
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	games GameStorage,
	players PlayerService,
	results ResultService,
) *Handler {
	return &Handler{
		bot:     bot,
		logger:  logger,
		games:   games,
		players: players,
		results: results,
	}
}

// Run receives updates until ctx is cancelled. Each update is handled in its
// own goroutine; updates of the same chat wait for each other.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	defer h.inflight.Wait()
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.inflight.Add(1)
			go func() {
				defer h.inflight.Done()
				h.handleUpdate(ctx, update)
			}()
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if cb := update.CallbackQuery; cb != nil {
		if cb.Message == nil || cb.Message.Chat == nil {
			h.logger.Debug("callback without message", zap.String("data", cb.Data))
			h.answerCallback(cb.ID, "")
			return
		}

		h.logger.Debug("callback received",
			zap.Int64("user_id", cb.From.ID),
			zap.String("data", cb.Data),
		)

		t := h.table(cb.Message.Chat.ID)
		t.Do(func() { h.handleCallback(ctx, t, cb) })
		return
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.String("text", msg.Text),
	)

	h.ensureUser(ctx, msg.From, msg.Chat.ID)

	t := h.table(msg.Chat.ID)
	t.Do(func() { h.handleMessage(ctx, t, msg) })
}

// table returns the chat's game, subscribing the photo sender when the game is new.
func (h *Handler) table(chatID int64) *storage.Table {
	t, created := h.games.GetOrCreate(chatID)
	if created {
		h.watchImages(chatID, t)
	}
	return t
}

func (h *Handler) ensureUser(ctx context.Context, from *tgbotapi.User, chatID int64) {
	if h.players == nil {
		return
	}

	created, err := h.players.EnsureUser(ctx, from.ID, chatID, from.UserName)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
		return
	}
	if created {
		h.logger.Info("new player", zap.Int64("user_id", from.ID))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newMessage(chatID, md(text)))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// answerCallback removes the button spinner, optionally showing a short notice.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("failed to answer callback",
			zap.String("callback_id", id),
			zap.Error(err),
		)
	}
}
