package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-bot/internal/service"
	"github.com/aliskhannn/trivia-bot/internal/storage"
)

const statsHistoryLimit = 5

func (h *Handler) handleMessage(ctx context.Context, t *storage.Table, m *tgbotapi.Message) {
	chatID := m.Chat.ID

	if !m.IsCommand() {
		h.send(newMessage(chatID, md(msgUseButtons)))
		return
	}

	switch m.Command() {
	case "start":
		_ = h.withErrorHandling(h.welcomeHandler())(ctx, chatID)

	case "play":
		_ = h.withErrorHandling(h.playHandler(t, m.From, false))(ctx, chatID)

	case "options":
		_ = h.withErrorHandling(h.optionsHandler(t))(ctx, chatID)

	case "menu":
		_ = h.withErrorHandling(h.menuHandler(t))(ctx, chatID)

	case "stats":
		_ = h.withErrorHandling(h.statsHandler(m.From.ID))(ctx, chatID)

	case "help":
		h.send(newMessage(chatID, md(msgHelp)))

	default:
		h.send(newMessage(chatID, md(msgUnknownCommand)))
	}
}

func (h *Handler) welcomeHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, md(msgWelcome))
		msg.ReplyMarkup = buildMenuKeyboard()
		h.send(msg)
		return nil
	}
}

// playHandler loads a new batch of questions and shows the first one.
// With restart set, the current game is replaced.
func (h *Handler) playHandler(t *storage.Table, from *tgbotapi.User, restart bool) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		count := t.Game.Snapshot().RequestedCount

		h.logger.Debug("starting game",
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", from.ID),
			zap.Int("count", count),
			zap.Bool("restart", restart),
		)

		h.send(newMessage(chatID, md(fmt.Sprintf(msgLoading, count))))

		start := t.Game.Start
		if restart {
			start = t.Game.Restart
		}
		if err := start(ctx, count); err != nil {
			return h.reportLoadError(chatID, err)
		}

		return h.sendQuestion(chatID, t)
	}
}

// reportLoadError tells the player why the game could not start. Errors that
// are not caused by the trivia source are returned to the middleware.
func (h *Handler) reportLoadError(chatID int64, err error) error {
	text, ok := loadErrorText(err)
	if !ok {
		return fmt.Errorf("start game: %w", err)
	}

	h.logger.Warn("failed to load questions",
		zap.Int64("chat_id", chatID),
		zap.Error(err),
	)

	msg := newMessage(chatID, md(text))
	msg.ReplyMarkup = buildMenuKeyboard()
	h.send(msg)
	return nil
}

// sendQuestion renders the current question with one button per answer.
func (h *Handler) sendQuestion(chatID int64, t *storage.Table) error {
	snap := t.Game.Snapshot()

	q, ok := snap.CurrentQuestion()
	if !ok || snap.State != entities.StateActive {
		return fmt.Errorf("no question to show in state %s", snap.State)
	}

	t.Remember(snap.Version, snap.Answers)

	msg := newMessage(chatID, formatQuestion(snap, q))
	msg.ReplyMarkup = buildAnswerKeyboard(snap.Version, snap.Answers)
	h.send(msg)
	return nil
}

func (h *Handler) optionsHandler(t *storage.Table) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch t.Game.Snapshot().State {
		case entities.StateActive, entities.StateAnswerRevealed, entities.StateLoading:
			h.send(newMessage(chatID, md(msgFinishGameFirst)))
			return nil
		case entities.StateFinished:
			if err := t.Game.BackToMenu(); err != nil {
				return err
			}
		}

		if err := t.Game.ShowOptions(true); err != nil && !errors.Is(err, service.ErrInvalidTransition) {
			return err
		}

		snap := t.Game.Snapshot()
		msg := newMessage(chatID, md(fmt.Sprintf(msgChooseCount, snap.RequestedCount)))
		msg.ReplyMarkup = buildCountKeyboard(snap.RequestedCount)
		h.send(msg)
		return nil
	}
}

// menuHandler leaves the current game, if any, and shows the main menu.
func (h *Handler) menuHandler(t *storage.Table) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := t.Game.BackToMenu(); err != nil && !errors.Is(err, service.ErrInvalidTransition) {
			return err
		}
		if err := t.Game.ShowOptions(false); err != nil && !errors.Is(err, service.ErrInvalidTransition) {
			return err
		}

		msg := newMessage(chatID, md(fmt.Sprintf(msgMenu, t.Game.Snapshot().RequestedCount)))
		msg.ReplyMarkup = buildMenuKeyboard()
		h.send(msg)
		return nil
	}
}

func (h *Handler) statsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.results == nil {
			h.send(newMessage(chatID, md(msgStatsUnavailable)))
			return nil
		}

		stats, err := h.results.Stats(ctx, userID)
		if err != nil {
			return err
		}

		var recent []entities.GameResult
		if stats.GamesPlayed > 0 {
			recent, err = h.results.History(ctx, userID, statsHistoryLimit)
			if err != nil {
				return err
			}
		}

		msg := newMessage(chatID, formatStats(stats, recent))
		msg.ReplyMarkup = buildMenuKeyboard()
		h.send(msg)
		return nil
	}
}
