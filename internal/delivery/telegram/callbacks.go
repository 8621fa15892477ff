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

func (h *Handler) handleCallback(ctx context.Context, t *storage.Table, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var (
		notice string
		err    error
	)

	switch data.Action {
	case actionPlay:
		err = h.playHandler(t, cb.From, false)(ctx, chatID)
	case actionRestart:
		h.send(removeKeyboard(chatID, cb.Message.MessageID))
		err = h.playHandler(t, cb.From, true)(ctx, chatID)
	case actionAnswer:
		notice, err = h.handleAnswerCallback(t, cb, data)
	case actionNext:
		notice, err = h.handleNextCallback(ctx, t, cb)
	case actionMenu:
		h.send(removeKeyboard(chatID, cb.Message.MessageID))
		err = h.menuHandler(t)(ctx, chatID)
	case actionOptions:
		err = h.optionsHandler(t)(ctx, chatID)
	case actionCount:
		notice, err = h.handleCountCallback(t, cb, data)
	case actionStats:
		err = h.statsHandler(cb.From.ID)(ctx, chatID)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, notice)

	if err != nil {
		h.handleError(chatID, err)
	}
}

// handleAnswerCallback scores the pressed answer and turns the question into its result.
func (h *Handler) handleAnswerCallback(t *storage.Table, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	version, idx, ok := data.answer()
	if !ok {
		return "", fmt.Errorf("invalid answer callback %q", data.Raw)
	}

	answer, ok := t.Answer(version, idx)
	if !ok {
		return msgStaleButton, nil
	}

	message, err := t.Game.SelectAnswer(answer)
	if errors.Is(err, service.ErrInvalidTransition) {
		return msgAlreadyAnswered, nil
	}
	if err != nil {
		return "", err
	}

	snap := t.Game.Snapshot()

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, formatReveal(snap))
	kb := buildRevealKeyboard(snap.IsLastQuestion())
	edit.ReplyMarkup = &kb
	h.send(edit)

	return message, nil
}

// handleNextCallback moves to the next question or finishes the game after the last one.
func (h *Handler) handleNextCallback(ctx context.Context, t *storage.Table, cb *tgbotapi.CallbackQuery) (string, error) {
	chatID := cb.Message.Chat.ID

	if err := t.Game.Advance(ctx); err != nil {
		if errors.Is(err, service.ErrInvalidTransition) {
			return msgNoGame, nil
		}
		return "", err
	}

	h.send(removeKeyboard(chatID, cb.Message.MessageID))

	snap := t.Game.Snapshot()
	if snap.State == entities.StateFinished {
		h.finishGame(ctx, chatID, cb.From, snap)
		return "", nil
	}

	return "", h.sendQuestion(chatID, t)
}

// finishGame shows the final score and records it when a results log is configured.
func (h *Handler) finishGame(ctx context.Context, chatID int64, from *tgbotapi.User, snap entities.Snapshot) {
	msg := newMessage(chatID, formatFinalScore(snap))
	msg.ReplyMarkup = buildFinishedKeyboard()
	h.send(msg)

	if h.results == nil {
		return
	}

	user := entities.NewUser(from.ID, chatID, from.UserName)
	if err := h.results.Record(ctx, user, snap); err != nil {
		h.logger.Error("failed to record game result",
			zap.String("session_id", snap.SessionID),
			zap.Error(err),
		)
	}
}

func (h *Handler) handleCountCallback(t *storage.Table, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	n, ok := data.count()
	if !ok {
		return "", fmt.Errorf("invalid count callback %q", data.Raw)
	}

	if err := t.Game.SetRequestedCount(n); err != nil {
		switch {
		case errors.Is(err, service.ErrCountOutOfRange):
			return msgInvalidCount, nil
		case errors.Is(err, service.ErrInvalidTransition):
			return msgFinishGameFirst, nil
		default:
			return "", err
		}
	}

	if err := t.Game.ShowOptions(false); err != nil && !errors.Is(err, service.ErrInvalidTransition) {
		return "", err
	}

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, md(fmt.Sprintf(msgCountSet, n)))
	kb := buildMenuKeyboard()
	edit.ReplyMarkup = &kb
	h.send(edit)

	return "", nil
}
