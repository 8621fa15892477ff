package telegram

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-bot/internal/infra/gateway"
	"github.com/aliskhannn/trivia-bot/internal/service"
	"github.com/aliskhannn/trivia-bot/internal/storage"
)

func formatQuestion(snap entities.Snapshot, q entities.Question) string {
	return fmt.Sprintf(
		"%s\n%s\n\n%s",
		bold(fmt.Sprintf("Question %d/%d", snap.CurrentIndex+1, snap.Total())),
		italic(fmt.Sprintf("%s · %s", q.CategoryDecoded(), formatDifficulty(q.Difficulty))),
		md(q.PromptDecoded()),
	)
}

// formatReveal renders an answered question with its result.
func formatReveal(snap entities.Snapshot) string {
	q, _ := snap.CurrentQuestion()

	var sb strings.Builder
	sb.WriteString(formatQuestion(snap, q))
	sb.WriteString("\n\n")

	if snap.Message == entities.MessageCorrect {
		sb.WriteString("✅ " + bold(snap.Message))
	} else {
		sb.WriteString("❌ " + bold(snap.Message) + "\n")
		sb.WriteString(md("Your answer: "+snap.SelectedAnswer) + "\n")
		sb.WriteString(md("Correct answer: ") + bold(snap.CorrectAnswer))
	}

	sb.WriteString("\n\n" + md(fmt.Sprintf("Score: %d/%d", snap.Score, len(snap.History))))
	return sb.String()
}

// formatFinalScore renders the summary of a finished game.
func formatFinalScore(snap entities.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("🏁 " + bold("Game over") + "\n\n")
	sb.WriteString(md(fmt.Sprintf("You answered %d of %d questions correctly (%.0f%%).",
		snap.Score, snap.Total(), percent(snap.Score, snap.Total()))))
	sb.WriteString("\n")

	for _, a := range snap.History {
		mark := "✅"
		if !a.IsCorrect {
			mark = "❌"
		}
		line := fmt.Sprintf("%d. %s", a.QuestionIndex+1, a.Category)
		if !a.IsCorrect {
			line += fmt.Sprintf(": %s (correct: %s)", a.Selected, a.Correct)
		}
		sb.WriteString("\n" + mark + " " + md(line))
	}

	return sb.String()
}

func formatStats(stats *entities.PlayerStats, recent []entities.GameResult) string {
	if stats.GamesPlayed == 0 {
		return md(msgNoGamesPlayed)
	}

	var sb strings.Builder
	sb.WriteString("📊 " + bold("Your statistics") + "\n\n")
	sb.WriteString(md(fmt.Sprintf("Games played: %d", stats.GamesPlayed)) + "\n")
	sb.WriteString(md(fmt.Sprintf("Best game: %d/%d", stats.BestScore, stats.BestTotal)) + "\n")
	sb.WriteString(md(fmt.Sprintf("Correct answers: %d of %d (%.1f%%)",
		stats.TotalCorrect, stats.TotalAnswered, stats.Accuracy())))

	if stats.LastPlayedAt != nil {
		sb.WriteString("\n" + md("Last game: "+stats.LastPlayedAt.Format("2006-01-02 15:04 MST")))
	}

	if len(recent) > 0 {
		sb.WriteString("\n\n" + bold("Recent games") + "\n")
		for _, r := range recent {
			sb.WriteString(md(fmt.Sprintf("%s  %d/%d (%.0f%%)",
				r.FinishedAt.Format("Jan 2 15:04"), r.Score, r.TotalQuestions, r.Accuracy())) + "\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatDifficulty(d string) string {
	if d == "" {
		return "any"
	}
	return d
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// loadErrorText maps a failed game load to a message for the player.
// ok is false for errors that are not caused by the trivia source.
func loadErrorText(err error) (text string, ok bool) {
	switch {
	case errors.Is(err, service.ErrSuperseded):
		return msgLoadInterruptedNote, true
	case errors.Is(err, service.ErrEmptyResultSet):
		return msgNoQuestions, true
	case errors.Is(err, service.ErrTriviaResponse):
		return msgTriviaRejected, true
	case errors.Is(err, gateway.ErrInvalidParameters):
		return msgInvalidCount, true
	case errors.Is(err, gateway.ErrTransport), errors.Is(err, gateway.ErrDecode):
		return msgSourceUnavailable, true
	default:
		return "", false
	}
}

func buildQuestionPhoto(chatID int64, snap entities.Snapshot) tgbotapi.PhotoConfig {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(snap.ImageURL))
	if q, ok := snap.CurrentQuestion(); ok {
		photo.Caption = fmt.Sprintf("%s (%d/%d)", q.CategoryDecoded(), snap.CurrentIndex+1, snap.Total())
	}
	return photo
}

// watchImages sends the photo of each question once, whenever it arrives.
func (h *Handler) watchImages(chatID int64, t *storage.Table) {
	var (
		mu   sync.Mutex
		sent string
	)

	t.Game.Subscribe(func(snap entities.Snapshot) {
		if snap.ImageURL == "" {
			return
		}

		key := fmt.Sprintf("%s/%d", snap.SessionID, snap.CurrentIndex)
		mu.Lock()
		if key == sent {
			mu.Unlock()
			return
		}
		sent = key
		mu.Unlock()

		h.send(buildQuestionPhoto(chatID, snap))
	})
}
