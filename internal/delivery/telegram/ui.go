package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
)

const countStep = 5

// buildMenuKeyboard builds the main menu keyboard.
func buildMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Play", actionPlay),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Options", actionOptions),
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", actionStats),
		),
	)
}

// buildCountKeyboard offers game lengths from the minimum to the maximum in steps of five.
func buildCountKeyboard(current int) tgbotapi.InlineKeyboardMarkup {
	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)
	for n := entities.MinQuestions; n <= entities.MaxQuestions; n += countStep {
		label := strconv.Itoa(n)
		if n == current {
			label = "• " + label + " •"
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildCountCallback(n)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Menu", actionMenu),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildAnswerKeyboard puts every answer on its own row.
func buildAnswerKeyboard(version uint64, answers []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(answers))
	for i, a := range answers {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(a, buildAnswerCallback(version, i)),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// buildRevealKeyboard is shown under an answered question.
func buildRevealKeyboard(last bool) tgbotapi.InlineKeyboardMarkup {
	label := "Next question ▶️"
	if last {
		label = "🏁 See results"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, actionNext),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Menu", actionMenu),
		),
	)
}

// buildFinishedKeyboard is shown under the final score.
func buildFinishedKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", actionRestart),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", actionStats),
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Menu", actionMenu),
		),
	)
}

// removeKeyboard edits a message so that it has no buttons.
func removeKeyboard(chatID int64, msgID int) tgbotapi.EditMessageReplyMarkupConfig {
	return tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
}
