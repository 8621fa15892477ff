// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgWelcome = "🧠 Welcome to Trivia!\n\n" +
		"Every game is a batch of questions from Open Trivia DB, each with a photo of its category.\n" +
		"Press Play to start or Options to change how many questions a game has."
	msgHelp = "Commands:\n\n" +
		"/play: start a new game\n" +
		"/options: choose how many questions a game has\n" +
		"/menu: leave the current game\n" +
		"/stats: your results\n" +
		"/help: this message"
	msgMenu                = "Main menu. Current game length: %d questions."
	msgLoading             = "⏳ Loading %d questions..."
	msgChooseCount         = "How many questions should a game have? Current: %d."
	msgCountSet            = "✅ Games now have %d questions."
	msgFinishGameFirst     = "Finish or leave the current game before changing options."
	msgNoGame              = "There is no game in progress. Press Play to start one."
	msgStaleButton         = "This question is no longer active."
	msgAlreadyAnswered     = "You have already answered this question."
	msgUseButtons          = "Use the buttons or /help to see the commands."
	msgUnknownCommand      = "Unknown command.\n\n" + msgHelp
	msgStatsUnavailable    = "Statistics are not available right now."
	msgNoGamesPlayed       = "You have not finished any games yet. Press Play to start one."
	msgNoQuestions         = "The trivia server has no questions right now. Try again later."
	msgTriviaRejected      = "The trivia server rejected the request. Try again in a few seconds."
	msgSourceUnavailable   = "Could not reach the trivia server. Try again later."
	msgInvalidCount        = "That number of questions is not supported."
	msgInternalError       = "Something went wrong. Please try again later."
	msgLoadInterruptedNote = "The game was restarted while loading."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newEdit creates a message edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}
