package entities

import "github.com/aliskhannn/trivia-bot/internal/htmltext"

// Question is one multiple-choice question as returned by the trivia source.
// Text fields hold the raw, HTML-encoded values; decoded forms are computed on demand.
type Question struct {
	Category         string   `json:"category"`          // opaque category label, also used as the image query
	Type             string   `json:"type"`              // "multiple" or "boolean"
	Difficulty       string   `json:"difficulty"`        // "easy", "medium" or "hard"
	Question         string   `json:"question"`          // raw prompt
	CorrectAnswer    string   `json:"correct_answer"`    // raw correct answer
	IncorrectAnswers []string `json:"incorrect_answers"` // raw incorrect answers, duplicates kept
}

// PromptDecoded returns the prompt with character references decoded.
func (q Question) PromptDecoded() string {
	return htmltext.Decode(q.Question)
}

// CorrectAnswerDecoded returns the correct answer with character references decoded.
func (q Question) CorrectAnswerDecoded() string {
	return htmltext.Decode(q.CorrectAnswer)
}

// IncorrectAnswersDecoded returns a decoded copy of the incorrect answers in source order.
func (q Question) IncorrectAnswersDecoded() []string {
	return htmltext.DecodeAll(q.IncorrectAnswers)
}

// CategoryDecoded returns the category label with character references decoded.
func (q Question) CategoryDecoded() string {
	return htmltext.Decode(q.Category)
}

// AnswerCount is the number of display answers for the question.
func (q Question) AnswerCount() int {
	return len(q.IncorrectAnswers) + 1
}
