package entities

import "time"

// GameState is a state of the game session state machine.
type GameState string

const (
	StateIdle           GameState = "idle"            // nothing loaded, player is in the menu
	StateLoading        GameState = "loading"         // waiting for the question batch
	StateActive         GameState = "active"          // current question is waiting for an answer
	StateAnswerRevealed GameState = "answer_revealed" // answer given, result shown
	StateFinished       GameState = "finished"        // last question answered
)

// Result messages shown after an answer.
const (
	MessageCorrect = "Correct Answer"
	MessageWrong   = "Wrong Answer"
)

// AnswerRecord is one answered question of a session.
type AnswerRecord struct {
	QuestionIndex int
	Category      string
	Difficulty    string
	Selected      string
	Correct       string
	IsCorrect     bool
}

// Snapshot is an immutable copy of a game session.
// Slices are owned by the snapshot and never shared with the session.
type Snapshot struct {
	SessionID      string
	Version        uint64
	StartedAt      time.Time
	State          GameState
	Questions      []Question
	CurrentIndex   int
	Score          int
	RequestedCount int
	ImageURL       string

	// Answers is the display order of the current question's answers.
	Answers        []string
	Message        string
	SelectedAnswer string
	CorrectAnswer  string // filled only after the answer is revealed
	History        []AnswerRecord
	LastError      string

	OptionsVisible bool
	MessageVisible bool
}

// Total returns the number of questions in the session.
func (s Snapshot) Total() int {
	return len(s.Questions)
}

// CurrentQuestion returns the question at CurrentIndex.
func (s Snapshot) CurrentQuestion() (Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// IsLastQuestion reports whether the current question is the last one.
func (s Snapshot) IsLastQuestion() bool {
	return s.CurrentIndex >= len(s.Questions)-1
}

// InGame reports whether a question batch is loaded.
func (s Snapshot) InGame() bool {
	switch s.State {
	case StateActive, StateAnswerRevealed, StateFinished:
		return true
	default:
		return false
	}
}
