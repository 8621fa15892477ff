package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
)

var (
	ErrInvalidTransition = errors.New("action not allowed in current state")
	ErrCountOutOfRange   = fmt.Errorf("question count must be between %d and %d", entities.MinQuestions, entities.MaxQuestions)
	ErrSuperseded        = errors.New("session was replaced by a newer one")

	errStale = errors.New("stale result")
)

// session is the mutable state behind a Game. It is only changed by reduce.
type session struct {
	id             string
	version        uint64
	startedAt      time.Time
	state          entities.GameState
	questions      []entities.Question
	currentIndex   int
	score          int
	requestedCount int
	imageURL       string
	answers        []string // memoized display order, nil until computed
	message        string
	selected       string
	history        []entities.AnswerRecord
	lastErr        string
	optionsVisible bool
	messageVisible bool
}

func newIdleSession(requestedCount int) session {
	return session{
		state:          entities.StateIdle,
		requestedCount: requestedCount,
	}
}

// action is a state change request. Only the types below implement it.
type action interface {
	name() string
}

type startGame struct {
	sessionID string
	startedAt time.Time
}

type gameLoaded struct {
	sessionID string
	questions []entities.Question
}

type gameLoadFailed struct {
	sessionID string
	err       error
}

type answerSelected struct {
	answer string
}

type advanced struct{}

type imageLoaded struct {
	sessionID string
	index     int
	url       string
}

type backToMenu struct{}

type requestedCountSet struct {
	count int
}

type optionsShown struct {
	visible bool
}

type messageShown struct {
	visible bool
}

func (startGame) name() string         { return "start_game" }
func (gameLoaded) name() string        { return "game_loaded" }
func (gameLoadFailed) name() string    { return "game_load_failed" }
func (answerSelected) name() string    { return "answer_selected" }
func (advanced) name() string          { return "advanced" }
func (imageLoaded) name() string       { return "image_loaded" }
func (backToMenu) name() string        { return "back_to_menu" }
func (requestedCountSet) name() string { return "requested_count_set" }
func (optionsShown) name() string      { return "options_shown" }
func (messageShown) name() string      { return "message_shown" }

// reduce returns the session that results from applying a to s.
// On error s is left as it was and must be kept by the caller.
func reduce(s session, a action) (session, error) {
	switch a := a.(type) {
	case startGame:
		next := newIdleSession(s.requestedCount)
		next.id = a.sessionID
		next.startedAt = a.startedAt
		next.state = entities.StateLoading
		return next, nil

	case gameLoaded:
		if s.state != entities.StateLoading || s.id != a.sessionID {
			return s, ErrSuperseded
		}
		if len(a.questions) == 0 {
			return s, ErrEmptyResultSet
		}
		s.questions = append([]entities.Question(nil), a.questions...)
		s.currentIndex = 0
		s.score = 0
		s.imageURL = ""
		s.answers = nil
		s.history = nil
		s.lastErr = ""
		s.state = entities.StateActive
		return s, nil

	case gameLoadFailed:
		if s.state != entities.StateLoading || s.id != a.sessionID {
			return s, ErrSuperseded
		}
		next := newIdleSession(s.requestedCount)
		if a.err != nil {
			next.lastErr = a.err.Error()
		}
		return next, nil

	case answerSelected:
		if s.state != entities.StateActive {
			return s, invalidTransition(s, a)
		}
		q := s.questions[s.currentIndex]
		correct := q.CorrectAnswerDecoded()
		isCorrect := a.answer == correct

		if isCorrect {
			s.score++
			s.message = entities.MessageCorrect
		} else {
			s.message = entities.MessageWrong
		}
		s.selected = a.answer
		s.messageVisible = true
		s.history = append(append([]entities.AnswerRecord(nil), s.history...), entities.AnswerRecord{
			QuestionIndex: s.currentIndex,
			Category:      q.CategoryDecoded(),
			Difficulty:    q.Difficulty,
			Selected:      a.answer,
			Correct:       correct,
			IsCorrect:     isCorrect,
		})
		s.state = entities.StateAnswerRevealed
		return s, nil

	case advanced:
		if s.state != entities.StateAnswerRevealed {
			return s, invalidTransition(s, a)
		}
		s.messageVisible = false
		if s.currentIndex >= len(s.questions)-1 {
			s.state = entities.StateFinished
			return s, nil
		}
		s.currentIndex++
		s.imageURL = ""
		s.answers = nil
		s.message = ""
		s.selected = ""
		s.state = entities.StateActive
		return s, nil

	case imageLoaded:
		if s.id != a.sessionID || s.currentIndex != a.index {
			return s, errStale
		}
		if s.state != entities.StateActive && s.state != entities.StateAnswerRevealed {
			return s, errStale
		}
		s.imageURL = a.url
		return s, nil

	case backToMenu:
		switch s.state {
		case entities.StateActive, entities.StateAnswerRevealed, entities.StateFinished:
			return newIdleSession(s.requestedCount), nil
		default:
			return s, invalidTransition(s, a)
		}

	case requestedCountSet:
		if s.state != entities.StateIdle {
			return s, invalidTransition(s, a)
		}
		if a.count < entities.MinQuestions || a.count > entities.MaxQuestions {
			return s, ErrCountOutOfRange
		}
		s.requestedCount = a.count
		return s, nil

	case optionsShown:
		if a.visible && s.state != entities.StateIdle {
			return s, invalidTransition(s, a)
		}
		s.optionsVisible = a.visible
		return s, nil

	case messageShown:
		if a.visible && s.message == "" {
			return s, invalidTransition(s, a)
		}
		s.messageVisible = a.visible
		return s, nil

	default:
		return s, fmt.Errorf("unsupported action %T", a)
	}
}

func invalidTransition(s session, a action) error {
	return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, a.name(), s.state)
}
