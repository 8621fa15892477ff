package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-bot/internal/infra/gateway"
)

var (
	ErrEmptyResultSet = errors.New("trivia source returned no questions")
	ErrTriviaResponse = errors.New("trivia source rejected the request")
)

// AnswerOrder controls when the display order of answers is shuffled.
type AnswerOrder string

const (
	// AnswerOrderPerQuestion shuffles once when a question becomes current.
	AnswerOrderPerQuestion AnswerOrder = "per_question"
	// AnswerOrderPerAccess reshuffles on every Snapshot call.
	AnswerOrderPerAccess AnswerOrder = "per_access"
)

// GameOptions configures a Game.
type GameOptions struct {
	RequestedCount     int
	AnswerOrder        AnswerOrder
	StrictResponseCode bool // treat a non-zero trivia response_code as a failed load
}

// Game orchestrates one trivia session: it loads questions, scores answers and
// attaches a photo to each question. Verbs are serialized on an internal mutex;
// network calls are made without holding it.
type Game struct {
	fetcher  Fetcher
	shuffler Shuffler
	opts     GameOptions
	logger   *zap.Logger

	newID func() string
	pick  func(n int) int

	mu sync.Mutex
	s  session

	obsMu     sync.Mutex
	observers map[int]func(entities.Snapshot)
	nextObsID int

	images sync.WaitGroup
}

// NewGame creates an idle game.
func NewGame(fetcher Fetcher, shuffler Shuffler, opts GameOptions, logger *zap.Logger) *Game {
	if opts.RequestedCount < entities.MinQuestions || opts.RequestedCount > entities.MaxQuestions {
		opts.RequestedCount = 10
	}
	if opts.AnswerOrder != AnswerOrderPerAccess {
		opts.AnswerOrder = AnswerOrderPerQuestion
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Game{
		fetcher:   fetcher,
		shuffler:  shuffler,
		opts:      opts,
		logger:    logger,
		newID:     uuid.NewString,
		pick:      rand.Intn,
		s:         newIdleSession(opts.RequestedCount),
		observers: make(map[int]func(entities.Snapshot)),
	}
}

// Start loads a new batch of amount questions, replacing any current session.
// It returns once the batch is loaded (state Active) or the load failed (state Idle).
func (g *Game) Start(ctx context.Context, amount int) error {
	sessionID := g.newID()
	if _, err := g.dispatch(startGame{sessionID: sessionID, startedAt: time.Now()}); err != nil {
		return err
	}

	g.logger.Debug("loading questions",
		zap.String("session_id", sessionID),
		zap.Int("amount", amount),
	)

	payload, err := g.fetcher.Fetch(ctx, gateway.TriviaRequest{Amount: amount})
	questions, err := g.questionsFrom(payload, err)
	if err != nil {
		g.logger.Warn("failed to load questions",
			zap.String("session_id", sessionID),
			zap.Int("amount", amount),
			zap.Error(err),
		)
		if _, derr := g.dispatch(gameLoadFailed{sessionID: sessionID, err: err}); derr != nil {
			return derr
		}
		return err
	}

	snap, err := g.dispatch(gameLoaded{sessionID: sessionID, questions: questions})
	if err != nil {
		return err
	}

	g.logger.Info("game started",
		zap.String("session_id", sessionID),
		zap.Int("questions", snap.Total()),
	)

	g.loadImage(ctx, snap)
	return nil
}

// Restart is Start under the name used by the end-of-game screen.
func (g *Game) Restart(ctx context.Context, amount int) error {
	return g.Start(ctx, amount)
}

// SelectAnswer scores answer against the current question and reveals the result.
// It returns "Correct Answer" or "Wrong Answer".
func (g *Game) SelectAnswer(answer string) (string, error) {
	snap, err := g.dispatch(answerSelected{answer: answer})
	if err != nil {
		return "", err
	}
	return snap.Message, nil
}

// Advance moves to the next question, or finishes the game after the last one.
func (g *Game) Advance(ctx context.Context) error {
	snap, err := g.dispatch(advanced{})
	if err != nil {
		return err
	}

	if snap.State == entities.StateFinished {
		g.logger.Info("game finished",
			zap.String("session_id", snap.SessionID),
			zap.Int("score", snap.Score),
			zap.Int("total", snap.Total()),
		)
		return nil
	}

	g.loadImage(ctx, snap)
	return nil
}

// BackToMenu discards the current session and returns to Idle.
func (g *Game) BackToMenu() error {
	_, err := g.dispatch(backToMenu{})
	return err
}

// SetRequestedCount changes the number of questions loaded by the next start.
// It is only allowed in Idle.
func (g *Game) SetRequestedCount(n int) error {
	_, err := g.dispatch(requestedCountSet{count: n})
	return err
}

// ShowOptions toggles the options panel. Showing it is only allowed in Idle.
func (g *Game) ShowOptions(visible bool) error {
	_, err := g.dispatch(optionsShown{visible: visible})
	return err
}

// ShowMessage toggles the result message of the last answer.
func (g *Game) ShowMessage(visible bool) error {
	_, err := g.dispatch(messageShown{visible: visible})
	return err
}

// Snapshot returns a copy of the current session.
func (g *Game) Snapshot() entities.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn is called outside the game lock and may call Snapshot; snapshots can
// arrive out of order, compare Version to discard older ones.
func (g *Game) Subscribe(fn func(entities.Snapshot)) (unsubscribe func()) {
	g.obsMu.Lock()
	id := g.nextObsID
	g.nextObsID++
	g.observers[id] = fn
	g.obsMu.Unlock()

	return func() {
		g.obsMu.Lock()
		delete(g.observers, id)
		g.obsMu.Unlock()
	}
}

// Wait blocks until all in-flight image fetches have completed.
func (g *Game) Wait() {
	g.images.Wait()
}

func (g *Game) dispatch(a action) (entities.Snapshot, error) {
	g.mu.Lock()
	next, err := reduce(g.s, a)
	if err != nil {
		g.mu.Unlock()
		return entities.Snapshot{}, err
	}

	if g.opts.AnswerOrder == AnswerOrderPerQuestion && next.answers == nil && hasCurrentQuestion(next) {
		q := next.questions[next.currentIndex]
		next.answers = g.shuffler.Shuffle(q.CorrectAnswerDecoded(), q.IncorrectAnswersDecoded())
	}

	next.version = g.s.version + 1
	g.s = next
	snap := g.snapshotLocked()
	g.mu.Unlock()

	g.logger.Debug("game state changed",
		zap.String("action", a.name()),
		zap.String("session_id", snap.SessionID),
		zap.String("state", string(snap.State)),
		zap.Uint64("version", snap.Version),
	)
	g.notify(snap)

	return snap, nil
}

func (g *Game) notify(snap entities.Snapshot) {
	g.obsMu.Lock()
	observers := make([]func(entities.Snapshot), 0, len(g.observers))
	for _, fn := range g.observers {
		observers = append(observers, fn)
	}
	g.obsMu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

// questionsFrom turns a trivia fetch outcome into the question batch.
func (g *Game) questionsFrom(payload gateway.Payload, err error) ([]entities.Question, error) {
	if err != nil {
		return nil, err
	}

	switch p := payload.(type) {
	case gateway.TriviaPayload:
		if g.opts.StrictResponseCode && p.ResponseCode != entities.ResponseSuccess {
			return nil, fmt.Errorf("%w: %s", ErrTriviaResponse, p.ResponseCode)
		}
		if len(p.Results) == 0 {
			return nil, ErrEmptyResultSet
		}
		return p.Results, nil
	default:
		return nil, fmt.Errorf("unexpected trivia payload %T", payload)
	}
}

// loadImage fetches a photo for the current question of snap in the background.
// The result is applied only if the session and question are still current.
func (g *Game) loadImage(ctx context.Context, snap entities.Snapshot) {
	q, ok := snap.CurrentQuestion()
	if !ok {
		return
	}
	sessionID, index := snap.SessionID, snap.CurrentIndex
	query := q.CategoryDecoded()
	ctx = context.WithoutCancel(ctx)

	g.images.Add(1)
	go func() {
		defer g.images.Done()

		payload, err := g.fetcher.Fetch(ctx, gateway.ImageRequest{Query: query})
		if err != nil {
			g.logger.Warn("failed to load image",
				zap.String("session_id", sessionID),
				zap.Int("index", index),
				zap.String("query", query),
				zap.Error(err),
			)
			return
		}

		p, ok := payload.(gateway.ImagePayload)
		if !ok {
			g.logger.Warn("unexpected image payload", zap.String("type", fmt.Sprintf("%T", payload)))
			return
		}

		urls := p.URLs(entities.ImageSizeRegular)
		if len(urls) == 0 {
			g.logger.Debug("no images for query", zap.String("query", query))
			return
		}

		url := urls[g.pick(len(urls))]
		if _, err := g.dispatch(imageLoaded{sessionID: sessionID, index: index, url: url}); err != nil {
			if errors.Is(err, errStale) {
				g.logger.Debug("dropped stale image",
					zap.String("session_id", sessionID),
					zap.Int("index", index),
				)
				return
			}
			g.logger.Warn("failed to apply image", zap.Error(err))
		}
	}()
}

func (g *Game) snapshotLocked() entities.Snapshot {
	s := g.s
	snap := entities.Snapshot{
		SessionID:      s.id,
		Version:        s.version,
		StartedAt:      s.startedAt,
		State:          s.state,
		Questions:      copyQuestions(s.questions),
		CurrentIndex:   s.currentIndex,
		Score:          s.score,
		RequestedCount: s.requestedCount,
		ImageURL:       s.imageURL,
		Message:        s.message,
		SelectedAnswer: s.selected,
		History:        append([]entities.AnswerRecord(nil), s.history...),
		LastError:      s.lastErr,
		OptionsVisible: s.optionsVisible,
		MessageVisible: s.messageVisible,
	}

	if hasCurrentQuestion(s) {
		q := s.questions[s.currentIndex]
		if g.opts.AnswerOrder == AnswerOrderPerAccess {
			snap.Answers = g.shuffler.Shuffle(q.CorrectAnswerDecoded(), q.IncorrectAnswersDecoded())
		} else {
			snap.Answers = append([]string(nil), s.answers...)
		}
		if s.state != entities.StateActive {
			snap.CorrectAnswer = q.CorrectAnswerDecoded()
		}
	}

	return snap
}

func copyQuestions(qs []entities.Question) []entities.Question {
	if qs == nil {
		return nil
	}
	out := make([]entities.Question, len(qs))
	for i, q := range qs {
		q.IncorrectAnswers = append([]string(nil), q.IncorrectAnswers...)
		out[i] = q
	}
	return out
}

func hasCurrentQuestion(s session) bool {
	switch s.state {
	case entities.StateActive, entities.StateAnswerRevealed, entities.StateFinished:
		return s.currentIndex >= 0 && s.currentIndex < len(s.questions)
	default:
		return false
	}
}
