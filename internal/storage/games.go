package storage

import (
	"sync"

	"github.com/aliskhannn/trivia-bot/internal/service"
)

// Table is the game of one chat together with the answer buttons last shown in it.
type Table struct {
	Game *service.Game

	turn sync.Mutex

	mu           sync.Mutex
	shownVersion uint64
	shown        []string
}

// Do runs fn while holding the chat's turn, so updates of one chat are handled one at a time.
func (t *Table) Do(fn func()) {
	t.turn.Lock()
	defer t.turn.Unlock()
	fn()
}

// Remember stores the answers rendered as buttons for a snapshot version.
func (t *Table) Remember(version uint64, answers []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.shownVersion = version
	t.shown = append([]string(nil), answers...)
}

// Answer resolves a pressed button. It fails when the buttons belong to an
// older message or the index is out of range.
func (t *Table) Answer(version uint64, idx int) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if version != t.shownVersion || idx < 0 || idx >= len(t.shown) {
		return "", false
	}
	return t.shown[idx], true
}

// GameStorage provides in-memory storage of games by chat ID.
type GameStorage struct {
	mu      sync.RWMutex
	tables  map[int64]*Table
	newGame func(chatID int64) *service.Game
}

// NewGameStorage creates a GameStorage that builds missing games with newGame.
func NewGameStorage(newGame func(chatID int64) *service.Game) *GameStorage {
	return &GameStorage{
		tables:  make(map[int64]*Table),
		newGame: newGame,
	}
}

// Get returns the table of a chat if one exists.
func (s *GameStorage) Get(chatID int64) (*Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[chatID]
	return t, ok
}

// GetOrCreate returns the table of a chat, creating it on first use.
// created is true only for the call that created the table.
func (s *GameStorage) GetOrCreate(chatID int64) (t *Table, created bool) {
	if t, ok := s.Get(chatID); ok {
		return t, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tables[chatID]; ok {
		return t, false
	}

	t = &Table{Game: s.newGame(chatID)}
	s.tables[chatID] = t
	return t, true
}

// Delete removes the table of a chat.
func (s *GameStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, chatID)
}

// Len returns the number of chats with a game.
func (s *GameStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}

// Wait blocks until background work of every stored game is done.
func (s *GameStorage) Wait() {
	s.mu.RLock()
	tables := make([]*Table, 0, len(s.tables))
	for _, t := range s.tables {
		tables = append(tables, t)
	}
	s.mu.RUnlock()

	for _, t := range tables {
		t.Game.Wait()
	}
}
