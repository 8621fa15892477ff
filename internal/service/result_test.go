package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/trivia-bot/internal/infra/postgres"
	"github.com/aliskhannn/trivia-bot/internal/repository"
)

// stubTransactor never touches a database: it returns err without running fn.
type stubTransactor struct {
	calls int
	err   error
}

func (t *stubTransactor) WithinTx(_ context.Context, _ func(ctx context.Context, tx postgres.DBTX) error) error {
	t.calls++
	return t.err
}

type fakeResults struct {
	stats     *entities.PlayerStats
	recent    []entities.GameResult
	err       error
	lastLimit int
}

func (f *fakeResults) GetStats(_ context.Context, _ int64) (*entities.PlayerStats, error) {
	return f.stats, f.err
}

func (f *fakeResults) ListRecent(_ context.Context, _ int64, limit int) ([]entities.GameResult, error) {
	f.lastLimit = limit
	return f.recent, f.err
}

func finishedSnapshot() entities.Snapshot {
	return entities.Snapshot{
		SessionID:    "4f1c5c7e-0d5f-4c1e-9a55-6d1f2b7e9a10",
		State:        entities.StateFinished,
		Questions:    makeQuestions(2),
		CurrentIndex: 1,
		Score:        1,
		StartedAt:    time.Now().Add(-time.Minute),
	}
}

func TestResultService_RecordRejectsUnfinishedGame(t *testing.T) {
	tr := &stubTransactor{}
	svc := NewResultService(tr, &fakeResults{})
	user := entities.NewUser(1, 1, "alice")

	snap := finishedSnapshot()
	snap.State = entities.StateAnswerRevealed
	err := svc.Record(context.Background(), user, snap)
	assert.ErrorIs(t, err, ErrGameNotFinished)

	err = svc.Record(context.Background(), user, entities.Snapshot{State: entities.StateFinished})
	assert.ErrorIs(t, err, ErrGameNotFinished)

	assert.Zero(t, tr.calls)
}

func TestResultService_RecordIsIdempotent(t *testing.T) {
	tr := &stubTransactor{err: repository.ErrResultExists}
	svc := NewResultService(tr, &fakeResults{})

	err := svc.Record(context.Background(), entities.NewUser(1, 1, "alice"), finishedSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 1, tr.calls)
}

func TestResultService_RecordWrapsStorageErrors(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewResultService(&stubTransactor{err: boom}, &fakeResults{})

	err := svc.Record(context.Background(), entities.NewUser(1, 1, "alice"), finishedSnapshot())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "4f1c5c7e")
}

func TestResultService_Stats(t *testing.T) {
	want := &entities.PlayerStats{GamesPlayed: 3, BestScore: 9, BestTotal: 10, TotalCorrect: 20, TotalAnswered: 25}
	svc := NewResultService(&stubTransactor{}, &fakeResults{stats: want})

	got, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.InDelta(t, 80.0, got.Accuracy(), 0.001)

	boom := errors.New("boom")
	svc = NewResultService(&stubTransactor{}, &fakeResults{err: boom})
	_, err = svc.Stats(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestResultService_HistoryDefaultsLimit(t *testing.T) {
	results := &fakeResults{recent: []entities.GameResult{{Score: 4, TotalQuestions: 5}}}
	svc := NewResultService(&stubTransactor{}, results)

	got, err := svc.History(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, defaultHistoryLimit, results.lastLimit)

	_, err = svc.History(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, results.lastLimit)
}

type fakeUsers struct {
	saved   []*entities.User
	created bool
	err     error
}

func (f *fakeUsers) Save(_ context.Context, user *entities.User) (bool, error) {
	f.saved = append(f.saved, user)
	return f.created, f.err
}

func TestPlayerService_EnsureUser(t *testing.T) {
	users := &fakeUsers{created: true}
	svc := NewPlayerService(users)

	created, err := svc.EnsureUser(context.Background(), 7, 70, "bob")
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, users.saved, 1)
	assert.Equal(t, int64(7), users.saved[0].ID)
	assert.Equal(t, int64(70), users.saved[0].ChatID)
	assert.Equal(t, "bob", users.saved[0].Username)
	assert.True(t, users.saved[0].IsActive)

	boom := errors.New("boom")
	_, err = NewPlayerService(&fakeUsers{err: boom}).EnsureUser(context.Background(), 7, 70, "bob")
	assert.ErrorIs(t, err, boom)
}
