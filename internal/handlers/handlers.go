package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/sweeplab/minesweeper-server/internal/repository"
	"github.com/sweeplab/minesweeper-server/internal/sweep"
)

// Repository is the slice of repository.Queries the handlers depend on.
type Repository interface {
	CreateSession(ctx context.Context, params repository.CreateSessionParams) (*repository.GameSession, error)
	GetSession(ctx context.Context, gameSessionID int64) (*repository.GameSession, error)
	UpdateSession(ctx context.Context, params repository.UpdateSessionParams) (*repository.GameSession, error)
	InsertScore(ctx context.Context, params repository.InsertScoreParams) (*repository.Score, error)
	ListScores(ctx context.Context, filter repository.ScoreFilter, limit int) ([]repository.Score, error)
}

// newRand builds a fresh uniquely seeded source per call. The engine takes
// an injected source and rand.Rand is not safe for concurrent use, so
// handlers never share one.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// sessionLocks serializes mutation per game session id. The engine is not
// internally reentrant: the load-mutate-persist span must appear atomic even
// when a client retries a move concurrently. Different sessions do not
// contend.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: map[int64]*sync.Mutex{}}
}

func (l *sessionLocks) lock(gameSessionID int64) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[gameSessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[gameSessionID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func sendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	if _, err := sendJSON(w, v); err != nil {
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// statusFromError maps engine validation failures to response codes: bad
// input is 400, a move that conflicts with current cell or session state is
// 409, a missing session is 404.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, sweep.ErrInvalidConfiguration),
		errors.Is(err, sweep.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, sweep.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, sweep.ErrInvalidState),
		errors.Is(err, sweep.ErrAlreadyRevealed),
		errors.Is(err, sweep.ErrCellFlagged),
		errors.Is(err, sweep.ErrCellRevealed),
		errors.Is(err, sweep.ErrAlreadyFlagged),
		errors.Is(err, sweep.ErrNotFlagged):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
