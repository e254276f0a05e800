package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/sweeplab/minesweeper-server/internal/config"
	"github.com/sweeplab/minesweeper-server/internal/repository"
	"github.com/sweeplab/minesweeper-server/internal/sweep"
)

type GameHandler struct {
	logger *slog.Logger
	repo   Repository
	ws     *config.WebSocket
	locks  *sessionLocks
}

func NewGameHandler(
	logger *slog.Logger, repo Repository, ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		repo:   repo,
		ws:     ws,
		locks:  newSessionLocks(),
	}
}

func playerNamePtr(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}

func (h GameHandler) createSession(
	ctx context.Context, game *sweep.Game,
) (*repository.GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}
	return h.repo.CreateSession(ctx, repository.CreateSessionParams{
		PlayerName: playerNamePtr(game.Config.PlayerName),
		Rows:       game.Config.Rows,
		Columns:    game.Config.Columns,
		MineCount:  game.Config.MineCount,
		Status:     game.Status.String(),
		StartedAt:  game.StartedAt,
		State:      state,
	})
}

func (h GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	game, err := sweep.NewGame(dto.Config(), newRand())
	if err != nil {
		w.WriteHeader(statusFromError(err))
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	session, err := h.createSession(r.Context(), game)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewSessionDTO(
		session.GameSessionID, session.PlayerName, game.Snapshot(),
	))
}

// loadSession fetches a session and decodes its engine state. A missing row
// surfaces as sweep.ErrSessionNotFound.
func (h GameHandler) loadSession(
	ctx context.Context, gameSessionID int64,
) (*repository.GameSession, *sweep.Game, error) {
	session, err := h.repo.GetSession(ctx, gameSessionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, sweep.ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	game, err := sweep.DecodeGame(session.State)
	if err != nil {
		return nil, nil, err
	}
	return session, game, nil
}

func (h GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	gameSessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, game, err := h.loadSession(r.Context(), gameSessionID)
	if errors.Is(err, sweep.ErrSessionNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to load game session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewSessionDTO(
		session.GameSessionID, session.PlayerName, game.Snapshot(),
	))
}

// applyMove runs one engine operation against a loaded game.
func applyMove(game *sweep.Game, move Move, row, column int) error {
	switch move {
	case MoveReveal:
		_, err := game.Reveal(row, column)
		return err
	case MoveFlag:
		return game.Flag(row, column)
	case MoveUnflag:
		return game.Unflag(row, column)
	}
	return errors.New("unknown move")
}

// persistGame writes the mutated state back and records the score when a
// named player has just won. Score insertion is idempotent per session.
func (h GameHandler) persistGame(
	ctx context.Context, session *repository.GameSession, game *sweep.Game,
) (*repository.GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}
	updated, err := h.repo.UpdateSession(ctx, repository.UpdateSessionParams{
		GameSessionID: session.GameSessionID,
		Status:        game.Status.String(),
		EndedAt:       game.EndedAt,
		State:         state,
	})
	if err != nil {
		return nil, err
	}

	if entry, err := game.ScoreEntry(); err == nil {
		_, err := h.repo.InsertScore(ctx, repository.InsertScoreParams{
			GameSessionID:   session.GameSessionID,
			PlayerName:      entry.PlayerName,
			Difficulty:      entry.Difficulty,
			DurationSeconds: entry.Duration,
		})
		if err != nil && !errors.Is(err, repository.ErrScoreExists) {
			return nil, err
		}
	}

	return updated, nil
}

func (h GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	gameSessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	move, err := ParseMove(dto.Action)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	unlock := h.locks.lock(gameSessionID)
	defer unlock()

	session, game, err := h.loadSession(r.Context(), gameSessionID)
	if errors.Is(err, sweep.ErrSessionNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to load game session", "error", err)
		return
	}

	if err := applyMove(game, move, dto.Row, dto.Column); err != nil {
		w.WriteHeader(statusFromError(err))
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	session, err = h.persistGame(r.Context(), session, game)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to update game session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewSessionDTO(
		session.GameSessionID, session.PlayerName, game.Snapshot(),
	))
}

// Restart creates a brand-new session with the old session's configuration
// and a freshly generated layout. The old session is left as it was.
func (h GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	gameSessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	_, game, err := h.loadSession(r.Context(), gameSessionID)
	if errors.Is(err, sweep.ErrSessionNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to load game session", "error", err)
		return
	}

	fresh, err := game.Restart(newRand())
	if err != nil {
		w.WriteHeader(statusFromError(err))
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	session, err := h.createSession(r.Context(), fresh)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create restarted session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewSessionDTO(
		session.GameSessionID, session.PlayerName, fresh.Snapshot(),
	))
}
