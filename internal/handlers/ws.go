package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/sweeplab/minesweeper-server/internal/sweep"
)

// Websocket protocol: one text message holds newline-separated commands,
//
//	g            resend the current snapshot
//	r <row> <col> reveal
//	f <row> <col> flag
//	u <row> <col> unflag
//
// Every message is answered with the session snapshot; a failed command is
// answered with an error object instead and the session stays unchanged.
func parseWsMove(line string) (Move, int, int, error) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 2 arguments, got %d", len(parts)-1)
	}
	var move Move
	switch parts[0] {
	case "r":
		move = MoveReveal
	case "f":
		move = MoveFlag
	case "u":
		move = MoveUnflag
	default:
		return 0, 0, 0, fmt.Errorf("unknown command %q", parts[0])
	}
	row, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("row must be an int")
	}
	column, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("column must be an int")
	}
	return move, row, column, nil
}

func (h GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	gameSessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if _, _, err := h.loadSession(r.Context(), gameSessionID); err != nil {
		if errors.Is(err, sweep.ErrSessionNotFound) {
			w.WriteHeader(http.StatusNotFound)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
			h.logger.Error("unable to load game session", "error", err)
		}
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.logger.Warn("abnormal ws break", "error", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		dto, cmdErr := h.executeWsMessage(r, gameSessionID, string(message))
		if cmdErr != nil {
			if werr := c.WriteJSON(wrapError(cmdErr)); werr != nil {
				h.logger.Error("unable to write error json", "error", werr)
				return
			}
			continue
		}
		if err := c.WriteJSON(dto); err != nil {
			h.logger.Error("unable to write json", "error", err)
			return
		}
	}
}

// executeWsMessage applies one message worth of commands under the session
// lock and returns the resulting snapshot.
func (h GameHandler) executeWsMessage(
	r *http.Request, gameSessionID int64, message string,
) (*SessionDTO, error) {
	unlock := h.locks.lock(gameSessionID)
	defer unlock()

	session, game, err := h.loadSession(r.Context(), gameSessionID)
	if err != nil {
		return nil, err
	}

	mutated := false
	for _, line := range strings.Split(strings.TrimSpace(message), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "g" {
			continue
		}
		move, row, column, err := parseWsMove(line)
		if err != nil {
			return nil, err
		}
		if err := applyMove(game, move, row, column); err != nil {
			return nil, err
		}
		mutated = true
	}

	if mutated {
		session, err = h.persistGame(r.Context(), session, game)
		if err != nil {
			return nil, err
		}
	}

	return NewSessionDTO(
		session.GameSessionID, session.PlayerName, game.Snapshot(),
	), nil
}
