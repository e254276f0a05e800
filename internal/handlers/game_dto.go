package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/sweeplab/minesweeper-server/internal/sweep"
)

type CreateGameDTO struct {
	Rows       int    `schema:"rows,required"`
	Columns    int    `schema:"columns,required"`
	MineCount  int    `schema:"mine_count,required"`
	PlayerName string `schema:"player_name"`
}

func ParseCreateGameDTO(src map[string][]string) (CreateGameDTO, error) {
	var dto CreateGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

func (dto CreateGameDTO) Config() sweep.Config {
	return sweep.Config{
		Rows:       dto.Rows,
		Columns:    dto.Columns,
		MineCount:  dto.MineCount,
		PlayerName: dto.PlayerName,
	}
}

type Move int

const (
	MoveReveal Move = iota
	MoveFlag
	MoveUnflag
)

func ParseMove(s string) (Move, error) {
	switch s {
	case "reveal":
		return MoveReveal, nil
	case "flag":
		return MoveFlag, nil
	case "unflag":
		return MoveUnflag, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

type MoveDTO struct {
	Row    int    `schema:"row"`
	Column int    `schema:"column"`
	Action string `schema:"action,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type CellDTO struct {
	Row               int  `json:"row"`
	Column            int  `json:"column"`
	IsMine            bool `json:"is_mine"`
	IsRevealed        bool `json:"is_revealed"`
	IsFlagged         bool `json:"is_flagged"`
	AdjacentMineCount int  `json:"adjacent_mine_count"`
}

type SessionDTO struct {
	GameSessionID  string      `json:"game_session_id"`
	Status         string      `json:"status"`
	Rows           int         `json:"rows"`
	Columns        int         `json:"columns"`
	MineCount      int         `json:"mine_count"`
	PlayerName     *string     `json:"player_name,omitempty"`
	StartedAt      int64       `json:"started_at"`
	EndedAt        *int64      `json:"ended_at,omitempty"`
	Duration       *int        `json:"duration,omitempty"`
	RevealedCount  int         `json:"revealed_count"`
	FlaggedCount   int         `json:"flagged_count"`
	RemainingMines int         `json:"remaining_mines"`
	IsGameOver     bool        `json:"is_game_over"`
	IsVictory      bool        `json:"is_victory"`
	Grid           [][]CellDTO `json:"grid"`
}

// NewSessionDTO shapes the engine's projection for the wire. The snapshot
// has already applied the visibility rule; nothing here consults the real
// layout.
func NewSessionDTO(
	gameSessionID int64, playerName *string, snap sweep.Snapshot,
) *SessionDTO {
	var endedAt *int64
	var duration *int
	if snap.EndedAt != nil {
		e := snap.EndedAt.UnixMilli()
		endedAt = &e
		d := snap.Duration
		duration = &d
	}

	grid := make([][]CellDTO, len(snap.Cells))
	for r, row := range snap.Cells {
		grid[r] = make([]CellDTO, len(row))
		for c, cell := range row {
			grid[r][c] = CellDTO{
				Row:               cell.Row,
				Column:            cell.Column,
				IsMine:            cell.Mine,
				IsRevealed:        cell.Revealed,
				IsFlagged:         cell.Flagged,
				AdjacentMineCount: cell.Adjacent,
			}
		}
	}

	return &SessionDTO{
		GameSessionID:  strconv.FormatInt(gameSessionID, 10),
		Status:         snap.Status.String(),
		Rows:           snap.Rows,
		Columns:        snap.Columns,
		MineCount:      snap.MineCount,
		PlayerName:     playerName,
		StartedAt:      snap.StartedAt.UnixMilli(),
		EndedAt:        endedAt,
		Duration:       duration,
		RevealedCount:  snap.RevealedCount,
		FlaggedCount:   snap.FlaggedCount,
		RemainingMines: snap.RemainingMines,
		IsGameOver:     snap.GameOver,
		IsVictory:      snap.Victory,
		Grid:           grid,
	}
}
