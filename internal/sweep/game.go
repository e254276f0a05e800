package sweep

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
	"time"
)

type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
	// StatusPaused only ever arrives from persistence; no engine transition
	// produces it.
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusPaused:
		return "paused"
	}
	return "unknown"
}

func ParseStatus(s string) (Status, bool) {
	switch s {
	case "in_progress":
		return StatusInProgress, true
	case "won":
		return StatusWon, true
	case "lost":
		return StatusLost, true
	case "paused":
		return StatusPaused, true
	}
	return StatusInProgress, false
}

// Terminal reports whether no further mutation is permitted.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Game is one play-through: a grid plus status, timing and counters. It is
// not safe for concurrent use; the hosting service must serialize mutations
// per game (cascade reveal and counter updates are multi-step).
type Game struct {
	Config    Config
	Grid      *Grid
	Status    Status
	StartedAt time.Time
	EndedAt   *time.Time
	// Duration is whole seconds from start to the terminal transition,
	// clamped to at least 1 so sub-second wins never score as zero.
	Duration int

	now func() time.Time
}

// NewGame generates a fresh grid from cfg and starts a session on it. The
// random source is injected so layouts are reproducible under test.
func NewGame(cfg Config, r *rand.Rand) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := NewGrid(cfg.Rows, cfg.Columns, cfg.MineCount, r)
	if err != nil {
		return nil, err
	}
	return &Game{
		Config:    cfg,
		Grid:      grid,
		Status:    StatusInProgress,
		StartedAt: time.Now().UTC(),
	}, nil
}

// Restart builds a brand-new session with this game's configuration and a
// freshly generated layout. The receiver is left untouched.
func (g *Game) Restart(r *rand.Rand) (*Game, error) {
	return NewGame(g.Config, r)
}

func (g *Game) clock() time.Time {
	if g.now != nil {
		return g.now().UTC()
	}
	return time.Now().UTC()
}

func (g *Game) checkTarget(row, column int) (*Cell, error) {
	if g.Status != StatusInProgress {
		return nil, ErrInvalidState
	}
	if !g.Grid.InBounds(row, column) {
		return nil, ErrOutOfBounds
	}
	return g.Grid.At(row, column), nil
}

// Reveal opens a cell, cascading through empty regions, and applies any
// resulting win or loss transition atomically with the reveal itself.
func (g *Game) Reveal(row, column int) (RevealOutcome, error) {
	cell, err := g.checkTarget(row, column)
	if err != nil {
		return RevealOutcome{}, err
	}
	if cell.Revealed {
		return RevealOutcome{}, ErrAlreadyRevealed
	}
	if cell.Flagged {
		return RevealOutcome{}, ErrCellFlagged
	}

	outcome := g.Grid.Reveal(row, column)
	if outcome.HitMine {
		g.finish(StatusLost)
	} else if g.Grid.RevealedCount == g.Grid.SafeCellCount() {
		g.finish(StatusWon)
	}
	return outcome, nil
}

func (g *Game) Flag(row, column int) error {
	_, err := g.checkTarget(row, column)
	if err != nil {
		return err
	}
	return g.Grid.Flag(row, column)
}

func (g *Game) Unflag(row, column int) error {
	_, err := g.checkTarget(row, column)
	if err != nil {
		return err
	}
	return g.Grid.Unflag(row, column)
}

func (g *Game) finish(status Status) {
	ended := g.clock()
	g.Status = status
	g.EndedAt = &ended
	secs := int(ended.Sub(g.StartedAt) / time.Second)
	if secs < 1 {
		// Clock resolution can make start and end coincide or invert.
		secs = 1
	}
	g.Duration = secs
}

// RemainingMines is the mine counter shown to the player. Over-flagging
// never drives it negative.
func (g *Game) RemainingMines() int {
	return max(0, g.Grid.MineCount-g.Grid.FlaggedCount)
}

// ScoreEntry is the hand-off persisted by the leaderboard collaborator.
type ScoreEntry struct {
	PlayerName string
	Difficulty string
	Duration   int
}

// ScoreEntry converts a won, named, timed session into a leaderboard entry.
func (g *Game) ScoreEntry() (ScoreEntry, error) {
	if g.Status != StatusWon || g.Config.PlayerName == "" || g.Duration < 1 {
		return ScoreEntry{}, ErrScoringIneligible
	}
	return ScoreEntry{
		PlayerName: g.Config.PlayerName,
		Difficulty: g.Config.Difficulty(),
		Duration:   g.Duration,
	}, nil
}

// DecodeGame restores a session from its serialized form.
func DecodeGame(buf []byte) (*Game, error) {
	var game Game
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Bytes serializes the full session state for storage.
func (g *Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
