package sweep

import (
	"fmt"
	"math/rand/v2"
)

type Position struct {
	Row    int
	Column int
}

// Cell is one grid square. Mine and Adjacent are fixed at generation time;
// Revealed only ever goes false to true; Flagged toggles while the cell is
// hidden and is forced false on reveal. A cell is never both revealed and
// flagged.
type Cell struct {
	Row      int
	Column   int
	Mine     bool
	Revealed bool
	Flagged  bool
	Adjacent int
}

// Grid owns the cell matrix and the mine layout. RevealedCount and
// FlaggedCount are maintained incrementally by every mutation so status
// queries never rescan the board. All fields are exported for gob.
type Grid struct {
	Rows          int
	Columns       int
	MineCount     int
	Cells         []Cell
	RevealedCount int
	FlaggedCount  int
}

// NewGrid plants mineCount mines uniformly at random via rejection sampling
// and derives every safe cell's adjacent mine count. The layout does not
// depend on any future reveal target: there is no first-move safety.
func NewGrid(rows, columns, mineCount int, r *rand.Rand) (*Grid, error) {
	if rows < 1 || columns < 1 {
		return nil, fmt.Errorf(
			"%w: grid must be at least 1x1, got %dx%d",
			ErrInvalidConfiguration, rows, columns,
		)
	}
	if mineCount < 1 || mineCount >= rows*columns {
		return nil, fmt.Errorf(
			"%w: mine count must be in [1, %d), got %d",
			ErrInvalidConfiguration, rows*columns, mineCount,
		)
	}

	g := &Grid{
		Rows:      rows,
		Columns:   columns,
		MineCount: mineCount,
		Cells:     make([]Cell, rows*columns),
	}
	for i := range g.Cells {
		g.Cells[i].Row = i / columns
		g.Cells[i].Column = i % columns
	}

	for planted := 0; planted < mineCount; {
		i := r.IntN(rows * columns)
		if g.Cells[i].Mine {
			continue
		}
		g.Cells[i].Mine = true
		planted++
	}

	// Mines keep a zero count; the value is never shown for them anyway.
	for i := range g.Cells {
		if g.Cells[i].Mine {
			continue
		}
		g.Cells[i].Adjacent = g.countAdjacentMines(
			g.Cells[i].Row, g.Cells[i].Column,
		)
	}

	return g, nil
}

func (g *Grid) index(row, column int) int {
	return row*g.Columns + column
}

func (g *Grid) InBounds(row, column int) bool {
	return row >= 0 && row < g.Rows && column >= 0 && column < g.Columns
}

// At returns the cell at (row, column). The caller must bounds-check first.
func (g *Grid) At(row, column int) *Cell {
	return &g.Cells[g.index(row, column)]
}

func (g *Grid) countAdjacentMines(row, column int) (count int) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, column+dc
			if g.InBounds(r, c) && g.At(r, c).Mine {
				count++
			}
		}
	}
	return count
}

// neighbors appends the grid-bounded 8-neighborhood of (row, column) to buf
// and returns it. Pass a [8]Position-backed slice to avoid allocation.
func (g *Grid) neighbors(row, column int, buf []Position) []Position {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, column+dc
			if g.InBounds(r, c) {
				buf = append(buf, Position{Row: r, Column: c})
			}
		}
	}
	return buf
}

// SafeCellCount is the number of cells that must be revealed to win.
func (g *Grid) SafeCellCount() int {
	return g.Rows*g.Columns - g.MineCount
}

// Flag marks a hidden cell. Revealed cells cannot be flagged and flagging is
// not idempotent; both misuses are distinct errors.
func (g *Grid) Flag(row, column int) error {
	cell := g.At(row, column)
	if cell.Revealed {
		return ErrCellRevealed
	}
	if cell.Flagged {
		return ErrAlreadyFlagged
	}
	cell.Flagged = true
	g.FlaggedCount++
	return nil
}

// Unflag clears a flag set by Flag.
func (g *Grid) Unflag(row, column int) error {
	cell := g.At(row, column)
	if !cell.Flagged {
		return ErrNotFlagged
	}
	cell.Flagged = false
	g.FlaggedCount--
	return nil
}
