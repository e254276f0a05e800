package sweep

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridFromRows builds a grid from a picture of the layout, '*' marking
// mines, and derives adjacency the same way the generator does.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()

	g := &Grid{
		Rows:    len(rows),
		Columns: len(rows[0]),
	}
	g.Cells = make([]Cell, g.Rows*g.Columns)
	for r, line := range rows {
		require.Len(t, line, g.Columns, "ragged layout")
		for c, ch := range line {
			i := g.index(r, c)
			g.Cells[i].Row = r
			g.Cells[i].Column = c
			if ch == '*' {
				g.Cells[i].Mine = true
				g.MineCount++
			}
		}
	}
	for i := range g.Cells {
		if !g.Cells[i].Mine {
			g.Cells[i].Adjacent = g.countAdjacentMines(
				g.Cells[i].Row, g.Cells[i].Column,
			)
		}
	}
	return g
}

func TestNewGridMineCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                      string
		rows, columns, mineCount  int
	}{
		{"beginner", 9, 9, 10},
		{"intermediate", 16, 16, 40},
		{"expert", 16, 30, 99},
		{"minimal", 5, 5, 1},
		{"one safe cell left", 5, 5, 24},
		{"largest", 50, 50, 600},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			g, err := NewGrid(test.rows, test.columns, test.mineCount, r)
			require.NoError(t, err)

			mines := 0
			for _, cell := range g.Cells {
				if cell.Mine {
					mines++
				}
			}
			assert.Equal(t, test.mineCount, mines)
			assert.Equal(t, 0, g.RevealedCount)
			assert.Equal(t, 0, g.FlaggedCount)
		})
	}
}

func TestNewGridRejectsBadMineCounts(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for _, mineCount := range []int{0, -1, 25, 26} {
		_, err := NewGrid(5, 5, mineCount, r)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "mineCount=%d", mineCount)
	}
}

func TestNewGridAdjacency(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(7, 11))
	g, err := NewGrid(12, 17, 34, r)
	require.NoError(t, err)

	for _, cell := range g.Cells {
		if cell.Mine {
			assert.Equal(t, 0, cell.Adjacent,
				"mine at (%d,%d) must carry a zero count", cell.Row, cell.Column)
			continue
		}

		want := 0
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				rr, cc := cell.Row+dr, cell.Column+dc
				if g.InBounds(rr, cc) && g.At(rr, cc).Mine {
					want++
				}
			}
		}
		assert.Equal(t, want, cell.Adjacent, "cell (%d,%d)", cell.Row, cell.Column)
		assert.LessOrEqual(t, cell.Adjacent, 8)
	}
}

func TestGridFlagUnflag(t *testing.T) {
	t.Parallel()

	g := gridFromRows(t,
		"*....",
		".....",
		".....",
	)

	require.NoError(t, g.Flag(1, 1))
	assert.Equal(t, 1, g.FlaggedCount)
	assert.True(t, g.At(1, 1).Flagged)
	assert.False(t, g.At(1, 1).Revealed)

	assert.ErrorIs(t, g.Flag(1, 1), ErrAlreadyFlagged)
	assert.Equal(t, 1, g.FlaggedCount)

	require.NoError(t, g.Unflag(1, 1))
	assert.Equal(t, 0, g.FlaggedCount)
	assert.False(t, g.At(1, 1).Flagged)
	assert.False(t, g.At(1, 1).Revealed)

	assert.ErrorIs(t, g.Unflag(1, 1), ErrNotFlagged)

	g.Reveal(2, 4)
	assert.ErrorIs(t, g.Flag(2, 4), ErrCellRevealed)
}
