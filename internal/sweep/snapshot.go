package sweep

import "time"

// CellView is a cell as the player is allowed to see it.
type CellView struct {
	Row      int
	Column   int
	Mine     bool
	Revealed bool
	Flagged  bool
	Adjacent int
}

// Snapshot is the externally visible projection of a session.
type Snapshot struct {
	Status         Status
	Rows           int
	Columns        int
	MineCount      int
	StartedAt      time.Time
	EndedAt        *time.Time
	Duration       int
	RevealedCount  int
	FlaggedCount   int
	RemainingMines int
	GameOver       bool
	Victory        bool
	Cells          [][]CellView
}

// Snapshot applies the visibility rule: a cell's mine identity and adjacency
// are exposed only once the cell is revealed or the session is over. Until
// then a hidden mine projects as an ordinary blank cell, so responses leak
// nothing about the layout. Flags are always reported truthfully.
func (g *Game) Snapshot() Snapshot {
	terminal := g.Status.Terminal()

	cells := make([][]CellView, g.Grid.Rows)
	for row := range cells {
		cells[row] = make([]CellView, g.Grid.Columns)
		for column := range cells[row] {
			cell := g.Grid.At(row, column)
			view := CellView{
				Row:      row,
				Column:   column,
				Revealed: cell.Revealed,
				Flagged:  cell.Flagged,
			}
			if cell.Revealed || terminal {
				view.Mine = cell.Mine
				view.Adjacent = cell.Adjacent
			}
			cells[row][column] = view
		}
	}

	return Snapshot{
		Status:         g.Status,
		Rows:           g.Grid.Rows,
		Columns:        g.Grid.Columns,
		MineCount:      g.Grid.MineCount,
		StartedAt:      g.StartedAt,
		EndedAt:        g.EndedAt,
		Duration:       g.Duration,
		RevealedCount:  g.Grid.RevealedCount,
		FlaggedCount:   g.Grid.FlaggedCount,
		RemainingMines: g.RemainingMines(),
		GameOver:       terminal,
		Victory:        g.Status == StatusWon,
		Cells:          cells,
	}
}
