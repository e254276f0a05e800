package sweep

// RevealOutcome reports one reveal action: whether it hit a mine and every
// cell that became visible, cascade included.
type RevealOutcome struct {
	HitMine  bool
	Revealed []Position
}

// Reveal opens the cell at (row, column). The caller must have checked
// bounds and that the target is neither revealed nor flagged.
//
// A mine ends the game immediately with no cascade. A zero-adjacency cell
// starts a breadth-first expansion over its neighborhood: hidden, unflagged,
// safe neighbors are revealed, and those that are themselves zero-adjacency
// keep expanding. Cells with a positive count form the border of the cleared
// region. Flagged cells are never auto-revealed.
//
// The cascade is computed into a pending set first and applied to the grid
// in one pass, so a caller never observes a partially applied reveal.
func (g *Grid) Reveal(row, column int) RevealOutcome {
	target := g.At(row, column)

	if target.Mine {
		target.Revealed = true
		target.Flagged = false
		g.RevealedCount++
		return RevealOutcome{
			HitMine:  true,
			Revealed: []Position{{Row: row, Column: column}},
		}
	}

	start := Position{Row: row, Column: column}
	pending := []Position{start}
	seen := map[Position]bool{start: true}

	// Explicit worklist instead of recursion: bounded by the grid size, no
	// stack depth concerns on 50x50 boards.
	var buf [8]Position
	queue := []Position{}
	if target.Adjacent == 0 {
		queue = append(queue, start)
	}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, n := range g.neighbors(p.Row, p.Column, buf[:0]) {
			if seen[n] {
				continue
			}
			cell := g.At(n.Row, n.Column)
			if cell.Revealed || cell.Flagged || cell.Mine {
				continue
			}
			seen[n] = true
			pending = append(pending, n)
			if cell.Adjacent == 0 {
				queue = append(queue, n)
			}
		}
	}

	for _, p := range pending {
		cell := g.At(p.Row, p.Column)
		cell.Revealed = true
		cell.Flagged = false
	}
	g.RevealedCount += len(pending)

	return RevealOutcome{Revealed: pending}
}
