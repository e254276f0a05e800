package sweep

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gameFromRows(t *testing.T, playerName string, rows ...string) *Game {
	t.Helper()
	grid := gridFromRows(t, rows...)
	return &Game{
		Config: Config{
			Rows:       grid.Rows,
			Columns:    grid.Columns,
			MineCount:  grid.MineCount,
			PlayerName: playerName,
		},
		Grid:      grid,
		Status:    StatusInProgress,
		StartedAt: time.Now().UTC(),
	}
}

func TestNewGameValidatesConfig(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	tests := []struct {
		name string
		cfg  Config
	}{
		{"rows too small", Config{Rows: 4, Columns: 10, MineCount: 5}},
		{"rows too large", Config{Rows: 51, Columns: 10, MineCount: 5}},
		{"columns too small", Config{Rows: 10, Columns: 4, MineCount: 5}},
		{"columns too large", Config{Rows: 10, Columns: 51, MineCount: 5}},
		{"no mines", Config{Rows: 9, Columns: 9, MineCount: 0}},
		{"no safe cell", Config{Rows: 5, Columns: 5, MineCount: 25}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewGame(test.cfg, r)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}

	game, err := NewGame(Config{Rows: 9, Columns: 9, MineCount: 10}, r)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, game.Status)
	assert.Nil(t, game.EndedAt)
	assert.Zero(t, game.Duration)
	assert.False(t, game.StartedAt.IsZero())
}

func TestGameWinOnLastSafeReveal(t *testing.T) {
	t.Parallel()

	game := gameFromRows(t, "ada",
		"*.",
		"..",
	)

	for i, p := range []Position{{0, 1}, {1, 0}, {1, 1}} {
		_, err := game.Reveal(p.Row, p.Column)
		require.NoError(t, err)
		if i < 2 {
			assert.Equal(t, StatusInProgress, game.Status)
			assert.Nil(t, game.EndedAt)
		}
	}

	assert.Equal(t, StatusWon, game.Status)
	require.NotNil(t, game.EndedAt)
	assert.GreaterOrEqual(t, game.Duration, 1, "duration clamps to at least 1s")

	entry, err := game.ScoreEntry()
	require.NoError(t, err)
	assert.Equal(t, "ada", entry.PlayerName)
	assert.Equal(t, "2x2/1", entry.Difficulty)
	assert.Equal(t, game.Duration, entry.Duration)
}

func TestGameLossOnMineReveal(t *testing.T) {
	t.Parallel()

	game := gameFromRows(t, "",
		"*..",
		"...",
		"...",
	)

	outcome, err := game.Reveal(0, 0)
	require.NoError(t, err)
	assert.True(t, outcome.HitMine)
	assert.Equal(t, StatusLost, game.Status)
	require.NotNil(t, game.EndedAt)
	assert.GreaterOrEqual(t, game.Duration, 1)

	_, err = game.ScoreEntry()
	assert.ErrorIs(t, err, ErrScoringIneligible)
}

func TestGameTerminalStateRejectsMutation(t *testing.T) {
	t.Parallel()

	game := gameFromRows(t, "",
		"*..",
		"...",
		"...",
	)
	_, err := game.Reveal(0, 0)
	require.NoError(t, err)
	require.Equal(t, StatusLost, game.Status)

	_, err = game.Reveal(1, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, game.Flag(1, 1), ErrInvalidState)
	assert.ErrorIs(t, game.Unflag(1, 1), ErrInvalidState)
}

func TestGameRevealPreconditions(t *testing.T) {
	t.Parallel()

	game := gameFromRows(t, "",
		"*....",
		".....",
		".....",
		".....",
		".....",
	)

	_, err := game.Reveal(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = game.Reveal(0, 5)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.ErrorIs(t, game.Flag(5, 0), ErrOutOfBounds)

	_, err = game.Reveal(0, 1)
	require.NoError(t, err)
	_, err = game.Reveal(0, 1)
	assert.ErrorIs(t, err, ErrAlreadyRevealed)

	require.NoError(t, game.Flag(0, 0))
	_, err = game.Reveal(0, 0)
	assert.ErrorIs(t, err, ErrCellFlagged)
}

func TestGameFlagUnflagRestoresCount(t *testing.T) {
	t.Parallel()

	game := gameFromRows(t, "",
		"*....",
		".....",
		".....",
		".....",
		".....",
	)

	require.NoError(t, game.Flag(2, 2))
	assert.Equal(t, 1, game.Grid.FlaggedCount)
	require.NoError(t, game.Unflag(2, 2))
	assert.Equal(t, 0, game.Grid.FlaggedCount)
	assert.False(t, game.Grid.At(2, 2).Revealed)
}

func TestGameRemainingMinesFloor(t *testing.T) {
	t.Parallel()

	game := gameFromRows(t, "",
		"*....",
		".....",
		".....",
		".....",
		".....",
	)
	assert.Equal(t, 1, game.RemainingMines())

	require.NoError(t, game.Flag(1, 1))
	assert.Equal(t, 0, game.RemainingMines())

	require.NoError(t, game.Flag(2, 2))
	assert.Equal(t, 0, game.RemainingMines(), "over-flagging never goes negative")
	assert.Equal(t, 2, game.Grid.FlaggedCount)
}

func TestGameDurationClampsToOneSecond(t *testing.T) {
	t.Parallel()

	game := gameFromRows(t, "",
		"*.",
		"..",
	)
	game.now = func() time.Time { return game.StartedAt }

	for _, p := range []Position{{0, 1}, {1, 0}, {1, 1}} {
		_, err := game.Reveal(p.Row, p.Column)
		require.NoError(t, err)
	}

	require.Equal(t, StatusWon, game.Status)
	assert.Equal(t, 1, game.Duration)
	assert.True(t, game.EndedAt.Equal(game.StartedAt))
}

func TestGameSnapshotHidesUnrevealedMines(t *testing.T) {
	t.Parallel()

	game := gameFromRows(t, "",
		"*..",
		"...",
		"...",
	)
	require.NoError(t, game.Flag(0, 0))

	snap := game.Snapshot()
	assert.Equal(t, StatusInProgress, snap.Status)
	assert.False(t, snap.GameOver)

	for _, row := range snap.Cells {
		for _, cell := range row {
			assert.False(t, cell.Mine,
				"in-progress snapshot leaked a mine at (%d,%d)", cell.Row, cell.Column)
			assert.Zero(t, cell.Adjacent)
		}
	}
	assert.True(t, snap.Cells[0][0].Flagged, "flags always report truthfully")
	assert.Equal(t, 1, snap.FlaggedCount)
}

func TestGameSnapshotExposesBoardWhenOver(t *testing.T) {
	t.Parallel()

	game := gameFromRows(t, "",
		"*..",
		"...",
		"...",
	)
	_, err := game.Reveal(0, 0)
	require.NoError(t, err)

	snap := game.Snapshot()
	assert.True(t, snap.GameOver)
	assert.False(t, snap.Victory)
	assert.True(t, snap.Cells[0][0].Mine)
	assert.Equal(t, 1, snap.Cells[1][1].Adjacent)
}

func TestGameScoreEntryRequiresName(t *testing.T) {
	t.Parallel()

	game := gameFromRows(t, "",
		"*.",
		"..",
	)
	for _, p := range []Position{{0, 1}, {1, 0}, {1, 1}} {
		_, err := game.Reveal(p.Row, p.Column)
		require.NoError(t, err)
	}
	require.Equal(t, StatusWon, game.Status)

	_, err := game.ScoreEntry()
	assert.ErrorIs(t, err, ErrScoringIneligible)
}

func TestGameRestartInheritsConfigOnly(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(21, 42))
	game, err := NewGame(Config{
		Rows: 9, Columns: 9, MineCount: 10, PlayerName: "ada",
	}, r)
	require.NoError(t, err)

	_, err = game.Reveal(4, 4)
	require.NoError(t, err)
	revealedBefore := game.Grid.RevealedCount

	fresh, err := game.Restart(r)
	require.NoError(t, err)

	assert.Equal(t, game.Config, fresh.Config)
	assert.Equal(t, StatusInProgress, fresh.Status)
	assert.Zero(t, fresh.Grid.RevealedCount)
	assert.Equal(t, revealedBefore, game.Grid.RevealedCount,
		"restart must not mutate the old session")
}

func TestGameGobRoundTrip(t *testing.T) {
	t.Parallel()

	game := gameFromRows(t, "ada",
		"*....",
		".....",
		".....",
		".....",
		"....*",
	)
	require.NoError(t, game.Flag(0, 0))
	_, err := game.Reveal(1, 1)
	require.NoError(t, err)
	require.Equal(t, StatusInProgress, game.Status)

	buf, err := game.Bytes()
	require.NoError(t, err)

	restored, err := DecodeGame(buf)
	require.NoError(t, err)

	assert.Equal(t, game.Config, restored.Config)
	assert.Equal(t, game.Status, restored.Status)
	assert.Equal(t, game.Grid.Cells, restored.Grid.Cells)
	assert.Equal(t, game.Grid.RevealedCount, restored.Grid.RevealedCount)
	assert.Equal(t, game.Grid.FlaggedCount, restored.Grid.FlaggedCount)
	assert.True(t, game.StartedAt.Equal(restored.StartedAt))
}

func TestStatusRoundTrip(t *testing.T) {
	t.Parallel()

	for _, status := range []Status{
		StatusInProgress, StatusWon, StatusLost, StatusPaused,
	} {
		parsed, ok := ParseStatus(status.String())
		assert.True(t, ok)
		assert.Equal(t, status, parsed)
	}

	_, ok := ParseStatus("resigned")
	assert.False(t, ok)
}
