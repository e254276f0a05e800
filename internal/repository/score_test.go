package repository

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestScoreFilterWhereClause(t *testing.T) {
	t.Parallel()

	clause, args := ScoreFilter{}.WhereClause()
	assert.Empty(t, clause)
	assert.Empty(t, args)

	difficulty := "beginner"
	clause, args = ScoreFilter{Difficulty: &difficulty}.WhereClause()
	assert.Equal(t, "difficulty = @difficulty", clause)
	assert.Equal(t, pgx.NamedArgs{"difficulty": "beginner"}, args)

	player := "ada"
	clause, args = ScoreFilter{
		Difficulty: &difficulty,
		PlayerName: &player,
	}.WhereClause()
	assert.Equal(t, "difficulty = @difficulty AND player_name = @player_name", clause)
	assert.Equal(t, pgx.NamedArgs{
		"difficulty":  "beginner",
		"player_name": "ada",
	}, args)
}
