package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrScoreExists means the session already has a leaderboard entry. A win is
// persisted exactly once; retried requests hit the unique constraint.
var ErrScoreExists = errors.New("score already recorded for this session")

type Score struct {
	ScoreID         int64     `json:"-"`
	GameSessionID   int64     `json:"game_session_id"`
	PlayerName      string    `json:"player_name"`
	Difficulty      string    `json:"difficulty"`
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

type InsertScoreParams struct {
	GameSessionID   int64
	PlayerName      string
	Difficulty      string
	DurationSeconds int
}

func (q Queries) InsertScore(
	ctx context.Context, params InsertScoreParams,
) (*Score, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO score (
			game_session_id, player_name, difficulty, duration_seconds
		)
		VALUES (
			@game_session_id, @player_name, @difficulty, @duration_seconds
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"game_session_id":  params.GameSessionID,
			"player_name":      params.PlayerName,
			"difficulty":       params.Difficulty,
			"duration_seconds": params.DurationSeconds,
		},
	)
	score, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Score])
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return nil, ErrScoreExists
	}
	return score, err
}

// ScoreFilter narrows the leaderboard; zero value lists everything.
type ScoreFilter struct {
	Difficulty *string
	PlayerName *string
}

func (f ScoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Difficulty != nil {
		clauses = append(clauses, "difficulty = @difficulty")
		args["difficulty"] = *f.Difficulty
	}
	if f.PlayerName != nil {
		clauses = append(clauses, "player_name = @player_name")
		args["player_name"] = *f.PlayerName
	}
	return strings.Join(clauses, " AND "), args
}

// ListScores returns won-game entries ordered fastest first.
func (q Queries) ListScores(
	ctx context.Context, filter ScoreFilter, limit int,
) ([]Score, error) {
	query := `
	SELECT
		score_id,
		game_session_id,
		player_name,
		difficulty,
		duration_seconds,
		created_at
	FROM score`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY duration_seconds, created_at"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	query += ";"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Score])
}
