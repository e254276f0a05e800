package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// GameSession is one persisted play-through. State holds the full engine
// state as a gob blob; the remaining columns exist for querying and listing
// without decoding it.
type GameSession struct {
	GameSessionID int64
	PlayerName    *string
	Rows          int
	Columns       int
	MineCount     int
	Status        string
	StartedAt     time.Time
	EndedAt       *time.Time
	State         []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CreateSessionParams struct {
	PlayerName *string
	Rows       int
	Columns    int
	MineCount  int
	Status     string
	StartedAt  time.Time
	State      []byte
}

func (q Queries) CreateSession(
	ctx context.Context, params CreateSessionParams,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_name, "rows", columns, mine_count, status, started_at, state
		)
		VALUES (
			@player_name, @rows, @columns, @mine_count, @status, @started_at, @state
		)
		RETURNING *;`,
		pgx.NamedArgs{
			"player_name": params.PlayerName,
			"rows":        params.Rows,
			"columns":     params.Columns,
			"mine_count":  params.MineCount,
			"status":      params.Status,
			"started_at":  params.StartedAt,
			"state":       params.State,
		},
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q Queries) GetSession(
	ctx context.Context, gameSessionID int64,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1;",
		gameSessionID,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

type UpdateSessionParams struct {
	GameSessionID int64
	Status        string
	EndedAt       *time.Time
	State         []byte
}

func (q Queries) UpdateSession(
	ctx context.Context, params UpdateSessionParams,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		`UPDATE game_session
		SET status = @status,
			ended_at = @ended_at,
			state = @state,
			updated_at = now()
		WHERE game_session_id = @game_session_id
		RETURNING *;`,
		pgx.NamedArgs{
			"game_session_id": params.GameSessionID,
			"status":          params.Status,
			"ended_at":        params.EndedAt,
			"state":           params.State,
		},
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}
