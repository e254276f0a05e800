package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// DB is the slice of pgxpool.Pool the queries need; tests may substitute it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Queries struct {
	db DB
}

func New(db DB) *Queries {
	return &Queries{db: db}
}
