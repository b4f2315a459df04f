package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Executor is the subset of pgxpool.Pool the repositories need. Each DDL
// statement in the ingestion flow auto-commits on its own; no transaction
// wraps the sequence, so a pool is as good as a dedicated connection here.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ExecutorFactory interface {
	NewExecutor() Executor
}

type PgExecutorFactory struct {
	pool *pgxpool.Pool
}

func NewPgExecutorFactory(pool *pgxpool.Pool) PgExecutorFactory {
	return PgExecutorFactory{pool: pool}
}

func (f PgExecutorFactory) NewExecutor() Executor {
	return f.pool
}
