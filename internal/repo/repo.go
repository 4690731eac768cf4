package repo

import (
	"context"

	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/repo/pgdb"
	"github.com/Egor213/LogOps/internal/repo/repotypes"
	"github.com/Egor213/LogOps/internal/repo/sqlitedb"
	"github.com/Egor213/LogOps/pkg/postgres"
	"github.com/Egor213/LogOps/pkg/sqlite"
)

// Log is the append-only event store. Append sets ID and CreatedAt on the
// passed event. QueryRange returns events newest first (timestamp, then id).
type Log interface {
	Append(ctx context.Context, logObj *domain.LogEvent) (int64, error)
	QueryRange(ctx context.Context, filter repotypes.LogFilter) ([]domain.LogEvent, error)
}

type Repositories struct {
	Log
}

func NewRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Log: pgdb.NewLogRepo(pg),
	}
}

func NewSQLiteRepositories(db *sqlite.SQLite) *Repositories {
	return &Repositories{
		Log: sqlitedb.NewLogRepo(db),
	}
}
