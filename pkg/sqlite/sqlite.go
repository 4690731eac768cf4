package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strconv"
	"strings"
	"time"

	errorsUtils "github.com/Egor213/LogOps/pkg/errors"

	"github.com/Masterminds/squirrel"
	moderncsqlite "modernc.org/sqlite"
)

const (
	DriverName         = "sqlite"
	DefaultBusyTimeout = 5 * time.Second

	// FoldCase lower-cases text with full Unicode rules. SQLite's own lower()
	// and LIKE fold ASCII only.
	FoldCase = "fold_case"
)

func init() {
	moderncsqlite.MustRegisterDeterministicScalarFunction(FoldCase, 1, foldCase)
}

func foldCase(_ *moderncsqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	}
	return args[0], nil
}

type SQLite struct {
	busyTimeout time.Duration

	Builder squirrel.StatementBuilderType
	DB      *sql.DB
}

type Option func(*SQLite)

func BusyTimeout(d time.Duration) Option {
	return func(s *SQLite) {
		s.busyTimeout = d
	}
}

// New opens the database at path (":memory:" for a private in-memory one).
// The pool is capped at one connection: writers are serialized and an
// in-memory database stays the same database across calls.
func New(ctx context.Context, path string, opts ...Option) (*SQLite, error) {
	s := &SQLite{
		busyTimeout: DefaultBusyTimeout,
		Builder:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errorsUtils.WrapPathErr(err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = " + strconv.FormatInt(s.busyTimeout.Milliseconds(), 10),
		"PRAGMA journal_mode = WAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, errorsUtils.WrapPathErr(err)
		}
	}

	s.DB = db
	return s, nil
}

// Wrap builds a SQLite around an already opened handle.
func Wrap(db *sql.DB) *SQLite {
	return &SQLite{
		busyTimeout: DefaultBusyTimeout,
		Builder:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		DB:          db,
	}
}

func (s *SQLite) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
