package sqlitedb

import (
	"context"
	"database/sql"

	errorsUtils "github.com/Egor213/LogOps/pkg/errors"
)

// Timestamps are stored as unix microseconds so range filters and ordering
// stay integer comparisons.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS log_events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		ts         INTEGER NOT NULL,
		level      TEXT    NOT NULL CHECK (level IN ('INFO', 'WARN', 'ERROR')),
		service    TEXT    NOT NULL CHECK (trim(service) <> ''),
		message    TEXT    NOT NULL CHECK (trim(message) <> ''),
		metadata   TEXT,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_log_events_ts ON log_events (ts DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_log_events_level ON log_events (level, ts)`,
	`CREATE INDEX IF NOT EXISTS idx_log_events_service ON log_events (service, ts)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errorsUtils.WrapPathErr(err)
		}
	}
	return nil
}
