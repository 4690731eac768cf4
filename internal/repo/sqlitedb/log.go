package sqlitedb

import (
	"context"
	"database/sql"
	"time"

	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/repo/repoerrs"
	"github.com/Egor213/LogOps/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/LogOps/pkg/errors"
	"github.com/Egor213/LogOps/pkg/sqlite"
	sq "github.com/Masterminds/squirrel"
)

type LogRepo struct {
	*sqlite.SQLite
	now func() time.Time
}

func NewLogRepo(db *sqlite.SQLite) *LogRepo {
	return &LogRepo{
		SQLite: db,
		now:    time.Now,
	}
}

func (r *LogRepo) Append(ctx context.Context, logObj *domain.LogEvent) (int64, error) {
	meta, err := logObj.Metadata.Encode()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(repoerrs.Storage(err))
	}
	var metaArg any
	if meta != nil {
		metaArg = string(meta)
	}

	// Holding the connection while stamping created_at keeps it in insert order.
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(repoerrs.Storage(err))
	}
	defer conn.Close()

	createdAt := r.now().UTC()

	stmt, args, err := r.Builder.
		Insert(logEventsTable).
		Columns("ts", "level", "service", "message", "metadata", "created_at").
		Values(
			logObj.Timestamp.UnixMicro(),
			string(logObj.Level),
			logObj.Service,
			logObj.Message,
			metaArg,
			createdAt.UnixMicro(),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	var id int64
	if err := conn.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, errorsUtils.WrapPathErr(repoerrs.Storage(err))
	}

	logObj.ID = id
	logObj.CreatedAt = time.UnixMicro(createdAt.UnixMicro()).UTC()
	return id, nil
}

func (r *LogRepo) QueryRange(ctx context.Context, filter repotypes.LogFilter) ([]domain.LogEvent, error) {
	conds, limit := BuildLogQueryFilters(filter)

	query := r.Builder.
		Select(logEventColumns...).
		From(logEventsTable).
		OrderBy("ts DESC", "id DESC")

	if len(conds) > 0 {
		query = query.Where(sq.And(conds))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.DB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(repoerrs.Storage(err))
	}
	defer rows.Close()

	events := []domain.LogEvent{}
	for rows.Next() {
		ev, err := scanLogEvent(rows)
		if err != nil {
			return nil, errorsUtils.WrapPathErr(repoerrs.Storage(err))
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, errorsUtils.WrapPathErr(repoerrs.Storage(err))
	}

	return events, nil
}

func scanLogEvent(rows *sql.Rows) (domain.LogEvent, error) {
	var (
		ev        domain.LogEvent
		ts        int64
		level     string
		metadata  sql.NullString
		createdAt int64
	)
	if err := rows.Scan(&ev.ID, &ts, &level, &ev.Service, &ev.Message, &metadata, &createdAt); err != nil {
		return domain.LogEvent{}, err
	}

	if metadata.Valid {
		meta, err := domain.DecodeMetadata([]byte(metadata.String))
		if err != nil {
			return domain.LogEvent{}, err
		}
		ev.Metadata = meta
	}

	ev.Timestamp = time.UnixMicro(ts).UTC()
	ev.Level = domain.Level(level)
	ev.CreatedAt = time.UnixMicro(createdAt).UTC()
	return ev, nil
}
