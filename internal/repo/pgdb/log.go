package pgdb

import (
	"context"
	"time"

	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/repo/repoerrs"
	"github.com/Egor213/LogOps/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/LogOps/pkg/errors"
	"github.com/Egor213/LogOps/pkg/postgres"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

type LogRepo struct {
	*postgres.Postgres
}

func NewLogRepo(pg *postgres.Postgres) *LogRepo {
	return &LogRepo{pg}
}

type logRow struct {
	ID        int64     `db:"id"`
	Timestamp time.Time `db:"ts"`
	Level     string    `db:"level"`
	Service   string    `db:"service"`
	Message   string    `db:"message"`
	Metadata  []byte    `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
}

func (row logRow) toDomain() (domain.LogEvent, error) {
	meta, err := domain.DecodeMetadata(row.Metadata)
	if err != nil {
		return domain.LogEvent{}, err
	}
	return domain.LogEvent{
		ID:        row.ID,
		Timestamp: row.Timestamp.UTC(),
		Level:     domain.Level(row.Level),
		Service:   row.Service,
		Message:   row.Message,
		Metadata:  meta,
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}

func (r *LogRepo) Append(ctx context.Context, logObj *domain.LogEvent) (int64, error) {
	meta, err := logObj.Metadata.Encode()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(repoerrs.Storage(err))
	}

	sql, args, err := r.Builder.
		Insert(logEventsTable).
		Columns("ts", "level", "service", "message", "metadata").
		Values(logObj.Timestamp.UTC(), string(logObj.Level), logObj.Service, logObj.Message, meta).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	var (
		id        int64
		createdAt time.Time
	)
	err = r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&id, &createdAt)
	if err != nil {
		if errorsUtils.IsConstraintViolation(err) {
			log.WithField("sqlstate", errorsUtils.PgCode(err)).Warn("Log event violates table constraint")
		}
		return 0, errorsUtils.WrapPathErr(repoerrs.Storage(err))
	}

	logObj.ID = id
	logObj.CreatedAt = createdAt.UTC()
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

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(repoerrs.Storage(err))
	}
	defer rows.Close()

	// Windows are bounded by time, so collecting in memory is acceptable here.
	logRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[logRow])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(repoerrs.Storage(err))
	}

	events := make([]domain.LogEvent, 0, len(logRows))
	for _, row := range logRows {
		ev, err := row.toDomain()
		if err != nil {
			return nil, errorsUtils.WrapPathErr(repoerrs.Storage(err))
		}
		events = append(events, ev)
	}

	return events, nil
}
