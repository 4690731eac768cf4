package pgdb

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/repo/repoerrs"
	"github.com/Egor213/LogOps/internal/repo/repotypes"
	"github.com/Egor213/LogOps/pkg/postgres"
	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRow struct {
	id        int64
	createdAt time.Time
	err       error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.id
	*dest[1].(*time.Time) = r.createdAt
	return nil
}

// stubPool records the last statement and answers with canned results.
type stubPool struct {
	postgres.PgxPool

	row      stubRow
	queryErr error

	sql  string
	args []any
}

func (p *stubPool) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	p.sql, p.args = sql, args
	return p.row
}

func (p *stubPool) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	p.sql, p.args = sql, args
	return nil, p.queryErr
}

func newStubRepo(pool *stubPool) *LogRepo {
	return NewLogRepo(&postgres.Postgres{
		Builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		CtxGetter: trmpgx.DefaultCtxGetter,
		Pool:      pool,
	})
}

func TestLogRepo_Append(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	ts := time.Date(2026, 1, 2, 15, 0, 0, 0, moscow)
	created := time.Date(2026, 1, 2, 15, 0, 1, 0, moscow)

	meta, err := domain.NewMetadata(map[string]any{"request_id": 7})
	require.NoError(t, err)

	testCases := []struct {
		name     string
		metadata *domain.Metadata
		wantMeta any
	}{
		{name: "with metadata", metadata: meta, wantMeta: []byte(`{"request_id":7}`)},
		{name: "without metadata", metadata: nil, wantMeta: []byte(nil)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pool := &stubPool{row: stubRow{id: 42, createdAt: created}}
			r := newStubRepo(pool)

			ev := &domain.LogEvent{
				Timestamp: ts,
				Level:     domain.LevelError,
				Service:   "payments",
				Message:   "Payment failed",
				Metadata:  tc.metadata,
			}
			id, err := r.Append(context.Background(), ev)
			require.NoError(t, err)

			assert.Equal(t,
				"INSERT INTO log_events (ts,level,service,message,metadata) VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at",
				pool.sql)
			require.Len(t, pool.args, 5)
			assert.Equal(t, time.UTC, pool.args[0].(time.Time).Location())
			assert.True(t, ts.Equal(pool.args[0].(time.Time)))
			assert.Equal(t, []any{"ERROR", "payments", "Payment failed"}, pool.args[1:4])
			assert.Equal(t, tc.wantMeta, pool.args[4])

			assert.Equal(t, int64(42), id)
			assert.Equal(t, int64(42), ev.ID)
			assert.Equal(t, time.UTC, ev.CreatedAt.Location())
			assert.True(t, created.Equal(ev.CreatedAt))
		})
	}
}

func TestLogRepo_Append_StorageErrors(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{name: "check violation", err: &pgconn.PgError{Code: "23514", Message: "violates check constraint"}},
		{name: "connection lost", err: errors.New("conn closed")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pool := &stubPool{row: stubRow{err: tc.err}}
			r := newStubRepo(pool)

			_, err := r.Append(context.Background(), &domain.LogEvent{
				Timestamp: time.Now(),
				Level:     domain.LevelInfo,
				Service:   "orders",
				Message:   "x",
			})
			assert.ErrorIs(t, err, repoerrs.ErrStorage)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLogRepo_QueryRange_StorageError(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pool := &stubPool{queryErr: errors.New("relation \"log_events\" does not exist")}
	r := newStubRepo(pool)

	_, err := r.QueryRange(context.Background(), repotypes.LogFilter{Since: since, Limit: 10})
	assert.ErrorIs(t, err, repoerrs.ErrStorage)

	assert.Equal(t,
		"SELECT id, ts, level, service, message, metadata, created_at FROM log_events WHERE (ts >= $1) ORDER BY ts DESC, id DESC LIMIT 10",
		pool.sql)
	assert.Equal(t, []any{since}, pool.args)
}

func TestLogRow_ToDomain(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	ts := time.Date(2026, 1, 2, 15, 30, 0, 0, moscow)
	created := ts.Add(time.Second)

	testCases := []struct {
		name     string
		metadata []byte
		wantMeta any
		wantErr  bool
	}{
		{name: "null metadata", metadata: nil, wantMeta: nil},
		{name: "json null metadata", metadata: []byte("null"), wantMeta: nil},
		{
			name:     "object metadata",
			metadata: []byte(`{"request_id":4321,"retry":true}`),
			wantMeta: map[string]any{"request_id": json.Number("4321"), "retry": true},
		},
		{name: "scalar metadata", metadata: []byte(`"ok"`), wantMeta: "ok"},
		{name: "broken metadata", metadata: []byte(`{"broken"`), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row := logRow{
				ID:        9,
				Timestamp: ts,
				Level:     "WARN",
				Service:   "auth-api",
				Message:   "Slow response",
				Metadata:  tc.metadata,
				CreatedAt: created,
			}

			got, err := row.toDomain()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, int64(9), got.ID)
			assert.Equal(t, domain.LevelWarn, got.Level)
			assert.Equal(t, "auth-api", got.Service)
			assert.Equal(t, "Slow response", got.Message)

			assert.Equal(t, time.UTC, got.Timestamp.Location())
			assert.Equal(t, time.Date(2026, 1, 2, 12, 30, 0, 0, time.UTC), got.Timestamp)
			assert.Equal(t, time.UTC, got.CreatedAt.Location())
			assert.Equal(t, time.Date(2026, 1, 2, 12, 30, 1, 0, time.UTC), got.CreatedAt)

			if tc.wantMeta == nil {
				assert.Nil(t, got.Metadata)
				return
			}
			require.NotNil(t, got.Metadata)
			assert.Equal(t, tc.wantMeta, got.Metadata.Value())
		})
	}
}
