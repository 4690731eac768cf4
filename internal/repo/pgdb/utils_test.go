package pgdb

import (
	"testing"
	"time"

	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/repo/repotypes"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLogQueryFilters(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := since.Add(time.Hour)

	testCases := []struct {
		name      string
		filter    repotypes.LogFilter
		wantSQL   string
		wantArgs  []any
		wantLimit uint64
	}{
		{
			name:     "empty",
			filter:   repotypes.LogFilter{},
			wantSQL:  "",
			wantArgs: nil,
		},
		{
			name:      "window and level",
			filter:    repotypes.LogFilter{Since: since, Until: until, Level: domain.LevelError, Limit: 50},
			wantSQL:   "(ts >= $1 AND ts <= $2 AND level = $3)",
			wantArgs:  []any{since, until, "ERROR"},
			wantLimit: 50,
		},
		{
			name:     "text filters",
			filter:   repotypes.LogFilter{Service: "auth", Text: "time_out"},
			wantSQL:  "(service ILIKE $1 AND message ILIKE $2)",
			wantArgs: []any{"%auth%", `%time\_out%`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conds, limit := BuildLogQueryFilters(tc.filter)
			assert.Equal(t, tc.wantLimit, limit)

			if len(tc.wantArgs) == 0 {
				assert.Empty(t, conds)
				return
			}

			stmt, args, err := sq.And(conds).ToSql()
			require.NoError(t, err)
			stmt, err = sq.Dollar.ReplacePlaceholders(stmt)
			require.NoError(t, err)

			assert.Equal(t, tc.wantSQL, stmt)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestContainsPattern(t *testing.T) {
	testCases := map[string]string{
		"payments": "%payments%",
		"50%":      `%50\%%`,
		"a_b":      `%a\_b%`,
		`c:\tmp`:   `%c:\\tmp%`,
		"":         "%%",
	}

	for in, want := range testCases {
		assert.Equal(t, want, ContainsPattern(in), in)
	}
}
