package sqlitedb

import (
	"strings"

	"github.com/Egor213/LogOps/internal/repo/repotypes"
	"github.com/Egor213/LogOps/pkg/sqlite"
	sq "github.com/Masterminds/squirrel"
)

const logEventsTable = "log_events"

var logEventColumns = []string{"id", "ts", "level", "service", "message", "metadata", "created_at"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Both sides are folded so non-ASCII text matches case-insensitively, as
// ILIKE does on Postgres. LIKE has no default escape character here.
func containsLike(column, s string) sq.Sqlizer {
	return sq.Expr(
		sqlite.FoldCase+"("+column+") LIKE "+sqlite.FoldCase+`(?) ESCAPE '\'`,
		"%"+likeEscaper.Replace(s)+"%",
	)
}

func BuildLogQueryFilters(filter repotypes.LogFilter) ([]sq.Sqlizer, uint64) {
	conds := []sq.Sqlizer{}

	if !filter.Since.IsZero() {
		conds = append(conds, sq.GtOrEq{"ts": filter.Since.UnixMicro()})
	}
	if !filter.Until.IsZero() {
		conds = append(conds, sq.LtOrEq{"ts": filter.Until.UnixMicro()})
	}
	if filter.Level != "" {
		conds = append(conds, sq.Eq{"level": string(filter.Level)})
	}
	if filter.Service != "" {
		conds = append(conds, containsLike("service", filter.Service))
	}
	if filter.Text != "" {
		conds = append(conds, containsLike("message", filter.Text))
	}

	var limit uint64
	if filter.Limit > 0 {
		limit = uint64(filter.Limit)
	}

	return conds, limit
}
