package pgdb

import (
	"strings"

	"github.com/Egor213/LogOps/internal/repo/repotypes"
	sq "github.com/Masterminds/squirrel"
)

const logEventsTable = "log_events"

var logEventColumns = []string{"id", "ts", "level", "service", "message", "metadata", "created_at"}

func BuildLogQueryFilters(filter repotypes.LogFilter) ([]sq.Sqlizer, uint64) {
	conds := []sq.Sqlizer{}

	if !filter.Since.IsZero() {
		conds = append(conds, sq.GtOrEq{"ts": filter.Since.UTC()})
	}
	if !filter.Until.IsZero() {
		conds = append(conds, sq.LtOrEq{"ts": filter.Until.UTC()})
	}
	if filter.Level != "" {
		conds = append(conds, sq.Eq{"level": string(filter.Level)})
	}
	if filter.Service != "" {
		conds = append(conds, sq.ILike{"service": ContainsPattern(filter.Service)})
	}
	if filter.Text != "" {
		conds = append(conds, sq.ILike{"message": ContainsPattern(filter.Text)})
	}

	var limit uint64
	if filter.Limit > 0 {
		limit = uint64(filter.Limit)
	}

	return conds, limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching s anywhere, with LIKE
// wildcards in s taken literally. Backslash is the escape character.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
