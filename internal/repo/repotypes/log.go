package repotypes

import (
	"time"

	"github.com/Egor213/LogOps/internal/domain"
)

const DefaultRecentLimit = 50

// LogFilter selects events for QueryRange. Zero values are not applied:
// a zero Until means no upper bound and a zero Limit means no cap.
// Service and Text are case-insensitive substring matches.
type LogFilter struct {
	Since   time.Time
	Until   time.Time
	Level   domain.Level
	Service string
	Text    string
	Limit   int
}
