package service

import (
	"context"
	"sort"

	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/repo"
	"github.com/Egor213/LogOps/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/LogOps/pkg/errors"
)

// Aggregator answers windowed questions over the event store. Every query is
// bounded below by the window start and unbounded above.
type Aggregator struct {
	logRepo repo.Log
}

func NewAggregator(lr repo.Log) *Aggregator {
	return &Aggregator{logRepo: lr}
}

func (a *Aggregator) TotalCount(ctx context.Context, w domain.Window) (int, error) {
	events, err := a.logRepo.QueryRange(ctx, repotypes.LogFilter{Since: w.Since})
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return len(events), nil
}

func (a *Aggregator) CountByLevel(ctx context.Context, w domain.Window, level domain.Level) (int, error) {
	events, err := a.logRepo.QueryRange(ctx, repotypes.LogFilter{Since: w.Since, Level: level})
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}
	return len(events), nil
}

// CountsByLevel returns the per-level breakdown in one pass. Levels with no
// events are zero.
func (a *Aggregator) CountsByLevel(ctx context.Context, w domain.Window) (domain.LevelCounts, error) {
	events, err := a.logRepo.QueryRange(ctx, repotypes.LogFilter{Since: w.Since})
	if err != nil {
		return domain.LevelCounts{}, errorsUtils.WrapPathErr(err)
	}

	var counts domain.LevelCounts
	for _, ev := range events {
		counts.Add(ev.Level, 1)
	}
	return counts, nil
}

// TopServices ranks services by event count, highest first, ties by name.
// An empty level counts every level.
func (a *Aggregator) TopServices(ctx context.Context, w domain.Window, limit int, level domain.Level) ([]domain.ServiceCount, error) {
	events, err := a.logRepo.QueryRange(ctx, repotypes.LogFilter{Since: w.Since, Level: level})
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return RankServices(events, limit), nil
}

func (a *Aggregator) RecentEvents(ctx context.Context, w domain.Window, limit int, f domain.EventFilter) ([]domain.LogEvent, error) {
	if limit <= 0 {
		limit = repotypes.DefaultRecentLimit
	}

	events, err := a.logRepo.QueryRange(ctx, repotypes.LogFilter{
		Since:   w.Since,
		Level:   f.Level,
		Service: f.Service,
		Text:    f.Text,
		Limit:   limit,
	})
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return events, nil
}

// RankServices groups events by service and returns at most limit groups
// sorted by count descending, then service name ascending. A non-positive
// limit returns every group.
func RankServices(events []domain.LogEvent, limit int) []domain.ServiceCount {
	counts := make(map[string]int)
	for _, ev := range events {
		counts[ev.Service]++
	}

	ranked := make([]domain.ServiceCount, 0, len(counts))
	for service, n := range counts {
		ranked = append(ranked, domain.ServiceCount{Service: service, Count: n})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Service < ranked[j].Service
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
