package service_test

import (
	"testing"

	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/service"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func eventsFor(services ...string) []domain.LogEvent {
	events := make([]domain.LogEvent, 0, len(services))
	for _, s := range services {
		events = append(events, domain.LogEvent{Service: s, Level: domain.LevelInfo})
	}
	return events
}

func TestRankServices(t *testing.T) {
	testCases := []struct {
		name   string
		events []domain.LogEvent
		limit  int
		want   []domain.ServiceCount
	}{
		{
			name:   "empty",
			events: nil,
			limit:  5,
			want:   []domain.ServiceCount{},
		},
		{
			name:   "ties broken by name",
			events: eventsFor("orders", "auth-api", "worker", "worker"),
			limit:  5,
			want: []domain.ServiceCount{
				{Service: "worker", Count: 2},
				{Service: "auth-api", Count: 1},
				{Service: "orders", Count: 1},
			},
		},
		{
			name:   "cut to limit",
			events: eventsFor("a", "b", "b", "c", "c", "c", "d", "e", "f"),
			limit:  2,
			want: []domain.ServiceCount{
				{Service: "c", Count: 3},
				{Service: "b", Count: 2},
			},
		},
		{
			name:   "zero limit keeps all",
			events: eventsFor("a", "b"),
			limit:  0,
			want: []domain.ServiceCount{
				{Service: "a", Count: 1},
				{Service: "b", Count: 1},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.RankServices(tc.events, tc.limit))
		})
	}
}

func TestRankServices_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	names := []string{"auth-api", "payments", "orders", "frontend", "worker", "billing", "search"}

	properties.Property("at most limit groups, sorted, none empty", prop.ForAll(
		func(picks []int) bool {
			services := make([]string, 0, len(picks))
			for _, p := range picks {
				services = append(services, names[p])
			}
			ranked := service.RankServices(eventsFor(services...), service.TopServicesLimit)
			if len(ranked) > service.TopServicesLimit {
				return false
			}
			for i, sc := range ranked {
				if sc.Count <= 0 {
					return false
				}
				if i > 0 && ranked[i-1].Count < sc.Count {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(names)-1)),
	))

	properties.TestingRun(t)
}
