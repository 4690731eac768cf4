package httpv1

import (
	"time"

	"github.com/Egor213/LogOps/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type ingestResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type homeResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type statsResponse struct {
	WindowMinutes int                   `json:"window_minutes"`
	SinceUTC      string                `json:"since_utc"`
	TotalEvents   int                   `json:"total_events"`
	ErrorEvents   int                   `json:"error_events"`
	TopServices   []domain.ServiceCount `json:"top_services"`
}

type dashboardResponse struct {
	Version          string                  `json:"version"`
	WindowMinutes    int                     `json:"window_minutes"`
	SinceUTC         string                  `json:"since_utc"`
	Filters          domain.DashboardFilters `json:"filters"`
	Counts           domain.LevelCounts      `json:"counts"`
	TopErrorServices []domain.ServiceCount   `json:"top_error_services"`
	Recent           []domain.LogEvent       `json:"recent"`
	AllowedLevels    []domain.Level          `json:"allowed_levels"`
}

func formatSince(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Empty slices render as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func newStatsResponse(st domain.Stats) statsResponse {
	return statsResponse{
		WindowMinutes: st.WindowMinutes,
		SinceUTC:      formatSince(st.SinceUTC),
		TotalEvents:   st.TotalEvents,
		ErrorEvents:   st.ErrorEvents,
		TopServices:   orEmpty(st.TopServices),
	}
}

func newDashboardResponse(d domain.Dashboard, version string) dashboardResponse {
	return dashboardResponse{
		Version:          version,
		WindowMinutes:    d.WindowMinutes,
		SinceUTC:         formatSince(d.SinceUTC),
		Filters:          d.Filters,
		Counts:           d.Counts,
		TopErrorServices: orEmpty(d.TopErrorServices),
		Recent:           orEmpty(d.Recent),
		AllowedLevels:    d.AllowedLevels,
	}
}
