package domain

import (
	"math"
	"time"
)

// Window is a trailing interval [Since, now]. It has no upper bound: anything
// stamped at or after Since is inside.
type Window struct {
	Minutes int
	Since   time.Time
}

// MaxWindowMinutes is the widest window whose length still fits in a time.Duration.
const MaxWindowMinutes = math.MaxInt64 / int64(time.Minute)

// ValidWindowMinutes reports whether minutes can size a window.
func ValidWindowMinutes(minutes int) bool {
	return minutes > 0 && int64(minutes) <= MaxWindowMinutes
}

func NewWindow(now time.Time, minutes int) Window {
	return Window{
		Minutes: minutes,
		Since:   now.UTC().Add(-time.Duration(minutes) * time.Minute),
	}
}

type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

type LevelCounts struct {
	Info  int `json:"INFO"`
	Warn  int `json:"WARN"`
	Error int `json:"ERROR"`
}

func (c *LevelCounts) Add(l Level, n int) {
	switch l {
	case LevelInfo:
		c.Info += n
	case LevelWarn:
		c.Warn += n
	case LevelError:
		c.Error += n
	}
}

func (c LevelCounts) Get(l Level) int {
	switch l {
	case LevelInfo:
		return c.Info
	case LevelWarn:
		return c.Warn
	case LevelError:
		return c.Error
	}
	return 0
}

func (c LevelCounts) Total() int {
	return c.Info + c.Warn + c.Error
}

type Stats struct {
	WindowMinutes int            `json:"window_minutes"`
	SinceUTC      time.Time      `json:"since_utc"`
	TotalEvents   int            `json:"total_events"`
	ErrorEvents   int            `json:"error_events"`
	TopServices   []ServiceCount `json:"top_services"`
}

type DashboardQuery struct {
	Minutes int
	Level   string
	Service string
	Q       string
}

type DashboardFilters struct {
	Level   string `json:"level"`
	Service string `json:"service"`
	Q       string `json:"q"`
}

type Dashboard struct {
	WindowMinutes    int              `json:"window_minutes"`
	SinceUTC         time.Time        `json:"since_utc"`
	Filters          DashboardFilters `json:"filters"`
	Counts           LevelCounts      `json:"counts"`
	TopErrorServices []ServiceCount   `json:"top_error_services"`
	Recent           []LogEvent       `json:"recent"`
	AllowedLevels    []Level          `json:"allowed_levels"`
}
