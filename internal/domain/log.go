package domain

import (
	"strings"
	"time"
)

type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Levels is sorted lexicographically, the order the dashboard lists them in.
var Levels = []Level{LevelError, LevelInfo, LevelWarn}

// ParseLevel upper-cases and trims s and reports whether the result is a known level.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.TrimSpace(strings.ToUpper(s)))
	switch l {
	case LevelInfo, LevelWarn, LevelError:
		return l, true
	}
	return l, false
}

// RawEvent is an ingestion payload as decoded from the wire, before validation.
type RawEvent map[string]any

type LogEvent struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	Metadata  *Metadata `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// EventFilter narrows recent-event listings. Empty fields are not applied.
type EventFilter struct {
	Level   Level
	Service string
	Text    string
}
