package domain_test

import (
	"testing"
	"time"

	"github.com/Egor213/LogOps/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in     string
		want   domain.Level
		wantOK bool
	}{
		{"INFO", domain.LevelInfo, true},
		{"info", domain.LevelInfo, true},
		{" Warn ", domain.LevelWarn, true},
		{"error", domain.LevelError, true},
		{"debug", "DEBUG", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := domain.ParseLevel(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestLevelCounts(t *testing.T) {
	var c domain.LevelCounts
	c.Add(domain.LevelInfo, 3)
	c.Add(domain.LevelError, 1)
	c.Add("DEBUG", 10)

	assert.Equal(t, 3, c.Get(domain.LevelInfo))
	assert.Equal(t, 0, c.Get(domain.LevelWarn))
	assert.Equal(t, 1, c.Get(domain.LevelError))
	assert.Equal(t, 4, c.Total())
}

func TestNewWindow(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, loc)

	w := domain.NewWindow(now, 90)

	assert.Equal(t, 90, w.Minutes)
	assert.Equal(t, time.Date(2026, 1, 2, 10, 30, 0, 0, time.UTC), w.Since)
}

func TestValidWindowMinutes(t *testing.T) {
	assert.True(t, domain.ValidWindowMinutes(1))
	assert.True(t, domain.ValidWindowMinutes(int(domain.MaxWindowMinutes)))
	assert.False(t, domain.ValidWindowMinutes(int(domain.MaxWindowMinutes)+1))
	assert.False(t, domain.ValidWindowMinutes(0))
	assert.False(t, domain.ValidWindowMinutes(-1))

	w := domain.NewWindow(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), int(domain.MaxWindowMinutes))
	assert.True(t, w.Since.Before(time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC)))
}
