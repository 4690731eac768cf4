package loggen

import (
	"math/rand"
	"time"

	"github.com/Egor213/LogOps/internal/domain"
)

var (
	Services = []string{"auth-api", "payments", "orders", "frontend", "worker"}

	messages = map[domain.Level][]string{
		domain.LevelInfo:  {"User logged in", "Cache hit", "Job completed", "Request served"},
		domain.LevelWarn:  {"Slow response detected", "Retrying request", "Rate limit nearing"},
		domain.LevelError: {"Database timeout", "Null pointer exception", "Payment failed", "Upstream 502"},
	}
)

// Payload is the ingestion body sent to the API.
type Payload struct {
	Timestamp string         `json:"timestamp"`
	Level     domain.Level   `json:"level"`
	Service   string         `json:"service"`
	Message   string         `json:"message"`
	Metadata  map[string]int `json:"metadata"`
}

type Generator struct {
	rnd *rand.Rand
	now func() time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Next draws a payload with levels weighted 70/20/10 for INFO/WARN/ERROR.
func (g *Generator) Next() Payload {
	level := g.level()
	msgs := messages[level]
	return Payload{
		Timestamp: g.now().UTC().Format(time.RFC3339),
		Level:     level,
		Service:   Services[g.rnd.Intn(len(Services))],
		Message:   msgs[g.rnd.Intn(len(msgs))],
		Metadata:  map[string]int{"request_id": 1000 + g.rnd.Intn(9000)},
	}
}

func (g *Generator) level() domain.Level {
	switch n := g.rnd.Intn(100); {
	case n < 70:
		return domain.LevelInfo
	case n < 90:
		return domain.LevelWarn
	default:
		return domain.LevelError
	}
}
