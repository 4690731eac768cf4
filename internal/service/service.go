package service

import (
	"context"

	"github.com/Egor213/LogOps/internal/broker"
	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/metrics"
	"github.com/Egor213/LogOps/internal/repo"
)

type Log interface {
	Ingest(ctx context.Context, raw domain.RawEvent) (*domain.LogEvent, error)
	GetStats(ctx context.Context, minutes int) (domain.Stats, error)
	GetDashboard(ctx context.Context, q domain.DashboardQuery) (domain.Dashboard, error)
	Health(ctx context.Context) error
}

type Services struct {
	Log
}

type ServicesDependencies struct {
	Repos          *repo.Repositories
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
}

func NewServices(deps ServicesDependencies) *Services {
	return &Services{
		Log: NewLogService(deps.Repos.Log, deps.Counters, deps.BrokerProducer),
	}
}
