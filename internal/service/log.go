package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Egor213/LogOps/internal/broker"
	"github.com/Egor213/LogOps/internal/domain"
	"github.com/Egor213/LogOps/internal/metrics"
	"github.com/Egor213/LogOps/internal/repo"
	"github.com/Egor213/LogOps/internal/repo/repotypes"
	"github.com/Egor213/LogOps/internal/validators"
	errorsUtils "github.com/Egor213/LogOps/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultWindowMinutes = 60
	TopServicesLimit     = 5
)

type LogService struct {
	logRepo        repo.Log
	aggregator     *Aggregator
	counters       *metrics.Counters
	brokerProducer broker.Producer
	now            func() time.Time
}

type Option func(*LogService)

func WithClock(now func() time.Time) Option {
	return func(s *LogService) {
		s.now = now
	}
}

func NewLogService(lr repo.Log, cnt *metrics.Counters, p broker.Producer, opts ...Option) *LogService {
	if p == nil {
		p = broker.NoopProducer{}
	}
	s := &LogService{
		logRepo:        lr,
		aggregator:     NewAggregator(lr),
		counters:       cnt,
		brokerProducer: p,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest validates raw and persists it. Validation failures come back as
// *validators.ValidationError and nothing is stored.
func (s *LogService) Ingest(ctx context.Context, raw domain.RawEvent) (*domain.LogEvent, error) {
	logObj, err := validators.Validate(raw, s.now())
	if err != nil {
		if ve, ok := validators.AsValidationError(err); ok {
			s.counters.LogsRejected.Inc(ve.Kind.String())
		}
		return nil, err
	}

	id, err := s.logRepo.Append(ctx, logObj)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotCreateLog, err))
	}
	logObj.ID = id
	s.counters.LogsReceived.Inc(logObj.Service, string(logObj.Level))

	s.publish(ctx, logObj)

	return logObj, nil
}

// publish is best effort: the event is already stored.
func (s *LogService) publish(ctx context.Context, logObj *domain.LogEvent) {
	payload, err := json.Marshal(logObj)
	if err != nil {
		log.WithField("id", logObj.ID).Warnf("Cannot encode log for broker: %v", err)
		return
	}
	if err := s.brokerProducer.SendMessage(ctx, []byte(logObj.Service), payload); err != nil {
		log.WithField("id", logObj.ID).Warnf("Cannot publish log: %v", err)
	}
}

func (s *LogService) window(minutes int) (domain.Window, error) {
	if !domain.ValidWindowMinutes(minutes) {
		return domain.Window{}, ErrInvalidWindow
	}
	return domain.NewWindow(s.now(), minutes), nil
}

func (s *LogService) GetStats(ctx context.Context, minutes int) (domain.Stats, error) {
	w, err := s.window(minutes)
	if err != nil {
		return domain.Stats{}, err
	}

	total, err := s.aggregator.TotalCount(ctx, w)
	if err != nil {
		return domain.Stats{}, queryErr(err)
	}

	errorsCnt, err := s.aggregator.CountByLevel(ctx, w, domain.LevelError)
	if err != nil {
		return domain.Stats{}, queryErr(err)
	}

	top, err := s.aggregator.TopServices(ctx, w, TopServicesLimit, "")
	if err != nil {
		return domain.Stats{}, queryErr(err)
	}

	return domain.Stats{
		WindowMinutes: w.Minutes,
		SinceUTC:      w.Since,
		TotalEvents:   total,
		ErrorEvents:   errorsCnt,
		TopServices:   top,
	}, nil
}

// GetDashboard builds the dashboard document. Filters only narrow the recent
// events; counts and top error services cover the whole window. A level
// filter outside the known set is echoed back but not applied.
func (s *LogService) GetDashboard(ctx context.Context, q domain.DashboardQuery) (domain.Dashboard, error) {
	w, err := s.window(q.Minutes)
	if err != nil {
		return domain.Dashboard{}, err
	}

	level, levelOK := domain.ParseLevel(q.Level)
	filters := domain.DashboardFilters{
		Level:   string(level),
		Service: strings.TrimSpace(q.Service),
		Q:       strings.TrimSpace(q.Q),
	}

	ef := domain.EventFilter{Service: filters.Service, Text: filters.Q}
	if levelOK {
		ef.Level = level
	}

	counts, err := s.aggregator.CountsByLevel(ctx, w)
	if err != nil {
		return domain.Dashboard{}, queryErr(err)
	}

	topErrors, err := s.aggregator.TopServices(ctx, w, TopServicesLimit, domain.LevelError)
	if err != nil {
		return domain.Dashboard{}, queryErr(err)
	}

	recent, err := s.aggregator.RecentEvents(ctx, w, repotypes.DefaultRecentLimit, ef)
	if err != nil {
		return domain.Dashboard{}, queryErr(err)
	}

	return domain.Dashboard{
		WindowMinutes:    w.Minutes,
		SinceUTC:         w.Since,
		Filters:          filters,
		Counts:           counts,
		TopErrorServices: topErrors,
		Recent:           recent,
		AllowedLevels:    domain.Levels,
	}, nil
}

// Health does one trivial read against the store.
func (s *LogService) Health(ctx context.Context) error {
	if _, err := s.logRepo.QueryRange(ctx, repotypes.LogFilter{Limit: 1}); err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

func queryErr(err error) error {
	return errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotQueryLogs, err))
}
