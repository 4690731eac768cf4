package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	LogsReceived Counter
	LogsRejected Counter

	HttpRequests Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "logops",
		Name:      name,
		Help:      help,
	}, labels)
}

func NewPrometheusCounter(reg prometheus.Registerer, name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{
		counter: newCounterVec(name, help, labels),
	}
	reg.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func newCounters(reg prometheus.Registerer) *Counters {
	return &Counters{
		LogsReceived: NewPrometheusCounter(reg,
			"logs_received_total",
			"Log events accepted and persisted",
			[]string{"service", "level"},
		),
		LogsRejected: NewPrometheusCounter(reg,
			"logs_rejected_total",
			"Log events rejected by validation",
			[]string{"reason"},
		),
		HttpRequests: NewPrometheusCounter(reg,
			"http_requests_total",
			"HTTP API requests",
			[]string{"route", "status"},
		),
	}
}

// New registers the counters with the default registry served on /metrics.
func New() *Counters {
	return newCounters(prometheus.DefaultRegisterer)
}

// NewTestCounters uses a private registry so tests can build as many as they need.
func NewTestCounters() *Counters {
	return newCounters(prometheus.NewRegistry())
}
