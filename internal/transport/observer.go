package transport

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/locvowork/hrms_gateway/internal/logger"
)

// LogObserver logs every call: debug on success, warn on failure.
func LogObserver() Observer {
	return func(ctx context.Context, domain, method string, status int, elapsed time.Duration, err error) {
		level := zerolog.DebugLevel
		if err != nil {
			level = zerolog.WarnLevel
		}
		ev := logger.Event(ctx, level).
			Str("domain", domain).
			Str("method", method).
			Int("status", status).
			Dur("elapsed", elapsed)
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("backend call")
	}
}

// Metrics records backend calls in prometheus.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the client collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrms",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Backend calls by domain, method and response code (0 = no response).",
		}, []string{"domain", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrms",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Backend call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"domain", "method"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observer returns the hook to attach with WithObserver.
func (m *Metrics) Observer() Observer {
	return func(_ context.Context, domain, method string, status int, elapsed time.Duration, _ error) {
		m.requests.WithLabelValues(domain, method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(domain, method).Observe(elapsed.Seconds())
	}
}
