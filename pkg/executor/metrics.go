package executor

import (
	"errors"
	"time"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	prometheus "github.com/prometheus/client_golang/prometheus"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// newMetrics creates the executor collectors and registers them when a
// registerer is given. Collectors which are already registered are reused.
func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toolcall",
		Subsystem: "executor",
		Name:      "calls_total",
		Help:      "Total tool calls, partitioned by tool name and status.",
	}, []string{"tool", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "toolcall",
		Subsystem: "executor",
		Name:      "duration_seconds",
		Help:      "Tool execution latency in seconds, partitioned by tool name and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"tool", "status"})

	if registerer != nil {
		var err error
		if calls, err = register(registerer, calls); err != nil {
			return nil, err
		}
		if duration, err = register(registerer, duration); err != nil {
			return nil, err
		}
	}
	return &metrics{calls: calls, duration: duration}, nil
}

func register[T prometheus.Collector](registerer prometheus.Registerer, c T) (T, error) {
	if err := registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (m *metrics) observe(tool string, kind toolcall.Err, d time.Duration) {
	status := "success"
	if kind != toolcall.ErrSuccess {
		if text, err := kind.MarshalText(); err == nil {
			status = string(text)
		} else {
			status = "error"
		}
	}
	m.calls.WithLabelValues(tool, status).Inc()
	m.duration.WithLabelValues(tool, status).Observe(d.Seconds())
}
