package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	obs "bakery-dispatch/internal/http/middleware"
	"bakery-dispatch/internal/metrics"
)

func newRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}
	return reg, nil
}

type collectorsOut struct {
	dig.Out

	RateLimited  prometheus.Counter     `name:"rate_limit_exceeded_total"`
	WriteRetries prometheus.Counter     `name:"order_write_retries_total"`
	Transitions  *prometheus.CounterVec `name:"order_status_transitions_total"`
	Assignments  *prometheus.CounterVec `name:"courier_assignments_total"`
	Events       *prometheus.CounterVec `name:"order_events_total"`
	Violations   *prometheus.GaugeVec   `name:"order_invariant_violations"`
	HTTP         obs.HTTPMetrics
}

// newCollectors creates every service metric and registers it with reg.
func newCollectors(reg *prometheus.Registry) (collectorsOut, error) {
	out := collectorsOut{
		RateLimited:  metrics.NewRateLimitExceededTotal(),
		WriteRetries: metrics.NewWriteRetriesTotal(),
		Transitions:  metrics.NewStatusTransitionsTotal(),
		Assignments:  metrics.NewCourierAssignmentsTotal(),
		Events:       metrics.NewKafkaEventsTotal(),
		Violations:   metrics.NewInvariantViolations(),
		HTTP: obs.HTTPMetrics{
			Requests: metrics.NewHTTPRequestsTotal(),
			Duration: metrics.NewHTTPRequestDuration(),
		},
	}
	for _, c := range []prometheus.Collector{
		out.RateLimited, out.WriteRetries, out.Transitions, out.Assignments,
		out.Events, out.Violations, out.HTTP.Requests, out.HTTP.Duration,
	} {
		if err := reg.Register(c); err != nil {
			return collectorsOut{}, fmt.Errorf("register metric: %w", err)
		}
	}
	return out, nil
}
