// Package metrics exposes Prometheus counters for tool calls, analysis
// findings and style guide fetches.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tool call outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// DefaultPath is where the metrics endpoint is mounted.
const DefaultPath = "/metrics"

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	issuesFound  *prometheus.CounterVec
	fetches      *prometheus.CounterVec
}

// New creates a Metrics with its own registry.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "styleguide_tool_calls_total",
			Help: "Total number of tool invocations",
		},
		[]string{"tool", "outcome"},
	)
	m.toolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "styleguide_tool_duration_seconds",
			Help:    "Tool invocation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"tool"},
	)
	m.issuesFound = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "styleguide_issues_total",
			Help: "Total number of style issues reported, by category",
		},
		[]string{"category"},
	)
	m.fetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "styleguide_fetches_total",
			Help: "Style guide page lookups, by outcome",
		},
		[]string{"outcome"},
	)

	for _, c := range []prometheus.Collector{m.toolCalls, m.toolDuration, m.issuesFound, m.fetches} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return m, nil
}

// ObserveTool records one tool call. A nil receiver is a no-op.
func (m *Metrics) ObserveTool(tool string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.toolCalls.WithLabelValues(tool, outcome).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}

// ObserveIssues adds per-category issue counts.
func (m *Metrics) ObserveIssues(counts map[string]int) {
	if m == nil {
		return
	}
	for category, n := range counts {
		if n > 0 {
			m.issuesFound.WithLabelValues(category).Add(float64(n))
		}
	}
}

// ObserveFetch records a style guide page lookup outcome.
func (m *Metrics) ObserveFetch(outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve exposes the metrics endpoint on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(DefaultPath, m.Handler())

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
