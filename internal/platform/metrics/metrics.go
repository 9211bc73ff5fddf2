// Package metrics exposes probe and run counters in Prometheus format.
// A nil *Metrics is valid and records nothing, so callers never need to
// guard optional instrumentation.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gokutrace/internal/platform/logx"
)

const namespace = "gokutrace"

// Metrics groups every collector on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	probesTotal   *prometheus.CounterVec
	hitsTotal     *prometheus.CounterVec
	attemptsTotal prometheus.Counter
	retriesTotal  *prometheus.CounterVec
	probeSeconds  *prometheus.HistogramVec
	inflight      prometheus.Gauge
	runsTotal     *prometheus.CounterVec
	runSeconds    *prometheus.HistogramVec
}

// New builds and registers all collectors.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.probesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "probes_total",
		Help:      "Probes completed, by platform and status class.",
	}, []string{"platform", "status"})

	m.hitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hits_total",
		Help:      "Probes that found an existing profile, by platform.",
	}, []string{"platform"})

	m.attemptsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_attempts_total",
		Help:      "HTTP attempts issued, retries included.",
	})

	m.retriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_retries_total",
		Help:      "Retries triggered by a retryable status code.",
	}, []string{"code"})

	m.probeSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "probe_duration_seconds",
		Help:      "Wall time of a probe including retries and backoff.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 10},
	}, []string{"status"})

	m.inflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "probes_inflight",
		Help:      "Probes currently executing.",
	})

	m.runsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "runs_total",
		Help:      "Orchestrator runs by mode and terminal state.",
	}, []string{"mode", "state"})

	m.runSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Orchestrator run duration.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
	}, []string{"mode"})

	collectors := []prometheus.Collector{
		m.probesTotal,
		m.hitsTotal,
		m.attemptsTotal,
		m.retriesTotal,
		m.probeSeconds,
		m.inflight,
		m.runsTotal,
		m.runSeconds,
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return m, nil
}

// Registry exposes the private registry (tests, custom exporters).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ProbeStarted marks a probe as in flight.
func (m *Metrics) ProbeStarted() {
	if m == nil {
		return
	}
	m.inflight.Inc()
}

// ProbeFinished records a classified probe.
func (m *Metrics) ProbeFinished(platform, statusClass string, found bool, d time.Duration) {
	if m == nil {
		return
	}
	m.inflight.Dec()
	m.probesTotal.WithLabelValues(platform, statusClass).Inc()
	m.probeSeconds.WithLabelValues(statusClass).Observe(d.Seconds())
	if found {
		m.hitsTotal.WithLabelValues(platform).Inc()
	}
}

// Attempt records one HTTP attempt.
func (m *Metrics) Attempt() {
	if m == nil {
		return
	}
	m.attemptsTotal.Inc()
}

// Retry records a retry caused by status code.
func (m *Metrics) Retry(code int) {
	if m == nil {
		return
	}
	m.retriesTotal.WithLabelValues(fmt.Sprint(code)).Inc()
}

// RunFinished records a finished orchestrator run.
func (m *Metrics) RunFinished(mode, state string, d time.Duration) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(mode, state).Inc()
	m.runSeconds.WithLabelValues(mode).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text/OpenMetrics format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger logx.Logger) error {
	if logger == nil {
		logger = logx.Nop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics endpoint listening", "addr", addr, "path", "/metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
