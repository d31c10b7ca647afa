// Package metric exposes watch-mode observability: counters and gauges for
// validation runs, served over a Prometheus endpoint.
package metric

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/spectral/report"
)

// Metrics holds the instrument set for a watch process.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal       prometheus.Counter
	violationsTotal *prometheus.CounterVec
	lastRunPassed   prometheus.Gauge
	lastViolations  prometheus.Gauge
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spectral_runs_total",
			Help: "Validation runs completed.",
		}),
		violationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spectral_violations_total",
			Help: "Violations found, by check.",
		}, []string{"check"}),
		lastRunPassed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spectral_last_run_passed",
			Help: "Whether the most recent run passed (1) or failed (0).",
		}),
		lastViolations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "spectral_last_run_violations",
			Help: "Violations found in the most recent run.",
		}),
	}

	m.registry.MustRegister(m.runsTotal, m.violationsTotal, m.lastRunPassed, m.lastViolations)
	return m
}

// ObserveRun records one completed validation run.
func (m *Metrics) ObserveRun(s report.Summary) {
	m.runsTotal.Inc()
	for _, v := range s.Violations {
		m.violationsTotal.WithLabelValues(string(v.Check)).Inc()
	}
	if s.Passed {
		m.lastRunPassed.Set(1)
	} else {
		m.lastRunPassed.Set(0)
	}
	m.lastViolations.Set(float64(len(s.Violations)))
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs a metrics HTTP server on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
