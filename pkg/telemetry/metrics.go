package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for crossbuild. All record methods
// are safe on a disabled (no-op) instance.
type Metrics struct {
	config MetricsConfig

	// Resolution metrics
	resolutionsTotal *prometheus.CounterVec
	resolveDuration  *prometheus.HistogramVec

	// Triple parser metrics
	tripleParsesTotal *prometheus.CounterVec

	// Settings file loading metrics
	settingsLoadsTotal *prometheus.CounterVec

	// Policy metrics
	policyEvaluationsTotal prometheus.Counter
	policyViolationsTotal  *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with the given configuration.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		// Return a no-op metrics instance
		return &Metrics{config: cfg}, nil
	}

	namespace := cfg.Namespace
	buckets := cfg.DefaultHistogramBuckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		resolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Total number of settings resolutions",
			},
			[]string{"mode"},
		),
		resolveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "resolve_duration_seconds",
				Help:      "Duration of settings resolution in seconds",
				Buckets:   buckets,
			},
			[]string{"mode"},
		),
		tripleParsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "triple_parses_total",
				Help:      "Total number of host triple parses",
			},
			[]string{"result"},
		),
		settingsLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "settings_loads_total",
				Help:      "Total number of settings file loads",
			},
			[]string{"format", "result"},
		),
		policyEvaluationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "policy_evaluations_total",
				Help:      "Total number of policy evaluations",
			},
		),
		policyViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "policy_violations_total",
				Help:      "Total number of policy violations",
			},
			[]string{"severity"},
		),
	}

	registry.MustRegister(
		m.resolutionsTotal,
		m.resolveDuration,
		m.tripleParsesTotal,
		m.settingsLoadsTotal,
		m.policyEvaluationsTotal,
		m.policyViolationsTotal,
	)

	return m, nil
}

// RecordResolution records a completed settings resolution. Mode is
// "cross" or "native".
func (m *Metrics) RecordResolution(mode string, duration time.Duration) {
	if m.resolutionsTotal == nil {
		return
	}
	m.resolutionsTotal.WithLabelValues(mode).Inc()
	m.resolveDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordTripleParse records a host triple parse attempt.
func (m *Metrics) RecordTripleParse(ok bool) {
	if m.tripleParsesTotal == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.tripleParsesTotal.WithLabelValues(result).Inc()
}

// RecordSettingsLoad records a settings file load by format (cue, yaml, json).
func (m *Metrics) RecordSettingsLoad(format string, ok bool) {
	if m.settingsLoadsTotal == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.settingsLoadsTotal.WithLabelValues(format, result).Inc()
}

// RecordPolicyEvaluation records one policy engine evaluation.
func (m *Metrics) RecordPolicyEvaluation() {
	if m.policyEvaluationsTotal == nil {
		return
	}
	m.policyEvaluationsTotal.Inc()
}

// RecordPolicyViolation records a policy violation by severity.
func (m *Metrics) RecordPolicyViolation(severity string) {
	if m.policyViolationsTotal == nil {
		return
	}
	m.policyViolationsTotal.WithLabelValues(severity).Inc()
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// StartMetricsServer starts an HTTP server exposing the metrics endpoint.
// Used by long-lived modes such as `crossbuild watch`.
func (m *Metrics) StartMetricsServer() error {
	if !m.config.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(m.config.Path, m.Handler())

	server := &http.Server{
		Addr:              m.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("metrics server error: %v\n", err)
		}
	}()

	return nil
}
