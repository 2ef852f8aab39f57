// Package metrics exposes counters for authentication outcomes and
// request latency, backed by Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "credkit"

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeFailure    = "failure"
	OutcomeError      = "error"
	OutcomeExpired    = "expired"
	OutcomeMalformed  = "malformed"
	OutcomeBadSig     = "bad_signature"
	OutcomeMismatch   = "subject_mismatch"
	OutcomeMissing    = "missing"
	OutcomeValidation = "validation"
)

// Recorder is the metrics sink used by the auth and user packages.
type Recorder interface {
	RecordLogin(outcome string)
	RecordTokenVerification(outcome string)
	RecordPasswordChange(outcome string)
	ObserveRequest(method string, status int, elapsed time.Duration)
}

type PrometheusRecorder struct {
	registry       *prometheus.Registry
	logins         *prometheus.CounterVec
	verifications  *prometheus.CounterVec
	passwordChange *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder registers its collectors on a fresh registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Count of login attempts by outcome.",
		}, []string{"outcome"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "token_verifications_total",
			Help:      "Count of access token checks by outcome.",
		}, []string{"outcome"}),
		passwordChange: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "password_changes_total",
			Help:      "Count of password change attempts by outcome.",
		}, []string{"outcome"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Histogram of latencies for HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}

	r.registry.MustRegister(
		r.logins,
		r.verifications,
		r.passwordChange,
		r.requestLatency,
		collectors.NewGoCollector(),
	)

	return r
}

func (r *PrometheusRecorder) RecordLogin(outcome string) {
	r.logins.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) RecordTokenVerification(outcome string) {
	r.verifications.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) RecordPasswordChange(outcome string) {
	r.passwordChange.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) ObserveRequest(method string, status int, elapsed time.Duration) {
	r.requestLatency.WithLabelValues(method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *PrometheusRecorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// NopRecorder discards everything.
type NopRecorder struct{}

var _ Recorder = NopRecorder{}

func (NopRecorder) RecordLogin(string)                        {}
func (NopRecorder) RecordTokenVerification(string)            {}
func (NopRecorder) RecordPasswordChange(string)               {}
func (NopRecorder) ObserveRequest(string, int, time.Duration) {}
