package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for auth attempts and signups.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
)

// Metrics holds the gateway's Prometheus collectors.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Auth
	AuthAttemptsTotal *prometheus.CounterVec
	SignupsTotal      *prometheus.CounterVec

	// Sessions
	SessionsIssuedTotal  prometheus.Counter
	SessionsRevokedTotal prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authgw_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "authgw_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AuthAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authgw_auth_attempts_total",
				Help: "Authentication attempts by strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),
		SignupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authgw_signups_total",
				Help: "Local signups by result",
			},
			[]string{"result"},
		),
		SessionsIssuedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "authgw_sessions_issued_total",
				Help: "Sessions issued",
			},
		),
		SessionsRevokedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "authgw_sessions_revoked_total",
				Help: "Sessions revoked by logout",
			},
		),
		gatherer: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthAttemptsTotal,
		m.SignupsTotal,
		m.SessionsIssuedTotal,
		m.SessionsRevokedTotal,
	)

	return m
}

// NewNop returns collectors bound to a private registry, for callers
// that do not export metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) AuthAttempt(strategy, outcome string) {
	m.AuthAttemptsTotal.WithLabelValues(strategy, outcome).Inc()
}

func (m *Metrics) Signup(result string) {
	m.SignupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) SessionIssued() {
	m.SessionsIssuedTotal.Inc()
}

func (m *Metrics) SessionRevoked() {
	m.SessionsRevokedTotal.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
