package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session lookup results.
const (
	LookupValid    = "valid"
	LookupMissing  = "missing"
	LookupExpired  = "expired"
	LookupOrphaned = "orphaned"
	LookupError    = "error"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	UsersCreated        prometheus.Counter
	SessionsCreated     prometheus.Counter
	Logins              *prometheus.CounterVec
	SessionLookups      *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the metrics with the default registry. Call it once.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() so they can build more than one.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UsersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "conductor_users_created_total",
			Help: "Total number of users created on first login",
		}),
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "conductor_sessions_created_total",
			Help: "Total number of sessions created",
		}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "conductor_logins_total",
			Help: "Login attempts by outcome (success or an error code)",
		}, []string{"outcome"}),
		SessionLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "conductor_session_lookups_total",
			Help: "Session resolutions by result",
		}, []string{"result"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "conductor_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementSessionsCreated() {
	m.SessionsCreated.Inc()
}

func (m *Metrics) IncrementLogin(outcome string) {
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementSessionLookup(result string) {
	m.SessionLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveHTTPRequest(method, route, status string, seconds float64) {
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
