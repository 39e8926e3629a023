package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics собирает метрики HTTP, БД и мастера бронирования
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы игнорируются
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	wizardSessions    prometheus.Gauge
	wizardAutosaves   *prometheus.CounterVec
	wizardLookups     *prometheus.CounterVec
	wizardSubmissions *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном prometheus registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики с указанным registerer (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		wizardSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "wizard_active_sessions",
			Help:        "Number of live booking wizard sessions",
			ConstLabels: constLabels,
		}),
		wizardAutosaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "wizard_draft_saves_total",
			Help:        "Draft saves by trigger and result",
			ConstLabels: constLabels,
		}, []string{"trigger", "result"}),
		wizardLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "wizard_lookups_total",
			Help:        "Asynchronous wizard lookups by kind and result",
			ConstLabels: constLabels,
		}, []string{"kind", "result"}),
		wizardSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "wizard_submissions_total",
			Help:        "Booking submissions by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbConnections,
		m.wizardSessions,
		m.wizardAutosaves,
		m.wizardLookups,
		m.wizardSubmissions,
	)
	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) ObserveDBQuery(operation string, failed bool, seconds float64) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(seconds)
}

func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.wizardSessions.Set(float64(n))
}

// ObserveDraftSave trigger: "autosave" | "manual"; result: "ok" | "error" | "skipped"
func (m *Metrics) ObserveDraftSave(trigger, result string) {
	if m == nil {
		return
	}
	m.wizardAutosaves.WithLabelValues(trigger, result).Inc()
}

// ObserveLookup kind: "holiday" | "estimate"; result: "ok" | "error" | "stale"
func (m *Metrics) ObserveLookup(kind, result string) {
	if m == nil {
		return
	}
	m.wizardLookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.wizardSubmissions.WithLabelValues(result).Inc()
}
