package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса.
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы игнорируются.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	DBQueryDuration      *prometheus.HistogramVec
	DBConnections        *prometheus.GaugeVec
	LessonCommits        *prometheus.CounterVec
	OutboxDispatched     *prometheus.CounterVec
	AvailabilityDuration prometheus.Histogram
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: labels,
		}, []string{"state"}),
		LessonCommits: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "lesson_commits_total",
			Help:        "Lesson commit attempts by result",
			ConstLabels: labels,
		}, []string{"result"}),
		OutboxDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "outbox_notifications_total",
			Help:        "Outbox notifications by dispatch result",
			ConstLabels: labels,
		}, []string{"result"}),
		AvailabilityDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:        "availability_compute_duration_seconds",
			Help:        "Time spent computing the availability slot map",
			ConstLabels: labels,
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2},
		}),
	}
}

func (m *Metrics) ObserveHTTP(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *Metrics) ObserveQuery(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) SetConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues("open").Set(float64(open))
	m.DBConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues("idle").Set(float64(idle))
}

func (m *Metrics) IncLessonCommit(result string) {
	if m == nil {
		return
	}
	m.LessonCommits.WithLabelValues(result).Inc()
}

func (m *Metrics) IncOutboxDispatch(result string) {
	if m == nil {
		return
	}
	m.OutboxDispatched.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveAvailability(d time.Duration) {
	if m == nil {
		return
	}
	m.AvailabilityDuration.Observe(d.Seconds())
}
