package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
// Все метрики имеют label "service", чтобы несколько инстансов
// могли писать в общий Prometheus
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueriesTotal      *prometheus.CounterVec
	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec

	// Бизнес-метрики планировщика
	BookingsSubmittedTotal *prometheus.CounterVec
	BookingDecisionsTotal  *prometheus.CounterVec
	SlotConflictsTotal     *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики с указанным registerer (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_open_connections",
			Help: "Number of open connections in the pool",
		}, []string{"service"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Number of idle connections in the pool",
		}, []string{"service"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		BookingsSubmittedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "counseling_bookings_submitted_total",
			Help: "Total number of submitted counseling bookings",
		}, []string{"service"}),

		BookingDecisionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "counseling_booking_decisions_total",
			Help: "Total number of booking decisions by outcome",
		}, []string{"service", "outcome"}),

		SlotConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "counseling_slot_conflicts_total",
			Help: "Total number of approval attempts rejected due to slot conflicts",
		}, []string{"service"}),
	}
}

// IncBookingSubmitted инкрементирует счетчик поданных заявок
// Безопасен при nil-приемнике (метрики отключены)
func (m *Metrics) IncBookingSubmitted() {
	if m == nil {
		return
	}
	m.BookingsSubmittedTotal.WithLabelValues(m.serviceName).Inc()
}

// IncBookingDecision инкрементирует счетчик решений по заявкам
func (m *Metrics) IncBookingDecision(outcome string) {
	if m == nil {
		return
	}
	m.BookingDecisionsTotal.WithLabelValues(m.serviceName, outcome).Inc()
}

// IncSlotConflict инкрементирует счетчик конфликтов слотов
func (m *Metrics) IncSlotConflict() {
	if m == nil {
		return
	}
	m.SlotConflictsTotal.WithLabelValues(m.serviceName).Inc()
}
