package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the billing workflow.
type MetricsService struct {
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheLookups    *prometheus.CounterVec
	billsCreated    *prometheus.CounterVec
	billsSkipped    prometheus.Counter
	payments        *prometheus.CounterVec
	paymentAmount   prometheus.Counter
	orphansHealed   prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache reads",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache writes",
		Buckets: prometheus.DefBuckets,
	})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by result",
	}, []string{"result"})

	billsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tk_bills_created_total",
		Help: "Bills created by origin",
	}, []string{"origin"})

	billsSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tk_bills_skipped_total",
		Help: "Students skipped by bulk billing because a matching bill already existed",
	})

	payments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tk_payments_total",
		Help: "Payment reconciliation operations by kind",
	}, []string{"kind"})

	paymentAmount := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tk_payment_amount_total",
		Help: "Sum of recorded payment amounts",
	})

	orphansHealed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tk_orphan_incomes_removed_total",
		Help: "Income records removed whose bill no longer existed",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite, cacheLookups,
		billsCreated, billsSkipped, payments, paymentAmount, orphansHealed, goroutines)

	return &MetricsService{
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		cacheLookups:    cacheLookups,
		billsCreated:    billsCreated,
		billsSkipped:    billsSkipped,
		payments:        payments,
		paymentAmount:   paymentAmount,
		orphansHealed:   orphansHealed,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records a cache lookup and its latency.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveCacheWrite tracks the duration of cache writes.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordBillsCreated counts bills created via origin (single, bulk, enrollment).
func (m *MetricsService) RecordBillsCreated(origin string, created, skipped int) {
	if m == nil {
		return
	}
	m.billsCreated.WithLabelValues(origin).Add(float64(created))
	m.billsSkipped.Add(float64(skipped))
}

// RecordPayment counts a recorded payment.
func (m *MetricsService) RecordPayment(amount int64) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues("recorded").Inc()
	m.paymentAmount.Add(float64(amount))
}

// RecordPaymentCancelled counts a cancellation; orphan marks one whose bill was already gone.
func (m *MetricsService) RecordPaymentCancelled(orphan bool) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues("cancelled").Inc()
	if orphan {
		m.orphansHealed.Inc()
	}
}
