// Package metrics exposes Prometheus instrumentation for the dashboard.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradeiq/internal/feature/candles/domain/entity"
	"tradeiq/internal/feature/candles/usecase"
)

const namespace = "tradeiq"

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	FetchTotal      *prometheus.CounterVec   // labels: source, result
	FetchDuration   *prometheus.HistogramVec // labels: source
	CacheTotal      *prometheus.CounterVec   // labels: cache, result
	ComputeDuration *prometheus.HistogramVec // labels: indicator
	ReportsTotal    *prometheus.CounterVec   // labels: result
	HTTPDuration    *prometheus.HistogramVec // labels: method, route, status
}

// New creates the metrics and registers them, together with the Go and process
// collectors, on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "market_fetch_total",
			Help:      "Market data fetches by source and result",
		}, []string{"source", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "market_fetch_duration_seconds",
			Help:      "Upstream market data latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		CacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache and result (hit, miss, error, bypass)",
		}, []string{"cache", "result"}),
		ComputeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "indicator_compute_duration_seconds",
			Help:      "Indicator computation latency per report",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"indicator"}),
		ReportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Indicator reports by result",
		}, []string{"result"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.FetchTotal,
		m.FetchDuration,
		m.CacheTotal,
		m.ComputeDuration,
		m.ReportsTotal,
		m.HTTPDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFetch records one upstream fetch.
func (m *Metrics) ObserveFetch(source string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.FetchTotal.WithLabelValues(source, result).Inc()
	m.FetchDuration.WithLabelValues(source).Observe(d.Seconds())
}

// ObserveCache records one cache lookup.
func (m *Metrics) ObserveCache(cache, result string) {
	if m == nil {
		return
	}
	m.CacheTotal.WithLabelValues(cache, result).Inc()
}

// ObserveCompute records how long one indicator took.
func (m *Metrics) ObserveCompute(indicator string, d time.Duration) {
	if m == nil {
		return
	}
	m.ComputeDuration.WithLabelValues(indicator).Observe(d.Seconds())
}

// IncReport counts a report by result.
func (m *Metrics) IncReport(result string) {
	if m == nil {
		return
	}
	m.ReportsTotal.WithLabelValues(result).Inc()
}

// GinMiddleware observes request latency per matched route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// instrumentedMarket records latency and outcome of every upstream call.
type instrumentedMarket struct {
	source string
	inner  usecase.MarketRepository
	m      *Metrics
}

// InstrumentMarket wraps a MarketRepository so each call is observed under source.
func InstrumentMarket(source string, inner usecase.MarketRepository, m *Metrics) usecase.MarketRepository {
	return &instrumentedMarket{source: source, inner: inner, m: m}
}

func (i *instrumentedMarket) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	start := time.Now()
	cs, err := i.inner.GetTimeSeries(ctx, symbol, interval, outputsize)
	i.m.ObserveFetch(i.source, err, time.Since(start))
	return cs, err
}
