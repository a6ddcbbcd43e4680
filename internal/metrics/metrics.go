package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mortgagefree"

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	simulations    *prometheus.CounterVec
	corrections    prometheus.Counter
	scheduleMonths prometheus.Histogram
	settingsSaves  *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry, including Go and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Amortization runs by operation and outcome.",
		}, []string{"operation", "outcome"}),
		corrections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_corrections_total",
			Help:      "Runs where a non-reducing payment was replaced by the safety payment.",
		}),
		scheduleMonths: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_months",
			Help:      "Months simulated per amortization run.",
			Buckets:   []float64{12, 60, 120, 240, 360, 480, 600, 1200},
		}),
		settingsSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settings_saves_total",
			Help:      "Settings saves by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.simulations, m.corrections, m.scheduleMonths, m.settingsSaves)
	return m
}

// RegisterGauge exposes a value sampled at scrape time, e.g. connected websocket clients
func (m *Metrics) RegisterGauge(name, help string, sample func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, sample))
}

// ObserveSimulation records one amortization run
func (m *Metrics) ObserveSimulation(operation string, result *domain.AmortizationResult) {
	if result == nil {
		m.simulations.WithLabelValues(operation, "error").Inc()
		return
	}
	m.simulations.WithLabelValues(operation, string(result.Outcome)).Inc()
	m.scheduleMonths.Observe(float64(result.MonthsToClear))
	if result.WasCorrected() {
		m.corrections.Inc()
	}
}

// ObserveSettingsSave records a settings save attempt
func (m *Metrics) ObserveSettingsSave(err error) {
	result := "ok"
	if err != nil {
		result = "error"
		if domain.IsValidationError(err) {
			result = "invalid"
		}
	}
	m.settingsSaves.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency per route template
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			}

			m.httpRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
