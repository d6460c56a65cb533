// Package metrics defines the prometheus collectors of the dashboard
// processes. A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "dashboard_"

const (
	ResultSuccess    = "success"
	ResultValidation = "validation"
	ResultNotFound   = "not_found"
	ResultError      = "error"
	ResultEmpty      = "empty"
)

// Metrics bundles dashboard metrics.
type Metrics struct {
	InvoiceUpdates  *prometheus.CounterVec
	ChartRenders    *prometheus.CounterVec
	MirrorAppends   *prometheus.CounterVec
	EventsPublished *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New constructs the collectors and registers them with reg. A nil reg uses
// the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		InvoiceUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "invoice_updates_total",
				Help: "Invoice update submissions by result",
			},
			[]string{"result"},
		),
		ChartRenders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "revenue_chart_renders_total",
				Help: "Revenue chart renders by result",
			},
			[]string{"result"},
		),
		MirrorAppends: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "sheets_mirror_appends_total",
				Help: "Rows appended to the Sheets mirror by result",
			},
			[]string{"result"},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "events_published_total",
				Help: "Invoice events published to AMQP by result",
			},
			[]string{"result"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "code"},
		),
	}
	reg.MustRegister(
		m.InvoiceUpdates,
		m.ChartRenders,
		m.MirrorAppends,
		m.EventsPublished,
		m.HTTPDuration,
	)
	return m
}

func (m *Metrics) InvoiceUpdate(result string) {
	if m == nil {
		return
	}
	m.InvoiceUpdates.WithLabelValues(result).Inc()
}

func (m *Metrics) ChartRender(result string) {
	if m == nil {
		return
	}
	m.ChartRenders.WithLabelValues(result).Inc()
}

func (m *Metrics) MirrorAppend(result string) {
	if m == nil {
		return
	}
	m.MirrorAppends.WithLabelValues(result).Inc()
}

func (m *Metrics) EventPublished(result string) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(d.Seconds())
}
