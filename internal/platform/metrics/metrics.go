package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors de la app en un registry propio
// (evita colisiones con el registry global en tests).
type Metrics struct {
	Registry *prometheus.Registry

	catalogLoads  *prometheus.CounterVec
	catalogSize   prometheus.Gauge
	sessionEvents *prometheus.CounterVec
	formRejects   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		catalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rescue",
			Subsystem: "catalog",
			Name:      "loads_total",
			Help:      "Catalog load attempts by outcome (remote, fallback, error, superseded).",
		}, []string{"outcome"}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rescue",
			Subsystem: "catalog",
			Name:      "animals",
			Help:      "Animals currently held by the catalog.",
		}),
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rescue",
			Subsystem: "session",
			Name:      "events_total",
			Help:      "Session store transitions (login, logout, update, restored, discarded).",
		}, []string{"event"}),
		formRejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rescue",
			Subsystem: "forms",
			Name:      "rejected_total",
			Help:      "Form submissions rejected by validation.",
		}, []string{"form"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.catalogLoads,
		m.catalogSize,
		m.sessionEvents,
		m.formRejects,
	)
	return m
}

func (m *Metrics) CatalogLoad(outcome string) { m.catalogLoads.WithLabelValues(outcome).Inc() }

func (m *Metrics) CatalogSize(n int) { m.catalogSize.Set(float64(n)) }

func (m *Metrics) SessionEvent(event string) { m.sessionEvents.WithLabelValues(event).Inc() }

func (m *Metrics) FormRejected(form string) { m.formRejects.WithLabelValues(form).Inc() }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
