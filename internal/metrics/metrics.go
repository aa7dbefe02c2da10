package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the booking counters on a private registry.
type Metrics struct {
	reg                  *prometheus.Registry
	reservationsCreated  prometheus.Counter
	reservationsRejected *prometheus.CounterVec
	reservationsCanceled prometheus.Counter
	slotQueries          *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Metrics{
		reg: reg,
		reservationsCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "Total number of reservations accepted.",
		}),
		reservationsRejected: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "reservations_rejected_total",
			Help: "Total number of reservation requests rejected, by reason.",
		}, []string{"reason"}),
		reservationsCanceled: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "reservations_cancelled_total",
			Help: "Total number of reservations cancelled, including canteen deletions.",
		}),
		slotQueries: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "slot_queries_total",
			Help: "Total number of availability queries, by scope.",
		}, []string{"scope"}),
	}
}

// The recording methods accept a nil receiver so callers may run without metrics.

func (m *Metrics) ReservationCreated() {
	if m == nil {
		return
	}
	m.reservationsCreated.Inc()
}

func (m *Metrics) ReservationRejected(reason string) {
	if m == nil {
		return
	}
	m.reservationsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) ReservationsCancelled(n int) {
	if m == nil {
		return
	}
	m.reservationsCanceled.Add(float64(n))
}

func (m *Metrics) SlotQuery(scope string) {
	if m == nil {
		return
	}
	m.slotQueries.WithLabelValues(scope).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
