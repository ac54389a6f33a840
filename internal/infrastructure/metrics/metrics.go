package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/billing-core/internal/domain"
	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

const namespace = "billing_core"

// Resultados registrados en la etiqueta "result".
const (
	ResultOK         = "ok"
	ResultValidation = "validation"
	ResultNotFound   = "not_found"
	ResultArithmetic = "arithmetic"
	ResultDepth      = "depth"
	ResultError      = "error"
)

// Metrics contadores de la cascada de borrado y del motor de precios.
// Implementa event.Observer y pricing.Observer.
type Metrics struct {
	registry         *prometheus.Registry
	dispatches       *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	pricing          *prometheus.CounterVec
}

// New crea las métricas sobre un registro propio (más los collectors de proceso y Go).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cascade",
			Name:      "dispatch_total",
			Help:      "Handlers de cascada ejecutados por evento y resultado.",
		}, []string{"event", "handler", "result"}),
		dispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cascade",
			Name:      "dispatch_duration_seconds",
			Help:      "Duración de cada handler de cascada, incluidas sus publicaciones anidadas.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"event", "handler"}),
		pricing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pricing",
			Name:      "operations_total",
			Help:      "Cálculos de precios por operación y resultado.",
		}, []string{"operation", "result"}),
	}
	reg.MustRegister(
		m.dispatches,
		m.dispatchDuration,
		m.pricing,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveDispatch registra un handler ejecutado por el bus.
func (m *Metrics) ObserveDispatch(kind domevent.Kind, handler string, elapsed time.Duration, err error) {
	m.dispatches.WithLabelValues(string(kind), handler, resultOf(err)).Inc()
	m.dispatchDuration.WithLabelValues(string(kind), handler).Observe(elapsed.Seconds())
}

// ObservePricing registra un cálculo de totales.
func (m *Metrics) ObservePricing(operation string, err error) {
	m.pricing.WithLabelValues(operation, resultOf(err)).Inc()
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry registro subyacente (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrValidation):
		return ResultValidation
	case errors.Is(err, domain.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, domain.ErrArithmeticInconsistency):
		return ResultArithmetic
	case errors.Is(err, domain.ErrCascadeDepth):
		return ResultDepth
	default:
		return ResultError
	}
}
