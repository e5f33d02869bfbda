package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the calculation service.
type Metrics struct {
	Calculations        *prometheus.CounterVec
	Adjustments         *prometheus.CounterVec
	CalculationDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "faraid_calculations_total",
			Help: "Total number of calculations by kind and outcome",
		}, []string{"kind", "outcome"}),
		Adjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "faraid_adjustments_total",
			Help: "Total number of inheritance distributions adjusted by Awl or Radd",
		}, []string{"adjustment"}),
		CalculationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "faraid_calculation_duration_seconds",
			Help:    "Time spent computing a calculation",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"kind"}),
	}
	reg.MustRegister(m.Calculations, m.Adjustments, m.CalculationDuration)
	return m
}

func (m *Metrics) ObserveCalculation(kind, outcome string, elapsed time.Duration) {
	m.Calculations.WithLabelValues(kind, outcome).Inc()
	m.CalculationDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) IncrementAwl() {
	m.Adjustments.WithLabelValues("awl").Inc()
}

func (m *Metrics) IncrementRadd() {
	m.Adjustments.WithLabelValues("radd").Inc()
}
