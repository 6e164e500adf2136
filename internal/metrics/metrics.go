// Package metrics exposes sensor activity as Prometheus metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/mpr121d/internal/status"
	"github.com/tamzrod/mpr121d/internal/touch"
)

type Metrics struct {
	samples    prometheus.Counter
	dropped    prometheus.Counter
	stepErrors *prometheus.CounterVec
	touches    *prometheus.CounterVec
	touched    *prometheus.GaugeVec
	filtered   *prometheus.GaugeVec
	baseline   *prometheus.GaugeVec
	health     prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mpr121_samples_total",
			Help: "Samples published.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mpr121_samples_dropped_total",
			Help: "Samples dropped because the delivery queue was full.",
		}),
		stepErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mpr121_step_errors_total",
			Help: "Failed steps by status error code.",
		}, []string{"code"}),
		touches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mpr121_touches_total",
			Help: "New touches by electrode.",
		}, []string{"electrode"}),
		touched: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mpr121_electrode_touched",
			Help: "1 while the electrode is touched.",
		}, []string{"electrode"}),
		filtered: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mpr121_electrode_filtered",
			Help: "Filtered electrode data (10 bit).",
		}, []string{"electrode"}),
		baseline: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mpr121_electrode_baseline",
			Help: "Electrode baseline (10 bit).",
		}, []string{"electrode"}),
		health: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mpr121_health",
			Help: "Sensor health code (0 unknown, 1 ok, 2 error, 3 stale, 4 stopped).",
		}),
	}

	reg.MustRegister(
		m.samples, m.dropped, m.stepErrors, m.touches,
		m.touched, m.filtered, m.baseline, m.health,
	)
	return m
}

func (m *Metrics) ObserveSample(s touch.Sample) {
	m.samples.Inc()
	for i, e := range s.Electrodes {
		l := strconv.Itoa(i)
		if e.Touched {
			m.touched.WithLabelValues(l).Set(1)
		} else {
			m.touched.WithLabelValues(l).Set(0)
		}
		if e.NewTouch {
			m.touches.WithLabelValues(l).Inc()
		}
		m.filtered.WithLabelValues(l).Set(float64(e.Filtered))
		m.baseline.WithLabelValues(l).Set(float64(e.Baseline))
	}
}

func (m *Metrics) ObserveError(err error) {
	m.stepErrors.WithLabelValues(strconv.Itoa(int(status.ErrorCode(err)))).Inc()
}

func (m *Metrics) ObserveDrop() { m.dropped.Inc() }

func (m *Metrics) SetHealth(h uint16) { m.health.Set(float64(h)) }
