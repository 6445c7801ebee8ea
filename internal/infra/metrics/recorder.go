// Package metrics records sweep progress in a private Prometheus registry and
// writes it out in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/domain"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/numeric"
	"github.com/WabalabaKing/Airfoil-Mesher-and-Polar-Runs/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Point status label values.
const (
	StatusOK         = "ok"
	StatusIncomplete = "incomplete"
	StatusFailed     = "failed"
)

type Recorder struct {
	registry *prometheus.Registry
	caseName string

	points      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	coefficient *prometheus.GaugeVec
	lastRun     prometheus.Gauge
}

// NewRecorder creates a recorder labelled with the case name.
func NewRecorder(caseName string) *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		registry: reg,
		caseName: caseName,
		points: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aerogrid_sweep_points_total",
				Help: "Sweep points by outcome",
			},
			[]string{"case", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aerogrid_solver_duration_seconds",
				Help:    "Wall time of one solver run",
				Buckets: []float64{1, 5, 10, 30, 60, 300, 600, 1800, 3600},
			},
			[]string{"case"},
		),
		coefficient: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aerogrid_force_coefficient",
				Help: "Integrated force coefficient per angle of attack",
			},
			[]string{"case", "aoa", "coefficient"},
		),
		lastRun: f.NewGauge(prometheus.GaugeOpts{
			Name: "aerogrid_sweep_last_point_timestamp_seconds",
			Help: "Unix time of the last recorded sweep point",
		}),
	}
}

var _ ports.SweepRecorder = (*Recorder)(nil)

// Registry exposes the underlying registry (e.g., for tests or an HTTP handler).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObservePoint(p domain.SweepPoint) {
	status := StatusOK
	switch {
	case p.Failed():
		status = StatusFailed
	case !p.Forces.Complete():
		status = StatusIncomplete
	}
	r.points.WithLabelValues(r.caseName, status).Inc()
	r.duration.WithLabelValues(r.caseName).Observe((time.Duration(p.DurationMS) * time.Millisecond).Seconds())

	aoa := numeric.FormatFloat(p.AoA)
	for name, v := range map[string]*float64{
		domain.CoefficientLift:   p.Forces.CL,
		domain.CoefficientDrag:   p.Forces.CD,
		domain.CoefficientMoment: p.Forces.CMz,
	} {
		if v != nil {
			r.coefficient.WithLabelValues(r.caseName, aoa, name).Set(*v)
		}
	}
	r.lastRun.SetToCurrentTime()
}

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return &domain.OpError{Op: "metrics.write", Kind: domain.KindIO, Path: path, Err: err}
	}
	return nil
}
