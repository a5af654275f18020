package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSaved  = "saved"
	ResultStale  = "stale"
	ResultFailed = "failed"
)

// Autosave: counter hasil auto-save + latency. Nil-safe, jadi service bisa jalan tanpa registry.
type Autosave struct {
	total    *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewAutosave(reg prometheus.Registerer) *Autosave {
	m := &Autosave{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pkp_assessment_autosave_total",
			Help: "Auto-save penilaian per hasil (saved, stale, failed)",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pkp_assessment_autosave_duration_seconds",
			Help:    "Durasi auto-save penilaian",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
	// pre-init label supaya seri 0 langsung muncul di /metrics
	for _, r := range []string{ResultSaved, ResultStale, ResultFailed} {
		m.total.WithLabelValues(r)
	}
	if reg != nil {
		reg.MustRegister(m.total, m.duration)
	}
	return m
}

func (m *Autosave) Observe(result string, started time.Time) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(result).Inc()
	m.duration.Observe(time.Since(started).Seconds())
}

// Total: counter untuk satu hasil (dipakai test & debug).
func (m *Autosave) Total(result string) prometheus.Counter {
	return m.total.WithLabelValues(result)
}
