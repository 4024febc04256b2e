package observability

import (
	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dropzone"

// Metrics holds the Prometheus collectors for drag/drop activity.
type Metrics struct {
	DragStarts     *prometheus.CounterVec
	DragEnds       prometheus.Counter
	IndicatorShows prometheus.Counter
	IndicatorHides prometheus.Counter
	Drops          *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DragStarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drag_starts_total",
			Help:      "Drags started, by origin (palette or canvas).",
		}, []string{"origin"}),
		DragEnds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drag_ends_total",
			Help:      "Drags ended.",
		}),
		IndicatorShows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "indicator_shows_total",
			Help:      "Drop indicator updates.",
		}),
		IndicatorHides: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "indicator_hides_total",
			Help:      "Drop indicator hides.",
		}),
		Drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drops_total",
			Help:      "Drop commits, by result (ok or rejected).",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.DragStarts, m.DragEnds, m.IndicatorShows, m.IndicatorHides, m.Drops)
	}
	return m
}

// Origin labels a drag by where its item came from.
func Origin(fromPalette bool) string {
	if fromPalette {
		return "palette"
	}
	return "canvas"
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDragStart: func(e *domain.DragEvent) {
			m.DragStarts.WithLabelValues(Origin(e.FromPalette)).Inc()
		},
		OnDragEnd: func(*domain.DragEvent) {
			m.DragEnds.Inc()
		},
		OnIndicatorShow: func(*domain.IndicatorEvent) {
			m.IndicatorShows.Inc()
		},
		OnIndicatorHide: func(*domain.IndicatorEvent) {
			m.IndicatorHides.Inc()
		},
		OnDrop: func(e *domain.DropEvent) {
			result := "ok"
			if e.Err != nil {
				result = "rejected"
			}
			m.Drops.WithLabelValues(result).Inc()
		},
	}
}
