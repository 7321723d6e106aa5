package observability

import (
	"github.com/aretw0/gestures/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by the lifecycle hooks.
type Metrics struct {
	Gestures    prometheus.Counter
	Extras      *prometheus.CounterVec
	Directions  *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	Surfaces    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Gestures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gestures_completed_total",
			Help: "Total number of completed directional gestures",
		}),
		Extras: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gestures_extra_total",
				Help: "Total number of extra gestures by reason",
			},
			[]string{"reason"},
		),
		Directions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gestures_directions_total",
				Help: "Total number of committed direction tokens",
			},
			[]string{"direction"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gestures_transitions_total",
				Help: "Total number of mode transitions by cause",
			},
			[]string{"from", "to", "cause"},
		),
		Surfaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gestures_attached_surfaces",
			Help: "Number of currently attached input surfaces",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Gestures, m.Extras, m.Directions, m.Transitions, m.Surfaces} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.From.String(), e.To.String(), e.Cause).Inc()
		},
		OnDirection: func(e *domain.GestureEvent) {
			m.Directions.WithLabelValues(e.Chain.Last().Name()).Inc()
		},
		OnGesture: func(e *domain.GestureEvent) {
			m.Gestures.Inc()
		},
		OnExtra: func(e *domain.GestureEvent) {
			m.Extras.WithLabelValues(e.Reason).Inc()
		},
		OnAttach: func(e *domain.SurfaceEvent) {
			m.Surfaces.Inc()
		},
		OnDetach: func(e *domain.SurfaceEvent) {
			m.Surfaces.Dec()
		},
	}
}
