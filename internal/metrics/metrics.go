package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"selector-inspector/internal/entity"
	"selector-inspector/internal/ports"
)

const namespace = "selector_inspector"

// Recorder counts overlay activity in a prometheus registry.
type Recorder struct {
	inferences  *prometheus.CounterVec
	transitions *prometheus.CounterVec
	copies      *prometheus.CounterVec
}

var _ ports.Recorder = (*Recorder)(nil)

func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		inferences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selector_inferences_total",
			Help:      "Selectors computed for hovered elements, by strategy.",
		}, []string{"kind"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hover_transitions_total",
			Help:      "Overlay state transitions.",
		}, []string{"transition"}),
		copies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clipboard_copies_total",
			Help:      "Clipboard copy attempts, by outcome.",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{r.inferences, r.transitions, r.copies} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Recorder) SelectorInferred(kind entity.SelectorKind) {
	r.inferences.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) HoverTransition(transition string) {
	r.transitions.WithLabelValues(transition).Inc()
}

func (r *Recorder) ClipboardCopy(outcome string) {
	r.copies.WithLabelValues(outcome).Inc()
}
