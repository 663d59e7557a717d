package overlay

import "selector-inspector/internal/ports"

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseHighlighting
)

func (p Phase) String() string {
	switch p {
	case PhaseHighlighting:
		return "highlighting"
	default:
		return "idle"
	}
}

// State is the overlay state of one page session. Target, Text and
// SavedOutline always describe the same element.
type State struct {
	Phase        Phase
	Target       ports.HoverTarget
	Text         string
	SavedOutline string
	// Generation changes on every transition; async work started under one
	// generation must not touch the overlay under another.
	Generation uint64
}

type Event interface {
	event()
}

// Enter carries everything computed for the newly hovered element.
type Enter struct {
	Target       ports.HoverTarget
	Text         string
	SavedOutline string
}

type Leave struct{}

func (Enter) event() {}
func (Leave) event() {}

// Transition is the pure state function of the overlay.
func Transition(s State, ev Event) State {
	switch ev := ev.(type) {
	case Enter:
		return State{
			Phase:        PhaseHighlighting,
			Target:       ev.Target,
			Text:         ev.Text,
			SavedOutline: ev.SavedOutline,
			Generation:   s.Generation + 1,
		}
	case Leave:
		if s.Phase == PhaseIdle {
			return s
		}
		return State{Phase: PhaseIdle, Generation: s.Generation + 1}
	default:
		return s
	}
}

// TransitionName labels a state change for metrics and logs.
func TransitionName(from, to State) string {
	return from.Phase.String() + "->" + to.Phase.String()
}
