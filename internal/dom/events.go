package dom

import (
	"selector-inspector/internal/entity"
	"selector-inspector/internal/ports"
)

const (
	EventMouseOver = "mouseover"
	EventMouseOut  = "mouseout"
	EventKeyDown   = "keydown"
)

type Event struct {
	Type   string
	Target *Element
	Key    entity.KeyPress
}

var _ ports.Host = (*Document)(nil)

func (d *Document) AddEventListener(eventType string, fn func(ev Event)) {
	d.listeners[eventType] = append(d.listeners[eventType], fn)
}

func (d *Document) ListenerCount(eventType string) int {
	return len(d.listeners[eventType])
}

// Dispatch calls every listener registered for ev.Type in registration order.
func (d *Document) Dispatch(ev Event) {
	for _, fn := range d.listeners[ev.Type] {
		fn(ev)
	}
}

func (d *Document) MouseOver(target *Element) {
	d.Dispatch(Event{Type: EventMouseOver, Target: target})
}

func (d *Document) MouseOut(target *Element) {
	d.Dispatch(Event{Type: EventMouseOut, Target: target})
}

func (d *Document) KeyDown(key entity.KeyPress) {
	d.Dispatch(Event{Type: EventKeyDown, Key: key})
}

// Overlay returns the document's overlay node wrapper, creating it lazily.
func (d *Document) Overlay() ports.Overlay {
	if d.overlay == nil {
		d.overlay = &Overlay{doc: d}
	}

	return d.overlay
}

func (d *Document) Subscribe(h ports.HoverHandlers) error {
	if h.Enter != nil {
		d.AddEventListener(EventMouseOver, func(ev Event) {
			if ev.Target != nil {
				h.Enter(ev.Target)
			}
		})
	}

	if h.Leave != nil {
		d.AddEventListener(EventMouseOut, func(Event) {
			h.Leave()
		})
	}

	if h.Key != nil {
		d.AddEventListener(EventKeyDown, func(ev Event) {
			h.Key(ev.Key)
		})
	}

	return nil
}
