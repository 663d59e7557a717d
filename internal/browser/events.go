package browser

import (
	"sync"

	"github.com/playwright-community/playwright-go"

	"selector-inspector/internal/entity"
	"selector-inspector/internal/ports"
)

// sequencer drops hover events that arrive after a newer one. Binding
// callbacks run on their own goroutines, so arrival order is not event
// order.
type sequencer struct {
	mu   sync.Mutex
	last float64
}

func (s *sequencer) accept(seq float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.last {
		return false
	}
	s.last = seq

	return true
}

// reset is called when a new document restarts its counter.
func (s *sequencer) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = 0
}

func keyPress(payload map[string]interface{}) entity.KeyPress {
	return entity.KeyPress{
		Key:   getString(payload, "key"),
		Ctrl:  getBool(payload, "ctrl"),
		Shift: getBool(payload, "shift"),
		Alt:   getBool(payload, "alt"),
		Meta:  getBool(payload, "meta"),
	}
}

// pageHost is one page as seen by the overlay registry.
type pageHost struct {
	page      playwright.Page
	overlay   *pageOverlay
	clipboard ports.Clipboard
	seq       sequencer

	mu       sync.RWMutex
	handlers ports.HoverHandlers
}

func (h *pageHost) Overlay() ports.Overlay {
	return h.overlay
}

// Clipboard is the page's own clipboard, or nil to use the registry default.
func (h *pageHost) Clipboard() ports.Clipboard {
	return h.clipboard
}

func (h *pageHost) Subscribe(handlers ports.HoverHandlers) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.handlers = handlers

	return nil
}

func (h *pageHost) current() ports.HoverHandlers {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.handlers
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
