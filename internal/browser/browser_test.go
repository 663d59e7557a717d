package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"selector-inspector/internal/dom"
	"selector-inspector/internal/entity"
	"selector-inspector/internal/ports"
)

func TestSequencerDropsOutOfOrderEvents(t *testing.T) {
	var s sequencer

	assert.True(t, s.accept(1))
	assert.True(t, s.accept(3))
	assert.False(t, s.accept(2), "leave delivered after a newer enter")
	assert.False(t, s.accept(3))

	s.reset()
	assert.True(t, s.accept(1))
}

func TestKeyPressFromPayload(t *testing.T) {
	got := keyPress(map[string]interface{}{
		"key":   "C",
		"ctrl":  true,
		"shift": true,
		"alt":   "yes",
	})

	assert.Equal(t, entity.KeyPress{Key: "C", Ctrl: true, Shift: true}, got)
}

func TestToFloat(t *testing.T) {
	for _, v := range []interface{}{float64(2), float32(2), 2, int64(2)} {
		f, ok := toFloat(v)
		assert.True(t, ok)
		assert.Equal(t, 2.0, f)
	}

	_, ok := toFloat("2")
	assert.False(t, ok)
}

func TestInitScriptWiring(t *testing.T) {
	script := inspectorInitScript()

	for _, want := range []string{
		"window.__selectorInspectorInstalled",
		"window." + bindingHover + "({ seq: ++seq, el: el })",
		"window." + bindingLeave + "(++seq)",
		"window." + bindingKey + "(",
		`"` + dom.OverlayID + `"`,
		"window !== window.top",
		"event.code.slice(3)",
	} {
		assert.Contains(t, script, want)
	}

	assert.Equal(t, 1, strings.Count(script, "document.body.appendChild"))
	assert.Contains(t, renderOverlayScript(), "window.scrollY")
	assert.Contains(t, clearOverlayScript(), dom.OverlayID)
}

func TestPageHostHandlers(t *testing.T) {
	host := &pageHost{}
	assert.Nil(t, host.Clipboard())

	var left bool
	assert.NoError(t, host.Subscribe(portsHandlers(func() { left = true })))

	host.current().Leave()
	assert.True(t, left)
}

func portsHandlers(leave func()) ports.HoverHandlers {
	return ports.HoverHandlers{Leave: leave}
}
