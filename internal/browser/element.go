package browser

import (
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"selector-inspector/internal/entity"
	"selector-inspector/internal/ports"
)

// element adapts a live playwright element handle. Every accessor is a
// round trip to the page; failures (usually a detached node) read as an
// absent value.
type element struct {
	handle playwright.ElementHandle
	logger *zap.Logger
}

var (
	_ ports.HoverTarget = (*element)(nil)
	_ ports.Releaser    = (*element)(nil)
)

func newElement(handle playwright.ElementHandle, logger *zap.Logger) *element {
	return &element{handle: handle, logger: logger}
}

func (e *element) eval(expression string, arg ...interface{}) interface{} {
	result, err := e.handle.Evaluate(expression, arg...)
	if err != nil {
		e.logger.Debug("Element evaluate failed", zap.Error(err))
		return nil
	}

	return result
}

func (e *element) related(expression string) (ports.Element, bool) {
	h, err := e.handle.EvaluateHandle(expression)
	if err != nil {
		e.logger.Debug("Element traversal failed", zap.Error(err))
		return nil, false
	}

	el := h.AsElement()
	if el == nil {
		_ = h.Dispose()
		return nil, false
	}

	return newElement(el, e.logger), true
}

func (e *element) TagName() string {
	tag, _ := e.eval(`e => e.tagName.toLowerCase()`).(string)

	return tag
}

func (e *element) Attribute(name string) (string, bool) {
	v, ok := e.eval(`(e, name) => e.getAttribute(name)`, name).(string)

	return v, ok
}

func (e *element) TextContent() string {
	text, err := e.handle.TextContent()
	if err != nil {
		return ""
	}

	return text
}

func (e *element) Parent() (ports.Element, bool) {
	return e.related(`e => e.parentElement`)
}

func (e *element) PreviousSibling() (ports.Element, bool) {
	return e.related(`e => e.previousElementSibling`)
}

func (e *element) OwnerDocument() ports.Document {
	return &document{anchor: e}
}

func (e *element) IsConnected() bool {
	connected, _ := e.eval(`e => e.isConnected`).(bool)

	return connected
}

func (e *element) Outline() string {
	outline, _ := e.eval(`e => e.style.outline`).(string)

	return outline
}

func (e *element) SetOutline(value string) {
	e.eval(`(e, value) => { e.style.outline = value; }`, value)
}

// Release disposes the page-side handle. Later accessors read as absent.
func (e *element) Release() {
	if err := e.handle.Dispose(); err != nil {
		e.logger.Debug("Element dispose failed", zap.Error(err))
	}
}

func (e *element) BoundingBox() (entity.Rect, bool) {
	box, err := e.handle.BoundingBox()
	if err != nil || box == nil {
		return entity.Rect{}, false
	}

	return entity.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, true
}

// document resolves ids in the owner document of its anchor element.
type document struct {
	anchor *element
}

func (d *document) ElementByID(id string) (ports.Element, bool) {
	h, err := d.anchor.handle.EvaluateHandle(`(e, id) => e.ownerDocument.getElementById(id)`, id)
	if err != nil {
		return nil, false
	}

	el := h.AsElement()
	if el == nil {
		_ = h.Dispose()
		return nil, false
	}

	return newElement(el, d.anchor.logger), true
}
