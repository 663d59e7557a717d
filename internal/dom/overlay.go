package dom

import (
	"errors"
	"strconv"

	"selector-inspector/internal/entity"
	"selector-inspector/internal/ports"
)

// OverlayID is the id of the node that displays the current selector.
const OverlayID = "__selector-inspector-overlay"

var overlayStyle = [][2]string{
	{"position", "absolute"},
	{"background", "rgba(0, 0, 0, 0.8)"},
	{"color", "#fff"},
	{"padding", "5px"},
	{"font-size", "12px"},
	{"border-radius", "5px"},
	{"pointer-events", "none"},
	{"z-index", "9999"},
}

type Overlay struct {
	doc  *Document
	node *Element
}

var _ ports.Overlay = (*Overlay)(nil)

// Install appends the overlay node to the body unless one is already there.
func (o *Overlay) Install() error {
	if existing := o.doc.FindByID(OverlayID); existing != nil {
		o.node = existing
		return nil
	}

	body := o.doc.Body()
	if body == nil {
		return errors.New("document has no body")
	}

	node := o.doc.CreateElement("div")
	node.SetAttribute("id", OverlayID)
	for _, kv := range overlayStyle {
		node.SetStyle(kv[0], kv[1])
	}
	body.AppendChild(node)
	o.node = node

	return nil
}

func (o *Overlay) Render(text string, at entity.Rect) {
	if o.node == nil {
		return
	}

	o.node.SetTextContent(text)
	o.node.SetStyle("top", px(at.Y))
	o.node.SetStyle("left", px(at.X))
}

func (o *Overlay) Clear() {
	if o.node == nil {
		return
	}

	o.node.SetTextContent("")
}

// Text is the text currently shown by the overlay.
func (o *Overlay) Text() string {
	if o.node == nil {
		return ""
	}

	return o.node.TextContent()
}

func (o *Overlay) Node() *Element {
	return o.node
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
