package dom

import (
	"strings"

	"golang.org/x/net/html"

	"selector-inspector/internal/entity"
	"selector-inspector/internal/ports"
)

// Element wraps one element node. A document hands out a single *Element
// per node, so pointer equality is element identity.
type Element struct {
	node *html.Node
	doc  *Document
}

var (
	_ ports.Element     = (*Element)(nil)
	_ ports.HoverTarget = (*Element)(nil)
)

func (e *Element) TagName() string {
	return strings.ToLower(e.node.Data)
}

func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}

	return "", false
}

func (e *Element) SetAttribute(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			e.node.Attr[i].Val = value
			return
		}
	}

	e.node.Attr = append(e.node.Attr, html.Attribute{Key: strings.ToLower(name), Val: value})
}

func (e *Element) RemoveAttribute(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// TextContent concatenates every descendant text node.
func (e *Element) TextContent() string {
	var b strings.Builder

	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(e.node)

	return b.String()
}

// SetTextContent replaces every child with a single text node.
func (e *Element) SetTextContent(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}

	if text != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func (e *Element) Parent() (ports.Element, bool) {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil, false
	}

	return e.doc.wrap(p), true
}

func (e *Element) PreviousSibling() (ports.Element, bool) {
	for s := e.node.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return e.doc.wrap(s), true
		}
	}

	return nil, false
}

func (e *Element) OwnerDocument() ports.Document {
	return e.doc
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}

	return out
}

func (e *Element) AppendChild(child *Element) {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
}

// Remove detaches the element from the document.
func (e *Element) Remove() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

func (e *Element) IsConnected() bool {
	n := e.node
	for n.Parent != nil {
		n = n.Parent
	}

	return n == e.doc.root
}

func (e *Element) Style(property string) string {
	for _, decl := range e.styles() {
		if decl.property == property {
			return decl.value
		}
	}

	return ""
}

// SetStyle sets one inline style property; an empty value removes it.
func (e *Element) SetStyle(property, value string) {
	decls := e.styles()
	out := decls[:0]
	replaced := false

	for _, decl := range decls {
		if decl.property == property {
			if value == "" || replaced {
				continue
			}
			decl.value = value
			replaced = true
		}
		out = append(out, decl)
	}

	if !replaced && value != "" {
		out = append(out, declaration{property: property, value: value})
	}

	if len(out) == 0 {
		e.RemoveAttribute("style")
		return
	}

	parts := make([]string, 0, len(out))
	for _, decl := range out {
		parts = append(parts, decl.property+": "+decl.value)
	}
	e.SetAttribute("style", strings.Join(parts, "; "))
}

func (e *Element) Outline() string {
	return e.Style("outline")
}

func (e *Element) SetOutline(value string) {
	e.SetStyle("outline", value)
}

// SetBoundingBox records a layout box; the parser has no layout engine.
func (e *Element) SetBoundingBox(r entity.Rect) {
	e.doc.bounds[e.node] = r
}

func (e *Element) BoundingBox() (entity.Rect, bool) {
	r, ok := e.doc.bounds[e.node]

	return r, ok
}

type declaration struct {
	property string
	value    string
}

func (e *Element) styles() []declaration {
	raw, ok := e.Attribute("style")
	if !ok {
		return nil
	}

	var decls []declaration
	for _, part := range strings.Split(raw, ";") {
		prop, val, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{property: prop, value: val})
	}

	return decls
}
