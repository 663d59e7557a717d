// Package dom is an in-memory document built on golang.org/x/net/html. It
// carries the small slice of live-DOM behaviour the inspector needs: element
// identity, inline styles, layout boxes supplied by the caller, an overlay
// node and event listeners.
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"selector-inspector/internal/entity"
	"selector-inspector/internal/ports"
)

type Document struct {
	root      *html.Node
	elements  map[*html.Node]*Element
	bounds    map[*html.Node]entity.Rect
	listeners map[string][]func(ev Event)
	overlay   *Overlay
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	return newDocument(root), nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		bounds:    make(map[*html.Node]entity.Rect),
		listeners: make(map[string][]func(ev Event)),
	}
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}

	if el, ok := d.elements[n]; ok {
		return el
	}

	el := &Element{node: n, doc: d}
	d.elements[n] = el

	return el
}

// Walk visits every element in document order until fn returns false.
func (d *Document) Walk(fn func(el *Element) bool) {
	var visit func(n *html.Node) bool
	visit = func(n *html.Node) bool {
		if n.Type == html.ElementNode && !fn(d.wrap(n)) {
			return false
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !visit(c) {
				return false
			}
		}
		return true
	}

	visit(d.root)
}

// Query returns elements with the given tag name in document order.
func (d *Document) Query(tag string) []*Element {
	var out []*Element

	d.Walk(func(el *Element) bool {
		if strings.EqualFold(el.TagName(), tag) {
			out = append(out, el)
		}
		return true
	})

	return out
}

func (d *Document) ElementByID(id string) (ports.Element, bool) {
	el := d.FindByID(id)
	if el == nil {
		return nil, false
	}

	return el, true
}

// FindByID returns the first element whose id attribute equals id, or nil.
func (d *Document) FindByID(id string) *Element {
	var found *Element

	d.Walk(func(el *Element) bool {
		if v, ok := el.Attribute("id"); ok && v == id {
			found = el
			return false
		}
		return true
	})

	return found
}

func (d *Document) Body() *Element {
	if body := d.Query("body"); len(body) > 0 {
		return body[0]
	}

	return nil
}

func (d *Document) Title() string {
	if title := d.Query("title"); len(title) > 0 {
		return strings.TrimSpace(title[0].TextContent())
	}

	return ""
}

// CreateElement returns a detached element owned by d.
func (d *Document) CreateElement(tag string) *Element {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     strings.ToLower(tag),
		DataAtom: atom.Lookup([]byte(strings.ToLower(tag))),
	}

	return d.wrap(n)
}

func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}
