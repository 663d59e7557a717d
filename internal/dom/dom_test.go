package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selector-inspector/internal/entity"
)

const page = `<!DOCTYPE html><html><head><title> Shop </title></head>
<body><div id="main"><p>one</p><span>x</span><p>two <b>bold</b></p></div></body></html>`

func parse(t *testing.T, s string) *Document {
	t.Helper()

	doc, err := ParseString(s)
	require.NoError(t, err)

	return doc
}

func TestElementIdentityIsStable(t *testing.T) {
	doc := parse(t, page)

	first := doc.Query("p")[0]
	again := doc.Query("p")[0]
	assert.Same(t, first, again)

	parent, ok := first.Parent()
	require.True(t, ok)
	assert.Same(t, doc.FindByID("main"), parent)
}

func TestTraversal(t *testing.T) {
	doc := parse(t, page)
	ps := doc.Query("p")
	require.Len(t, ps, 2)

	prev, ok := ps[1].PreviousSibling()
	require.True(t, ok)
	assert.Equal(t, "span", prev.TagName())

	_, ok = ps[0].PreviousSibling()
	assert.False(t, ok, "text nodes are not siblings")

	html := doc.Query("html")[0]
	_, ok = html.Parent()
	assert.False(t, ok, "document is not an element parent")

	assert.Equal(t, "two bold", ps[1].TextContent())
	assert.Equal(t, "Shop", doc.Title())
}

func TestElementByID(t *testing.T) {
	doc := parse(t, page)

	el, ok := doc.ElementByID("main")
	require.True(t, ok)
	assert.Equal(t, "div", el.TagName())

	_, ok = doc.ElementByID("missing")
	assert.False(t, ok)
}

func TestStyles(t *testing.T) {
	doc := parse(t, `<html><body><a style="color: red; outline: 1px dotted blue">x</a></body></html>`)
	a := doc.Query("a")[0]

	assert.Equal(t, "1px dotted blue", a.Outline())

	a.SetOutline("2px solid #FF671D")
	assert.Equal(t, "2px solid #FF671D", a.Outline())
	assert.Equal(t, "red", a.Style("color"))

	a.SetOutline("")
	assert.Empty(t, a.Outline())
	style, _ := a.Attribute("style")
	assert.Equal(t, "color: red", style)

	a.SetStyle("color", "")
	_, ok := a.Attribute("style")
	assert.False(t, ok)
}

func TestRemoveDisconnects(t *testing.T) {
	doc := parse(t, page)
	span := doc.Query("span")[0]
	require.True(t, span.IsConnected())

	span.Remove()
	assert.False(t, span.IsConnected())
	assert.False(t, doc.CreateElement("div").IsConnected())
}

func TestOverlayInstallIsIdempotent(t *testing.T) {
	doc := parse(t, page)

	require.NoError(t, doc.Overlay().Install())
	require.NoError(t, (&Overlay{doc: doc}).Install())

	count := 0
	doc.Walk(func(el *Element) bool {
		if id, _ := el.Attribute("id"); id == OverlayID {
			count++
		}
		return true
	})
	assert.Equal(t, 1, count)

	ov := doc.Overlay().(*Overlay)
	ov.Render("#main", entity.Rect{X: 10, Y: 20.5})
	assert.Equal(t, "#main", ov.Text())
	assert.Equal(t, "20.5px", ov.Node().Style("top"))
	assert.Equal(t, "10px", ov.Node().Style("left"))
	assert.Equal(t, "none", ov.Node().Style("pointer-events"))

	ov.Clear()
	assert.Empty(t, ov.Text())
}

func TestOverlayInstallWithoutBody(t *testing.T) {
	doc := newDocument(parse(t, page).CreateElement("div").node)

	assert.Error(t, doc.Overlay().Install())
}
