package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"selector-inspector/internal/dom"
	"selector-inspector/internal/entity"
	"selector-inspector/internal/inference"
)

const shop = `<!DOCTYPE html><html><head><title>Shop</title><script>var x</script></head>
<body>
  <h1>Catalog</h1>
  <div class="grid">
    <button data-testid="add-1">Add</button>
    <a href="/cart" id="cart">Cart</a>
    <input type="checkbox">
  </div>
</body></html>`

func build(t *testing.T, filter Filter) *entity.Snapshot {
	t.Helper()

	doc, err := dom.ParseString(shop)
	require.NoError(t, err)

	return Build(inference.NewEngine(), doc, "shop.html", filter)
}

func selectors(snap *entity.Snapshot) []string {
	var out []string
	for _, e := range snap.Entries {
		out = append(out, e.Selector.Text)
	}
	return out
}

func TestBuildInteractive(t *testing.T) {
	snap := build(t, Interactive)

	assert.Equal(t, "Shop", snap.Title)
	assert.Equal(t, []string{`[data-testid="add-1"]`, "#cart", "role=checkbox"}, selectors(snap))

	cart := snap.Entries[1]
	assert.Equal(t, "link", cart.Role)
	assert.Equal(t, "Cart", cart.Name)
	assert.Equal(t, `//*[@id="cart"]`, cart.Path)
}

func TestBuildVisibleSkipsHead(t *testing.T) {
	snap := build(t, nil)

	for _, e := range snap.Entries {
		assert.NotContains(t, []string{"html", "head", "title", "script"}, e.Tag)
	}
	assert.Equal(t, "body", snap.Entries[0].Tag)
}

func TestBuildTags(t *testing.T) {
	snap := build(t, Tags("H1", " input "))

	assert.Equal(t, []string{`role=heading[name="Catalog"]`, "role=checkbox"}, selectors(snap))
}

func TestWriteFormats(t *testing.T) {
	snap := build(t, Interactive)

	var text bytes.Buffer
	require.NoError(t, Write(&text, snap, FormatText))
	assert.Contains(t, text.String(), "# shop.html (Shop)")
	assert.Contains(t, text.String(), "role=checkbox")

	var js bytes.Buffer
	require.NoError(t, Write(&js, snap, FormatJSON))
	var decoded entity.Snapshot
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Len(t, decoded.Entries, 3)
	assert.Equal(t, entity.SelectorKindTestID, decoded.Entries[0].Selector.Kind)

	var ym bytes.Buffer
	require.NoError(t, Write(&ym, snap, FormatYAML))
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &raw))
	assert.Equal(t, "shop.html", raw["source"])

	assert.Error(t, Write(&text, snap, "xml"))
}
