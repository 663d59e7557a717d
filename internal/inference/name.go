package inference

import (
	"strings"

	"selector-inspector/internal/ports"
)

// AccessibleName resolves aria-label, then aria-labelledby, then the
// element's own text. An empty result means the element has no name.
//
// An aria-labelledby reference that resolves to nothing yields "" and does
// not fall through to the element's text.
func AccessibleName(el ports.Element) string {
	if label, ok := el.Attribute("aria-label"); ok && label != "" {
		return label
	}

	if ref, ok := el.Attribute("aria-labelledby"); ok && strings.TrimSpace(ref) != "" {
		return labelledBy(el, ref)
	}

	return strings.TrimSpace(el.TextContent())
}

func labelledBy(el ports.Element, ref string) string {
	doc := el.OwnerDocument()
	if doc == nil {
		return ""
	}

	var parts []string

	for _, id := range strings.Fields(ref) {
		label, ok := doc.ElementByID(id)
		if !ok {
			continue
		}

		text := strings.TrimSpace(label.TextContent())
		ports.Release(label)
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " ")
}
