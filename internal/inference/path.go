package inference

import (
	"strconv"
	"strings"

	"selector-inspector/internal/ports"
)

const DefaultMaxPathDepth = 256

// StructuralPath builds an XPath-like address of el from the document root,
// e.g. /html[1]/body[1]/div[2]/span[1]. An element or ancestor with an id
// anchors the path as //*[@id="..."].
func StructuralPath(el ports.Element) string {
	return structuralPath(el, DefaultMaxPathDepth)
}

func structuralPath(el ports.Element, maxDepth int) string {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxPathDepth
	}

	var steps []string

	anchor := "/"
	cur := el
	// cur is an ancestor we obtained, not the caller's element.
	owned := false

	for depth := 0; ; depth++ {
		if id, ok := cur.Attribute("id"); ok && id != "" {
			anchor = `//*[@id=` + quote(id) + `]`
			break
		}

		steps = append(steps, cur.TagName()+"["+strconv.Itoa(sameTagIndex(cur))+"]")

		parent, ok := cur.Parent()
		if !ok {
			break
		}

		if depth+1 >= maxDepth {
			// Not root-anchored any more.
			ports.Release(parent)
			anchor = "//"
			break
		}

		if owned {
			ports.Release(cur)
		}
		cur, owned = parent, true
	}

	if owned {
		ports.Release(cur)
	}

	if len(steps) == 0 {
		return anchor
	}

	var b strings.Builder

	if anchor == "/" || anchor == "//" {
		b.WriteString(anchor)
	} else {
		b.WriteString(anchor)
		b.WriteByte('/')
	}

	for i := len(steps) - 1; i >= 0; i-- {
		b.WriteString(steps[i])
		if i > 0 {
			b.WriteByte('/')
		}
	}

	return b.String()
}

// sameTagIndex is 1 + the number of earlier siblings sharing el's tag.
func sameTagIndex(el ports.Element) int {
	tag := el.TagName()
	index := 1

	sib, ok := el.PreviousSibling()
	for ok {
		if strings.EqualFold(sib.TagName(), tag) {
			index++
		}
		prev, more := sib.PreviousSibling()
		ports.Release(sib)
		sib, ok = prev, more
	}

	return index
}
