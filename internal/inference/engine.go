package inference

import (
	"strings"

	"selector-inspector/internal/entity"
	"selector-inspector/internal/ports"
)

const testIDAttr = "data-testid"

type Option func(*Engine)

// WithRoleTable replaces the implicit role table.
func WithRoleTable(table RoleTable) Option {
	return func(e *Engine) {
		e.roles = table
	}
}

func WithMaxPathDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// Engine derives one selector per element. It holds no per-call state and
// is safe for concurrent use.
type Engine struct {
	roles    RoleTable
	maxDepth int
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		roles:    DefaultRoleTable,
		maxDepth: DefaultMaxPathDepth,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Compute runs the priority chain: test id, id, role and name, text,
// structural path. The first strategy that applies wins.
func (e *Engine) Compute(el ports.Element) entity.Selector {
	if v, ok := el.Attribute(testIDAttr); ok {
		return entity.Selector{
			Kind: entity.SelectorKindTestID,
			Text: "[" + testIDAttr + "=" + quote(v) + "]",
		}
	}

	if id, ok := el.Attribute("id"); ok && id != "" {
		return entity.Selector{Kind: entity.SelectorKindIdentifier, Text: "#" + id}
	}

	if role, ok := e.roles.Classify(el); ok {
		if name := AccessibleName(el); name != "" {
			return entity.Selector{
				Kind: entity.SelectorKindRoleName,
				Text: "role=" + role + "[name=" + quote(name) + "]",
			}
		}

		return entity.Selector{Kind: entity.SelectorKindRoleName, Text: "role=" + role}
	}

	if text := strings.TrimSpace(el.TextContent()); text != "" {
		return entity.Selector{Kind: entity.SelectorKindTextContent, Text: "text=" + quote(text)}
	}

	return entity.Selector{
		Kind: entity.SelectorKindStructuralPath,
		Text: structuralPath(el, e.maxDepth),
	}
}

// Role classifies el with the engine's table.
func (e *Engine) Role(el ports.Element) (string, bool) {
	return e.roles.Classify(el)
}

// Path returns el's structural path with the engine's depth bound.
func (e *Engine) Path(el ports.Element) string {
	return structuralPath(el, e.maxDepth)
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
