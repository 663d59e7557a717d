package inference

import (
	"strings"

	"selector-inspector/internal/ports"
)

// Pattern matches an element by tag name and, optionally, one attribute.
// An empty Value with Present set only requires the attribute to exist;
// Absent requires it to be missing.
type Pattern struct {
	Tag     string
	Attr    string
	Value   string
	Present bool
	Absent  bool
}

func (p Pattern) matches(el ports.Element) bool {
	if !strings.EqualFold(el.TagName(), p.Tag) {
		return false
	}

	if p.Attr == "" {
		return true
	}

	v, ok := el.Attribute(p.Attr)

	switch {
	case p.Absent:
		return !ok
	case p.Present:
		return ok
	default:
		return ok && strings.EqualFold(strings.TrimSpace(v), p.Value)
	}
}

type RoleRule struct {
	Role     string
	Patterns []Pattern
}

// RoleTable is scanned in declared order; the first matching rule wins.
type RoleTable []RoleRule

func inputType(value string) Pattern {
	return Pattern{Tag: "input", Attr: "type", Value: value}
}

// DefaultRoleTable maps implicit ARIA roles to the markup that carries them.
var DefaultRoleTable = RoleTable{
	{Role: "button", Patterns: []Pattern{
		{Tag: "button"},
		inputType("button"),
		inputType("submit"),
		inputType("reset"),
	}},
	{Role: "link", Patterns: []Pattern{{Tag: "a", Attr: "href", Present: true}}},
	{Role: "checkbox", Patterns: []Pattern{inputType("checkbox")}},
	{Role: "heading", Patterns: []Pattern{
		{Tag: "h1"}, {Tag: "h2"}, {Tag: "h3"}, {Tag: "h4"}, {Tag: "h5"}, {Tag: "h6"},
	}},
	{Role: "dialog", Patterns: []Pattern{{Tag: "dialog"}}},
	{Role: "img", Patterns: []Pattern{{Tag: "img", Attr: "alt", Present: true}}},
	{Role: "textbox", Patterns: []Pattern{
		{Tag: "input", Attr: "type", Absent: true},
		inputType("text"),
		inputType("email"),
		inputType("password"),
		inputType("search"),
		inputType("tel"),
		inputType("url"),
		{Tag: "textarea"},
	}},
	{Role: "radio", Patterns: []Pattern{inputType("radio")}},
}

// Classify returns the explicit role attribute verbatim, or the first
// implicit role in the table matching el.
func (t RoleTable) Classify(el ports.Element) (string, bool) {
	if role, ok := el.Attribute("role"); ok {
		return role, true
	}

	for _, rule := range t {
		for _, p := range rule.Patterns {
			if p.matches(el) {
				return rule.Role, true
			}
		}
	}

	return "", false
}

// ClassifyRole classifies el against DefaultRoleTable.
func ClassifyRole(el ports.Element) (string, bool) {
	return DefaultRoleTable.Classify(el)
}
