package overlay

import (
	"fmt"
	"strings"

	"selector-inspector/internal/entity"
)

// Shortcut is a key plus an exact set of modifiers. The zero value matches
// nothing.
type Shortcut struct {
	Key   string
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// ParseShortcut reads combinations such as "Control+Shift+C". An empty
// string disables the shortcut.
func ParseShortcut(s string) (Shortcut, error) {
	var sc Shortcut

	s = strings.TrimSpace(s)
	if s == "" {
		return sc, nil
	}

	parts := strings.Split(s, "+")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		last := i == len(parts)-1

		switch strings.ToLower(part) {
		case "control", "ctrl":
			sc.Ctrl = true
		case "shift":
			sc.Shift = true
		case "alt", "option":
			sc.Alt = true
		case "meta", "cmd", "command":
			sc.Meta = true
		case "":
			return Shortcut{}, fmt.Errorf("empty key in shortcut %q", s)
		default:
			if !last {
				return Shortcut{}, fmt.Errorf("unknown modifier %q in shortcut %q", part, s)
			}
			sc.Key = strings.ToLower(part)
		}
	}

	if sc.Key == "" {
		return Shortcut{}, fmt.Errorf("shortcut %q has no key", s)
	}

	return sc, nil
}

func (s Shortcut) Matches(k entity.KeyPress) bool {
	if s.Key == "" {
		return false
	}

	return strings.EqualFold(k.Key, s.Key) &&
		k.Ctrl == s.Ctrl && k.Shift == s.Shift && k.Alt == s.Alt && k.Meta == s.Meta
}

func (s Shortcut) String() string {
	if s.Key == "" {
		return ""
	}

	var parts []string
	if s.Ctrl {
		parts = append(parts, "Control")
	}
	if s.Alt {
		parts = append(parts, "Alt")
	}
	if s.Shift {
		parts = append(parts, "Shift")
	}
	if s.Meta {
		parts = append(parts, "Meta")
	}

	return strings.Join(append(parts, strings.ToUpper(s.Key)), "+")
}
