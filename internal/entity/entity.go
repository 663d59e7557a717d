package entity

import (
	"time"

	"github.com/google/uuid"
)

type SelectorKind string

const (
	SelectorKindTestID         SelectorKind = "test-id"
	SelectorKindIdentifier     SelectorKind = "identifier"
	SelectorKindRoleName       SelectorKind = "role-name"
	SelectorKindTextContent    SelectorKind = "text-content"
	SelectorKindStructuralPath SelectorKind = "structural-path"
)

// Selector is the single result of one inference call.
type Selector struct {
	Kind SelectorKind `json:"kind" yaml:"kind"`
	Text string       `json:"text" yaml:"text"`
}

func (s Selector) String() string {
	return s.Text
}

type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// SnapshotEntry describes one element of a document and the selector
// inferred for it.
type SnapshotEntry struct {
	Tag      string   `json:"tag" yaml:"tag"`
	Role     string   `json:"role,omitempty" yaml:"role,omitempty"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Path     string   `json:"path" yaml:"path"`
	Selector Selector `json:"selector" yaml:"selector"`
}

type Snapshot struct {
	Source    string          `json:"source" yaml:"source"`
	Title     string          `json:"title,omitempty" yaml:"title,omitempty"`
	Entries   []SnapshotEntry `json:"entries" yaml:"entries"`
	Timestamp time.Time       `json:"timestamp" yaml:"timestamp"`
}

// KeyPress is a keyboard event forwarded from the page.
type KeyPress struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Shift bool   `json:"shift"`
	Alt   bool   `json:"alt"`
	Meta  bool   `json:"meta"`
}

type SessionInfo struct {
	ID          uuid.UUID
	StartedAt   time.Time
	Highlighted bool
	Text        string
}
