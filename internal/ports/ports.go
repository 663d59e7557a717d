package ports

import (
	"context"

	"selector-inspector/internal/entity"
)

// Element is a borrowed, read-only view of a document element.
type Element interface {
	TagName() string
	Attribute(name string) (string, bool)
	TextContent() string
	// Parent returns false when the parent is the document itself or the
	// element is detached.
	Parent() (Element, bool)
	PreviousSibling() (Element, bool)
	OwnerDocument() Document
}

// Releaser is implemented by elements backed by a remote handle that must
// be freed once the caller is done with it.
type Releaser interface {
	Release()
}

// Release frees el when it holds a remote handle.
func Release(el Element) {
	if r, ok := el.(Releaser); ok {
		r.Release()
	}
}

type Document interface {
	ElementByID(id string) (Element, bool)
}

// HoverTarget is an element the overlay controller can highlight.
type HoverTarget interface {
	Element
	IsConnected() bool
	Outline() string
	SetOutline(value string)
	BoundingBox() (entity.Rect, bool)
}

// Overlay is the single node that displays the current selector.
type Overlay interface {
	Install() error
	Render(text string, at entity.Rect)
	Clear()
}

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// HoverHandlers are the callbacks a Host wires to pointer and keyboard events.
type HoverHandlers struct {
	Enter func(target HoverTarget)
	Leave func()
	Key   func(key entity.KeyPress)
}

// Host is a page session the overlay can be injected into.
type Host interface {
	Overlay() Overlay
	Subscribe(handlers HoverHandlers) error
}

type Recorder interface {
	SelectorInferred(kind entity.SelectorKind)
	HoverTransition(transition string)
	ClipboardCopy(outcome string)
}

type BrowserManager interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	Describe(ctx context.Context, css string) (*entity.SnapshotEntry, error)
	Content(ctx context.Context) (string, error)
	URL() string
	IsReady() bool
}
