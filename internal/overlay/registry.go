package overlay

import (
	"sync"

	"go.uber.org/zap"

	"selector-inspector/internal/ports"
	"selector-inspector/pkg/apperr"
	"selector-inspector/pkg/logg"
)

// ClipboardProvider is implemented by hosts that bring their own clipboard,
// such as a browser page. A nil result falls back to the registry default.
type ClipboardProvider interface {
	Clipboard() ports.Clipboard
}

// Registry holds one Controller per host. Hosts are used as map keys and
// must be comparable (pointer-backed).
type Registry struct {
	mu          sync.Mutex
	opts        Options
	controllers map[ports.Host]*Controller
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:        opts,
		controllers: make(map[ports.Host]*Controller),
	}
}

// Inject installs the overlay into host and subscribes a controller to its
// events. Injecting the same host again returns the existing controller
// without installing or subscribing anything.
func (r *Registry) Inject(host ports.Host) (c *Controller, created bool, err error) {
	const op = "Inject"

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.controllers[host]; ok {
		return existing, false, nil
	}

	overlay := host.Overlay()
	if err := overlay.Install(); err != nil {
		return nil, false, apperr.Wrap(op, apperr.CodeInjectionFailed, err, map[string]any{
			apperr.MetaReason: "overlay_install_failed",
			apperr.MetaStage:  apperr.StageInjection,
		})
	}

	opts := r.opts
	if p, ok := host.(ClipboardProvider); ok {
		if clipboard := p.Clipboard(); clipboard != nil {
			opts.Clipboard = clipboard
		}
	}

	c = NewController(overlay, opts)

	if err := host.Subscribe(c.Handlers()); err != nil {
		return nil, false, apperr.Wrap(op, apperr.CodeInjectionFailed, err, map[string]any{
			apperr.MetaReason: "subscribe_failed",
			apperr.MetaStage:  apperr.StageInjection,
		})
	}

	r.controllers[host] = c
	c.logger.Debug("Overlay injected", zap.Stringer(logg.SessionID, c.Session().ID))

	return c, true, nil
}

func (r *Registry) Lookup(host ports.Host) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.controllers[host]

	return c, ok
}

// Detach forgets host; its session ends with the page.
func (r *Registry) Detach(host ports.Host) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.controllers[host]; ok {
		c.logger.Debug("Overlay detached", zap.Int("remaining", len(r.controllers)-1))
		delete(r.controllers, host)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.controllers)
}
