package overlay

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"selector-inspector/internal/entity"
	"selector-inspector/internal/inference"
	"selector-inspector/internal/ports"
	"selector-inspector/pkg/logg"
)

const (
	DefaultOutline         = "2px solid #FF671D"
	DefaultMessageDuration = 1500 * time.Millisecond
	clipboardTimeout       = 5 * time.Second

	MessageCopied      = "Copied!"
	MessageCopyFailed  = "Copy failed"
	MessageUnavailable = "Clipboard unavailable"

	CopyOutcomeOK          = "ok"
	CopyOutcomeFailed      = "failed"
	CopyOutcomeUnavailable = "unavailable"
	CopyOutcomeStale       = "stale"
)

// Inferrer computes the selector shown for a hovered element.
type Inferrer interface {
	Compute(el ports.Element) entity.Selector
}

type Stopper interface {
	Stop() bool
}

type Options struct {
	Engine          Inferrer
	Clipboard       ports.Clipboard
	Recorder        ports.Recorder
	Logger          *zap.Logger
	Outline         string
	Shortcut        Shortcut
	MessageDuration time.Duration
	// AfterFunc schedules the end of a transient message. Defaults to
	// time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Stopper
}

// Controller drives the hover overlay of one page session. Every method is
// serialised on one mutex, standing in for the page's event loop.
type Controller struct {
	mu       sync.Mutex
	session  *Session
	overlay  ports.Overlay
	opts     Options
	logger   *zap.Logger
	message  Stopper
	inflight sync.WaitGroup
}

func NewController(overlay ports.Overlay, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Engine == nil {
		opts.Engine = inference.NewEngine()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Outline == "" {
		opts.Outline = DefaultOutline
	}
	if opts.MessageDuration <= 0 {
		opts.MessageDuration = DefaultMessageDuration
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Stopper {
			return time.AfterFunc(d, f)
		}
	}

	return &Controller{
		session: NewSession(),
		overlay: overlay,
		opts:    opts,
		logger:  opts.Logger.With(zap.String(logg.Layer, "OverlayController")),
	}
}

// Handlers returns the callbacks a Host subscribes to page events.
func (c *Controller) Handlers() ports.HoverHandlers {
	return ports.HoverHandlers{
		Enter: c.Enter,
		Leave: c.Leave,
		Key:   c.Key,
	}
}

// Enter highlights target and shows its selector. The previous element's
// outline is restored before target is touched.
func (c *Controller) Enter(target ports.HoverTarget) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if target == nil {
		return
	}
	if !target.IsConnected() {
		ports.Release(target)
		return
	}

	prev := c.session.state
	c.restoreLocked(prev)
	c.stopMessageLocked()
	if prev.Target != target {
		ports.Release(prev.Target)
	}

	saved := target.Outline()
	sel := c.opts.Engine.Compute(target)

	next := Transition(prev, Enter{Target: target, Text: sel.Text, SavedOutline: saved})
	c.session.state = next

	target.SetOutline(c.opts.Outline)
	rect, _ := target.BoundingBox()
	c.overlay.Render(next.Text, rect)

	name := TransitionName(prev, next)
	c.opts.Recorder.SelectorInferred(sel.Kind)
	c.opts.Recorder.HoverTransition(name)
	c.logger.Debug("Hover",
		zap.Stringer(logg.SessionID, c.session.ID),
		zap.String(logg.Event, name),
		zap.String(logg.Tag, target.TagName()),
		zap.String(logg.Kind, string(sel.Kind)),
		zap.String(logg.Selector, sel.Text))
}

// Leave clears the highlight and the overlay text.
func (c *Controller) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.session.state
	if prev.Phase == PhaseIdle {
		return
	}

	c.restoreLocked(prev)
	c.stopMessageLocked()
	ports.Release(prev.Target)

	next := Transition(prev, Leave{})
	c.session.state = next
	c.overlay.Clear()

	c.opts.Recorder.HoverTransition(TransitionName(prev, next))
}

func (c *Controller) Key(k entity.KeyPress) {
	if c.opts.Shortcut.Matches(k) {
		c.Copy()
	}
}

// Copy writes the current selector to the clipboard. The result is shown
// as a transient overlay message unless the highlight has moved on.
func (c *Controller) Copy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.session.state
	if state.Phase != PhaseHighlighting {
		return
	}

	if c.opts.Clipboard == nil {
		c.opts.Recorder.ClipboardCopy(CopyOutcomeUnavailable)
		c.showMessageLocked(state.Generation, MessageUnavailable)
		return
	}

	c.inflight.Add(1)
	go func(clipboard ports.Clipboard, text string, gen uint64) {
		defer c.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
		defer cancel()

		c.copyDone(gen, clipboard.WriteText(ctx, text))
	}(c.opts.Clipboard, state.Text, state.Generation)
}

func (c *Controller) copyDone(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.session.state
	if state.Phase != PhaseHighlighting || state.Generation != gen {
		c.opts.Recorder.ClipboardCopy(CopyOutcomeStale)
		c.logger.Debug("Dropping stale copy result", zap.Error(err))
		return
	}

	if err != nil {
		c.opts.Recorder.ClipboardCopy(CopyOutcomeFailed)
		c.logger.Warn("Clipboard write failed", zap.Error(err))
		c.showMessageLocked(gen, MessageCopyFailed)
		return
	}

	c.opts.Recorder.ClipboardCopy(CopyOutcomeOK)
	c.showMessageLocked(gen, MessageCopied)
}

func (c *Controller) showMessageLocked(gen uint64, msg string) {
	c.stopMessageLocked()

	rect, _ := c.session.state.Target.BoundingBox()
	c.overlay.Render(msg, rect)

	c.message = c.opts.AfterFunc(c.opts.MessageDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		state := c.session.state
		if state.Phase != PhaseHighlighting || state.Generation != gen {
			return
		}

		c.message = nil
		rect, _ := state.Target.BoundingBox()
		c.overlay.Render(state.Text, rect)
	})
}

func (c *Controller) stopMessageLocked() {
	if c.message != nil {
		c.message.Stop()
		c.message = nil
	}
}

func (c *Controller) restoreLocked(s State) {
	if s.Phase != PhaseHighlighting || s.Target == nil {
		return
	}

	if s.Target.IsConnected() {
		s.Target.SetOutline(s.SavedOutline)
	}
}

// Reset starts a fresh session after the document was replaced. A target
// that is still connected belongs to the new document and gets its outline
// back. The generation keeps counting so copies started before the reset
// stay stale.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.session.state
	c.restoreLocked(prev)
	c.stopMessageLocked()
	ports.Release(prev.Target)

	c.session = NewSession()
	c.session.state.Generation = prev.Generation + 1
	c.logger.Debug("Session reset", zap.Stringer(logg.SessionID, c.session.ID))

	if err := c.overlay.Install(); err != nil {
		return err
	}
	c.overlay.Clear()

	return nil
}


func (c *Controller) Session() entity.SessionInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.session.Info()
}

// State returns a copy of the current overlay state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.session.state
}

// Wait blocks until in-flight clipboard writes have completed.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

type nopRecorder struct{}

func (nopRecorder) SelectorInferred(entity.SelectorKind) {}
func (nopRecorder) HoverTransition(string)               {}
func (nopRecorder) ClipboardCopy(string)                 {}
