package browser

import (
	"context"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"selector-inspector/internal/entity"
	"selector-inspector/internal/ports"
)

// pageOverlay draws the overlay node inside a live page.
type pageOverlay struct {
	page   playwright.Page
	logger *zap.Logger
}

var _ ports.Overlay = (*pageOverlay)(nil)

func (o *pageOverlay) Install() error {
	ok, err := o.page.Evaluate(ensureOverlayScript())
	if err != nil {
		return err
	}

	// The init script finishes the job on DOMContentLoaded.
	if installed, _ := ok.(bool); !installed {
		o.logger.Debug("Overlay deferred until the body exists")
	}

	return nil
}

func (o *pageOverlay) Render(text string, at entity.Rect) {
	if _, err := o.page.Evaluate(renderOverlayScript(), []interface{}{text, at.X, at.Y}); err != nil {
		o.logger.Debug("Overlay render failed", zap.Error(err))
	}
}

func (o *pageOverlay) Clear() {
	if _, err := o.page.Evaluate(clearOverlayScript()); err != nil {
		o.logger.Debug("Overlay clear failed", zap.Error(err))
	}
}

// pageClipboard writes through the page's navigator.clipboard, which the
// browser may refuse.
type pageClipboard struct {
	page playwright.Page
}

var _ ports.Clipboard = (*pageClipboard)(nil)

func (c *pageClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.page.Evaluate(`async (text) => {
		if (!navigator.clipboard) throw new Error('clipboard API unavailable');
		await navigator.clipboard.writeText(text);
	}`, text)

	return err
}
