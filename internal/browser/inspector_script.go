package browser

import (
	"fmt"

	"selector-inspector/internal/dom"
)

const (
	bindingHover = "__selectorInspectorHover"
	bindingLeave = "__selectorInspectorLeave"
	bindingKey   = "__selectorInspectorKey"
)

// ensureOverlayScript creates the overlay node once per document. Safe to
// evaluate any number of times.
func ensureOverlayScript() string {
	return fmt.Sprintf(`() => {
		const id = %q;
		if (!document.body) return false;
		if (document.getElementById(id)) return true;

		const o = document.createElement('div');
		o.id = id;
		o.style.position = 'absolute';
		o.style.background = 'rgba(0, 0, 0, 0.8)';
		o.style.color = '#fff';
		o.style.padding = '5px';
		o.style.fontSize = '12px';
		o.style.borderRadius = '5px';
		o.style.pointerEvents = 'none';
		o.style.zIndex = '9999';
		document.body.appendChild(o);
		return true;
	}`, dom.OverlayID)
}

func renderOverlayScript() string {
	return fmt.Sprintf(`([text, x, y]) => {
		const o = document.getElementById(%q);
		if (!o) return;
		o.textContent = text;
		o.style.top = (y + window.scrollY) + 'px';
		o.style.left = (x + window.scrollX) + 'px';
	}`, dom.OverlayID)
}

func clearOverlayScript() string {
	return fmt.Sprintf(`() => {
		const o = document.getElementById(%q);
		if (o) o.textContent = '';
	}`, dom.OverlayID)
}

// inspectorInitScript runs in every new document of the top frame. It
// forwards pointer and keyboard events to the Go bindings and flashes
// elements the user interacts with. Hover events carry a sequence number
// so the Go side can drop callbacks that arrive out of order.
func inspectorInitScript() string {
	return fmt.Sprintf(`(() => {
		if (window !== window.top) return;
		if (window.__selectorInspectorInstalled) return;
		window.__selectorInspectorInstalled = true;

		const overlayId = %q;
		const ensureOverlay = %s;
		if (!ensureOverlay()) {
			document.addEventListener('DOMContentLoaded', ensureOverlay, { once: true });
		}

		let seq = 0;

		document.addEventListener('mouseover', (event) => {
			const el = event.target;
			if (!(el instanceof Element) || el.id === overlayId) return;
			window.%s({ seq: ++seq, el: el });
		}, true);

		document.addEventListener('mouseout', () => {
			window.%s(++seq);
		}, true);

		document.addEventListener('keydown', (event) => {
			window.%s({
				// Layout-independent letter: Alt on macOS rewrites event.key.
				key: /^Key[A-Z]$/.test(event.code) ? event.code.slice(3) : event.key,
				ctrl: event.ctrlKey,
				shift: event.shiftKey,
				alt: event.altKey,
				meta: event.metaKey,
			});
		}, true);

		const flash = (el) => {
			if (!(el instanceof Element)) return;
			const previous = el.style.boxShadow;
			el.style.boxShadow = '0 0 0 4px #00FF00';
			setTimeout(() => { el.style.boxShadow = previous; }, 2000);
		};

		document.addEventListener('click', (event) => flash(event.target));
		document.addEventListener('change', (event) => flash(event.target));
	})();`, dom.OverlayID, ensureOverlayScript(), bindingHover, bindingLeave, bindingKey)
}
