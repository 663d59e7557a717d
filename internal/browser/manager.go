package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"selector-inspector/internal/config"
	"selector-inspector/internal/entity"
	"selector-inspector/internal/inference"
	"selector-inspector/internal/overlay"
	"selector-inspector/pkg/apperr"
	"selector-inspector/pkg/logg"
	"selector-inspector/pkg/tracing"
)

const (
	browserManagerName = "BrowserManager"
	browserTracer      = "browser.manager"
)

type Manager struct {
	config   *config.Config
	logger   *zap.Logger
	tracer   trace.Tracer
	engine   *inference.Engine
	registry *overlay.Registry

	playwright     *playwright.Playwright
	browser        playwright.Browser
	browserContext playwright.BrowserContext
	page           playwright.Page
	ready          bool

	mu    sync.Mutex
	hosts map[playwright.Page]*pageHost
}

type Params struct {
	fx.In

	Config   *config.Config
	Logger   *zap.Logger
	Engine   *inference.Engine
	Registry *overlay.Registry
}

func NewManager(params Params) *Manager {
	return &Manager{
		config:   params.Config,
		logger:   params.Logger.With(zap.String(logg.Layer, browserManagerName)),
		tracer:   otel.Tracer(browserTracer),
		engine:   params.Engine,
		registry: params.Registry,
		hosts:    make(map[playwright.Page]*pageHost),
	}
}

func (m *Manager) Launch(ctx context.Context) (err error) {
	const op = "Launch"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching browser...")
	step.AddEvent("installing playwright")

	err = playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_install_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	step.AddEvent("starting playwright")

	pw, err := playwright.Run()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_start_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.playwright = pw

	if m.config.BrowserConfig.UserDataDir != "" {
		err = m.launchPersistent(ctx)
	} else {
		err = m.launchNew(ctx)
	}
	if err != nil {
		return err
	}

	step.AddEvent("injecting inspector")

	if err := m.instrument(ctx); err != nil {
		return err
	}

	m.setReady(true)
	logger.Info("Browser launched successfully")

	if url := m.config.BrowserConfig.StartURL; url != "" && url != "about:blank" {
		return m.Navigate(ctx, url)
	}

	return nil
}

func (m *Manager) launchPersistent(ctx context.Context) (err error) {
	const op = "launchPersistent"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	userDataDir := m.config.BrowserConfig.UserDataDir

	if err := os.MkdirAll(userDataDir, 0o755); err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "mkdir_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	options := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(m.config.BrowserConfig.Headless),
		SlowMo:   playwright.Float(float64(m.config.BrowserConfig.SlowMo)),
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	}

	browserContext, err := m.playwright.Chromium.LaunchPersistentContext(userDataDir, options)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "launch_persistent_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	m.browserContext = browserContext
	logger.Info("Persistent browser context launched", zap.String("user_data_dir", userDataDir))

	return nil
}

func (m *Manager) launchNew(ctx context.Context) (err error) {
	const op = "launchNew"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	browser, err := m.playwright.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.config.BrowserConfig.Headless),
		SlowMo:   playwright.Float(float64(m.config.BrowserConfig.SlowMo)),
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "browser_launch_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.browser = browser

	browserContext, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "context_create_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	m.browserContext = browserContext
	logger.Info("Browser context created")

	return nil
}

// instrument registers the init script and bindings once per context and
// attaches every current and future page.
func (m *Manager) instrument(ctx context.Context) (err error) {
	const op = "instrument"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	wrap := func(reason string, err error) error {
		return apperr.Wrap(op, apperr.CodeInjectionFailed, err, map[string]any{
			apperr.MetaReason: reason,
			apperr.MetaStage:  apperr.StageInjection,
		})
	}

	if m.config.OverlayConfig.Clipboard == config.ClipboardPage {
		if err := m.browserContext.GrantPermissions([]string{"clipboard-read", "clipboard-write"}); err != nil {
			logger.Warn("Clipboard permissions not granted", zap.Error(err))
		}
	}

	if err := m.browserContext.ExposeBinding(bindingHover, m.onHover, true); err != nil {
		return wrap("expose_hover_failed", err)
	}
	if err := m.browserContext.ExposeBinding(bindingLeave, m.onLeave); err != nil {
		return wrap("expose_leave_failed", err)
	}
	if err := m.browserContext.ExposeBinding(bindingKey, m.onKey); err != nil {
		return wrap("expose_key_failed", err)
	}

	script := inspectorInitScript()
	if err := m.browserContext.AddInitScript(playwright.Script{Content: &script}); err != nil {
		return wrap("init_script_failed", err)
	}

	// Event handlers run on the dispatch loop; calls back into the page
	// must leave it.
	m.browserContext.OnPage(func(page playwright.Page) {
		go func() {
			if err := m.attach(page); err != nil {
				logger.Warn("Failed to attach page", zap.Error(err))
			}
		}()
	})

	pages := m.browserContext.Pages()
	if len(pages) == 0 {
		page, err := m.browserContext.NewPage()
		if err != nil {
			return wrap("new_page_failed", err)
		}
		pages = []playwright.Page{page}
	}

	for _, page := range pages {
		if err := m.attach(page); err != nil {
			return err
		}
	}

	m.page = pages[0]

	return nil
}

// attach injects the overlay into page. Attaching a page twice is a no-op.
func (m *Manager) attach(page playwright.Page) error {
	m.mu.Lock()
	host, ok := m.hosts[page]
	if !ok {
		host = &pageHost{
			page:    page,
			overlay: &pageOverlay{page: page, logger: m.logger},
		}
		if m.config.OverlayConfig.Clipboard == config.ClipboardPage {
			host.clipboard = &pageClipboard{page: page}
		}
		m.hosts[page] = host
	}
	m.mu.Unlock()

	ctrl, created, err := m.registry.Inject(host)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	m.logger.Info("Inspector attached",
		zap.String(logg.URL, page.URL()),
		zap.Stringer(logg.SessionID, ctrl.Session().ID))

	page.OnFrameNavigated(func(frame playwright.Frame) {
		if frame.ParentFrame() != nil {
			return
		}

		host.seq.reset()
		go func() {
			if err := ctrl.Reset(); err != nil {
				m.logger.Debug("Overlay reinstall deferred", zap.Error(err))
			}
		}()
	})

	page.OnClose(func(p playwright.Page) {
		m.registry.Detach(host)

		m.mu.Lock()
		delete(m.hosts, p)
		m.mu.Unlock()
	})

	return nil
}

func (m *Manager) host(page playwright.Page) (*pageHost, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	host, ok := m.hosts[page]

	return host, ok
}

func (m *Manager) onHover(source *playwright.BindingSource, args ...interface{}) interface{} {
	host, ok := m.host(source.Page)
	if !ok || len(args) == 0 {
		return nil
	}

	payload, ok := args[0].(playwright.JSHandle)
	if !ok {
		return nil
	}
	defer payload.Dispose()

	seqHandle, err := payload.GetProperty("seq")
	if err != nil {
		return nil
	}
	rawSeq, err := seqHandle.JSONValue()
	_ = seqHandle.Dispose()
	if err != nil {
		return nil
	}
	seq, ok := toFloat(rawSeq)
	if !ok || !host.seq.accept(seq) {
		return nil
	}

	elHandle, err := payload.GetProperty("el")
	if err != nil {
		return nil
	}
	el := elHandle.AsElement()
	if el == nil {
		_ = elHandle.Dispose()
		return nil
	}

	// The controller owns the target from here and releases it once a
	// newer hover or a leave replaces it.
	target := newElement(el, m.logger)
	enter := host.current().Enter
	if enter == nil {
		target.Release()
		return nil
	}
	enter(target)

	return nil
}

func (m *Manager) onLeave(source *playwright.BindingSource, args ...interface{}) interface{} {
	host, ok := m.host(source.Page)
	if !ok || len(args) == 0 {
		return nil
	}

	seq, ok := toFloat(args[0])
	if !ok || !host.seq.accept(seq) {
		return nil
	}

	if leave := host.current().Leave; leave != nil {
		leave()
	}

	return nil
}

func (m *Manager) onKey(source *playwright.BindingSource, args ...interface{}) interface{} {
	host, ok := m.host(source.Page)
	if !ok || len(args) == 0 {
		return nil
	}

	payload, ok := args[0].(map[string]interface{})
	if !ok {
		return nil
	}

	if key := host.current().Key; key != nil {
		key(keyPress(payload))
	}

	return nil
}

func (m *Manager) Close(ctx context.Context) (err error) {
	const op = "Close"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Closing browser...")
	m.setReady(false)

	if m.browserContext != nil {
		if err := m.browserContext.Close(); err != nil {
			logger.Warn("Failed to close context", zap.Error(err))
		}
	}

	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			logger.Warn("Failed to close browser", zap.Error(err))
		}
	}

	if m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
				apperr.MetaReason: "playwright_stop_failed",
			})
		}
	}

	logger.Info("Browser closed")

	return nil
}

func (m *Manager) ensurePageActive() error {
	if m.browserContext == nil {
		return errors.New("browser context is nil")
	}

	if m.page != nil && !m.page.IsClosed() {
		return nil
	}

	for _, p := range m.browserContext.Pages() {
		if !p.IsClosed() {
			m.page = p
			return nil
		}
	}

	page, err := m.browserContext.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create new page: %w", err)
	}

	m.page = page

	return m.attach(page)
}

func (m *Manager) activePage(op string) (playwright.Page, error) {
	if !m.IsReady() {
		return nil, apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	if err := m.ensurePageActive(); err != nil {
		return nil, apperr.Wrap(op, apperr.CodeBrowserNotReady, err, map[string]any{
			apperr.MetaReason: "page_not_active",
		})
	}

	return m.page, nil
}

func (m *Manager) Navigate(ctx context.Context, url string) (err error) {
	const op = "Navigate"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, url))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("url", url))
	defer func() {
		step.End(err)
	}()

	page, err := m.activePage(op)
	if err != nil {
		return err
	}

	step.AddEvent("navigating to URL")

	_, err = page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(m.config.BrowserConfig.Timeout)),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "goto_failed",
			apperr.MetaStage:  apperr.StageNavigation,
			apperr.MetaURL:    url,
		})
	}

	step.AddEvent("navigation completed")

	return nil
}

// Describe infers the selector of the first element matching css.
func (m *Manager) Describe(ctx context.Context, css string) (entry *entity.SnapshotEntry, err error) {
	const op = "Describe"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.Selector, css))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("selector", css))
	defer func() {
		step.End(err)
	}()

	page, err := m.activePage(op)
	if err != nil {
		return nil, err
	}

	handle, err := page.QuerySelector(css)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInvalidArgument, err, map[string]any{
			apperr.MetaReason:   "query_failed",
			apperr.MetaStage:    apperr.StageInference,
			apperr.MetaSelector: css,
		})
	}
	if handle == nil {
		return nil, apperr.NotFoundError(op, fmt.Errorf("no element matches %q", css))
	}
	defer handle.Dispose()

	el := newElement(handle, logger)
	entry = &entity.SnapshotEntry{
		Tag:      el.TagName(),
		Path:     m.engine.Path(el),
		Selector: m.engine.Compute(el),
	}
	if role, ok := m.engine.Role(el); ok {
		entry.Role = role
		entry.Name = inference.AccessibleName(el)
	}

	step.SetAttributes(attribute.String("kind", string(entry.Selector.Kind)))

	return entry, nil
}

func (m *Manager) Content(ctx context.Context) (content string, err error) {
	const op = "Content"
	logger := m.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	page, err := m.activePage(op)
	if err != nil {
		return "", err
	}

	content, err = page.Content()
	if err != nil {
		return "", apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "content_failed",
			apperr.MetaStage:  apperr.StageSnapshot,
		})
	}

	return content, nil
}

func (m *Manager) URL() string {
	if m.page == nil {
		return ""
	}

	return m.page.URL()
}

func (m *Manager) IsReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ready
}

func (m *Manager) setReady(ready bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ready = ready
}
