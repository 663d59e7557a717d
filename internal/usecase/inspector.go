package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"selector-inspector/internal/dom"
	"selector-inspector/internal/entity"
	"selector-inspector/internal/inference"
	"selector-inspector/internal/ports"
	"selector-inspector/internal/report"
	"selector-inspector/pkg/apperr"
	"selector-inspector/pkg/logg"
	"selector-inspector/pkg/tracing"
)

const (
	inspectorServiceName = "InspectorService"
	inspectorTracer      = "usecase.inspector"
)

type InspectorService struct {
	logger  *zap.Logger
	tracer  trace.Tracer
	engine  *inference.Engine
	browser ports.BrowserManager
}

func NewInspectorService(params Params) *InspectorService {
	engine := params.Engine
	if engine == nil {
		engine = inference.NewEngine()
	}

	return &InspectorService{
		logger:  params.Logger.With(zap.String(logg.Layer, inspectorServiceName)),
		tracer:  otel.Tracer(inspectorTracer),
		engine:  engine,
		browser: params.Browser,
	}
}

func (s *InspectorService) requireBrowser(op string) error {
	if s.browser == nil || !s.browser.IsReady() {
		return apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	return nil
}

// Open navigates the inspected page to url.
func (s *InspectorService) Open(ctx context.Context, url string) (err error) {
	const op = "Open"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, url))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String("url", url))
	defer func() {
		step.End(err)
	}()

	url = strings.TrimSpace(url)
	if url == "" {
		return apperr.InvalidReqError(op, "url", errors.New("url cannot be empty"))
	}

	if err := s.requireBrowser(op); err != nil {
		return err
	}

	if !strings.Contains(url, "://") && !strings.HasPrefix(url, "about:") {
		url = "https://" + url
	}

	return s.browser.Navigate(ctx, url)
}

// Describe infers the selector of the live element matched by css.
func (s *InspectorService) Describe(ctx context.Context, css string) (entry *entity.SnapshotEntry, err error) {
	const op = "Describe"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.Selector, css))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if strings.TrimSpace(css) == "" {
		return nil, apperr.InvalidReqError(op, "selector", errors.New("selector cannot be empty"))
	}

	if err := s.requireBrowser(op); err != nil {
		return nil, err
	}

	return s.browser.Describe(ctx, css)
}

// Snapshot infers selectors for the current page content.
func (s *InspectorService) Snapshot(ctx context.Context, filter report.Filter) (snap *entity.Snapshot, err error) {
	const op = "Snapshot"
	logger := s.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := s.requireBrowser(op); err != nil {
		return nil, err
	}

	content, err := s.browser.Content(ctx)
	if err != nil {
		return nil, err
	}

	snap, err = s.Infer(ctx, strings.NewReader(content), s.browser.URL(), filter)
	if err != nil {
		return nil, err
	}

	step.SetAttributes(attribute.Int("entries", len(snap.Entries)))

	return snap, nil
}

// Infer parses an HTML document and infers selectors for its elements.
func (s *InspectorService) Infer(ctx context.Context, r io.Reader, source string, filter report.Filter) (snap *entity.Snapshot, err error) {
	const op = "Infer"
	logger := s.logger.With(zap.String(logg.Operation, op))

	_, step := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String("source", source))
	defer func() {
		step.End(err)
	}()

	doc, err := dom.Parse(r)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInvalidArgument, err, map[string]any{
			apperr.MetaReason: "parse_failed",
			apperr.MetaStage:  apperr.StageSnapshot,
			apperr.MetaPath:   source,
		})
	}

	snap = report.Build(s.engine, doc, source, filter)
	logger.Debug("Snapshot built", zap.Int("entries", len(snap.Entries)))

	return snap, nil
}
