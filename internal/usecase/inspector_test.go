package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"selector-inspector/internal/entity"
	"selector-inspector/internal/report"
	"selector-inspector/pkg/apperr"
)

type fakeBrowser struct {
	ready     bool
	navigated []string
	content   string
	err       error
}

func (f *fakeBrowser) Launch(context.Context) error { return nil }
func (f *fakeBrowser) Close(context.Context) error  { return nil }

func (f *fakeBrowser) Navigate(_ context.Context, url string) error {
	f.navigated = append(f.navigated, url)
	return f.err
}

func (f *fakeBrowser) Describe(_ context.Context, css string) (*entity.SnapshotEntry, error) {
	return &entity.SnapshotEntry{Tag: "button", Selector: entity.Selector{Kind: entity.SelectorKindIdentifier, Text: css}}, f.err
}

func (f *fakeBrowser) Content(context.Context) (string, error) { return f.content, f.err }
func (f *fakeBrowser) URL() string                             { return "https://shop.test/" }
func (f *fakeBrowser) IsReady() bool                           { return f.ready }

func newService(browser *fakeBrowser) *InspectorService {
	params := Params{Logger: zap.NewNop()}
	if browser != nil {
		params.Browser = browser
	}

	return NewInspectorService(params)
}

func TestOpenNormalisesURL(t *testing.T) {
	browser := &fakeBrowser{ready: true}
	s := newService(browser)

	require.NoError(t, s.Open(context.Background(), " example.com "))
	require.NoError(t, s.Open(context.Background(), "about:blank"))
	assert.Equal(t, []string{"https://example.com", "about:blank"}, browser.navigated)
}

func TestOpenValidates(t *testing.T) {
	s := newService(&fakeBrowser{ready: true})

	err := s.Open(context.Background(), "  ")
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
}

func TestBrowserNotReady(t *testing.T) {
	for _, s := range []*InspectorService{newService(nil), newService(&fakeBrowser{})} {
		_, err := s.Snapshot(context.Background(), nil)
		assert.Equal(t, apperr.CodeBrowserNotReady, apperr.CodeOf(err))

		_, err = s.Describe(context.Background(), "button")
		assert.Equal(t, apperr.CodeBrowserNotReady, apperr.CodeOf(err))
	}
}

func TestSnapshotUsesPageContent(t *testing.T) {
	browser := &fakeBrowser{ready: true, content: `<html><body><button id="go">Go</button><p>hi</p></body></html>`}
	s := newService(browser)

	snap, err := s.Snapshot(context.Background(), report.Interactive)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.test/", snap.Source)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, "#go", snap.Entries[0].Selector.Text)
}

func TestSnapshotPropagatesBrowserError(t *testing.T) {
	s := newService(&fakeBrowser{ready: true, err: errors.New("page crashed")})

	_, err := s.Snapshot(context.Background(), nil)
	assert.EqualError(t, err, "page crashed")
}

func TestInferOffline(t *testing.T) {
	s := newService(nil)

	snap, err := s.Infer(context.Background(), strings.NewReader(`<div><span>Total: 5</span></div>`), "inline", report.Tags("span"))
	require.NoError(t, err)

	require.Len(t, snap.Entries, 1)
	assert.Equal(t, entity.Selector{Kind: entity.SelectorKindTextContent, Text: `text="Total: 5"`}, snap.Entries[0].Selector)
}

func TestDescribeRequiresSelector(t *testing.T) {
	s := newService(&fakeBrowser{ready: true})

	_, err := s.Describe(context.Background(), "")
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))

	entry, err := s.Describe(context.Background(), "#go")
	require.NoError(t, err)
	assert.Equal(t, "#go", entry.Selector.Text)
}
