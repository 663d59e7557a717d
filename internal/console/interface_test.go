package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"selector-inspector/internal/config"
	"selector-inspector/internal/entity"
	"selector-inspector/internal/usecase"
)

type stubBrowser struct {
	content string
	opened  string
}

func (s *stubBrowser) Launch(context.Context) error { return nil }
func (s *stubBrowser) Close(context.Context) error  { return nil }

func (s *stubBrowser) Navigate(_ context.Context, url string) error {
	s.opened = url
	return nil
}

func (s *stubBrowser) Describe(_ context.Context, css string) (*entity.SnapshotEntry, error) {
	return &entity.SnapshotEntry{
		Tag:      "button",
		Path:     "/html[1]/body[1]/button[1]",
		Selector: entity.Selector{Kind: entity.SelectorKindRoleName, Text: "role=button"},
	}, nil
}

func (s *stubBrowser) Content(context.Context) (string, error) { return s.content, nil }
func (s *stubBrowser) URL() string                             { return "https://shop.test/" }
func (s *stubBrowser) IsReady() bool                           { return true }

func run(t *testing.T, input string) (string, *stubBrowser) {
	t.Helper()

	browser := &stubBrowser{content: `<html><body><h1>Hi</h1><button data-testid="go">Go</button></body></html>`}
	svc := usecase.NewUsecase(usecase.Params{Logger: zap.NewNop(), Browser: browser})

	var out bytes.Buffer
	i := NewInterface(Params{
		Config:  &config.Config{OverlayConfig: &config.OverlayConfig{CopyShortcut: "Alt+Shift+C"}},
		Logger:  zap.NewNop(),
		Usecase: svc,
	})
	i.in = strings.NewReader(input)
	i.out = &out

	require.NoError(t, i.Start())

	return out.String(), browser
}

func TestConsoleCommands(t *testing.T) {
	out, browser := run(t, "open example.com\ndescribe button\nsnapshot\nsnapshot h1\nbogus\nexit\nopen never.example\n")

	assert.Equal(t, "https://example.com", browser.opened)
	assert.Contains(t, out, "Press Alt+Shift+C to copy it.")
	assert.Contains(t, out, "button\trole-name\trole=button")
	assert.Contains(t, out, "path\t/html[1]/body[1]/button[1]")
	assert.Contains(t, out, `[data-testid="go"]`)
	assert.Contains(t, out, `role=heading[name="Hi"]`)
	assert.Contains(t, out, `Error: unknown command "bogus"`)
	assert.Contains(t, out, "Shutting down...")
	assert.NotContains(t, out, "never.example")
}

func TestConsoleStopsOnEOF(t *testing.T) {
	out, _ := run(t, "help\n")

	assert.Contains(t, out, "Available commands:")
}
