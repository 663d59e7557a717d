package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selector-inspector/pkg/apperr"
)

var devToolsShortcuts = []string{"Control+Shift+C", "Control+Shift+I", "Control+Shift+J"}

func TestGetConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	conf, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", conf.AppConfig.LogLevel)
	assert.Equal(t, "about:blank", conf.BrowserConfig.StartURL)
	assert.Equal(t, 30000, conf.BrowserConfig.Timeout)
	assert.Equal(t, "Alt+Shift+C", conf.OverlayConfig.CopyShortcut)
	assert.NotContains(t, devToolsShortcuts, conf.OverlayConfig.CopyShortcut)
	assert.Equal(t, 1500*time.Millisecond, conf.OverlayConfig.MessageDuration)
	assert.Equal(t, ClipboardPage, conf.OverlayConfig.Clipboard)
	assert.Equal(t, 256, conf.OverlayConfig.MaxPathDepth)
	assert.Empty(t, conf.MetricsConfig.Addr)
}

func TestGetConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OVERLAY_CLIPBOARD", "system")
	t.Setenv("OVERLAY_MESSAGE_DURATION", "2s")
	t.Setenv("BROWSER_HEADLESS", "true")
	t.Setenv("METRICS_ADDR", ":9464")

	conf, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, ClipboardSystem, conf.OverlayConfig.Clipboard)
	assert.Equal(t, 2*time.Second, conf.OverlayConfig.MessageDuration)
	assert.True(t, conf.BrowserConfig.Headless)
	assert.Equal(t, ":9464", conf.MetricsConfig.Addr)
}

func TestGetConfigRejectsUnknownClipboard(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OVERLAY_CLIPBOARD", "carrier-pigeon")

	_, err := GetConfig()
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
}

func TestGetConfigRejectsZeroDepth(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OVERLAY_MAX_PATH_DEPTH", "0")

	_, err := GetConfig()
	require.Error(t, err)
}
