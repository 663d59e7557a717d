package bootstrap

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"selector-inspector/internal/clipboard"
	"selector-inspector/internal/config"
	"selector-inspector/internal/inference"
	"selector-inspector/internal/metrics"
	"selector-inspector/internal/overlay"
	"selector-inspector/internal/ports"
)

func newEngine(conf *config.Config) *inference.Engine {
	return inference.NewEngine(inference.WithMaxPathDepth(conf.OverlayConfig.MaxPathDepth))
}

func newMetrics() (*prometheus.Registry, *metrics.Recorder, error) {
	reg := prometheus.NewRegistry()

	recorder, err := metrics.NewRecorder(reg)
	if err != nil {
		return nil, nil, err
	}

	return reg, recorder, nil
}

// newRegistry builds the per-page overlay registry. Pages bring their own
// clipboard in "page" mode; "system" falls back to the host clipboard.
func newRegistry(conf *config.Config, engine *inference.Engine, recorder *metrics.Recorder, logger *zap.Logger) (*overlay.Registry, error) {
	shortcut, err := overlay.ParseShortcut(conf.OverlayConfig.CopyShortcut)
	if err != nil {
		return nil, err
	}

	opts := overlay.Options{
		Engine:          engine,
		Recorder:        recorder,
		Logger:          logger,
		Outline:         conf.OverlayConfig.Outline,
		Shortcut:        shortcut,
		MessageDuration: conf.OverlayConfig.MessageDuration,
	}

	if conf.OverlayConfig.Clipboard == config.ClipboardSystem {
		var cb ports.Clipboard
		if system, err := clipboard.NewSystem(); err != nil {
			logger.Warn("System clipboard unavailable, copy is disabled", zap.Error(err))
		} else {
			cb = system
		}
		opts.Clipboard = cb
	}

	return overlay.NewRegistry(opts), nil
}
