package bootstrap

import (
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"selector-inspector/internal/browser"
	"selector-inspector/internal/config"
	"selector-inspector/internal/console"
	"selector-inspector/internal/ports"
	"selector-inspector/internal/usecase"
)

// NewApp wires the interactive inspector: browser, overlay, console.
func NewApp() *fx.App {
	return fx.New(
		fx.Provide(
			config.GetConfig,
			newLogger,
			newTraceProvider,
			newEngine,
			newMetrics,
			newRegistry,

			fx.Annotate(browser.NewManager, fx.As(new(ports.BrowserManager))),

			usecase.NewUsecase,

			console.NewInterface,
		),

		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),

		fx.Invoke(
			func(*sdktrace.TracerProvider) {},
			runMetricsServer,
			runConsole,
		),

		fx.StartTimeout(2*time.Minute),
	)
}
