package bootstrap

import (
	"go.uber.org/zap"

	"selector-inspector/internal/config"
	"selector-inspector/pkg/apperr"
)

func newLogger(config *config.Config) (*zap.Logger, error) {
	const op = "newLogger"

	var zapConfig zap.Config

	if config.AppConfig.Debug {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	zapConfig.DisableStacktrace = true
	// stdout belongs to the console.
	zapConfig.OutputPaths = []string{"stderr"}

	level, err := zap.ParseAtomicLevel(config.AppConfig.LogLevel)
	if err != nil {
		return nil, apperr.InvalidReqError(op, "LOG_LEVEL", err)
	}
	zapConfig.Level = level

	return zapConfig.Build()
}
