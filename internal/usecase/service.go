package usecase

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"selector-inspector/internal/config"
	"selector-inspector/internal/inference"
	"selector-inspector/internal/ports"
)

type Service struct {
	Inspector *InspectorService
}

type Params struct {
	fx.In

	Logger  *zap.Logger
	Config  *config.Config
	Engine  *inference.Engine
	Browser ports.BrowserManager `optional:"true"`
}

func NewUsecase(params Params) *Service {
	return &Service{
		Inspector: NewInspectorService(params),
	}
}
