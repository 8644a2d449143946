//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"z-image-studio/internal/application/generation"
	"z-image-studio/internal/config"
	"z-image-studio/internal/infrastructure/stability"
	"z-image-studio/internal/interfaces/http/handler"
	"z-image-studio/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		UpstreamSet,
		GenerationSet,
		RouterSet,
	)
	return nil, nil, nil
}

// UpstreamSet 上游客户端提供者集合
var UpstreamSet = wire.NewSet(
	ProvideStabilityClient,
	wire.Bind(new(generation.UpstreamClient), new(*stability.Client)),
)

// GenerationSet 生成服务提供者集合
var GenerationSet = wire.NewSet(
	ProvideGenerationService,
	wire.Bind(new(handler.Generator), new(*generation.Service)),
)

// RouterSet HTTP 层提供者集合
var RouterSet = wire.NewSet(
	handler.NewGenerationHandler,
	ProvideHealthHandler,
	router.New,
)
