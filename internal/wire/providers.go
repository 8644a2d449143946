// Package wire 提供依赖注入配置
package wire

import (
	"z-image-studio/internal/application/generation"
	"z-image-studio/internal/config"
	"z-image-studio/internal/infrastructure/stability"
	"z-image-studio/internal/interfaces/http/handler"
)

// ProvideStabilityClient 提供 Stability AI 客户端
func ProvideStabilityClient(cfg *config.Config) *stability.Client {
	return stability.NewClient(&cfg.Stability, nil)
}

// ProvideGenerationService 提供生成服务
func ProvideGenerationService(upstream generation.UpstreamClient, cfg *config.Config) *generation.Service {
	return generation.NewService(upstream, cfg.Stability.APIKey)
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(svc *generation.Service, cfg *config.Config) *handler.HealthHandler {
	return handler.NewHealthHandler(svc.Configured, cfg.App.Version)
}
