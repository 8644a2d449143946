// Package generation 提供提示词到图片的生成服务
package generation

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"z-image-studio/internal/infrastructure/stability"
	apperrors "z-image-studio/pkg/errors"
	"z-image-studio/pkg/logger"
	"z-image-studio/pkg/metrics"
	"z-image-studio/pkg/tracer"
)

// 固定的上游生成参数，不对用户开放
const (
	ImageSize     = 1024
	SampleCount   = 1
	GuidanceScale = 8
	StepCount     = 40
	StylePreset   = "digital-art"
	Sampler       = "K_DPMPP_2M"
	PromptWeight  = 1

	// UpstreamTimeout 单次上游调用超时
	UpstreamTimeout = 60 * time.Second

	outcomeSuccess = "success"
)

// UpstreamClient 上游文生图客户端
type UpstreamClient interface {
	Name() string
	TextToImage(ctx context.Context, apiKey string, req *stability.TextToImageRequest) (*stability.TextToImageResponse, error)
}

// Result 生成结果
type Result struct {
	// Image data URI，可直接作为图片源
	Image  string
	Prompt string
	Seed   int64
}

// Service 生成服务，无跨请求共享的可变状态
type Service struct {
	upstream UpstreamClient
	apiKey   string
	timeout  time.Duration
}

// NewService 创建生成服务
func NewService(upstream UpstreamClient, apiKey string) *Service {
	return &Service{
		upstream: upstream,
		apiKey:   apiKey,
		timeout:  UpstreamTimeout,
	}
}

// Configured 是否配置了上游凭证
func (s *Service) Configured() bool {
	return s.apiKey != ""
}

// BuildRequest 构造固定参数的上游请求
func BuildRequest(prompt string) *stability.TextToImageRequest {
	return &stability.TextToImageRequest{
		TextPrompts: []stability.TextPrompt{{Text: prompt, Weight: PromptWeight}},
		CFGScale:    GuidanceScale,
		Height:      ImageSize,
		Width:       ImageSize,
		Samples:     SampleCount,
		Steps:       StepCount,
		StylePreset: StylePreset,
		Sampler:     Sampler,
	}
}

// DataURI 将 base64 PNG 编码为 data URI
func DataURI(base64PNG string) string {
	return "data:image/png;base64," + base64PNG
}

// Generate 校验提示词、调用上游并归一化结果
func (s *Service) Generate(ctx context.Context, prompt string) (*Result, error) {
	ctx, span := tracer.Start(ctx, "generation.Generate")
	defer span.End()

	if strings.TrimSpace(prompt) == "" {
		return nil, s.fail(ctx, apperrors.New(apperrors.CodeInvalidPrompt, apperrors.ErrInvalidPrompt.Message))
	}
	if !s.Configured() {
		return nil, s.fail(ctx, apperrors.New(apperrors.CodeMisconfiguredService, apperrors.ErrMisconfiguredService.Message))
	}

	logger.Info(ctx, "generating image", "prompt", prompt)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.upstream.TextToImage(callCtx, s.apiKey, BuildRequest(prompt))
	if err != nil {
		failure := ClassifyFailure(err)
		metrics.UpstreamCallDuration.WithLabelValues(s.upstream.Name(), failure.Kind.String()).Observe(time.Since(start).Seconds())
		span.SetAttributes(attribute.String("generation.failure", failure.Kind.String()))
		logger.Error(ctx, "error generating image", err, "failure", failure.Kind.String(), "upstream_status", failure.Status)
		return nil, s.fail(ctx, failure.AppError())
	}
	metrics.UpstreamCallDuration.WithLabelValues(s.upstream.Name(), outcomeSuccess).Observe(time.Since(start).Seconds())

	if resp == nil || len(resp.Artifacts) == 0 {
		return nil, s.fail(ctx, apperrors.New(apperrors.CodeEmptyGeneration, apperrors.ErrEmptyGeneration.Message))
	}

	artifact := resp.Artifacts[0]
	span.SetAttributes(attribute.Int64("generation.seed", artifact.Seed))
	metrics.ImageGenerationTotal.WithLabelValues(outcomeSuccess).Inc()

	return &Result{
		Image:  DataURI(artifact.Base64),
		Prompt: prompt,
		Seed:   artifact.Seed,
	}, nil
}

// fail 记录失败指标并原样返回错误
func (s *Service) fail(ctx context.Context, err *apperrors.AppError) *apperrors.AppError {
	metrics.ImageGenerationTotal.WithLabelValues(string(err.Code)).Inc()
	logger.Debug(ctx, "image generation rejected", "code", err.Code, "status", err.HTTPStatus)
	return err
}
