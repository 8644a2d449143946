// Package client 封装对图片生成服务的网络调用
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"z-image-studio/internal/interfaces/http/dto"
	"z-image-studio/pkg/logger"
)

// 面向用户的提示消息
const (
	MsgGenerated         = "Image generated successfully!"
	MsgRegenerated       = "Image regenerated successfully!"
	MsgGenerateFailed    = "Failed to generate image"
	MsgRegenerateFailed  = "Failed to regenerate image"
	MsgNetworkError      = "Network error. Please check if the backend server is running."
	generateImagePath    = "/generate-image"
	defaultClientTimeout = 90 * time.Second
	maxResponseBytes     = 64 << 20
)

// Image 服务返回的图片
type Image struct {
	// DataURI 可直接使用的图片源
	DataURI string
	Prompt  string
	Seed    int64
}

// Result 统一的调用结果，失败时 Image 为空
type Result struct {
	Success bool
	Message string
	Image   *Image
}

// Client 图片生成服务客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New 创建客户端，httpClient 为空时使用带超时和追踪的默认客户端
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   defaultClientTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Generate 生成新图片
func (c *Client) Generate(ctx context.Context, prompt string) Result {
	return c.call(ctx, prompt, MsgGenerated, MsgGenerateFailed)
}

// Regenerate 为已有图片重新生成，网络调用与 Generate 相同
func (c *Client) Regenerate(ctx context.Context, prompt string, id int64) Result {
	logger.Debug(ctx, "regenerating image", "image_id", id)
	return c.call(ctx, prompt, MsgRegenerated, MsgRegenerateFailed)
}

// call 执行请求，任何传输或解析错误都转换为失败结果
func (c *Client) call(ctx context.Context, prompt, okMsg, failMsg string) Result {
	payload, err := json.Marshal(dto.GenerateImageRequest{Prompt: prompt})
	if err != nil {
		return networkError(ctx, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generateImagePath, bytes.NewReader(payload))
	if err != nil {
		return networkError(ctx, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(ctx, err)
	}
	defer resp.Body.Close()

	var data dto.GenerateImageResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&data); err != nil {
		return networkError(ctx, err)
	}

	if !data.Success {
		msg := data.Error
		if msg == "" {
			msg = failMsg
		}
		return Result{Success: false, Message: msg}
	}

	return Result{
		Success: true,
		Message: okMsg,
		Image: &Image{
			DataURI: data.Image,
			Prompt:  data.Prompt,
			Seed:    data.Seed,
		},
	}
}

func networkError(ctx context.Context, err error) Result {
	logger.Error(ctx, "error generating image", err)
	return Result{Success: false, Message: MsgNetworkError}
}
