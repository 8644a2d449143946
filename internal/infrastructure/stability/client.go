// Package stability 提供 Stability AI 文生图 REST 客户端
package stability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"z-image-studio/internal/config"
)

const (
	// DefaultBaseURL Stability AI 接口地址
	DefaultBaseURL = "https://api.stability.ai"
	// DefaultEngine 默认引擎
	DefaultEngine = "stable-diffusion-xl-1024-v1-0"
	// DefaultTimeout 单次调用超时
	DefaultTimeout = 60 * time.Second

	// maxResponseBytes 响应体读取上限，单张 1024x1024 PNG 的 base64 远小于此
	maxResponseBytes = 64 << 20
)

var tracer = otel.Tracer("stability")

// Client Stability AI HTTP 客户端
type Client struct {
	baseURL    string
	engine     string
	httpClient *http.Client
}

// NewClient 创建客户端，httpClient 为空时使用带超时和追踪的默认客户端
func NewClient(cfg *config.StabilityConfig, httpClient *http.Client) *Client {
	baseURL := DefaultBaseURL
	engine := DefaultEngine
	timeout := DefaultTimeout
	if cfg != nil {
		if cfg.BaseURL != "" {
			baseURL = cfg.BaseURL
		}
		if cfg.Engine != "" {
			engine = cfg.Engine
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		engine:     engine,
		httpClient: httpClient,
	}
}

// Name 提供商名称
func (c *Client) Name() string {
	return "stability"
}

// Endpoint 文生图接口完整地址
func (c *Client) Endpoint() string {
	return fmt.Sprintf("%s/v1/generation/%s/text-to-image", c.baseURL, c.engine)
}

// TextToImage 发起一次文生图调用
// 2xx 返回解析后的响应；非 2xx 返回 *StatusError；网络、超时或解析失败返回 *TransportError
func (c *Client) TextToImage(ctx context.Context, apiKey string, req *TextToImageRequest) (*TextToImageResponse, error) {
	ctx, span := tracer.Start(ctx, "stability.TextToImage",
		trace.WithAttributes(
			attribute.String("stability.engine", c.engine),
			attribute.Int("stability.samples", req.Samples),
		))
	defer span.End()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Op: "encoding request body", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Op: "creating request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return nil, &TransportError{Op: "executing request", Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		return nil, &TransportError{Op: "reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: body}
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil {
			statusErr.Message = apiErr.Message
		}
		span.RecordError(statusErr)
		return nil, statusErr
	}

	var out TextToImageResponse
	if err := json.Unmarshal(body, &out); err != nil {
		span.RecordError(err)
		return nil, &TransportError{Op: "decoding response", Err: err}
	}
	span.SetAttributes(attribute.Int("stability.artifacts", len(out.Artifacts)))

	return &out, nil
}
