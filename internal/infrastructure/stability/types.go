package stability

import (
	"fmt"
)

// TextPrompt 单条文本提示词及其权重
type TextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

// TextToImageRequest 文生图请求体
type TextToImageRequest struct {
	TextPrompts []TextPrompt `json:"text_prompts"`
	CFGScale    float64      `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
	StylePreset string       `json:"style_preset,omitempty"`
	Sampler     string       `json:"sampler,omitempty"`
}

// Artifact 上游返回的单个生成结果
type Artifact struct {
	Base64       string `json:"base64"`
	Seed         int64  `json:"seed"`
	FinishReason string `json:"finishReason,omitempty"`
}

// TextToImageResponse 文生图响应体
type TextToImageResponse struct {
	Artifacts []Artifact `json:"artifacts"`
}

// apiError 上游错误响应体
type apiError struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// StatusError 上游返回非 2xx 状态码，状态码与响应体原样透传
type StatusError struct {
	StatusCode int
	Body       []byte
	// Message 上游响应体中的 message 字段，可能为空
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("stability: API returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("stability: API returned status %d", e.StatusCode)
}

// TransportError 网络、超时或响应解析失败
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("stability: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
