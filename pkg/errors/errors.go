// Package errors 提供统一的错误定义
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeNotFound      ErrorCode = "1004"
	CodeInternalError ErrorCode = "1007"

	// 生成业务错误 (4xxx)
	CodeInvalidPrompt        ErrorCode = "4001"
	CodeEmptyGeneration      ErrorCode = "4002"
	CodeGenerationFailed     ErrorCode = "4003"
	CodeMisconfiguredService ErrorCode = "4004"

	// 上游服务错误 (5xxx)
	CodeUpstreamUnauthorized ErrorCode = "5001"
	CodeUpstreamRateLimited  ErrorCode = "5002"
	CodeUpstreamRejected     ErrorCode = "5003"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，便于 errors.Is 与预定义错误匹配
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeInvalidPrompt, CodeUpstreamRejected:
		return http.StatusBadRequest
	case CodeUpstreamUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUpstreamRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误（仅用于 errors.Is 比较，不要修改其字段）
var (
	ErrInvalidPrompt        = New(CodeInvalidPrompt, "Prompt is required")
	ErrMisconfiguredService = New(CodeMisconfiguredService, "Stability AI API key not configured")
	ErrEmptyGeneration      = New(CodeEmptyGeneration, "No image generated")
	ErrUnauthorized         = New(CodeUpstreamUnauthorized, "Invalid API key. Please check your Stability AI API key.")
	ErrRateLimited          = New(CodeUpstreamRateLimited, "Rate limit exceeded. Please try again later.")
	ErrUpstreamRejected     = New(CodeUpstreamRejected, "Invalid request to Stability AI API")
	ErrGenerationFailed     = New(CodeGenerationFailed, "Failed to generate image. Please try again.")
	ErrNotFound             = New(CodeNotFound, "Endpoint not found")
	ErrInternalError        = New(CodeInternalError, "Internal server error")
)

// AsAppError 将错误转换为 AppError，未知错误归为内部错误
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternalError, ErrInternalError.Message)
}
