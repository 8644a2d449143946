package generation

import (
	"errors"
	"net/http"

	"z-image-studio/internal/infrastructure/stability"
	apperrors "z-image-studio/pkg/errors"
)

// FailureKind 上游调用失败的分类
type FailureKind int

const (
	// FailureOther 其它状态码，兜底
	FailureOther FailureKind = iota
	// FailureTransport 网络、超时或响应解析失败
	FailureTransport
	// FailureUnauthorized 上游 401
	FailureUnauthorized
	// FailureRateLimited 上游 429
	FailureRateLimited
	// FailureBadRequest 上游 400
	FailureBadRequest
)

// String 返回分类名称
func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureUnauthorized:
		return "unauthorized"
	case FailureRateLimited:
		return "rate_limited"
	case FailureBadRequest:
		return "bad_request"
	default:
		return "other"
	}
}

// UpstreamFailure 已分类的上游失败
type UpstreamFailure struct {
	Kind FailureKind
	// Status 上游 HTTP 状态码，传输失败时为 0
	Status int
	// Message 上游提供的错误消息，可能为空
	Message string
	Err     error
}

// ClassifyFailure 将上游客户端错误归类
func ClassifyFailure(err error) UpstreamFailure {
	var statusErr *stability.StatusError
	if !errors.As(err, &statusErr) {
		return UpstreamFailure{Kind: FailureTransport, Err: err}
	}

	f := UpstreamFailure{Status: statusErr.StatusCode, Message: statusErr.Message, Err: err}
	switch statusErr.StatusCode {
	case http.StatusUnauthorized:
		f.Kind = FailureUnauthorized
	case http.StatusTooManyRequests:
		f.Kind = FailureRateLimited
	case http.StatusBadRequest:
		f.Kind = FailureBadRequest
	default:
		f.Kind = FailureOther
	}
	return f
}

// AppError 将分类后的失败映射为应用错误
func (f UpstreamFailure) AppError() *apperrors.AppError {
	switch f.Kind {
	case FailureUnauthorized:
		return apperrors.Wrap(f.Err, apperrors.CodeUpstreamUnauthorized, apperrors.ErrUnauthorized.Message)
	case FailureRateLimited:
		return apperrors.Wrap(f.Err, apperrors.CodeUpstreamRateLimited, apperrors.ErrRateLimited.Message)
	case FailureBadRequest:
		msg := f.Message
		if msg == "" {
			msg = apperrors.ErrUpstreamRejected.Message
		}
		return apperrors.Wrap(f.Err, apperrors.CodeUpstreamRejected, msg)
	case FailureTransport, FailureOther:
		return apperrors.Wrap(f.Err, apperrors.CodeGenerationFailed, apperrors.ErrGenerationFailed.Message)
	default:
		panic("generation: unhandled failure kind " + f.Kind.String())
	}
}
