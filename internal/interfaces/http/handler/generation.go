// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"z-image-studio/internal/application/generation"
	"z-image-studio/internal/interfaces/http/dto"
	apperrors "z-image-studio/pkg/errors"
	"z-image-studio/pkg/logger"
)

// Generator 图片生成用例
type Generator interface {
	Generate(ctx context.Context, prompt string) (*generation.Result, error)
}

// GenerationHandler 图片生成处理器
type GenerationHandler struct {
	generator Generator
}

// NewGenerationHandler 创建图片生成处理器
func NewGenerationHandler(generator Generator) *GenerationHandler {
	return &GenerationHandler{generator: generator}
}

// GenerateImage 根据提示词生成图片
// @Summary 生成图片
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.GenerateImageRequest true "提示词"
// @Success 200 {object} dto.GenerateImageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate-image [post]
func (h *GenerationHandler) GenerateImage(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(ctx, "invalid generate-image body", "error", err.Error())
		dto.AppError(c, bindError(err))
		return
	}

	result, err := h.generator.Generate(ctx, req.Prompt)
	if err != nil {
		dto.AppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateImageResponse{
		Success: true,
		Image:   result.Image,
		Prompt:  result.Prompt,
		Seed:    result.Seed,
	})
}

// bindError 请求体解析失败的映射：超长请求体为内部错误，prompt 类型错误为生成失败，其余视同缺少提示词
func bindError(err error) *apperrors.AppError {
	var tooLarge *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &tooLarge):
		return apperrors.Wrap(err, apperrors.CodeInternalError, apperrors.ErrInternalError.Message)
	case errors.As(err, &typeErr):
		return apperrors.Wrap(err, apperrors.CodeGenerationFailed, apperrors.ErrGenerationFailed.Message)
	default:
		return apperrors.Wrap(err, apperrors.CodeInvalidPrompt, apperrors.ErrInvalidPrompt.Message)
	}
}

// NotFound 未匹配路由
func NotFound(c *gin.Context) {
	dto.NotFound(c, apperrors.ErrNotFound.Message)
}
