// Package middleware 提供 HTTP 中间件
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"z-image-studio/internal/interfaces/http/dto"
	apperrors "z-image-studio/pkg/errors"
	"z-image-studio/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery Panic 恢复中间件，兜底返回通用 500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := string(debug.Stack())

				logger.Error(c.Request.Context(), "unhandled error",
					fmt.Errorf("%v", err),
					"stack", stack,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)

				dto.AbortWithError(c, http.StatusInternalServerError, apperrors.ErrInternalError.Message)
			}
		}()

		c.Next()
	}
}
