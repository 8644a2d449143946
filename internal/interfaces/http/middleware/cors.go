// Package middleware 提供 HTTP 中间件
package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig CORS 配置
type CORSConfig struct {
	// FrontendURL 允许的唯一来源；为空时任意来源均回显放行，其他来源的请求不带 CORS 头
	FrontendURL    string
	AllowedMethods []string
	AllowedHeaders []string
}

// CORS 跨域中间件，始终允许携带凭证
func CORS(cfg CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.AllowedHeaders) == 0 {
		cfg.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	}

	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{RequestIDHeader, TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origin := strings.TrimRight(strings.TrimSpace(cfg.FrontendURL), "/")
	if origin == "" {
		// 携带凭证时不能返回 "*"，改为回显请求来源
		corsCfg.AllowOriginFunc = func(string) bool { return true }
		return cors.New(corsCfg)
	}

	corsCfg.AllowOrigins = []string{origin}
	allowed := cors.New(corsCfg)
	return func(c *gin.Context) {
		// 其他来源照常处理，只是不带 CORS 响应头，由浏览器拦截
		if o := c.GetHeader("Origin"); o != "" && o != origin {
			c.Next()
			return
		}
		allowed(c)
	}
}
