// Package middleware 提供 HTTP 中间件
package middleware

import (
	"strconv"
	"time"

	"z-image-studio/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// unmatchedRoute 未命中路由的请求统一归入此标签，避免路径基数膨胀
const unmatchedRoute = "unmatched"

// Metrics Prometheus 指标采集中间件，skip 中的路由（如抓取端点本身）不计入
func Metrics(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if _, ok := skipped[route]; ok {
			c.Next()
			return
		}
		if route == "" {
			route = unmatchedRoute
		}

		start := time.Now()
		c.Next()

		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		// 生成接口的响应体携带整张 base64 图片
		if size := c.Writer.Size(); size > 0 {
			metrics.HTTPResponseSize.WithLabelValues(method, route).Observe(float64(size))
		}
	}
}
