package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	// configured 上游凭证是否已配置
	configured func() bool
	version    string
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(configured func() bool, version string) *HealthHandler {
	return &HealthHandler{
		configured: configured,
		version:    version,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "OK",
		Message: "AI Image Generator Backend is running",
		Version: h.version,
	})
}

// Ready 就绪检查接口
// 缺少上游凭证时仍可接收流量（生成接口会返回配置错误），仅标记为 degraded
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	check := &readinessCheck{Status: "ok"}
	resp := readinessResponse{
		Status: "ok",
		Checks: map[string]*readinessCheck{"stability_api_key": check},
	}
	if h.configured == nil || !h.configured() {
		check.Status = "missing"
		check.Error = "STABILITY_API_KEY not set"
		resp.Status = "degraded"
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
