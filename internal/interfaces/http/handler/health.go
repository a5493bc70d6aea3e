// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"seo-flow-api/internal/config"
)

// HealthChecker 依赖的健康检查
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	pg      HealthChecker
	redis   HealthChecker
	version string
	// llmConfigured 默认提供商是否配置了 API Key
	llmConfigured bool
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(cfg *config.Config, pg HealthChecker, redisClient HealthChecker) *HealthHandler {
	h := &HealthHandler{pg: pg, redis: redisClient}
	if cfg != nil {
		h.version = cfg.App.Version
		if _, p, ok := cfg.LLM.Provider(""); ok {
			h.llmConfigured = strings.TrimSpace(p.APIKey) != ""
		}
	}
	return h
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
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
		Status:  "ok",
		Version: h.version,
	})
}

// Ready 就绪检查接口
// Postgres 与 Redis 必需；LLM 未配置只影响报告生成，不影响就绪态
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	pg := probe(ctx, h.pg, "postgres client not configured")
	rd := probe(ctx, h.redis, "redis client not configured")
	llm := &readinessCheck{Status: "ok"}
	if !h.llmConfigured {
		llm.Status = "disabled"
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: map[string]*readinessCheck{
			"postgres": pg,
			"redis":    rd,
			"llm":      llm,
		},
	}
	if pg.Status != "ok" || rd.Status != "ok" {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func probe(ctx context.Context, checker HealthChecker, missing string) *readinessCheck {
	if checker == nil {
		return &readinessCheck{Status: "missing", Error: missing}
	}
	start := time.Now()
	err := checker.HealthCheck(ctx)
	check := &readinessCheck{Status: "ok", LatencyMs: time.Since(start).Milliseconds()}
	if err != nil {
		check.Status = "error"
		check.Error = err.Error()
	}
	return check
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}
