// Package router 提供 HTTP 路由配置
package router

import (
	"time"

	"seo-flow-api/internal/config"
	"seo-flow-api/internal/domain/repository"
	"seo-flow-api/internal/interfaces/http/handler"
	"seo-flow-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterHandlers 路由使用的处理器集合
type RouterHandlers struct {
	Health    *handler.HealthHandler
	Project   *handler.ProjectHandler
	Report    *handler.ReportHandler
	Prospect  *handler.ProspectHandler
	Dashboard *handler.DashboardHandler
}

// RouterDeps 中间件依赖
type RouterDeps struct {
	Auth         middleware.AuthConfig
	TxManager    repository.Transactor
	UserContext  repository.UserContextManager
	RateLimiter  middleware.RateLimiter
	RateLimitKey middleware.RateLimitKeyFunc
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	deps     RouterDeps
	handlers *RouterHandlers
}

// NewWithDeps 创建带完整依赖的路由器
func NewWithDeps(cfg *config.Config, deps RouterDeps, handlers *RouterHandlers) *Router {
	// 设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:   gin.New(),
		cfg:      cfg,
		deps:     deps,
		handlers: handlers,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置全局中间件
func (r *Router) setupMiddleware() {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	r.engine.Use(middleware.AccessLog(middleware.DefaultSkipPaths...))

	// CORS 中间件
	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	h := r.handlers

	// 系统端点
	r.engine.GET("/health", h.Health.Health)
	r.engine.GET("/ready", h.Health.Ready)
	r.engine.GET("/live", h.Health.Live)

	// Prometheus 指标端点
	if r.cfg.Observability.Metrics.Enabled {
		path := r.cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	limits := r.cfg.Security.RateLimit

	// API v1 路由组
	v1 := r.engine.Group("/v1")
	v1.Use(middleware.Auth(r.deps.Auth))
	v1.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Enabled: limits.Enabled,
		Scope:   "api",
		Limit:   limits.RequestsPerSecond,
		Window:  time.Second,
	}, r.deps.RateLimiter, r.deps.RateLimitKey))

	// 仪表盘并发读取，各自使用短事务
	v1.GET("/dashboard", h.Dashboard.GetDashboard)

	// 读写接口共享请求级事务
	crud := v1.Group("")
	crud.Use(middleware.DBTransaction(r.deps.TxManager, r.deps.UserContext))
	RegisterCRUDRoutes(crud, h)

	// 生成接口耗时长，不持有请求级事务
	gen := v1.Group("")
	gen.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Enabled: limits.Enabled,
		Scope:   "generation",
		Limit:   limits.GenerationPerMinute,
		Window:  time.Minute,
	}, r.deps.RateLimiter, r.deps.RateLimitKey))
	RegisterGenerationRoutes(gen, h)
}
