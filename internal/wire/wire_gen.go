// 依赖注入入口，与 wire.go 中的 Provider Set 保持一致，手工维护。

//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"

	"seo-flow-api/internal/application/dashboard"
	"seo-flow-api/internal/application/quota"
	"seo-flow-api/internal/application/report"
	"seo-flow-api/internal/config"
	"seo-flow-api/internal/infrastructure/llm"
	"seo-flow-api/internal/infrastructure/persistence/postgres"
	"seo-flow-api/internal/infrastructure/persistence/redis"
	"seo-flow-api/internal/interfaces/http/handler"
	"seo-flow-api/internal/interfaces/http/router"
	"seo-flow-api/internal/workflow/chain"
	"seo-flow-api/internal/workflow/prompt"
)

// Injectors from wire.go:

// InitializePostgresOnly 仅初始化 PostgreSQL 数据层（用于 bootstrap）
func InitializePostgresOnly(ctx context.Context, cfg *config.Config) (*PostgresOnlyDataLayer, func(), error) {
	client, cleanup, err := ProvidePostgresClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	txManager := postgres.NewTxManager(client)
	postgresOnlyDataLayer := &PostgresOnlyDataLayer{
		PgClient:  client,
		TxManager: txManager,
	}
	return postgresOnlyDataLayer, func() {
		cleanup()
	}, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	authConfig, err := ProvideAuthConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	client, cleanup, err := ProvidePostgresClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	txManager := postgres.NewTxManager(client)
	userContext := postgres.NewUserContext(client)
	redisClient, cleanup2, err := ProvideRedisClient(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	rateLimiter := redis.NewRateLimiter(redisClient)
	rateLimitKeyFunc := ProvideRateLimitKey()
	routerDeps := router.RouterDeps{
		Auth:         authConfig,
		TxManager:    txManager,
		UserContext:  userContext,
		RateLimiter:  rateLimiter,
		RateLimitKey: rateLimitKeyFunc,
	}
	healthHandler := ProvideHealthHandler(cfg, client, redisClient)
	projectRepository := postgres.NewProjectRepository(client)
	projectHandler := handler.NewProjectHandler(txManager, userContext, projectRepository)
	einoFactory := llm.NewEinoFactory(cfg)
	structuredChain := chain.NewStructuredChain(einoFactory)
	registry := prompt.NewRegistry()
	auditRepository := postgres.NewAuditRepository(client)
	contentBriefRepository := postgres.NewContentBriefRepository(client)
	serpSimulationRepository := postgres.NewSerpSimulationRepository(client)
	store := report.NewStore(txManager, userContext, auditRepository, contentBriefRepository, serpSimulationRepository)
	service := report.NewService(cfg, structuredChain, registry, store)
	reportHandler := handler.NewReportHandler(txManager, userContext, projectRepository, service)
	prospectRepository := postgres.NewProspectRepository(client)
	prospectHandler := handler.NewProspectHandler(txManager, userContext, projectRepository, prospectRepository, service)
	dashboardRepository := postgres.NewDashboardRepository(client)
	dashboardService := dashboard.NewService(cfg, txManager, userContext, projectRepository, dashboardRepository)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	routerHandlers := &router.RouterHandlers{
		Health:    healthHandler,
		Project:   projectHandler,
		Report:    reportHandler,
		Prospect:  prospectHandler,
		Dashboard: dashboardHandler,
	}
	routerRouter := router.NewWithDeps(cfg, routerDeps, routerHandlers)
	llmUsageEventRepository := postgres.NewLLMUsageEventRepository(client)
	llmUsageRecorder := quota.NewLLMUsageRecorder(llmUsageEventRepository)
	app := &App{
		Router:        routerRouter,
		UsageRecorder: llmUsageRecorder,
	}
	return app, func() {
		cleanup2()
		cleanup()
	}, nil
}
