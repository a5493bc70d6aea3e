//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"seo-flow-api/internal/application/dashboard"
	"seo-flow-api/internal/application/quota"
	"seo-flow-api/internal/application/report"
	"seo-flow-api/internal/config"
	"seo-flow-api/internal/domain/repository"
	"seo-flow-api/internal/infrastructure/llm"
	"seo-flow-api/internal/infrastructure/persistence/postgres"
	"seo-flow-api/internal/infrastructure/persistence/redis"
	"seo-flow-api/internal/interfaces/http/handler"
	"seo-flow-api/internal/interfaces/http/middleware"
	"seo-flow-api/internal/interfaces/http/router"
	"seo-flow-api/internal/workflow/chain"
	workflowport "seo-flow-api/internal/workflow/port"
	workflowprompt "seo-flow-api/internal/workflow/prompt"
)

// InitializePostgresOnly 仅初始化 PostgreSQL 数据层（用于 bootstrap）
func InitializePostgresOnly(ctx context.Context, cfg *config.Config) (*PostgresOnlyDataLayer, func(), error) {
	wire.Build(
		PostgresSet,
		wire.Struct(new(PostgresOnlyDataLayer), "*"),
	)
	return nil, nil, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		GenerationSet,
		RouterSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewUserContext,
	postgres.NewProjectRepository,
	postgres.NewAuditRepository,
	postgres.NewContentBriefRepository,
	postgres.NewSerpSimulationRepository,
	postgres.NewProspectRepository,
	postgres.NewDashboardRepository,
	postgres.NewLLMUsageEventRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	// 接口绑定
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.UserContextManager), new(*postgres.UserContext)),
	wire.Bind(new(repository.ProjectRepository), new(*postgres.ProjectRepository)),
	wire.Bind(new(repository.AuditRepository), new(*postgres.AuditRepository)),
	wire.Bind(new(repository.ContentBriefRepository), new(*postgres.ContentBriefRepository)),
	wire.Bind(new(repository.SerpSimulationRepository), new(*postgres.SerpSimulationRepository)),
	wire.Bind(new(repository.ProspectRepository), new(*postgres.ProspectRepository)),
	wire.Bind(new(repository.DashboardRepository), new(*postgres.DashboardRepository)),
	wire.Bind(new(repository.LLMUsageEventRepository), new(*postgres.LLMUsageEventRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewRateLimiter,
	ProvideRateLimitKey,
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// GenerationSet 报告生成提供者集合
var GenerationSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	chain.NewStructuredChain,
	wire.Bind(new(report.Generator), new(*chain.StructuredChain)),
	workflowprompt.NewRegistry,
	quota.NewLLMUsageRecorder,
	report.NewStore,
	report.NewService,
	dashboard.NewService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideAuthConfig,
	ProvideHealthHandler,
	handler.NewProjectHandler,
	handler.NewReportHandler,
	handler.NewProspectHandler,
	handler.NewDashboardHandler,
	wire.Struct(new(router.RouterHandlers), "*"),
	wire.Struct(new(router.RouterDeps), "*"),
	router.NewWithDeps,
)
