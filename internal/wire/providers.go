// Package wire 提供依赖注入配置
package wire

import (
	"strings"

	"seo-flow-api/internal/application/quota"
	"seo-flow-api/internal/config"
	"seo-flow-api/internal/infrastructure/persistence/postgres"
	"seo-flow-api/internal/infrastructure/persistence/redis"
	"seo-flow-api/internal/interfaces/http/handler"
	"seo-flow-api/internal/interfaces/http/middleware"
	"seo-flow-api/internal/interfaces/http/router"
	"seo-flow-api/pkg/utils"
)

// App API 网关依赖容器
type App struct {
	Router        *router.Router
	UsageRecorder *quota.LLMUsageRecorder
}

// PostgresOnlyDataLayer 仅包含 PostgreSQL 的数据层（用于 bootstrap）
type PostgresOnlyDataLayer struct {
	PgClient  *postgres.Client
	TxManager *postgres.TxManager
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRateLimitKey 提供限流 Key 构建函数
func ProvideRateLimitKey() middleware.RateLimitKeyFunc {
	return redis.BuildUserRateLimitKey
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, pg *postgres.Client, rc *redis.Client) *handler.HealthHandler {
	return handler.NewHealthHandler(cfg, pg, rc)
}

// ProvideAuthConfig 提供认证配置，未配置 JWT 密钥时拒绝启动
func ProvideAuthConfig(cfg *config.Config) (middleware.AuthConfig, error) {
	if strings.TrimSpace(cfg.Security.JWT.Secret) == "" {
		return middleware.AuthConfig{}, utils.ErrEmptySecret
	}
	return middleware.AuthConfig{
		Secret:    cfg.Security.JWT.Secret,
		Issuer:    cfg.Security.JWT.Issuer,
		Audience:  cfg.Security.JWT.Audience,
		SkipPaths: middleware.DefaultSkipPaths,
		Enabled:   true,
	}, nil
}
